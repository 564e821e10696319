package models

import "time"

// ServiceRequest statuses. The request status mirrors the composite
// request/appointment lifecycle; completed and cancelled are terminal.
const (
	RequestStatusCreated           = "created"
	RequestStatusQuoted            = "quoted"
	RequestStatusSelectedPending   = "selected_pending_fee"
	RequestStatusPendingInspection = "pending_inspection"
	RequestStatusConfirmed         = "confirmed"
	RequestStatusCompleted         = "completed"
	RequestStatusCancelled         = "cancelled"
)

// ServiceRequest is a customer's posted job.
type ServiceRequest struct {
	ID              string    `bson:"id" json:"id"`
	CustomerID      string    `bson:"customerId" json:"customerId"`
	Vehicle         Vehicle   `bson:"vehicle" json:"vehicle"`
	ServiceCodes    []string  `bson:"serviceCodes" json:"serviceCodes"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	PhotosRequested bool      `bson:"photosRequested" json:"photosRequested"`
	PhotoURLs       []string  `bson:"photoUrls,omitempty" json:"photoUrls,omitempty"`
	Status          string    `bson:"status" json:"status"`
	// SelectedQuoteID is the selection pointer. Empty means no active
	// selection; it is only ever set through a compare-and-set write.
	SelectedQuoteID string    `bson:"selectedQuoteId,omitempty" json:"selectedQuoteId,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Vehicle identifies what the work is for.
type Vehicle struct {
	Make  string `bson:"make" json:"make"`
	Model string `bson:"model" json:"model"`
	Year  int    `bson:"year" json:"year"`
	Plate string `bson:"plate,omitempty" json:"plate,omitempty"`
}

// Terminal reports whether the request can never transition again.
func (r *ServiceRequest) Terminal() bool {
	return r.Status == RequestStatusCompleted || r.Status == RequestStatusCancelled
}

// AcceptsQuotes reports whether new quotes may still be submitted.
func (r *ServiceRequest) AcceptsQuotes() bool {
	return (r.Status == RequestStatusCreated || r.Status == RequestStatusQuoted) && r.SelectedQuoteID == ""
}
