package models

import "time"

// Appointment statuses.
const (
	AppointmentStatusPendingInspection = "pending_inspection"
	AppointmentStatusConfirmed         = "confirmed"
	AppointmentStatusCompleted         = "completed"
	AppointmentStatusCancelled         = "cancelled"
)

// Appointment is the scheduled engagement once the referral fee is paid.
type Appointment struct {
	ID             string    `bson:"id" json:"id"`
	RequestID      string    `bson:"requestId" json:"requestId"`
	QuoteID        string    `bson:"quoteId" json:"quoteId"`
	FeeID          string    `bson:"feeId" json:"feeId"`
	CustomerID     string    `bson:"customerId" json:"customerId"`
	ProfessionalID string    `bson:"professionalId" json:"professionalId"`
	StartTime      time.Time `bson:"startTime" json:"startTime"`
	Status         string    `bson:"status" json:"status"`
	// A revised quote attached after in-person inspection. While it is
	// attached and unaccepted the customer may decline it by cancelling.
	RevisedAmount   int64     `bson:"revisedAmount,omitempty" json:"revisedAmount,omitempty"`
	RevisedAccepted bool      `bson:"revisedAccepted" json:"revisedAccepted"`
	RevisedAt       time.Time `bson:"revisedAt,omitempty" json:"revisedAt,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RevisionOpen reports whether a revised quote is attached and still
// awaiting the customer's accept-or-decline decision.
func (a *Appointment) RevisionOpen() bool {
	return a.RevisedAmount > 0 && !a.RevisedAccepted
}
