package models

import "time"

// Quote statuses.
const (
	QuoteStatusSubmitted  = "submitted"
	QuoteStatusSelected   = "selected"
	QuoteStatusRejected   = "rejected"
	QuoteStatusSuperseded = "superseded"
)

// Quote is a professional's priced bid against a request. Amounts are minor
// currency units (cents). At most one quote per request ever reaches selected.
type Quote struct {
	ID             string    `bson:"id" json:"id"`
	RequestID      string    `bson:"requestId" json:"requestId"`
	ProfessionalID string    `bson:"professionalId" json:"professionalId"`
	Amount         int64     `bson:"amount" json:"amount"`
	Description    string    `bson:"description,omitempty" json:"description,omitempty"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
