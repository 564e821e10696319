package models

import "time"

// ReferralFee statuses. refund_initiated is a transient reservation taken
// immediately before the gateway refund call so a timed-out-but-succeeded
// attempt can never be repeated against the gateway.
const (
	FeeStatusPending         = "pending"
	FeeStatusPaid            = "paid"
	FeeStatusRefundInitiated = "refund_initiated"
	FeeStatusRefunded        = "refunded"
	FeeStatusExpired         = "expired"
)

// ReferralFee is the payment owed by the selected professional to confirm
// the engagement. Amount is minor currency units.
type ReferralFee struct {
	ID             string    `bson:"id" json:"id"`
	RequestID      string    `bson:"requestId" json:"requestId"`
	QuoteID        string    `bson:"quoteId" json:"quoteId"`
	ProfessionalID string    `bson:"professionalId" json:"professionalId"`
	Amount         int64     `bson:"amount" json:"amount"`
	Currency       string    `bson:"currency" json:"currency"`
	Status         string    `bson:"status" json:"status"`
	Refundable     bool      `bson:"refundable" json:"refundable"`
	// Gateway references. SessionID is the checkout session; PaymentIntentID
	// is required before any refund can be issued.
	SessionID       string    `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	PaymentIntentID string    `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
	PaidAt          time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}
