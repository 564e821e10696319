package models

import "time"

// Cancellation reason codes.
const (
	CancelReasonByCustomer   = "cancelled_by_customer"
	CancelReasonAfterRequote = "cancelled_after_requote"
	CancelReasonByPro        = "cancelled_by_pro"
)

// CancellationRecord captures why an appointment was cancelled and whether
// the associated referral fee became refundable as a result.
type CancellationRecord struct {
	ID            string    `bson:"id" json:"id"`
	AppointmentID string    `bson:"appointmentId" json:"appointmentId"`
	RequestID     string    `bson:"requestId" json:"requestId"`
	FeeID         string    `bson:"feeId,omitempty" json:"feeId,omitempty"`
	Reason        string    `bson:"reason" json:"reason"`
	ActorID       string    `bson:"actorId" json:"actorId"`
	FeeRefundable bool      `bson:"feeRefundable" json:"feeRefundable"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
