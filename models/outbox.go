package models

import "time"

// Outbox message statuses.
const (
	OutboxStatusEnqueued  = "enqueued"
	OutboxStatusDelivered = "delivered"
	OutboxStatusFailed    = "failed"
)

// OutboxMessage is a durable notification row. State transitions commit
// first; delivery happens asynchronously and a delivery failure never rolls
// a committed transition back.
type OutboxMessage struct {
	ID          string            `bson:"id" json:"id"`
	PrincipalID string            `bson:"principalId" json:"principalId"`
	EventType   string            `bson:"eventType" json:"eventType"`
	Payload     map[string]string `bson:"payload,omitempty" json:"payload,omitempty"`
	Status      string            `bson:"status" json:"status"`
	Attempts    int               `bson:"attempts" json:"attempts"`
	LastError   string            `bson:"lastError,omitempty" json:"lastError,omitempty"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
	DeliveredAt time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
}

// Notification event types emitted by the lifecycle coordinator.
const (
	EventQuoteSubmitted    = "quote_submitted"
	EventQuoteSelected     = "quote_selected"
	EventFeePaid           = "fee_paid"
	EventFeeExpired        = "fee_expired"
	EventFeeRefunded       = "fee_refunded"
	EventAppointmentBooked = "appointment_booked"
	EventQuoteRevised      = "quote_revised"
	EventRevisionAccepted  = "revision_accepted"
	EventAppointmentDone   = "appointment_completed"
	EventAppointmentCancel = "appointment_cancelled"
)
