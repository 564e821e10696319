package marketplace

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

// CancelAppointment applies the cancellation policy:
//
//	pending_inspection  -> customer may always cancel; no refund entitlement
//	confirmed           -> customer may cancel only to decline an attached,
//	                       unaccepted revised quote; the fee becomes refundable
//	anything else       -> PolicyViolation
//
// Marking the fee refundable is an entitlement, not a refund: the fee stays
// paid until an admin issues the refund through the settlement reconciler.
func (s *DefaultService) CancelAppointment(ctx context.Context, appointmentID, reason, actorID string) (*models.CancellationRecord, error) {
	switch reason {
	case models.CancelReasonByCustomer, models.CancelReasonAfterRequote, models.CancelReasonByPro:
	default:
		return nil, ValidationError{Msg: "unknown cancellation reason: " + reason}
	}

	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	feeRefundable := false
	switch {
	case appt.Status == models.AppointmentStatusPendingInspection &&
		actorID == appt.CustomerID && reason == models.CancelReasonByCustomer:
		// Allowed; refund entitlement stays a human decision.
	case appt.Status == models.AppointmentStatusConfirmed &&
		actorID == appt.CustomerID && reason == models.CancelReasonAfterRequote && appt.RevisionOpen():
		feeRefundable = true
	default:
		return nil, PolicyViolationError{Msg: "cancellation not permitted in this state"}
	}

	ok, err := s.Repo.SetAppointmentStatus(ctx, appointmentID, appt.Status, models.AppointmentStatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ConflictError{Msg: "appointment state changed; re-fetch and retry"}
	}
	if _, err := s.Repo.SetRequestStatus(ctx, appt.RequestID, appt.Status, models.RequestStatusCancelled); err != nil {
		s.Logger.Error("failed to cancel request",
			zap.String("requestId", appt.RequestID), zap.Error(err))
	}

	if feeRefundable && appt.FeeID != "" {
		if err := s.Repo.SetFeeRefundable(ctx, appt.FeeID, true); err != nil {
			s.Logger.Error("failed to mark fee refundable",
				zap.String("feeId", appt.FeeID), zap.Error(err))
		}
	}

	rec := &models.CancellationRecord{
		ID:            uuid.New().String(),
		AppointmentID: appointmentID,
		RequestID:     appt.RequestID,
		FeeID:         appt.FeeID,
		Reason:        reason,
		ActorID:       actorID,
		FeeRefundable: feeRefundable,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Repo.CreateCancellation(ctx, rec); err != nil {
		return nil, err
	}

	s.Notifier.Notify(ctx, appt.ProfessionalID, models.EventAppointmentCancel, map[string]string{
		"appointmentId": appointmentID,
		"reason":        reason,
	})
	s.Logger.Info("appointment cancelled",
		zap.String("appointmentId", appointmentID),
		zap.String("reason", reason),
		zap.Bool("feeRefundable", feeRefundable))
	return rec, nil
}
