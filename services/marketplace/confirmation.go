package marketplace

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	engagementRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/engagement"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/payment"
)

// CreateFeeCheckout opens a gateway checkout session for a pending fee.
// The session metadata carries the request/quote/fee ids so reconciliation
// never needs a prior local lookup.
func (s *DefaultService) CreateFeeCheckout(ctx context.Context, feeID, professionalID string) (*payment.CheckoutSession, error) {
	fee, err := s.getFee(ctx, feeID)
	if err != nil {
		return nil, err
	}
	if fee.ProfessionalID != professionalID {
		return nil, UnauthorizedError{Msg: "only the selected professional may pay the referral fee"}
	}
	if fee.Status != models.FeeStatusPending {
		return nil, PolicyViolationError{Msg: "referral fee is not pending payment"}
	}

	sess, err := s.Gateway.CreateCheckoutSession(ctx, fee.Amount, fee.Currency, "DoneEZ referral fee", map[string]string{
		"requestId": fee.RequestID,
		"quoteId":   fee.QuoteID,
		"feeId":     fee.ID,
		"amount":    strconv.FormatInt(fee.Amount, 10),
	})
	if err != nil {
		return nil, GatewayUnavailableError{Err: err}
	}
	if err := s.Repo.SetFeeSession(ctx, feeID, sess.ID); err != nil {
		return nil, err
	}
	return sess, nil
}

// ConfirmFeePayment verifies a fee's payment with the gateway and, on
// verified success, transitions it to paid and books the appointment.
// Idempotent under at-least-once delivery: a fee already paid is a no-op
// success returning the same result, and a missing appointment from an
// earlier partial failure is healed here.
func (s *DefaultService) ConfirmFeePayment(ctx context.Context, feeID, gatewaySessionID string) (*FeeConfirmation, error) {
	fee, err := s.getFee(ctx, feeID)
	if err != nil {
		return nil, err
	}

	switch fee.Status {
	case models.FeeStatusPaid, models.FeeStatusRefundInitiated, models.FeeStatusRefunded:
		appt, err := s.ensureAppointment(ctx, fee)
		if err != nil {
			return nil, err
		}
		return &FeeConfirmation{Outcome: OutcomePaid, Fee: fee, Appointment: appt}, nil
	case models.FeeStatusExpired:
		return nil, PolicyViolationError{Msg: "referral fee has expired; re-select a quote"}
	}

	sessionID := gatewaySessionID
	if sessionID == "" {
		sessionID = fee.SessionID
	}
	if sessionID == "" {
		return nil, ValidationError{Msg: "no checkout session to verify"}
	}

	status, err := s.Gateway.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return nil, GatewayUnavailableError{Err: err}
	}
	if !status.Paid {
		return &FeeConfirmation{Outcome: OutcomeNotPaid, Fee: fee}, nil
	}

	won, err := s.Repo.MarkFeePaid(ctx, feeID, status.PaymentIntentID)
	if err != nil {
		return nil, err
	}
	fee, err = s.getFee(ctx, feeID)
	if err != nil {
		return nil, err
	}
	if !won {
		// A concurrent writer got there first; act on the fresh state. Only
		// a fee another confirmation moved to paid may continue to the
		// idempotent booking path. A fee the expiry sweep claimed has already
		// had its selection released, so booking now would open a second
		// engagement on the same request.
		switch fee.Status {
		case models.FeeStatusPending:
			return &FeeConfirmation{Outcome: OutcomeNotPaid, Fee: fee}, nil
		case models.FeeStatusPaid, models.FeeStatusRefundInitiated, models.FeeStatusRefunded:
		default:
			return nil, PolicyViolationError{Msg: "referral fee has expired; re-select a quote"}
		}
	}

	appt, err := s.ensureAppointment(ctx, fee)
	if err != nil {
		return nil, err
	}

	s.Notifier.Notify(ctx, fee.ProfessionalID, models.EventFeePaid, map[string]string{
		"feeId":     fee.ID,
		"requestId": fee.RequestID,
	})
	s.Logger.Info("referral fee paid",
		zap.String("feeId", fee.ID),
		zap.String("requestId", fee.RequestID),
		zap.String("appointmentId", appt.ID))
	return &FeeConfirmation{Outcome: OutcomePaid, Fee: fee, Appointment: appt}, nil
}

// ensureAppointment books the appointment for a paid fee exactly once. The
// appointment id derives from the fee id, so a duplicate booking attempt
// collides on the unique index instead of creating a second appointment.
func (s *DefaultService) ensureAppointment(ctx context.Context, fee *models.ReferralFee) (*models.Appointment, error) {
	apptID := "apt_" + fee.ID
	if appt, err := s.Repo.GetAppointment(ctx, apptID); err == nil {
		return appt, nil
	} else if err != engagementRepo.ErrNotFound {
		return nil, err
	}

	req, err := s.GetRequest(ctx, fee.RequestID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	appt := &models.Appointment{
		ID:             apptID,
		RequestID:      fee.RequestID,
		QuoteID:        fee.QuoteID,
		FeeID:          fee.ID,
		CustomerID:     req.CustomerID,
		ProfessionalID: fee.ProfessionalID,
		Status:         models.AppointmentStatusPendingInspection,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.CreateAppointment(ctx, appt); err != nil {
		// Lost the creation race to a concurrent confirm; use theirs.
		if existing, getErr := s.Repo.GetAppointment(ctx, apptID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}

	if _, err := s.Repo.SetRequestStatus(ctx, fee.RequestID, models.RequestStatusSelectedPending, models.RequestStatusPendingInspection); err != nil {
		s.Logger.Error("failed to advance request to pending_inspection",
			zap.String("requestId", fee.RequestID), zap.Error(err))
	}

	s.Notifier.Notify(ctx, req.CustomerID, models.EventAppointmentBooked, map[string]string{
		"requestId":     fee.RequestID,
		"appointmentId": appt.ID,
	})
	return appt, nil
}

func (s *DefaultService) getFee(ctx context.Context, feeID string) (*models.ReferralFee, error) {
	fee, err := s.Repo.GetFee(ctx, feeID)
	if err == engagementRepo.ErrNotFound {
		return nil, NotFoundError{Entity: "fee", ID: feeID}
	}
	return fee, err
}
