package marketplace

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	engagementRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/engagement"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

func (s *DefaultService) getAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetAppointment(ctx, id)
	if err == engagementRepo.ErrNotFound {
		return nil, NotFoundError{Entity: "appointment", ID: id}
	}
	return appt, err
}

// ConfirmAppointment moves a booked appointment out of the inspection phase
// once the professional has seen the vehicle and agreed a start time.
func (s *DefaultService) ConfirmAppointment(ctx context.Context, appointmentID, professionalID string, startTime time.Time) (*models.Appointment, error) {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.ProfessionalID != professionalID {
		return nil, UnauthorizedError{Msg: "only the engaged professional may confirm the appointment"}
	}
	if startTime.IsZero() {
		return nil, ValidationError{Msg: "a start time is required to confirm"}
	}

	ok, err := s.Repo.ConfirmAppointment(ctx, appointmentID, startTime.UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, PolicyViolationError{Msg: "appointment is not awaiting inspection"}
	}
	if _, err := s.Repo.SetRequestStatus(ctx, appt.RequestID, models.RequestStatusPendingInspection, models.RequestStatusConfirmed); err != nil {
		s.Logger.Error("failed to advance request to confirmed",
			zap.String("requestId", appt.RequestID), zap.Error(err))
	}

	return s.getAppointment(ctx, appointmentID)
}

// AttachRevisedQuote records a post-inspection price change on a confirmed
// appointment. The original fee is untouched; the customer gains a bounded
// window to decline by cancelling.
func (s *DefaultService) AttachRevisedQuote(ctx context.Context, appointmentID string, newAmount int64, professionalID string) (*models.Appointment, error) {
	if newAmount <= 0 {
		return nil, ValidationError{Msg: "revised amount must be positive"}
	}
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.ProfessionalID != professionalID {
		return nil, UnauthorizedError{Msg: "only the engaged professional may revise the quote"}
	}

	ok, err := s.Repo.AttachRevision(ctx, appointmentID, newAmount)
	if err != nil {
		return nil, err
	}
	if !ok {
		fresh, ferr := s.getAppointment(ctx, appointmentID)
		if ferr != nil {
			return nil, ferr
		}
		if fresh.Status != models.AppointmentStatusConfirmed {
			return nil, PolicyViolationError{Msg: "only a confirmed appointment can take a revised quote"}
		}
		return nil, ConflictError{Msg: "a revised quote is already awaiting the customer's decision"}
	}

	s.Notifier.Notify(ctx, appt.CustomerID, models.EventQuoteRevised, map[string]string{
		"appointmentId": appointmentID,
		"newAmount":     strconv.FormatInt(newAmount, 10),
	})
	s.Logger.Info("revised quote attached",
		zap.String("appointmentId", appointmentID),
		zap.Int64("newAmount", newAmount))
	return s.getAppointment(ctx, appointmentID)
}

// AcceptRevisedQuote closes the decline window: the customer agrees to the
// new price and the engagement continues.
func (s *DefaultService) AcceptRevisedQuote(ctx context.Context, appointmentID, customerID string) (*models.Appointment, error) {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.CustomerID != customerID {
		return nil, UnauthorizedError{Msg: "only the customer may accept a revised quote"}
	}

	ok, err := s.Repo.AcceptRevision(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, PolicyViolationError{Msg: "no revised quote awaiting acceptance"}
	}

	s.Notifier.Notify(ctx, appt.ProfessionalID, models.EventRevisionAccepted, map[string]string{
		"appointmentId": appointmentID,
	})
	return s.getAppointment(ctx, appointmentID)
}

// CompleteAppointment finishes the engagement. An open revision must be
// resolved first, either accepted or declined via cancellation.
func (s *DefaultService) CompleteAppointment(ctx context.Context, appointmentID, professionalID string) (*models.Appointment, error) {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.ProfessionalID != professionalID {
		return nil, UnauthorizedError{Msg: "only the engaged professional may complete the appointment"}
	}
	if appt.RevisionOpen() {
		return nil, PolicyViolationError{Msg: "revised quote must be accepted or declined before completion"}
	}

	ok, err := s.Repo.SetAppointmentStatus(ctx, appointmentID, models.AppointmentStatusConfirmed, models.AppointmentStatusCompleted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, PolicyViolationError{Msg: "only a confirmed appointment can be completed"}
	}
	if _, err := s.Repo.SetRequestStatus(ctx, appt.RequestID, models.RequestStatusConfirmed, models.RequestStatusCompleted); err != nil {
		s.Logger.Error("failed to advance request to completed",
			zap.String("requestId", appt.RequestID), zap.Error(err))
	}

	s.Notifier.Notify(ctx, appt.CustomerID, models.EventAppointmentDone, map[string]string{
		"appointmentId": appointmentID,
	})
	return s.getAppointment(ctx, appointmentID)
}
