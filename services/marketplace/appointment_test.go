package marketplace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

func TestConfirmAppointmentAfterInspection(t *testing.T) {
	svc, _, gateway := newTestService()
	ctx := context.Background()

	_, appt := seedPaidEngagement(t, svc, gateway, "cust-1", "pro-1", 10000)

	start := time.Now().Add(48 * time.Hour).UTC()
	confirmed, err := svc.ConfirmAppointment(ctx, appt.ID, "pro-1", start)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, confirmed.Status)
	assert.WithinDuration(t, start, confirmed.StartTime, time.Second)

	req, err := svc.GetRequest(ctx, appt.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusConfirmed, req.Status)

	// A second confirmation finds nothing awaiting inspection.
	_, err = svc.ConfirmAppointment(ctx, appt.ID, "pro-1", start)
	assert.ErrorAs(t, err, &PolicyViolationError{})
}

func TestConfirmAppointmentOnlyProfessional(t *testing.T) {
	svc, _, gateway := newTestService()
	_, appt := seedPaidEngagement(t, svc, gateway, "cust-1", "pro-1", 10000)

	_, err := svc.ConfirmAppointment(context.Background(), appt.ID, "pro-impostor", time.Now().Add(time.Hour))
	assert.ErrorAs(t, err, &UnauthorizedError{})
}

func TestAttachRevisedQuoteLifecycle(t *testing.T) {
	svc, _, gateway := newTestService()
	ctx := context.Background()

	_, appt := seedPaidEngagement(t, svc, gateway, "cust-1", "pro-1", 10000)

	// No revision before the appointment is confirmed.
	_, err := svc.AttachRevisedQuote(ctx, appt.ID, 15000, "pro-1")
	assert.ErrorAs(t, err, &PolicyViolationError{})

	confirmAppointment(t, svc, appt.ID, "pro-1")

	revised, err := svc.AttachRevisedQuote(ctx, appt.ID, 15000, "pro-1")
	require.NoError(t, err)
	assert.Equal(t, int64(15000), revised.RevisedAmount)
	assert.True(t, revised.RevisionOpen())

	// A second revision must wait for the customer's decision.
	_, err = svc.AttachRevisedQuote(ctx, appt.ID, 16000, "pro-1")
	assert.ErrorAs(t, err, &ConflictError{})

	accepted, err := svc.AcceptRevisedQuote(ctx, appt.ID, "cust-1")
	require.NoError(t, err)
	assert.True(t, accepted.RevisedAccepted)
	assert.False(t, accepted.RevisionOpen())

	// Accepting again finds no open revision.
	_, err = svc.AcceptRevisedQuote(ctx, appt.ID, "cust-1")
	assert.ErrorAs(t, err, &PolicyViolationError{})
}

func TestAcceptRevisedQuoteOnlyCustomer(t *testing.T) {
	svc, _, gateway := newTestService()
	ctx := context.Background()

	_, appt := seedPaidEngagement(t, svc, gateway, "cust-1", "pro-1", 10000)
	confirmAppointment(t, svc, appt.ID, "pro-1")
	_, err := svc.AttachRevisedQuote(ctx, appt.ID, 15000, "pro-1")
	require.NoError(t, err)

	_, err = svc.AcceptRevisedQuote(ctx, appt.ID, "pro-1")
	assert.ErrorAs(t, err, &UnauthorizedError{})
}

func TestCompleteAppointmentBlockedByOpenRevision(t *testing.T) {
	svc, _, gateway := newTestService()
	ctx := context.Background()

	_, appt := seedPaidEngagement(t, svc, gateway, "cust-1", "pro-1", 10000)
	confirmAppointment(t, svc, appt.ID, "pro-1")
	_, err := svc.AttachRevisedQuote(ctx, appt.ID, 15000, "pro-1")
	require.NoError(t, err)

	_, err = svc.CompleteAppointment(ctx, appt.ID, "pro-1")
	assert.ErrorAs(t, err, &PolicyViolationError{})

	_, err = svc.AcceptRevisedQuote(ctx, appt.ID, "cust-1")
	require.NoError(t, err)

	done, err := svc.CompleteAppointment(ctx, appt.ID, "pro-1")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCompleted, done.Status)

	req, err := svc.GetRequest(ctx, appt.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCompleted, req.Status)
}

func TestCompleteAppointmentRequiresConfirmed(t *testing.T) {
	svc, _, gateway := newTestService()
	_, appt := seedPaidEngagement(t, svc, gateway, "cust-1", "pro-1", 10000)

	_, err := svc.CompleteAppointment(context.Background(), appt.ID, "pro-1")
	assert.ErrorAs(t, err, &PolicyViolationError{})
}
