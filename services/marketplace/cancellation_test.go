package marketplace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

func TestCancelDuringInspectionNoRefundEntitlement(t *testing.T) {
	svc, _, gateway := newTestService()
	ctx := context.Background()

	fee, appt := seedPaidEngagement(t, svc, gateway, "cust-1", "pro-1", 10000)

	rec, err := svc.CancelAppointment(ctx, appt.ID, models.CancelReasonByCustomer, "cust-1")
	require.NoError(t, err)
	assert.False(t, rec.FeeRefundable)

	stored, err := svc.Repo.GetFee(ctx, fee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusPaid, stored.Status)
	assert.False(t, stored.Refundable)

	req, err := svc.GetRequest(ctx, appt.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCancelled, req.Status)
}

func TestCancelToDeclineRevisionMarksFeeRefundable(t *testing.T) {
	svc, _, gateway := newTestService()
	ctx := context.Background()

	fee, appt := seedPaidEngagement(t, svc, gateway, "cust-1", "pro-1", 10000)
	confirmAppointment(t, svc, appt.ID, "pro-1")
	_, err := svc.AttachRevisedQuote(ctx, appt.ID, 18000, "pro-1")
	require.NoError(t, err)

	rec, err := svc.CancelAppointment(ctx, appt.ID, models.CancelReasonAfterRequote, "cust-1")
	require.NoError(t, err)
	assert.True(t, rec.FeeRefundable)

	// Entitlement only: the fee stays paid until an admin issues the refund.
	stored, err := svc.Repo.GetFee(ctx, fee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusPaid, stored.Status)
	assert.True(t, stored.Refundable)
}

func TestCancelPolicyRejectsBypassAttempts(t *testing.T) {
	type attempt struct {
		name       string
		confirm    bool
		revise     bool
		accept     bool
		reason     string
		actorIsPro bool
	}
	attempts := []attempt{
		{name: "confirmed without revision", confirm: true, reason: models.CancelReasonAfterRequote},
		{name: "requote reason during inspection", reason: models.CancelReasonAfterRequote},
		{name: "customer reason on confirmed", confirm: true, reason: models.CancelReasonByCustomer},
		{name: "accepted revision closes the window", confirm: true, revise: true, accept: true, reason: models.CancelReasonAfterRequote},
		{name: "professional cannot trigger refund path", confirm: true, revise: true, reason: models.CancelReasonAfterRequote, actorIsPro: true},
		{name: "pro cancel reason not permitted", confirm: true, reason: models.CancelReasonByPro},
	}

	for _, tc := range attempts {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, gateway := newTestService()
			ctx := context.Background()

			fee, appt := seedPaidEngagement(t, svc, gateway, "cust-1", "pro-1", 10000)
			if tc.confirm {
				confirmAppointment(t, svc, appt.ID, "pro-1")
			}
			if tc.revise {
				_, err := svc.AttachRevisedQuote(ctx, appt.ID, 18000, "pro-1")
				require.NoError(t, err)
			}
			if tc.accept {
				_, err := svc.AcceptRevisedQuote(ctx, appt.ID, "cust-1")
				require.NoError(t, err)
			}

			actor := "cust-1"
			if tc.actorIsPro {
				actor = "pro-1"
			}
			_, err := svc.CancelAppointment(ctx, appt.ID, tc.reason, actor)
			assert.ErrorAs(t, err, &PolicyViolationError{})

			// No state leaked from the rejected attempt.
			stored, err := svc.Repo.GetFee(ctx, fee.ID)
			require.NoError(t, err)
			assert.False(t, stored.Refundable)
		})
	}
}

func TestCancelUnknownReason(t *testing.T) {
	svc, _, gateway := newTestService()
	_, appt := seedPaidEngagement(t, svc, gateway, "cust-1", "pro-1", 10000)

	_, err := svc.CancelAppointment(context.Background(), appt.ID, "rage_quit", "cust-1")
	assert.ErrorAs(t, err, &ValidationError{})
}

func TestCancelWritesCancellationRecord(t *testing.T) {
	svc, repo, gateway := newTestService()
	ctx := context.Background()

	fee, appt := seedPaidEngagement(t, svc, gateway, "cust-1", "pro-1", 10000)
	rec, err := svc.CancelAppointment(ctx, appt.ID, models.CancelReasonByCustomer, "cust-1")
	require.NoError(t, err)

	records := repo.Cancellations()
	require.Len(t, records, 1)
	assert.Equal(t, rec.ID, records[0].ID)
	assert.Equal(t, appt.ID, records[0].AppointmentID)
	assert.Equal(t, fee.ID, records[0].FeeID)
	assert.Equal(t, "cust-1", records[0].ActorID)
}
