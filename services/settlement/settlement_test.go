package settlement

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	engagementRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/engagement"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/capability"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/marketplace"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/notification"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/payment"
)

// fakeGateway mirrors the gateway stub used by the lifecycle tests.
type fakeGateway struct {
	mu          sync.Mutex
	sessions    map[string]*payment.SessionStatus
	seq         int
	refundErr   error
	refundCalls int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: make(map[string]*payment.SessionStatus)}
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (*payment.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	id := fmt.Sprintf("cs_test_%d", g.seq)
	g.sessions[id] = &payment.SessionStatus{}
	return &payment.CheckoutSession{ID: id, URL: "https://checkout.example/" + id}, nil
}

func (g *fakeGateway) GetSessionStatus(ctx context.Context, sessionID string) (*payment.SessionStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	status, ok := g.sessions[sessionID]
	if !ok {
		return nil, errors.New("unknown session")
	}
	cp := *status
	return &cp, nil
}

func (g *fakeGateway) Refund(ctx context.Context, paymentIntentID string) (*payment.RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refundCalls++
	if g.refundErr != nil {
		return nil, g.refundErr
	}
	return &payment.RefundResult{ID: "re_test_1", Status: "succeeded"}, nil
}

func (g *fakeGateway) markPaid(sessionID, paymentIntentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions[sessionID] = &payment.SessionStatus{Paid: true, PaymentIntentID: paymentIntentID}
}

type fixture struct {
	settlement *DefaultService
	lifecycle  *marketplace.DefaultService
	repo       *engagementRepo.MemoryEngagementRepo
	gateway    *fakeGateway
}

func newFixture() *fixture {
	repo := engagementRepo.NewMemoryEngagementRepo()
	gateway := newFakeGateway()
	lifecycle := &marketplace.DefaultService{
		Repo:     repo,
		Gateway:  gateway,
		Notifier: notification.NoopService{},
		Logger:   zap.NewNop(),
	}
	settlementSvc := &DefaultService{
		Repo:       repo,
		Gateway:    gateway,
		Capability: &capability.StaticChecker{Roles: map[string][]string{"admin-1": {capability.RoleAdmin}}},
		Confirmer:  lifecycle,
		Notifier:   notification.NoopService{},
		Logger:     zap.NewNop(),
	}
	return &fixture{settlement: settlementSvc, lifecycle: lifecycle, repo: repo, gateway: gateway}
}

// seedPaidFee runs a request through selection and checkout, pays the
// session at the gateway, and confirms the fee.
func (f *fixture) seedPaidFee(t *testing.T) *models.ReferralFee {
	t.Helper()
	ctx := context.Background()

	req, err := f.lifecycle.CreateRequest(ctx, &models.ServiceRequest{
		CustomerID:   "cust-1",
		Vehicle:      models.Vehicle{Make: "Honda", Model: "Civic", Year: 2021},
		ServiceCodes: []string{"oil-change"},
	})
	require.NoError(t, err)

	quote, err := f.lifecycle.SubmitQuote(ctx, req.ID, "pro-1", 20000, "synthetic oil")
	require.NoError(t, err)
	fee, err := f.lifecycle.SelectQuote(ctx, req.ID, quote.ID, "cust-1")
	require.NoError(t, err)

	sess, err := f.lifecycle.CreateFeeCheckout(ctx, fee.ID, "pro-1")
	require.NoError(t, err)
	f.gateway.markPaid(sess.ID, "pi_test_1")

	conf, err := f.lifecycle.ConfirmFeePayment(ctx, fee.ID, "")
	require.NoError(t, err)
	require.Equal(t, marketplace.OutcomePaid, conf.Outcome)
	return conf.Fee
}

func TestReconcilePaidSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	fee := f.seedPaidFee(t)

	result, err := f.settlement.ReconcileCheckoutSession(ctx, fee.SessionID)
	require.NoError(t, err)
	assert.Equal(t, marketplace.OutcomePaid, result.Outcome)
	require.NotNil(t, result.Appointment)

	// Reconciling again is a no-op success with the same appointment.
	again, err := f.settlement.ReconcileCheckoutSession(ctx, fee.SessionID)
	require.NoError(t, err)
	assert.Equal(t, result.Appointment.ID, again.Appointment.ID)
}

func TestReconcileUnknownSession(t *testing.T) {
	f := newFixture()

	_, err := f.settlement.ReconcileCheckoutSession(context.Background(), "cs_missing")
	assert.ErrorAs(t, err, &marketplace.NotFoundError{})

	_, err = f.settlement.ReconcileCheckoutSession(context.Background(), "")
	assert.ErrorAs(t, err, &marketplace.ValidationError{})
}

func TestIssueRefundHappyPath(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	fee := f.seedPaidFee(t)
	require.NoError(t, f.repo.SetFeeRefundable(ctx, fee.ID, true))

	refunded, err := f.settlement.IssueRefund(ctx, fee.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusRefunded, refunded.Status)
	assert.Equal(t, 1, f.gateway.refundCalls)
}

func TestIssueRefundRequiresAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	fee := f.seedPaidFee(t)
	require.NoError(t, f.repo.SetFeeRefundable(ctx, fee.ID, true))

	_, err := f.settlement.IssueRefund(ctx, fee.ID, "cust-1")
	assert.ErrorAs(t, err, &marketplace.UnauthorizedError{})
	assert.Zero(t, f.gateway.refundCalls)
}

func TestIssueRefundGatesOnFeeState(t *testing.T) {
	ctx := context.Background()

	t.Run("not refundable", func(t *testing.T) {
		f := newFixture()
		fee := f.seedPaidFee(t)
		_, err := f.settlement.IssueRefund(ctx, fee.ID, "admin-1")
		assert.ErrorAs(t, err, &marketplace.PolicyViolationError{})
	})

	t.Run("not paid", func(t *testing.T) {
		f := newFixture()
		fee := f.seedPaidFee(t)
		require.NoError(t, f.repo.SetFeeRefundable(ctx, fee.ID, true))
		ok, err := f.repo.SetFeeStatus(ctx, fee.ID, models.FeeStatusPaid, models.FeeStatusRefunded)
		require.NoError(t, err)
		require.True(t, ok)

		_, err = f.settlement.IssueRefund(ctx, fee.ID, "admin-1")
		assert.ErrorAs(t, err, &marketplace.PolicyViolationError{})
		assert.Zero(t, f.gateway.refundCalls)
	})

	t.Run("missing fee", func(t *testing.T) {
		f := newFixture()
		_, err := f.settlement.IssueRefund(ctx, "fee-missing", "admin-1")
		assert.ErrorAs(t, err, &marketplace.NotFoundError{})
	})
}

func TestIssueRefundGatewayFailureRollsBack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	fee := f.seedPaidFee(t)
	require.NoError(t, f.repo.SetFeeRefundable(ctx, fee.ID, true))

	f.gateway.refundErr = errors.New("gateway timeout")
	_, err := f.settlement.IssueRefund(ctx, fee.ID, "admin-1")
	assert.ErrorAs(t, err, &marketplace.RefundFailedError{})

	// The reservation was rolled back so a deliberate retry can succeed.
	stored, err := f.repo.GetFee(ctx, fee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusPaid, stored.Status)

	f.gateway.refundErr = nil
	refunded, err := f.settlement.IssueRefund(ctx, fee.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusRefunded, refunded.Status)
	assert.Equal(t, 2, f.gateway.refundCalls)
}

func TestIssueRefundSingleShot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	fee := f.seedPaidFee(t)
	require.NoError(t, f.repo.SetFeeRefundable(ctx, fee.ID, true))

	_, err := f.settlement.IssueRefund(ctx, fee.ID, "admin-1")
	require.NoError(t, err)

	// A repeated refund finds the fee out of the paid state and never
	// reaches the gateway again.
	_, err = f.settlement.IssueRefund(ctx, fee.ID, "admin-1")
	assert.ErrorAs(t, err, &marketplace.PolicyViolationError{})
	assert.Equal(t, 1, f.gateway.refundCalls)
}
