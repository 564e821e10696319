package marketplace

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	engagementRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/engagement"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/notification"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/payment"
)

// fakeGateway is an in-memory payment gateway for service tests.
type fakeGateway struct {
	mu          sync.Mutex
	sessions    map[string]*payment.SessionStatus
	seq         int
	createErr   error
	statusErr   error
	refundErr   error
	refundCalls int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: make(map[string]*payment.SessionStatus)}
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (*payment.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.seq++
	id := fmt.Sprintf("cs_test_%d", g.seq)
	g.sessions[id] = &payment.SessionStatus{}
	return &payment.CheckoutSession{ID: id, URL: "https://checkout.example/" + id}, nil
}

func (g *fakeGateway) GetSessionStatus(ctx context.Context, sessionID string) (*payment.SessionStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.statusErr != nil {
		return nil, g.statusErr
	}
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

func newTestService() (*DefaultService, *engagementRepo.MemoryEngagementRepo, *fakeGateway) {
	repo := engagementRepo.NewMemoryEngagementRepo()
	gateway := newFakeGateway()
	svc := &DefaultService{
		Repo:     repo,
		Gateway:  gateway,
		Notifier: notification.NoopService{},
		Logger:   zap.NewNop(),
	}
	return svc, repo, gateway
}

func seedRequest(t *testing.T, svc *DefaultService, customerID string) *models.ServiceRequest {
	t.Helper()
	req, err := svc.CreateRequest(context.Background(), &models.ServiceRequest{
		CustomerID:   customerID,
		Vehicle:      models.Vehicle{Make: "Toyota", Model: "Camry", Year: 2019},
		ServiceCodes: []string{"brake-pads"},
	})
	require.NoError(t, err)
	return req
}

func seedQuote(t *testing.T, svc *DefaultService, requestID, proID string, amount int64) *models.Quote {
	t.Helper()
	quote, err := svc.SubmitQuote(context.Background(), requestID, proID, amount, "parts and labor")
	require.NoError(t, err)
	return quote
}

// seedPaidEngagement walks a request through selection, checkout and fee
// payment, returning the fee and booked appointment.
func seedPaidEngagement(t *testing.T, svc *DefaultService, gateway *fakeGateway, customerID, proID string, amount int64) (*models.ReferralFee, *models.Appointment) {
	t.Helper()
	ctx := context.Background()

	req := seedRequest(t, svc, customerID)
	quote := seedQuote(t, svc, req.ID, proID, amount)

	fee, err := svc.SelectQuote(ctx, req.ID, quote.ID, customerID)
	require.NoError(t, err)

	sess, err := svc.CreateFeeCheckout(ctx, fee.ID, proID)
	require.NoError(t, err)
	gateway.markPaid(sess.ID, "pi_test_1")

	conf, err := svc.ConfirmFeePayment(ctx, fee.ID, "")
	require.NoError(t, err)
	require.Equal(t, OutcomePaid, conf.Outcome)
	require.NotNil(t, conf.Appointment)
	return conf.Fee, conf.Appointment
}

func confirmAppointment(t *testing.T, svc *DefaultService, apptID, proID string) *models.Appointment {
	t.Helper()
	appt, err := svc.ConfirmAppointment(context.Background(), apptID, proID, time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	return appt
}
