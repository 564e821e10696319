package marketplace

import (
	"context"
	"time"

	"go.uber.org/zap"

	engagementRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/engagement"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/notification"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/payment"
)

// Fee confirmation outcomes. An unpaid session is a reportable outcome, not
// an error; re-confirming an already-paid fee yields the same paid outcome.
const (
	OutcomePaid    = "paid"
	OutcomeNotPaid = "not_paid"
)

// FeeConfirmation is the tagged result of a fee-payment verification.
type FeeConfirmation struct {
	Outcome     string              `json:"outcome"`
	Fee         *models.ReferralFee `json:"fee"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
}

// Service is the lifecycle coordinator: the only component allowed to
// mutate the request/quote/fee/appointment cluster.
type Service interface {
	// Requests.
	CreateRequest(ctx context.Context, req *models.ServiceRequest) (*models.ServiceRequest, error)
	GetRequest(ctx context.Context, id string) (*models.ServiceRequest, error)
	AttachRequestPhoto(ctx context.Context, requestID, customerID, url string) error

	// Quote intake.
	SubmitQuote(ctx context.Context, requestID, professionalID string, amount int64, description string) (*models.Quote, error)
	ListQuotes(ctx context.Context, requestID string) ([]models.Quote, error)

	// Selection and fee.
	SelectQuote(ctx context.Context, requestID, quoteID, customerID string) (*models.ReferralFee, error)
	CreateFeeCheckout(ctx context.Context, feeID, professionalID string) (*payment.CheckoutSession, error)
	ConfirmFeePayment(ctx context.Context, feeID, gatewaySessionID string) (*FeeConfirmation, error)

	// Appointment lifecycle.
	ConfirmAppointment(ctx context.Context, appointmentID, professionalID string, startTime time.Time) (*models.Appointment, error)
	AttachRevisedQuote(ctx context.Context, appointmentID string, newAmount int64, professionalID string) (*models.Appointment, error)
	AcceptRevisedQuote(ctx context.Context, appointmentID, customerID string) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID, reason, actorID string) (*models.CancellationRecord, error)
	CompleteAppointment(ctx context.Context, appointmentID, professionalID string) (*models.Appointment, error)

	// Maintenance.
	ExpireStaleFees(ctx context.Context, ttl time.Duration) (int, error)
}

// DefaultService implements Service.
type DefaultService struct {
	Repo       engagementRepo.EngagementRepository
	Gateway    payment.Gateway
	Notifier   notification.Service
	Logger     *zap.Logger
	FeePercent int
	Currency   string
}

func (s *DefaultService) feePercent() int {
	if s.FeePercent <= 0 {
		return 10
	}
	return s.FeePercent
}

func (s *DefaultService) currency() string {
	if s.Currency == "" {
		return "usd"
	}
	return s.Currency
}
