package settlement

import (
	"context"

	"go.uber.org/zap"

	engagementRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/engagement"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/capability"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/marketplace"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/notification"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/payment"
)

// ReconcileResult reports what a session reconciliation observed. An unpaid
// session is a mismatch to surface, not an error.
type ReconcileResult struct {
	Outcome     string              `json:"outcome"`
	Fee         *models.ReferralFee `json:"fee"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
}

// FeeConfirmer is the slice of the lifecycle coordinator the reconciler
// drives when the gateway reports a paid session.
type FeeConfirmer interface {
	ConfirmFeePayment(ctx context.Context, feeID, gatewaySessionID string) (*marketplace.FeeConfirmation, error)
}

// Service bridges payment-gateway truth to entity state and gates refunds.
type Service interface {
	ReconcileCheckoutSession(ctx context.Context, sessionID string) (*ReconcileResult, error)
	IssueRefund(ctx context.Context, feeID, principalID string) (*models.ReferralFee, error)
}

// DefaultService implements Service.
type DefaultService struct {
	Repo       engagementRepo.EngagementRepository
	Gateway    payment.Gateway
	Capability capability.Checker
	Confirmer  FeeConfirmer
	Notifier   notification.Service
	Logger     *zap.Logger
}
