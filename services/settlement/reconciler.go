package settlement

import (
	"context"

	"go.uber.org/zap"

	engagementRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/engagement"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/marketplace"
)

// ReconcileCheckoutSession fetches the session's status from the gateway and
// applies the matching transition. A legitimately unpaid session leaves the
// fee pending and reports not_paid; re-reconciling a paid session is a
// no-op success because fee confirmation is idempotent.
func (s *DefaultService) ReconcileCheckoutSession(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	if sessionID == "" {
		return nil, marketplace.ValidationError{Msg: "session id is required"}
	}

	fee, err := s.Repo.GetFeeBySession(ctx, sessionID)
	if err == engagementRepo.ErrNotFound {
		return nil, marketplace.NotFoundError{Entity: "fee for session", ID: sessionID}
	}
	if err != nil {
		return nil, err
	}

	conf, err := s.Confirmer.ConfirmFeePayment(ctx, fee.ID, sessionID)
	if err != nil {
		return nil, err
	}
	if conf.Outcome == marketplace.OutcomeNotPaid {
		s.Logger.Info("checkout session not paid yet",
			zap.String("sessionId", sessionID),
			zap.String("feeId", fee.ID))
	}
	return &ReconcileResult{
		Outcome:     conf.Outcome,
		Fee:         conf.Fee,
		Appointment: conf.Appointment,
	}, nil
}
