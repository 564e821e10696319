package settlement

import (
	"context"

	"go.uber.org/zap"

	engagementRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/engagement"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/capability"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/marketplace"
)

// IssueRefund reverses a paid, refundable fee. A refund is not safe to retry
// blindly at the gateway boundary, so the fee is re-read and reserved with a
// conditional write to refund_initiated immediately before the gateway call;
// a prior attempt that timed out after succeeding leaves the fee out of the
// paid state and the reservation fails instead of double-refunding.
func (s *DefaultService) IssueRefund(ctx context.Context, feeID, principalID string) (*models.ReferralFee, error) {
	isAdmin, err := s.Capability.HasRole(ctx, principalID, capability.RoleAdmin)
	if err != nil {
		return nil, marketplace.GatewayUnavailableError{Err: err}
	}
	if !isAdmin {
		return nil, marketplace.UnauthorizedError{Msg: "refunds require the admin capability"}
	}

	fee, err := s.Repo.GetFee(ctx, feeID)
	if err == engagementRepo.ErrNotFound {
		return nil, marketplace.NotFoundError{Entity: "fee", ID: feeID}
	}
	if err != nil {
		return nil, err
	}

	if fee.Status != models.FeeStatusPaid {
		return nil, marketplace.PolicyViolationError{Msg: "only a paid fee can be refunded"}
	}
	if !fee.Refundable {
		return nil, marketplace.PolicyViolationError{Msg: "fee is not marked refundable"}
	}
	if fee.PaymentIntentID == "" {
		return nil, marketplace.PolicyViolationError{Msg: "fee has no payment-intent reference"}
	}

	reserved, err := s.Repo.SetFeeStatus(ctx, feeID, models.FeeStatusPaid, models.FeeStatusRefundInitiated)
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, marketplace.ConflictError{Msg: "fee state changed; refund not attempted"}
	}

	res, err := s.Gateway.Refund(ctx, fee.PaymentIntentID)
	if err != nil {
		// Roll the reservation back so an operator can retry deliberately.
		if _, rbErr := s.Repo.SetFeeStatus(ctx, feeID, models.FeeStatusRefundInitiated, models.FeeStatusPaid); rbErr != nil {
			s.Logger.Error("failed to roll back refund reservation",
				zap.String("feeId", feeID), zap.Error(rbErr))
		}
		return nil, marketplace.RefundFailedError{FeeID: feeID, Err: err}
	}

	if _, err := s.Repo.SetFeeStatus(ctx, feeID, models.FeeStatusRefundInitiated, models.FeeStatusRefunded); err != nil {
		s.Logger.Error("refund succeeded but status commit failed; fee left in refund_initiated",
			zap.String("feeId", feeID), zap.Error(err))
		return nil, err
	}

	s.Notifier.Notify(ctx, fee.ProfessionalID, models.EventFeeRefunded, map[string]string{
		"feeId":    feeID,
		"refundId": res.ID,
	})
	s.Logger.Info("referral fee refunded",
		zap.String("feeId", feeID),
		zap.String("refundId", res.ID),
		zap.String("gatewayStatus", res.Status))

	return s.Repo.GetFee(ctx, feeID)
}
