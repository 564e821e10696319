package marketplace

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

// ExpireStaleFees sweeps pending fees older than ttl: the fee moves to
// expired and the request's selection lock is released so sibling quotes
// become selectable again. Expiry is a deployment policy; the sweep only
// runs when a TTL is configured.
func (s *DefaultService) ExpireStaleFees(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-ttl)
	fees, err := s.Repo.ListStalePendingFees(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range fees {
		fee := fees[i]
		ok, err := s.Repo.SetFeeStatus(ctx, fee.ID, models.FeeStatusPending, models.FeeStatusExpired)
		if err != nil {
			s.Logger.Error("failed to expire fee", zap.String("feeId", fee.ID), zap.Error(err))
			continue
		}
		if !ok {
			// Paid (or already expired) since we listed it.
			continue
		}
		if _, err := s.Repo.ReleaseSelection(ctx, fee.RequestID, fee.QuoteID); err != nil {
			s.Logger.Error("failed to release selection for expired fee",
				zap.String("feeId", fee.ID), zap.String("requestId", fee.RequestID), zap.Error(err))
		}
		if _, err := s.Repo.SetQuoteStatus(ctx, fee.QuoteID, models.QuoteStatusSelected, models.QuoteStatusSubmitted); err != nil {
			s.Logger.Error("failed to reopen quote for expired fee",
				zap.String("quoteId", fee.QuoteID), zap.Error(err))
		}

		s.Notifier.Notify(ctx, fee.ProfessionalID, models.EventFeeExpired, map[string]string{
			"feeId":     fee.ID,
			"requestId": fee.RequestID,
		})
		expired++
	}
	if expired > 0 {
		s.Logger.Info("expired stale referral fees", zap.Int("count", expired))
	}
	return expired, nil
}
