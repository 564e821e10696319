package marketplace

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	engagementRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/engagement"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/utils"
)

// SelectQuote binds one quote to the request as the chosen engagement.
// The selection pointer is claimed with a single conditional write, so under
// a race exactly one caller wins; the loser gets a ConflictError. Sibling
// quotes keep their submitted status and become selectable again only if the
// selection is later released.
func (s *DefaultService) SelectQuote(ctx context.Context, requestID, quoteID, customerID string) (*models.ReferralFee, error) {
	req, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != customerID {
		return nil, UnauthorizedError{Msg: "only the request's customer may select a quote"}
	}
	if req.Terminal() {
		return nil, PolicyViolationError{Msg: "request is closed"}
	}
	if req.SelectedQuoteID != "" {
		return nil, ConflictError{Msg: "request already has an active selection"}
	}

	quote, err := s.Repo.GetQuote(ctx, quoteID)
	if err == engagementRepo.ErrNotFound {
		return nil, NotFoundError{Entity: "quote", ID: quoteID}
	}
	if err != nil {
		return nil, err
	}
	if quote.RequestID != requestID {
		return nil, ValidationError{Msg: "quote does not belong to this request"}
	}
	if quote.Status != models.QuoteStatusSubmitted {
		return nil, ConflictError{Msg: "quote is no longer selectable"}
	}

	claimed, err := s.Repo.ClaimSelection(ctx, requestID, quoteID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ConflictError{Msg: "another selection is already active on this request"}
	}

	if ok, err := s.Repo.SetQuoteStatus(ctx, quoteID, models.QuoteStatusSubmitted, models.QuoteStatusSelected); err != nil || !ok {
		// Quote slipped away between the read and the claim; undo the lock.
		if _, relErr := s.Repo.ReleaseSelection(ctx, requestID, quoteID); relErr != nil {
			s.Logger.Error("failed to release selection after quote status conflict",
				zap.String("requestId", requestID), zap.Error(relErr))
		}
		if err != nil {
			return nil, err
		}
		return nil, ConflictError{Msg: "quote is no longer selectable"}
	}

	now := time.Now().UTC()
	fee := &models.ReferralFee{
		ID:             uuid.New().String(),
		RequestID:      requestID,
		QuoteID:        quoteID,
		ProfessionalID: quote.ProfessionalID,
		Amount:         utils.PercentOf(quote.Amount, s.feePercent()),
		Currency:       s.currency(),
		Status:         models.FeeStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.CreateFee(ctx, fee); err != nil {
		if _, relErr := s.Repo.ReleaseSelection(ctx, requestID, quoteID); relErr != nil {
			s.Logger.Error("failed to release selection after fee create failure",
				zap.String("requestId", requestID), zap.Error(relErr))
		}
		if _, qErr := s.Repo.SetQuoteStatus(ctx, quoteID, models.QuoteStatusSelected, models.QuoteStatusSubmitted); qErr != nil {
			s.Logger.Error("failed to revert quote status after fee create failure",
				zap.String("quoteId", quoteID), zap.Error(qErr))
		}
		return nil, err
	}

	s.Notifier.Notify(ctx, quote.ProfessionalID, models.EventQuoteSelected, map[string]string{
		"requestId": requestID,
		"quoteId":   quoteID,
		"feeId":     fee.ID,
		"feeAmount": strconv.FormatInt(fee.Amount, 10),
	})
	s.Logger.Info("quote selected",
		zap.String("requestId", requestID),
		zap.String("quoteId", quoteID),
		zap.String("feeId", fee.ID),
		zap.Int64("feeAmount", fee.Amount))
	return fee, nil
}
