package marketplace

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

// SubmitQuote accepts a professional's bid while the request is still open.
// A request with an active selection is locked: new quotes are rejected.
func (s *DefaultService) SubmitQuote(ctx context.Context, requestID, professionalID string, amount int64, description string) (*models.Quote, error) {
	if professionalID == "" {
		return nil, ValidationError{Msg: "professional id is required"}
	}
	if amount <= 0 {
		return nil, ValidationError{Msg: "quote amount must be positive"}
	}

	req, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.AcceptsQuotes() {
		return nil, RequestLockedError{RequestID: requestID}
	}

	now := time.Now().UTC()
	quote := &models.Quote{
		ID:             uuid.New().String(),
		RequestID:      requestID,
		ProfessionalID: professionalID,
		Amount:         amount,
		Description:    description,
		Status:         models.QuoteStatusSubmitted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.CreateQuote(ctx, quote); err != nil {
		return nil, err
	}
	if err := s.Repo.MarkRequestQuoted(ctx, requestID); err != nil {
		s.Logger.Warn("failed to mark request quoted", zap.String("requestId", requestID), zap.Error(err))
	}

	s.Notifier.Notify(ctx, req.CustomerID, models.EventQuoteSubmitted, map[string]string{
		"requestId": requestID,
		"quoteId":   quote.ID,
		"amount":    strconv.FormatInt(amount, 10),
	})
	s.Logger.Info("quote submitted",
		zap.String("requestId", requestID),
		zap.String("quoteId", quote.ID),
		zap.Int64("amount", amount))
	return quote, nil
}

func (s *DefaultService) ListQuotes(ctx context.Context, requestID string) ([]models.Quote, error) {
	if _, err := s.GetRequest(ctx, requestID); err != nil {
		return nil, err
	}
	return s.Repo.ListQuotesByRequest(ctx, requestID)
}
