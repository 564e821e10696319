package marketplace

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	engagementRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/engagement"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

func (s *DefaultService) CreateRequest(ctx context.Context, req *models.ServiceRequest) (*models.ServiceRequest, error) {
	if req.CustomerID == "" {
		return nil, ValidationError{Msg: "customer id is required"}
	}
	if len(req.ServiceCodes) == 0 {
		return nil, ValidationError{Msg: "at least one service code is required"}
	}

	now := time.Now().UTC()
	req.ID = uuid.New().String()
	req.Status = models.RequestStatusCreated
	req.SelectedQuoteID = ""
	req.PhotoURLs = nil
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := s.Repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	s.Logger.Info("service request created",
		zap.String("requestId", req.ID),
		zap.String("customerId", req.CustomerID))
	return req, nil
}

func (s *DefaultService) GetRequest(ctx context.Context, id string) (*models.ServiceRequest, error) {
	req, err := s.Repo.GetRequest(ctx, id)
	if err == engagementRepo.ErrNotFound {
		return nil, NotFoundError{Entity: "request", ID: id}
	}
	return req, err
}

func (s *DefaultService) AttachRequestPhoto(ctx context.Context, requestID, customerID, url string) error {
	req, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.CustomerID != customerID {
		return UnauthorizedError{Msg: "only the request's customer may attach photos"}
	}
	if req.Terminal() {
		return PolicyViolationError{Msg: "request is closed"}
	}
	return s.Repo.AddRequestPhoto(ctx, requestID, url)
}
