package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	outboxRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/outbox"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

// TypeOutboxDeliver is the asynq task type for draining one outbox row.
const TypeOutboxDeliver = "outbox:deliver"

// DeliverPayload is the asynq task payload.
type DeliverPayload struct {
	MessageID string `json:"messageId"`
}

// TaskEnqueuer is the slice of asynq.Client the service needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultService writes an outbox row and hands a delivery task to asynq.
// The row is the source of truth; a lost task is recovered by the requeue
// sweep over still-enqueued rows.
type DefaultService struct {
	Repo     outboxRepo.OutboxRepository
	Enqueuer TaskEnqueuer
	Logger   *zap.Logger
}

func (s *DefaultService) Notify(ctx context.Context, principalID, eventType string, payload map[string]string) {
	msg := &models.OutboxMessage{
		ID:          uuid.New().String(),
		PrincipalID: principalID,
		EventType:   eventType,
		Payload:     payload,
		Status:      models.OutboxStatusEnqueued,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Enqueue(ctx, msg); err != nil {
		s.Logger.Error("failed to enqueue notification",
			zap.String("principalId", principalID),
			zap.String("eventType", eventType),
			zap.Error(err))
		return
	}

	if s.Enqueuer == nil {
		return
	}
	body, err := json.Marshal(DeliverPayload{MessageID: msg.ID})
	if err != nil {
		s.Logger.Error("failed to marshal delivery payload", zap.Error(err))
		return
	}
	if _, err := s.Enqueuer.Enqueue(asynq.NewTask(TypeOutboxDeliver, body)); err != nil {
		// The outbox row stays enqueued; the sweep will pick it up.
		s.Logger.Warn("failed to enqueue delivery task", zap.String("messageId", msg.ID), zap.Error(err))
	}
}

// LogSender stands in for the external messaging collaborator: it logs the
// notification and succeeds. Real email/SMS delivery is out of scope.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) Send(ctx context.Context, principalID, eventType string, payload map[string]string) error {
	s.Logger.Info("delivering notification",
		zap.String("principalId", principalID),
		zap.String("eventType", eventType),
		zap.Any("payload", payload))
	return nil
}
