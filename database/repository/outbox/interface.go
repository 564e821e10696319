package outboxRepo

import (
	"context"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

// OutboxRepository stores notification outbox rows. Rows are written in the
// same flow that commits a state transition and drained by the delivery
// worker; delivery outcomes never touch lifecycle entities.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg *models.OutboxMessage) error
	Get(ctx context.Context, id string) (*models.OutboxMessage, error)
	MarkDelivered(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id, reason string) error
	ListByStatus(ctx context.Context, status string, limit int64) ([]models.OutboxMessage, error)
}
