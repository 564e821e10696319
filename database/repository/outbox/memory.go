package outboxRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

// MemoryOutboxRepo is the in-memory OutboxRepository used by tests.
type MemoryOutboxRepo struct {
	mu   sync.Mutex
	msgs map[string]*models.OutboxMessage
}

func NewMemoryOutboxRepo() *MemoryOutboxRepo {
	return &MemoryOutboxRepo{msgs: make(map[string]*models.OutboxMessage)}
}

func (r *MemoryOutboxRepo) Enqueue(ctx context.Context, msg *models.OutboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *msg
	r.msgs[msg.ID] = &cp
	return nil
}

func (r *MemoryOutboxRepo) Get(ctx context.Context, id string) (*models.OutboxMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg, ok := r.msgs[id]
	if !ok {
		return nil, fmt.Errorf("outbox message %s not found", id)
	}
	cp := *msg
	return &cp, nil
}

func (r *MemoryOutboxRepo) MarkDelivered(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg, ok := r.msgs[id]; ok {
		msg.Status = models.OutboxStatusDelivered
		msg.DeliveredAt = time.Now().UTC()
		msg.Attempts++
	}
	return nil
}

func (r *MemoryOutboxRepo) MarkFailed(ctx context.Context, id, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg, ok := r.msgs[id]; ok {
		msg.Status = models.OutboxStatusFailed
		msg.LastError = reason
		msg.Attempts++
	}
	return nil
}

func (r *MemoryOutboxRepo) ListByStatus(ctx context.Context, status string, limit int64) ([]models.OutboxMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.OutboxMessage
	for _, msg := range r.msgs {
		if msg.Status == status {
			out = append(out, *msg)
			if int64(len(out)) == limit {
				break
			}
		}
	}
	return out, nil
}
