package notification

import "context"

// Service enqueues notifications for asynchronous delivery. Notify is
// fire-and-forget: it is called after a state transition has committed and
// must never propagate a failure back into the lifecycle flow.
type Service interface {
	Notify(ctx context.Context, principalID, eventType string, payload map[string]string)
}

// Sender performs the actual delivery of one outbox message to the external
// messaging collaborator (email/SMS/push live outside this system).
type Sender interface {
	Send(ctx context.Context, principalID, eventType string, payload map[string]string) error
}

// NoopService discards notifications; used in tests.
type NoopService struct{}

func (NoopService) Notify(ctx context.Context, principalID, eventType string, payload map[string]string) {
}
