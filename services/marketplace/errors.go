package marketplace

import "fmt"

// ValidationError signals malformed input; the operation had no side effect.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

// ConflictError signals a lost race (e.g. a second selection attempt); the
// caller must re-fetch state before retrying.
type ConflictError struct {
	Msg string
}

func (e ConflictError) Error() string { return e.Msg }

// PolicyViolationError signals a legal-looking but disallowed transition,
// e.g. cancelling a confirmed appointment without a declined revision.
type PolicyViolationError struct {
	Msg string
}

func (e PolicyViolationError) Error() string { return e.Msg }

// RequestLockedError signals a quote submitted against a request that
// already has an active selection.
type RequestLockedError struct {
	RequestID string
}

func (e RequestLockedError) Error() string {
	return fmt.Sprintf("request %s is locked for selection; no new quotes accepted", e.RequestID)
}

// UnauthorizedError signals a principal acting outside its rights.
type UnauthorizedError struct {
	Msg string
}

func (e UnauthorizedError) Error() string { return e.Msg }

// NotFoundError signals a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string { return fmt.Sprintf("%s %s not found", e.Entity, e.ID) }

// GatewayUnavailableError signals a transient payment-gateway failure.
// Read-only checks are safe to retry; refunds are not.
type GatewayUnavailableError struct {
	Err error
}

func (e GatewayUnavailableError) Error() string {
	return fmt.Sprintf("payment gateway unavailable: %v", e.Err)
}

func (e GatewayUnavailableError) Unwrap() error { return e.Err }

// RefundFailedError signals a refund attempt the gateway rejected or that
// failed mid-flight. The fee stays paid; an operator must retry explicitly.
type RefundFailedError struct {
	FeeID string
	Err   error
}

func (e RefundFailedError) Error() string {
	return fmt.Sprintf("refund for fee %s failed: %v", e.FeeID, e.Err)
}

func (e RefundFailedError) Unwrap() error { return e.Err }
