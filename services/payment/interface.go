package payment

import "context"

// CheckoutSession is a gateway-hosted payment page for a referral fee.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SessionStatus is the gateway's answer for a checkout session. An unpaid
// session is a legitimate state, not an error.
type SessionStatus struct {
	Paid            bool   `json:"paid"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
}

// RefundResult reports the gateway's refund outcome.
type RefundResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Gateway is the payment gateway port. Implementations must be safe for
// concurrent use and must respect the caller's context deadline; a deadline
// or transport failure surfaces as an error the caller maps to
// GatewayUnavailable. Metadata carries request/quote/fee ids so a session
// can be reconciled without a prior local lookup.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (*CheckoutSession, error)
	GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)
	Refund(ctx context.Context, paymentIntentID string) (*RefundResult, error)
}
