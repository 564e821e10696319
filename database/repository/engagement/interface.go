package engagementRepo

import (
	"context"
	"errors"
	"time"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// EngagementRepository owns durable storage for the request/quote/fee/
// appointment cluster. Every mutation that guards an invariant is a
// compare-and-set: the write carries its precondition in the filter and
// reports via the bool whether it matched. Callers translate a false into
// the appropriate conflict or policy error.
type EngagementRepository interface {
	// Requests.
	CreateRequest(ctx context.Context, req *models.ServiceRequest) error
	GetRequest(ctx context.Context, id string) (*models.ServiceRequest, error)
	AddRequestPhoto(ctx context.Context, requestID, url string) error
	// MarkRequestQuoted moves created -> quoted when the first quote lands.
	MarkRequestQuoted(ctx context.Context, requestID string) error
	// ClaimSelection sets the selection pointer iff it is currently empty
	// and the request is still accepting selections.
	ClaimSelection(ctx context.Context, requestID, quoteID string) (bool, error)
	// ReleaseSelection clears the pointer iff it still points at quoteID,
	// returning the request to quoted.
	ReleaseSelection(ctx context.Context, requestID, quoteID string) (bool, error)
	SetRequestStatus(ctx context.Context, requestID, from, to string) (bool, error)

	// Quotes.
	CreateQuote(ctx context.Context, q *models.Quote) error
	GetQuote(ctx context.Context, id string) (*models.Quote, error)
	ListQuotesByRequest(ctx context.Context, requestID string) ([]models.Quote, error)
	SetQuoteStatus(ctx context.Context, quoteID, from, to string) (bool, error)

	// Referral fees.
	CreateFee(ctx context.Context, fee *models.ReferralFee) error
	GetFee(ctx context.Context, id string) (*models.ReferralFee, error)
	GetFeeBySession(ctx context.Context, sessionID string) (*models.ReferralFee, error)
	SetFeeSession(ctx context.Context, feeID, sessionID string) error
	// MarkFeePaid moves pending -> paid and stamps the payment intent.
	MarkFeePaid(ctx context.Context, feeID, paymentIntentID string) (bool, error)
	SetFeeStatus(ctx context.Context, feeID, from, to string) (bool, error)
	SetFeeRefundable(ctx context.Context, feeID string, refundable bool) error
	ListStalePendingFees(ctx context.Context, olderThan time.Time) ([]models.ReferralFee, error)

	// Appointments.
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	GetAppointmentByRequest(ctx context.Context, requestID string) (*models.Appointment, error)
	SetAppointmentStatus(ctx context.Context, appointmentID, from, to string) (bool, error)
	// ConfirmAppointment moves pending_inspection -> confirmed and stamps
	// the agreed start time in the same conditional write.
	ConfirmAppointment(ctx context.Context, appointmentID string, startTime time.Time) (bool, error)
	// AttachRevision stamps a revised amount iff the appointment is
	// confirmed with no revision already open.
	AttachRevision(ctx context.Context, appointmentID string, amount int64) (bool, error)
	AcceptRevision(ctx context.Context, appointmentID string) (bool, error)

	// Cancellations.
	CreateCancellation(ctx context.Context, rec *models.CancellationRecord) error
}
