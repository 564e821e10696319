package engagementRepo

import (
	"context"
	"sync"
	"time"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

// MemoryEngagementRepo is an in-memory EngagementRepository with the same
// conditional-write semantics as the Mongo implementation. It backs the
// service tests; a single mutex stands in for Mongo's per-document atomicity.
type MemoryEngagementRepo struct {
	mu            sync.Mutex
	requests      map[string]*models.ServiceRequest
	quotes        map[string]*models.Quote
	fees          map[string]*models.ReferralFee
	appointments  map[string]*models.Appointment
	cancellations map[string]*models.CancellationRecord
}

func NewMemoryEngagementRepo() *MemoryEngagementRepo {
	return &MemoryEngagementRepo{
		requests:      make(map[string]*models.ServiceRequest),
		quotes:        make(map[string]*models.Quote),
		fees:          make(map[string]*models.ReferralFee),
		appointments:  make(map[string]*models.Appointment),
		cancellations: make(map[string]*models.CancellationRecord),
	}
}

func (r *MemoryEngagementRepo) CreateRequest(ctx context.Context, req *models.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *MemoryEngagementRepo) GetRequest(ctx context.Context, id string) (*models.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *MemoryEngagementRepo) AddRequestPhoto(ctx context.Context, requestID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[requestID]
	if !ok {
		return ErrNotFound
	}
	req.PhotoURLs = append(req.PhotoURLs, url)
	req.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryEngagementRepo) MarkRequestQuoted(ctx context.Context, requestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[requestID]
	if ok && req.Status == models.RequestStatusCreated {
		req.Status = models.RequestStatusQuoted
		req.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (r *MemoryEngagementRepo) ClaimSelection(ctx context.Context, requestID, quoteID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[requestID]
	if !ok || req.SelectedQuoteID != "" {
		return false, nil
	}
	if req.Status != models.RequestStatusCreated && req.Status != models.RequestStatusQuoted {
		return false, nil
	}
	req.SelectedQuoteID = quoteID
	req.Status = models.RequestStatusSelectedPending
	req.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryEngagementRepo) ReleaseSelection(ctx context.Context, requestID, quoteID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[requestID]
	if !ok || req.SelectedQuoteID != quoteID {
		return false, nil
	}
	req.SelectedQuoteID = ""
	req.Status = models.RequestStatusQuoted
	req.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryEngagementRepo) SetRequestStatus(ctx context.Context, requestID, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[requestID]
	if !ok || req.Status != from {
		return false, nil
	}
	req.Status = to
	req.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryEngagementRepo) CreateQuote(ctx context.Context, q *models.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *q
	r.quotes[q.ID] = &cp
	return nil
}

func (r *MemoryEngagementRepo) GetQuote(ctx context.Context, id string) (*models.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *MemoryEngagementRepo) ListQuotesByRequest(ctx context.Context, requestID string) ([]models.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Quote
	for _, q := range r.quotes {
		if q.RequestID == requestID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *MemoryEngagementRepo) SetQuoteStatus(ctx context.Context, quoteID, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[quoteID]
	if !ok || q.Status != from {
		return false, nil
	}
	q.Status = to
	q.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryEngagementRepo) CreateFee(ctx context.Context, fee *models.ReferralFee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *fee
	r.fees[fee.ID] = &cp
	return nil
}

func (r *MemoryEngagementRepo) GetFee(ctx context.Context, id string) (*models.ReferralFee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fee, ok := r.fees[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *fee
	return &cp, nil
}

func (r *MemoryEngagementRepo) GetFeeBySession(ctx context.Context, sessionID string) (*models.ReferralFee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fee := range r.fees {
		if fee.SessionID == sessionID {
			cp := *fee
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryEngagementRepo) SetFeeSession(ctx context.Context, feeID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fee, ok := r.fees[feeID]
	if !ok {
		return ErrNotFound
	}
	fee.SessionID = sessionID
	fee.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryEngagementRepo) MarkFeePaid(ctx context.Context, feeID, paymentIntentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fee, ok := r.fees[feeID]
	if !ok || fee.Status != models.FeeStatusPending {
		return false, nil
	}
	now := time.Now().UTC()
	fee.Status = models.FeeStatusPaid
	fee.PaymentIntentID = paymentIntentID
	fee.PaidAt = now
	fee.UpdatedAt = now
	return true, nil
}

func (r *MemoryEngagementRepo) SetFeeStatus(ctx context.Context, feeID, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fee, ok := r.fees[feeID]
	if !ok || fee.Status != from {
		return false, nil
	}
	fee.Status = to
	fee.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryEngagementRepo) SetFeeRefundable(ctx context.Context, feeID string, refundable bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fee, ok := r.fees[feeID]
	if !ok {
		return ErrNotFound
	}
	fee.Refundable = refundable
	fee.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryEngagementRepo) ListStalePendingFees(ctx context.Context, olderThan time.Time) ([]models.ReferralFee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ReferralFee
	for _, fee := range r.fees {
		if fee.Status == models.FeeStatusPending && fee.CreatedAt.Before(olderThan) {
			out = append(out, *fee)
		}
	}
	return out, nil
}

func (r *MemoryEngagementRepo) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *MemoryEngagementRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *MemoryEngagementRepo) GetAppointmentByRequest(ctx context.Context, requestID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if a.RequestID == requestID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryEngagementRepo) SetAppointmentStatus(ctx context.Context, appointmentID, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[appointmentID]
	if !ok || a.Status != from {
		return false, nil
	}
	a.Status = to
	a.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryEngagementRepo) ConfirmAppointment(ctx context.Context, appointmentID string, startTime time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[appointmentID]
	if !ok || a.Status != models.AppointmentStatusPendingInspection {
		return false, nil
	}
	a.Status = models.AppointmentStatusConfirmed
	a.StartTime = startTime
	a.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryEngagementRepo) AttachRevision(ctx context.Context, appointmentID string, amount int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[appointmentID]
	if !ok || a.Status != models.AppointmentStatusConfirmed {
		return false, nil
	}
	if a.RevisedAmount > 0 && !a.RevisedAccepted {
		return false, nil
	}
	now := time.Now().UTC()
	a.RevisedAmount = amount
	a.RevisedAccepted = false
	a.RevisedAt = now
	a.UpdatedAt = now
	return true, nil
}

func (r *MemoryEngagementRepo) AcceptRevision(ctx context.Context, appointmentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[appointmentID]
	if !ok || a.Status != models.AppointmentStatusConfirmed {
		return false, nil
	}
	if a.RevisedAmount == 0 || a.RevisedAccepted {
		return false, nil
	}
	a.RevisedAccepted = true
	a.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryEngagementRepo) CreateCancellation(ctx context.Context, rec *models.CancellationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.cancellations[rec.ID] = &cp
	return nil
}

// Cancellations returns all recorded cancellations; test helper.
func (r *MemoryEngagementRepo) Cancellations() []models.CancellationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CancellationRecord
	for _, c := range r.cancellations {
		out = append(out, *c)
	}
	return out
}
