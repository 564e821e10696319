package marketplace

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

func TestSelectQuoteCreatesTenPercentFee(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := seedRequest(t, svc, "cust-1")
	quote := seedQuote(t, svc, req.ID, "pro-1", 25000)

	fee, err := svc.SelectQuote(ctx, req.ID, quote.ID, "cust-1")
	require.NoError(t, err)

	assert.Equal(t, int64(2500), fee.Amount)
	assert.Equal(t, models.FeeStatusPending, fee.Status)
	assert.Equal(t, "pro-1", fee.ProfessionalID)

	fresh, err := svc.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, quote.ID, fresh.SelectedQuoteID)
	assert.Equal(t, models.RequestStatusSelectedPending, fresh.Status)

	q, err := svc.Repo.GetQuote(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusSelected, q.Status)
}

func TestSelectQuoteOnlyCustomerMaySelect(t *testing.T) {
	svc, _, _ := newTestService()
	req := seedRequest(t, svc, "cust-1")
	quote := seedQuote(t, svc, req.ID, "pro-1", 10000)

	_, err := svc.SelectQuote(context.Background(), req.ID, quote.ID, "someone-else")
	assert.ErrorAs(t, err, &UnauthorizedError{})
}

func TestSelectQuoteRejectsForeignQuote(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	reqA := seedRequest(t, svc, "cust-1")
	reqB := seedRequest(t, svc, "cust-2")
	quoteB := seedQuote(t, svc, reqB.ID, "pro-1", 10000)

	_, err := svc.SelectQuote(ctx, reqA.ID, quoteB.ID, "cust-1")
	assert.ErrorAs(t, err, &ValidationError{})
}

func TestSelectQuoteSecondSelectionConflicts(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := seedRequest(t, svc, "cust-1")
	q1 := seedQuote(t, svc, req.ID, "pro-1", 10000)
	q2 := seedQuote(t, svc, req.ID, "pro-2", 12000)

	_, err := svc.SelectQuote(ctx, req.ID, q1.ID, "cust-1")
	require.NoError(t, err)

	_, err = svc.SelectQuote(ctx, req.ID, q2.ID, "cust-1")
	assert.ErrorAs(t, err, &ConflictError{})

	// The losing sibling keeps its submitted status.
	q, err := svc.Repo.GetQuote(ctx, q2.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusSubmitted, q.Status)
}

func TestSelectQuoteConcurrentRaceHasOneWinner(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := seedRequest(t, svc, "cust-1")
	quotes := make([]*models.Quote, 8)
	for i := range quotes {
		quotes[i] = seedQuote(t, svc, req.ID, "pro-"+string(rune('a'+i)), 10000+int64(i))
	}

	var wg sync.WaitGroup
	results := make([]error, len(quotes))
	for i := range quotes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.SelectQuote(ctx, req.ID, quotes[i].ID, "cust-1")
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorAs(t, err, &ConflictError{})
		}
	}
	assert.Equal(t, 1, winners)

	fresh, err := svc.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.SelectedQuoteID)
}

func TestSubmitQuoteLockedAfterSelection(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := seedRequest(t, svc, "cust-1")
	quote := seedQuote(t, svc, req.ID, "pro-1", 10000)
	_, err := svc.SelectQuote(ctx, req.ID, quote.ID, "cust-1")
	require.NoError(t, err)

	_, err = svc.SubmitQuote(ctx, req.ID, "pro-late", 9000, "undercut")
	assert.ErrorAs(t, err, &RequestLockedError{})
}

func TestSubmitQuoteValidation(t *testing.T) {
	svc, _, _ := newTestService()
	req := seedRequest(t, svc, "cust-1")

	_, err := svc.SubmitQuote(context.Background(), req.ID, "pro-1", 0, "")
	assert.ErrorAs(t, err, &ValidationError{})

	_, err = svc.SubmitQuote(context.Background(), "no-such-request", "pro-1", 100, "")
	assert.ErrorAs(t, err, &NotFoundError{})
}
