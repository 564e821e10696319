package marketplace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

func TestExpireStaleFeesReleasesSelection(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := seedRequest(t, svc, "cust-1")
	quote := seedQuote(t, svc, req.ID, "pro-1", 10000)
	fee, err := svc.SelectQuote(ctx, req.ID, quote.ID, "cust-1")
	require.NoError(t, err)

	// A zero TTL makes every pending fee stale immediately.
	expired, err := svc.ExpireStaleFees(ctx, -time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	storedFee, err := svc.Repo.GetFee(ctx, fee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusExpired, storedFee.Status)

	fresh, err := svc.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Empty(t, fresh.SelectedQuoteID)
	assert.True(t, fresh.AcceptsQuotes())

	// The released quote is selectable again.
	q, err := svc.Repo.GetQuote(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusSubmitted, q.Status)

	fee2, err := svc.SelectQuote(ctx, req.ID, quote.ID, "cust-1")
	require.NoError(t, err)
	assert.NotEqual(t, fee.ID, fee2.ID)
}

func TestExpireStaleFeesSkipsPaidAndFresh(t *testing.T) {
	svc, _, gateway := newTestService()
	ctx := context.Background()

	// A paid fee is never swept.
	seedPaidEngagement(t, svc, gateway, "cust-1", "pro-1", 10000)

	// A fresh pending fee is younger than the TTL.
	req := seedRequest(t, svc, "cust-2")
	quote := seedQuote(t, svc, req.ID, "pro-2", 12000)
	_, err := svc.SelectQuote(ctx, req.ID, quote.ID, "cust-2")
	require.NoError(t, err)

	expired, err := svc.ExpireStaleFees(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, expired)
}
