// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package exchange_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narkhlab/narkh/internal/platform/apperr"
	"github.com/narkhlab/narkh/internal/platform/sec"
	"github.com/narkhlab/narkh/internal/pricing/exchange"
	"github.com/narkhlab/narkh/pkg/pointer"
)

const (
	marketX = "0191d7a8-0000-7000-8000-0000000000aa"
	marketY = "0191d7a8-0000-7000-8000-0000000000bb"
)

type fakeRepo struct {
	mu     sync.Mutex
	byID   map[string]*exchange.ExchangeRate
	sorted []*exchange.ExchangeRate
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*exchange.ExchangeRate)}
}

func (repo *fakeRepo) Create(_ context.Context, r *exchange.ExchangeRate) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	repo.byID[r.ID] = r
	repo.sorted = append([]*exchange.ExchangeRate{r}, repo.sorted...)
	return nil
}

func (repo *fakeRepo) Get(_ context.Context, id string) (*exchange.ExchangeRate, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if r, ok := repo.byID[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, apperr.NotFound("Exchange rate")
}

func (repo *fakeRepo) List(_ context.Context, f exchange.Filter, limit, offset int) ([]*exchange.ExchangeRate, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	matched := make([]*exchange.ExchangeRate, 0, len(repo.sorted))
	for _, r := range repo.sorted {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		copied := *r
		matched = append(matched, &copied)
	}
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (repo *fakeRepo) ListApprovedByRecency(_ context.Context, f exchange.LatestFilter) ([]*exchange.ExchangeRate, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	matched := make([]*exchange.ExchangeRate, 0, len(repo.sorted))
	for _, r := range repo.sorted {
		if r.Status != exchange.StatusApproved {
			continue
		}
		if f.MarketID != "" && r.MarketID != f.MarketID {
			continue
		}
		copied := *r
		matched = append(matched, &copied)
	}
	return matched, nil
}

func (repo *fakeRepo) Moderate(_ context.Context, id, status, moderatorID string, rejectReason *string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	r, ok := repo.byID[id]
	if !ok || r.Status != exchange.StatusPending {
		return false, nil
	}
	r.Status = status
	r.ModeratedBy = &moderatorID
	r.RejectReason = rejectReason
	return true, nil
}

func newService() (*exchange.Service, *fakeRepo) {
	repo := newFakeRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return exchange.NewService(repo, logger), repo
}

func moderator() *sec.Principal {
	return &sec.Principal{ID: "moderator-1", Role: sec.RoleModerator}
}

func quote(base, quoteCurrency, marketID string) exchange.SubmitInput {
	return exchange.SubmitInput{
		MarketID:      marketID,
		BaseCurrency:  base,
		QuoteCurrency: quoteCurrency,
		Buy:           7050,
		Sell:          7080,
	}
}

/*
TestService_Submit_CurrencyPair covers the pair-specific validation rules.
*/
func TestService_Submit_CurrencyPair(t *testing.T) {
	service, _ := newService()

	t.Run("same_currencies_rejected", func(t *testing.T) {
		_, err := service.Submit(context.Background(), moderator(), quote("USD", "USD", marketX))
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("lowercase_currency_rejected", func(t *testing.T) {
		_, err := service.Submit(context.Background(), moderator(), quote("usd", "AFN", marketX))
		require.Error(t, err)
	})

	t.Run("zero_rate_rejected", func(t *testing.T) {
		input := quote("USD", "AFN", marketX)
		input.Sell = 0
		_, err := service.Submit(context.Background(), moderator(), input)
		require.Error(t, err)
	})

	t.Run("valid_pair", func(t *testing.T) {
		rate, err := service.Submit(context.Background(), moderator(), quote("USD", "AFN", marketX))
		require.NoError(t, err)
		assert.Equal(t, exchange.StatusPending, rate.Status)
	})
}

/*
TestService_Submit_RegionRestriction keeps assigned collectors in their market.
*/
func TestService_Submit_RegionRestriction(t *testing.T) {
	service, _ := newService()
	collector := &sec.Principal{ID: "collector-1", Role: sec.RoleCollector, MarketID: pointer.To(marketX)}

	_, err := service.Submit(context.Background(), collector, quote("USD", "AFN", marketY))
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	_, err = service.Submit(context.Background(), collector, quote("USD", "AFN", marketX))
	assert.NoError(t, err)
}

/*
TestDedup keeps the newest quote per (base, quote, market) triple.
*/
func TestDedup(t *testing.T) {
	newest := &exchange.ExchangeRate{ID: "1", BaseCurrency: "USD", QuoteCurrency: "AFN", MarketID: marketX}
	older := &exchange.ExchangeRate{ID: "2", BaseCurrency: "USD", QuoteCurrency: "AFN", MarketID: marketX}
	otherPair := &exchange.ExchangeRate{ID: "3", BaseCurrency: "EUR", QuoteCurrency: "AFN", MarketID: marketX}
	otherMarket := &exchange.ExchangeRate{ID: "4", BaseCurrency: "USD", QuoteCurrency: "AFN", MarketID: marketY}

	latest := exchange.Dedup([]*exchange.ExchangeRate{newest, older, otherPair, otherMarket})

	require.Len(t, latest, 3)
	assert.Equal(t, "1", latest[0].ID)
}

/*
TestService_Latest surfaces only approved quotes, one per triple.
*/
func TestService_Latest(t *testing.T) {
	service, _ := newService()
	mod := moderator()

	older, err := service.Submit(context.Background(), mod, quote("USD", "AFN", marketX))
	require.NoError(t, err)
	_, err = service.Approve(context.Background(), older.ID, mod)
	require.NoError(t, err)

	newest, err := service.Submit(context.Background(), mod, quote("USD", "AFN", marketX))
	require.NoError(t, err)
	_, err = service.Approve(context.Background(), newest.ID, mod)
	require.NoError(t, err)

	// Pending quotes never surface.
	_, err = service.Submit(context.Background(), mod, quote("EUR", "AFN", marketX))
	require.NoError(t, err)

	latest, err := service.Latest(context.Background(), exchange.LatestFilter{})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, newest.ID, latest[0].ID)
}

/*
TestService_Moderation enforces the single-decision rule.
*/
func TestService_Moderation(t *testing.T) {
	service, _ := newService()
	mod := moderator()

	submission, err := service.Submit(context.Background(), mod, quote("USD", "AFN", marketX))
	require.NoError(t, err)

	rejected, err := service.Reject(context.Background(), submission.ID, mod, "stale quote")
	require.NoError(t, err)
	assert.Equal(t, exchange.StatusRejected, rejected.Status)

	_, err = service.Approve(context.Background(), submission.ID, mod)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = service.Approve(context.Background(), "0191d7a8-dead-7000-8000-000000000000", mod)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
