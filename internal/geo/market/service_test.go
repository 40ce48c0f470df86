// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package market_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narkhlab/narkh/internal/geo/market"
	"github.com/narkhlab/narkh/internal/platform/apperr"
)

const cityID = "0191d7a8-0000-7000-8000-0000000000cc"

type fakeRepo struct {
	markets map[string]*market.Market
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{markets: make(map[string]*market.Market)}
}

func (repo *fakeRepo) ListMarkets(_ context.Context, f market.Filter, limit, offset int) ([]*market.Market, int, error) {
	matched := make([]*market.Market, 0, len(repo.markets))
	for _, m := range repo.markets {
		if f.Kind != "" && m.Kind != f.Kind {
			continue
		}
		matched = append(matched, m)
	}
	return matched, len(matched), nil
}

func (repo *fakeRepo) GetMarket(_ context.Context, id string) (*market.Market, error) {
	if m, ok := repo.markets[id]; ok {
		return m, nil
	}
	return nil, apperr.NotFound("Market")
}

func (repo *fakeRepo) CreateMarket(_ context.Context, m *market.Market) error {
	repo.markets[m.ID] = m
	return nil
}

func (repo *fakeRepo) UpdateMarket(_ context.Context, m *market.Market) error {
	if _, ok := repo.markets[m.ID]; !ok {
		return apperr.NotFound("Market")
	}
	repo.markets[m.ID] = m
	return nil
}

func (repo *fakeRepo) DeleteMarket(_ context.Context, id string) error {
	if _, ok := repo.markets[id]; !ok {
		return apperr.NotFound("Market")
	}
	delete(repo.markets, id)
	return nil
}

func newService() *market.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return market.NewService(newFakeRepo(), logger)
}

/*
TestService_CreateMarket assigns a generated id and derived slug.
*/
func TestService_CreateMarket(t *testing.T) {
	service := newService()

	created := &market.Market{
		Name:   "Mandawi Bazaar",
		CityID: cityID,
		Kind:   market.KindBazaar,
	}
	require.NoError(t, service.CreateMarket(context.Background(), created))

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "mandawi-bazaar", created.Slug)
}

/*
TestService_CreateMarket_Validation rejects bad names, cities, and kinds.
*/
func TestService_CreateMarket_Validation(t *testing.T) {
	service := newService()

	tests := []struct {
		name  string
		input *market.Market
	}{
		{"missing_name", &market.Market{CityID: cityID, Kind: market.KindBazaar}},
		{"bad_city_id", &market.Market{Name: "Some Bazaar", CityID: "kabul", Kind: market.KindBazaar}},
		{"unknown_kind", &market.Market{Name: "Some Bazaar", CityID: cityID, Kind: "mall"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CreateMarket(context.Background(), tt.input)
			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestService_UpdateMarket re-derives the slug from the new name.
*/
func TestService_UpdateMarket(t *testing.T) {
	service := newService()

	created := &market.Market{Name: "Old Name", CityID: cityID, Kind: market.KindExchange}
	require.NoError(t, service.CreateMarket(context.Background(), created))

	updated := &market.Market{Name: "Sarai Shahzada", CityID: cityID, Kind: market.KindExchange}
	require.NoError(t, service.UpdateMarket(context.Background(), created.ID, updated))

	stored, err := service.GetMarket(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "sarai-shahzada", stored.Slug)
}
