// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package market

import "context"

type Repository interface {
	ListMarkets(context context.Context, f Filter, limit, offset int) ([]*Market, int, error)
	GetMarket(context context.Context, id string) (*Market, error)
	CreateMarket(context context.Context, m *Market) error
	UpdateMarket(context context.Context, m *Market) error
	DeleteMarket(context context.Context, id string) error
}
