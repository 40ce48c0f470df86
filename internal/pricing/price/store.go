// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package price

import (
	"context"
	"time"
)

// Repository is the persistent store for price submissions.
type Repository interface {
	Create(context context.Context, p *Price) error
	Get(context context.Context, id string) (*Price, error)
	List(context context.Context, f Filter, limit, offset int) ([]*Price, int, error)

	// ListApprovedByRecency returns approved observations newest first, for
	// the latest-view dedup pass.
	ListApprovedByRecency(context context.Context, f LatestFilter) ([]*Price, error)

	// Moderate flips a pending submission to approved or rejected. It reports
	// whether a pending row was actually transitioned, so decisions on
	// already-moderated submissions can be refused.
	Moderate(context context.Context, id, status string, moderatorID string, rejectReason *string) (bool, error)
}

// Cache holds the assembled latest view per market.
type Cache interface {
	GetLatest(context context.Context, key string) ([]*Price, bool)
	SetLatest(context context.Context, key string, prices []*Price, ttl time.Duration)
	InvalidateMarket(context context.Context, marketID string)
}
