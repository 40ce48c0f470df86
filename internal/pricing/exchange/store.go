// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package exchange

import "context"

// Repository is the persistent store for exchange-rate submissions.
type Repository interface {
	Create(context context.Context, r *ExchangeRate) error
	Get(context context.Context, id string) (*ExchangeRate, error)
	List(context context.Context, f Filter, limit, offset int) ([]*ExchangeRate, int, error)

	// ListApprovedByRecency returns approved quotes newest first, for the
	// latest-view dedup pass.
	ListApprovedByRecency(context context.Context, f LatestFilter) ([]*ExchangeRate, error)

	// Moderate flips a pending submission to approved or rejected. It reports
	// whether a pending row was actually transitioned.
	Moderate(context context.Context, id, status string, moderatorID string, rejectReason *string) (bool, error)
}
