// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package report

import "context"

type Repository interface {
	Create(context context.Context, r *Report) error
	Get(context context.Context, id string) (*Report, error)
	List(context context.Context, f Filter, limit, offset int) ([]*Report, int, error)

	// Close moves an open report to resolved or dismissed. It reports whether
	// an open row was actually transitioned.
	Close(context context.Context, id, status, resolverID string) (bool, error)
}
