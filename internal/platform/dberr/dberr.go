// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

// Package dberr bridges low-level database errors and application errors.
//
// Repositories wrap every pgx error through [Wrap] so that storage details
// (SQLSTATEs, query text) never leak past the storage layer.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/narkhlab/narkh/internal/platform/apperr"
)

// ErrNotFound is the standard error for a query that matched no rows.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap classifies a database error into a meaningful [apperr.AppError].
//
// The action string names the failed operation for server-side logs; it is
// never shown to clients.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.Validation("Referenced resource does not exist")
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
