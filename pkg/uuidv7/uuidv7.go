// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// It is the primary key type across all Narkh tables. Time-sortable IDs keep
// PostgreSQL B-tree indexes append-friendly, avoiding the fragmentation that
// random UUIDv4 keys cause under write bursts.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable; entropy failure is
// an unrecoverable system-level condition.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}
