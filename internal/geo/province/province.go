// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

// Package province manages the top level of the geographic hierarchy.
package province

import "time"

// Province represents a first-level administrative region.
type Province struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a paginated province search.
type Filter struct {
	Query string // substring match against name and code
}

// Global field names for validation
const (
	FieldName = "name"
	FieldCode = "code"
)
