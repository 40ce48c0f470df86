// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

// Package product manages the commodity catalog prices are recorded against.
package product

import "time"

// Product represents a priced commodity (e.g. "red onion, kg").
type Product struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Category  string     `json:"category"`
	Unit      string     `json:"unit"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Filter holds the parameters for a paginated product search.
type Filter struct {
	Category string
	Query    string
}

// Global field names for validation
const (
	FieldName     = "name"
	FieldCategory = "category"
	FieldUnit     = "unit"
)
