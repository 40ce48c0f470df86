// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

// Package city manages the middle level of the geographic hierarchy.
package city

import "time"

// City represents a city or district inside a province.
type City struct {
	ID           string     `json:"id"`
	ProvinceID   string     `json:"province_id"`
	Name         string     `json:"name"`
	ProvinceName string     `json:"province_name,omitempty"` // joined on listing
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// Filter holds the parameters for a paginated city search.
type Filter struct {
	ProvinceID string
	Query      string
}

// Global field names for validation
const (
	FieldName       = "name"
	FieldProvinceID = "province_id"
)
