// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

// Package market manages the leaf level of the geographic hierarchy: the
// physical places prices and exchange rates are collected at.
package market

import "time"

// Kind values for a market.
const (
	KindBazaar    = "bazaar"
	KindExchange  = "exchange"
	KindWholesale = "wholesale"
)

// Kinds lists every accepted market kind.
var Kinds = []string{KindBazaar, KindExchange, KindWholesale}

// Market represents a bazaar, exchange office, or wholesale point in a city.
type Market struct {
	ID        string     `json:"id"`
	CityID    string     `json:"city_id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Kind      string     `json:"kind"`
	CityName  string     `json:"city_name,omitempty"` // joined on listing
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Filter holds the parameters for a paginated market search.
type Filter struct {
	CityID string
	Kind   string
	Query  string
}

// Global field names for validation
const (
	FieldName   = "name"
	FieldCityID = "city_id"
	FieldKind   = "kind"
)
