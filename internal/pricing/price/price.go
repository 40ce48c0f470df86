// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

/*
Package price implements the crowdsourced commodity price pipeline.

# Lifecycle

A collector submits a price observation for a (product, market) pair. The
submission enters status "pending" and is invisible to the public until a
moderator approves it. Rejected submissions keep a reason and never surface.

# Latest Listing

The public read surface is the deduplicated "latest" view: for every
(product, market) composite key only the most recently recorded approved
observation is returned. Deduplication happens in request-scoped memory over
a recency-ordered result set; the assembled view is cached in Redis per
market and invalidated whenever a moderation decision lands.
*/
package price

import "time"

// Status values for a price submission.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Price represents one crowdsourced price observation.
//
// Amount is in minor currency units (e.g. 1250 = 12.50 AFN) to keep the
// pipeline free of floating-point drift.
type Price struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	MarketID     string    `json:"market_id"`
	Amount       int64     `json:"amount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	Note         *string   `json:"note,omitempty"`
	RejectReason *string   `json:"reject_reason,omitempty"`
	SubmittedBy  string    `json:"submitted_by"`
	ModeratedBy  *string   `json:"moderated_by,omitempty"`
	RecordedAt   time.Time `json:"recorded_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Joined for listings.
	ProductName string `json:"product_name,omitempty"`
	MarketName  string `json:"market_name,omitempty"`
}

// Filter narrows the moderation listing.
type Filter struct {
	Status    string
	MarketID  string
	ProductID string
}

// LatestFilter narrows the public latest-price view.
type LatestFilter struct {
	ProvinceID string
	MarketID   string
	ProductID  string
}

// latestKey is the composite dedup key of the latest view.
type latestKey struct {
	productID string
	marketID  string
}

// Dedup collapses a recency-ordered observation list to one entry per
// (product, market) pair.
//
// Input MUST be ordered newest first; the first occurrence of each key wins
// and everything after it is dropped. The bookkeeping map is request-scoped
// and discarded with the call.
func Dedup(ordered []*Price) []*Price {
	seen := make(map[latestKey]struct{}, len(ordered))
	latest := make([]*Price, 0, len(ordered))

	for _, p := range ordered {
		key := latestKey{productID: p.ProductID, marketID: p.MarketID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		latest = append(latest, p)
	}

	return latest
}

// Global field names for validation
const (
	FieldProductID  = "product_id"
	FieldMarketID   = "market_id"
	FieldAmount     = "amount"
	FieldCurrency   = "currency"
	FieldNote       = "note"
	FieldReason     = "reason"
	FieldStatus     = "status"
	FieldProvinceID = "province_id"
)
