// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

/*
Package exchange implements the crowdsourced currency exchange-rate pipeline.

It mirrors the price pipeline: pending submissions from collectors, moderator
approval, and a public deduplicated latest view keyed by
(base currency, quote currency, market).
*/
package exchange

import "time"

// Status values for an exchange-rate submission.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ExchangeRate represents one observed buy/sell quote at a market.
//
// Buy and Sell are minor units of the quote currency per whole unit of the
// base currency (e.g. base USD, quote AFN, buy 7050 = 70.50 AFN per USD).
type ExchangeRate struct {
	ID            string    `json:"id"`
	MarketID      string    `json:"market_id"`
	BaseCurrency  string    `json:"base_currency"`
	QuoteCurrency string    `json:"quote_currency"`
	Buy           int64     `json:"buy"`
	Sell          int64     `json:"sell"`
	Status        string    `json:"status"`
	RejectReason  *string   `json:"reject_reason,omitempty"`
	SubmittedBy   string    `json:"submitted_by"`
	ModeratedBy   *string   `json:"moderated_by,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Joined for listings.
	MarketName string `json:"market_name,omitempty"`
}

// Filter narrows the moderation listing.
type Filter struct {
	Status   string
	MarketID string
}

// LatestFilter narrows the public latest-rate view.
type LatestFilter struct {
	MarketID      string
	BaseCurrency  string
	QuoteCurrency string
}

type latestKey struct {
	base   string
	quote  string
	market string
}

// Dedup collapses a recency-ordered quote list to one entry per
// (base, quote, market) triple. Input must be ordered newest first.
func Dedup(ordered []*ExchangeRate) []*ExchangeRate {
	seen := make(map[latestKey]struct{}, len(ordered))
	latest := make([]*ExchangeRate, 0, len(ordered))

	for _, r := range ordered {
		key := latestKey{base: r.BaseCurrency, quote: r.QuoteCurrency, market: r.MarketID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		latest = append(latest, r)
	}

	return latest
}

// Global field names for validation
const (
	FieldMarketID      = "market_id"
	FieldBaseCurrency  = "base_currency"
	FieldQuoteCurrency = "quote_currency"
	FieldBuy           = "buy"
	FieldSell          = "sell"
	FieldReason        = "reason"
	FieldStatus        = "status"
)
