// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package sec

import "time"

// Principal is the live, store-resolved user attached to a request context.
//
// # Why not token claims?
//
// The authenticator resolves the verified subject id back to the user record,
// so downstream handlers always see the current role, region assignment, and
// active flag rather than a snapshot frozen at token issuance. The password
// hash is never carried, so a Principal is safe to serialize in API
// responses as-is.
type Principal struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       Role      `json:"role"`
	ProvinceID *string   `json:"province_id,omitempty"`
	MarketID   *string   `json:"market_id,omitempty"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Can reports whether the principal's role permits the action.
func (p *Principal) Can(action Action) bool {
	return Allowed(p.Role, action)
}

// Region returns the principal's province/market assignment as plain strings.
// Unassigned fields come back empty.
func (p *Principal) Region() (provinceID, marketID string) {
	if p.ProvinceID != nil {
		provinceID = *p.ProvinceID
	}
	if p.MarketID != nil {
		marketID = *p.MarketID
	}
	return provinceID, marketID
}
