// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package auth

import (
	"context"
	"time"
)

// # User Data Access

// Filter narrows administrative user listings.
type Filter struct {
	// Role keeps only accounts holding the exact role ("" = all).
	Role string
	// ProvinceID keeps only accounts assigned to the province ("" = all).
	ProvinceID string
	// ActiveOnly drops deactivated accounts when true.
	ActiveOnly bool
}

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {
	// Create persists a brand-new account.
	Create(ctx context.Context, user *User) error

	// FindByID returns the account with the given id, active or not.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email, active or not.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List returns a page of accounts plus the unpaged total.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*User, int, error)

	// Update persists mutable fields: full name, avatar, role, region, active flag.
	Update(ctx context.Context, user *User) error

	// UpdatePassword replaces only the password hash.
	UpdatePassword(ctx context.Context, userID, newHash string) error
}

// # Volatile Data Access

// ResetGuard tracks consumed password-reset tokens.
//
// Reset tokens are stateless and signed, so without this guard a token could
// be replayed any number of times inside its TTL. The guard is best-effort
// volatile state: losing it only re-opens the replay window until expiry.
type ResetGuard interface {
	// Consume marks the token (by digest) as used.
	// It reports whether the token had already been consumed.
	Consume(ctx context.Context, tokenDigest string, ttl time.Duration) (alreadyUsed bool, err error)
}
