// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

/*
Package auth implements the user identity and session layer of Narkh.

It defines the User entity and the logic for registration, cookie-based
sessions (access + refresh tokens), password recovery, and administrative
account management.

# Architecture

  - Service: orchestrates the business rules (login, refresh, reset).
  - Repository: abstracted Postgres access for accounts.
  - Security: delegated to internal/platform/sec (bcrypt, signed tokens,
    role/permission table).

Sessions are stateless: both cookies carry signed tokens, nothing is stored
server-side, and logout is purely a client-side cookie clear.
*/
package auth

import (
	"time"

	"github.com/narkhlab/narkh/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account on the Narkh platform.
//
// Accounts are never hard-deleted; deactivation flips IsActive and the
// authenticator stops resolving the account from that point on.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role  `json:"role"`
	ProvinceID   *string   `json:"province_id,omitempty"`
	MarketID     *string   `json:"market_id,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity returns the token snapshot signed into session tokens.
func (u *User) Identity() sec.Identity {
	identity := sec.Identity{
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
	}
	if u.ProvinceID != nil {
		identity.ProvinceID = *u.ProvinceID
	}
	if u.MarketID != nil {
		identity.MarketID = *u.MarketID
	}
	return identity
}

// Principal projects the live record into the context-safe view handlers see.
func (u *User) Principal() *sec.Principal {
	return &sec.Principal{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		ProvinceID: u.ProvinceID,
		MarketID:   u.MarketID,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldEmail           = "email"
	FieldFullName        = "full_name"
	FieldPassword        = "password"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldRole            = "role"
	FieldProvinceID      = "province_id"
	FieldMarketID        = "market_id"
	FieldAvatarURL       = "avatar_url"
	FieldUser            = "user"
	FieldMessage         = "message"
)
