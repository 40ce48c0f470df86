// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, token
// signing, the role/permission table) from domain logic. It is constructed
// once at startup with the process-wide signing secret and injected into the
// application layer; nothing here holds mutable state after construction.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure: bad signature,
// malformed token, wrong issuer, wrong purpose, or expiry. Callers must not
// distinguish the causes; the collapse ensures the API never
// discloses whether a token was forged, expired, or simply absent.
var ErrInvalidToken = errors.New("sec: invalid token")

// minSecretLength is the minimum HMAC secret size accepted at startup.
// Anything shorter than 32 bytes weakens HS256 below its design strength.
const minSecretLength = 32

// # Token Purposes

// TokenPurpose scopes a signed token to exactly one trust domain.
//
// # Why a purpose claim?
//
// Access, refresh, and password-reset tokens share the same signer and secret.
// Without a strictly-checked purpose claim, a leaked refresh token could be
// replayed as an access token (or a session token as a reset token). Verify
// rejects any token whose purpose does not match the caller's expectation.
type TokenPurpose string

const (
	// PurposeAccess marks short-lived tokens that authenticate requests.
	PurposeAccess TokenPurpose = "access"

	// PurposeRefresh marks long-lived tokens used only to mint access tokens.
	PurposeRefresh TokenPurpose = "refresh"

	// PurposeReset marks single-flow tokens for the password recovery path.
	PurposeReset TokenPurpose = "reset"
)

// # Claims

// Identity is the user snapshot embedded into every signed token.
//
// Region assignment (province, market) rides along so that collectors can be
// scoped without a store read on every request. The snapshot is frozen at
// issue time: a role change only takes effect after re-authentication or a
// refresh-token reissue.
type Identity struct {
	UserID     string
	Email      string
	Role       string
	ProvinceID string
	MarketID   string
}

// Claims is the payload embedded inside a Narkh token.
//
// Custom claim names are abbreviated to keep the token compact, since both
// session cookies carry one on every request.
type Claims struct {
	jwt.RegisteredClaims

	UserID     string       `json:"uid"`
	Email      string       `json:"eml"`
	Role       string       `json:"rol"`
	ProvinceID string       `json:"prv,omitempty"`
	MarketID   string       `json:"mkt,omitempty"`
	Purpose    TokenPurpose `json:"pur"`
}

// Identity reconstructs the embedded user snapshot from verified claims.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:     c.UserID,
		Email:      c.Email,
		Role:       c.Role,
		ProvinceID: c.ProvinceID,
		MarketID:   c.MarketID,
	}
}

// # Token Service

// TokenService signs and verifies HS256 tokens with a process-wide secret.
//
// Tokens are stateless: nothing is persisted server-side and there is no
// revocation list. Validity is purely a function of signature and expiry at
// verification time. This is an accepted limitation: compromise of a token
// cannot be undone before its natural expiry, which is why access TTLs stay
// short.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService constructs a [TokenService] from the injected secret.
//
// The secret comes from configuration at process start; no ambient global
// state is read here.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("sec: signing secret must be at least %d bytes", minSecretLength)
	}
	if issuer == "" {
		return nil, errors.New("sec: token issuer is required")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// Sign produces a signed token for the given identity and purpose.
//
// The absolute expiry is computed as issue-time + timeToLive.
func (service *TokenService) Sign(identity Identity, purpose TokenPurpose, timeToLive time.Duration) (string, error) {
	if timeToLive <= 0 {
		return "", errors.New("sec: token ttl must be positive")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(timeToLive)),
		},
		UserID:     identity.UserID,
		Email:      identity.Email,
		Role:       identity.Role,
		ProvinceID: identity.ProvinceID,
		MarketID:   identity.MarketID,
		Purpose:    purpose,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature, issuer, expiry, and purpose of a token string.
//
// On success it returns the original claims plus issue/expiry timestamps.
// Every failure mode collapses into [ErrInvalidToken].
func (service *TokenService) Verify(tokenString string, expected TokenPurpose) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return service.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Issuer != service.issuer {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.Subject != claims.UserID {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != expected {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
