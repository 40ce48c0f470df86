// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys shared between
the transport, domain, and infrastructure layers.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer and session cookie configuration.

Using this package keeps magic strings and magic numbers out of business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "narkh-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in every Narkh token.
	AuthIssuer = "narkh.app"

	// AccessTokenCookieName stores the short-lived session token.
	AccessTokenCookieName = "accessToken"

	// RefreshTokenCookieName stores the long-lived refresh token.
	RefreshTokenCookieName = "refreshToken"

	// SessionCookiePath is the path both session cookies are scoped to.
	// The access cookie must reach every /api route, so it is root-scoped.
	SessionCookiePath = "/"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldSuccess = "success"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldUser    = "user"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaUsers      = "users"
	SchemaGeo        = "geo"
	SchemaCatalog    = "catalog"
	SchemaPricing    = "pricing"
	SchemaModeration = "moderation"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixResetUsed marks a password-reset token as already consumed.
	RedisPrefixResetUsed = "auth:reset_used:"

	// RedisPrefixLatestPrices caches the deduplicated latest price list per market.
	RedisPrefixLatestPrices = "pricing:latest:"
)
