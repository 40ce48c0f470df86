// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// Per-request values (authenticated principal, request ID, logger) are stored
// under keys of a private, unexported type so that no third-party package can
// collide with them, even when it uses an identical string value.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyPrincipal is the context key for the authenticated user ([sec.Principal]).
	KeyPrincipal key = "principal"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
