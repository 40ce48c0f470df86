// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration an access token (and its cookie) lives.
	// There is no revocation mechanism; expiry is the only cutoff.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a refresh token (and its cookie) lives.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// ResetTokenTTL is the duration a password-reset token remains valid.
	ResetTokenTTL = 1 * time.Hour

	// MinPasswordLength is the shortest accepted plaintext password.
	MinPasswordLength = 6
)
