// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package middleware

import (
	"context"
	"net/http"

	"github.com/narkhlab/narkh/internal/platform/apperr"
	"github.com/narkhlab/narkh/internal/platform/constants"
	"github.com/narkhlab/narkh/internal/platform/ctxutil"
	"github.com/narkhlab/narkh/internal/platform/respond"
	"github.com/narkhlab/narkh/internal/platform/sec"
)

// TokenVerifier is the contract needed to verify session tokens.
//
// # Why an interface?
//
// It decouples the middleware from [sec.TokenService] so unit tests can
// inject a stub verifier without a real signing secret.
type TokenVerifier interface {
	Verify(tokenString string, expected sec.TokenPurpose) (*sec.Claims, error)
}

// PrincipalSource resolves a verified subject id to the live user record.
//
// Implementations must return an error for missing AND deactivated accounts;
// the middleware treats both identically.
type PrincipalSource interface {
	FindPrincipal(ctx context.Context, userID string) (*sec.Principal, error)
}

// Authenticate reads the access-token cookie and attaches the live user.
//
// # Flow
//
//  1. Read the accessToken cookie. Absent → proceed anonymous.
//  2. Verify it as a purpose=access token. Failure → proceed anonymous.
//  3. Resolve the subject id to an active user. Failure → proceed anonymous.
//  4. Attach the [*sec.Principal] to the request context.
//
// Every failure is swallowed into the anonymous outcome: a missing cookie, a
// forged token, an expired token, and a deleted user are indistinguishable to
// the client. Only guards like [RequireAuth] turn anonymity into a 401.
func Authenticate(verifier TokenVerifier, users PrincipalSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.AccessTokenCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := verifier.Verify(cookie.Value, sec.PurposeAccess)
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			// The live record wins over the token snapshot: handlers see the
			// current role and region, and deactivated users stay anonymous.
			principal, err := users.FindPrincipal(request.Context(), claims.UserID)
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks anonymous requests with a generic 401.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Unauthorized"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequirePermission blocks requests whose principal may not perform the action.
//
// It implies [RequireAuth]: anonymous requests get 401, authenticated requests
// without the permission get 403. Must run AFTER [Authenticate].
func RequirePermission(action sec.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized"))
				return
			}

			if !principal.Can(action) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
