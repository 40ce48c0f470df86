// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts the router's parameter extraction and common body decoding
patterns, keeping error handling consistent across all handlers.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/narkhlab/narkh/internal/platform/apperr"
	"github.com/narkhlab/narkh/internal/platform/ctxutil"
	"github.com/narkhlab/narkh/internal/platform/sec"
	"github.com/narkhlab/narkh/internal/platform/validate"
)

// DecodeJSON reads the request body into target.
// It returns [validate.ErrInvalidJSON] on any decoding failure.
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Principal extracts the authenticated user from the request context.
// Returns nil for anonymous requests.
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

// RequiredPrincipal ensures the request is authenticated.
//
// Returns apperr.Unauthorized for anonymous requests; the message matches the
// generic 401 used everywhere else so causes cannot be told apart.
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		return nil, apperr.Unauthorized("Unauthorized")
	}
	return principal, nil
}
