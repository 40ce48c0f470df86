// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

// Package pointer provides small generic helpers for creating and
// dereferencing pointers, mostly used to build optional fields in
// update payloads and test fixtures.
package pointer

// To returns a pointer to the provided value.
// It is useful when a struct field expects a pointer to a literal
// (e.g. pointer.To("moderator")).
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
