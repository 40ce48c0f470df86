// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narkhlab/narkh/internal/platform/apperr"
	"github.com/narkhlab/narkh/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Narkh", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_UUID checks the UUID format rule used for identifier fields.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"valid_v7", "0191d7a8-0000-7000-8000-000000000001", true},
		{"valid_uppercase", "0191D7A8-0000-7000-8000-000000000001", true},
		{"missing_hyphens", "0191d7a800007000800000000000001", false},
		{"not_a_uuid", "market-1", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.UUID("id", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Currency enforces three-letter uppercase ISO codes.
*/
func TestValidator_Currency(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"afn", "AFN", true},
		{"usd", "USD", true},
		{"lowercase", "usd", false},
		{"too_long", "USDT", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Currency("currency", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Positive rejects zero and negative amounts.
*/
func TestValidator_Positive(t *testing.T) {
	tests := []struct {
		name    string
		value   int64
		isValid bool
	}{
		{"positive", 2500, true},
		{"one", 1, true},
		{"zero", 0, false},
		{"negative", -10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Positive("amount", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf restricts a value to a closed set.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("kind", "bazaar", "bazaar", "exchange", "wholesale")
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.OneOf("kind", "mall", "bazaar", "exchange", "wholesale")
	assert.True(t, v.HasErrors())
}

/*
TestValidator_Lengths covers the MinLen/MaxLen rune counting.
*/
func TestValidator_Lengths(t *testing.T) {
	v := &validate.Validator{}
	v.MinLen("password", "12345", 6)
	assert.True(t, v.HasErrors())

	v = &validate.Validator{}
	v.MinLen("password", "123456", 6)
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.MaxLen("reason", "short enough", 500)
	assert.False(t, v.HasErrors())

	// Multibyte characters count as single runes.
	v = &validate.Validator{}
	v.MinLen("name", "کابل", 4)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chaining collects every failed field in one error.
*/
func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	v.Required("email", "").
		MinLen("password", "123", 6).
		Currency("currency", "afn")

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_Custom adds messages only when the condition holds.
*/
func TestValidator_Custom(t *testing.T) {
	v := &validate.Validator{}
	v.Custom("quote_currency", true, "Base and quote currencies must differ")
	assert.True(t, v.HasErrors())

	v = &validate.Validator{}
	v.Custom("quote_currency", false, "Base and quote currencies must differ")
	assert.False(t, v.HasErrors())
}
