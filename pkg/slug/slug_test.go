// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/narkhlab/narkh/pkg/slug"
)

/*
TestFrom covers the normalization pipeline for market and product names.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Mandawi Bazaar", "mandawi-bazaar"},
		{"accents", "Café Olé", "cafe-ole"},
		{"punctuation", "Red Onion (1 kg)", "red-onion-1-kg"},
		{"multiple_spaces", "Sarai   Shahzada", "sarai-shahzada"},
		{"leading_trailing", "  -Money Exchange-  ", "money-exchange"},
		{"already_slug", "green-tea-loose", "green-tea-loose"},
		{"empty", "", ""},
		{"symbols_only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
