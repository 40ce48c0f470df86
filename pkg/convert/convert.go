// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

// Package convert provides fault-tolerant type conversions for query-parameter
// parsing. Do not use it where malformed data must be distinguished from zero
// values; use strconv directly in that case.
package convert

import "strconv"

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {
	if s == "" {
		return false
	}
	v, _ := strconv.ParseBool(s)
	return v
}
