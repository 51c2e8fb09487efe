// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import "unicode/utf8"

// Describe renders err as "action: message" for display, with secrets masked.
// The result is cut to limit runes (plus "...") when limit is positive.
func Describe(action string, err error, limit int) string {
	if err == nil {
		return ""
	}
	s := Mask(err.Error())
	if action != "" {
		s = action + ": " + s
	}
	if limit > 0 && utf8.RuneCountInString(s) > limit {
		s = string([]rune(s)[:limit]) + "..."
	}
	return s
}
