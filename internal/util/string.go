// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// UNICODE: Titles and outputs come from arbitrary task code. Normalising to
// NFC before measuring keeps "e" + combining accent and the precomposed rune
// the same width, and runewidth handles CJK and emoji columns.

// Normalize returns s in Unicode normalisation form C.
func Normalize(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// Width returns the number of terminal columns s occupies.
func Width(s string) int {
	return runewidth.StringWidth(Normalize(s))
}

// Truncate shortens s to at most maxWidth columns, appending an ellipsis
// when anything was cut. A non-positive maxWidth disables truncation.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}
	s = Normalize(s)
	if Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(Ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// FirstLine returns the text before the first newline, trimmed of a trailing
// carriage return.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, "\r")
}

// Indent returns the prefix for a row at the given tree depth.
func Indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat("  ", depth)
}
