// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: Rune-aware truncation preserves multi-byte characters.
// These functions handle strings correctly regardless of character encoding,
// preventing mid-character truncation that would corrupt UTF-8 strings.

// TruncateRunes truncates a string to a maximum number of runes (characters).
// This is safe for UTF-8 strings as it counts characters, not bytes.
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateWidth truncates a string to a maximum display width.
// Double-width characters (CJK) count as 2 columns.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth > 3 {
		return runewidth.Truncate(s, maxWidth, "...")
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// StringWidth returns the display width of a string.
// Double-width characters (CJK) count as 2 columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// WrapWidth wraps text at word boundaries so no line exceeds the given
// display width. Words longer than the width are hard-broken.
// Existing newlines are preserved.
func WrapWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}

	var out strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(wrapLine(line, maxWidth))
	}
	return out.String()
}

// wrapLine wraps a single line (no embedded newlines) at word boundaries.
func wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var out strings.Builder
	width := 0
	for _, word := range strings.Fields(line) {
		w := runewidth.StringWidth(word)

		// Hard-break words that cannot fit on any line
		for w > maxWidth {
			head := runewidth.Truncate(word, maxWidth, "")
			if width > 0 {
				out.WriteByte('\n')
				width = 0
			}
			out.WriteString(head)
			out.WriteByte('\n')
			word = strings.TrimPrefix(word, head)
			w = runewidth.StringWidth(word)
		}

		if word == "" {
			continue
		}

		switch {
		case width == 0:
			out.WriteString(word)
			width = w
		case width+1+w <= maxWidth:
			out.WriteByte(' ')
			out.WriteString(word)
			width += 1 + w
		default:
			out.WriteByte('\n')
			out.WriteString(word)
			width = w
		}
	}
	return out.String()
}

// RuneLen returns the number of runes (characters) in a string.
// This is safer than len() for UTF-8 strings.
func RuneLen(s string) int {
	return len([]rune(s))
}
