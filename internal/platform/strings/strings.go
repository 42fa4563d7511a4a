// Package strings holds text helpers shared across services
package strings

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeNFC returns s in NFC form with surrounding space trimmed
func NormalizeNFC(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// CollapseSpace folds runs of whitespace into single spaces
func CollapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// TruncateRunes caps s at n runes, never splitting a codepoint
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// IfEmpty returns def when xs is empty
func IfEmpty(xs, def []string) []string {
	if len(xs) == 0 {
		return def
	}
	return xs
}

// FirstNonEmpty returns the first non-blank candidate
func FirstNonEmpty(cands ...string) string {
	for _, c := range cands {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}
