package util

import (
	"strings"
	"unicode/utf8"
)

// SanitizeContent prepares chunk text for a Postgres text column: NUL and
// other C0 controls are dropped (tab, CR and LF survive) and invalid UTF-8
// sequences are replaced.
func SanitizeContent(s string) string {
	if s == "" {
		return s
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n', r == '\r', r == '\t':
			return r
		case r < 0x20, r == 0x7f:
			return -1
		}
		return r
	}, s)
}

// StripQuotes removes every double quote from a field. Source files quote
// whole fields and never escape quotes inside them.
func StripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
