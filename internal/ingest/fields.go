package ingest

import "strings"

const (
	fieldSep    = ','
	quoteChar   = '"'
	vecOpen     = '['
	vecClose    = ']'
	minMetaLen  = 6
	minChunkLen = 5
)

// SplitFields splits a delimited line on commas outside quoted spans. Quote
// characters toggle the quoted state and are dropped from the output.
// Escaped quotes ("") are not recognised: every quote toggles.
func SplitFields(line string) []string {
	fields := make([]string, 0, 8)
	var cur strings.Builder
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == quoteChar:
			inQuotes = !inQuotes
		case ch == fieldSep && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	return append(fields, cur.String())
}

// SplitEmbeddingFields is SplitFields plus bracket spans: from '[' to the
// next ']' every character, commas and quotes included, is copied into the
// current field verbatim.
func SplitEmbeddingFields(line string) []string {
	fields := make([]string, 0, 8)
	var cur strings.Builder
	inQuotes, inBrackets := false, false
	for _, ch := range line {
		switch {
		case ch == quoteChar && !inBrackets:
			inQuotes = !inQuotes
		case ch == vecOpen:
			inBrackets = true
			cur.WriteRune(ch)
		case ch == vecClose:
			inBrackets = false
			cur.WriteRune(ch)
		case ch == fieldSep && !inQuotes && !inBrackets:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	return append(fields, cur.String())
}
