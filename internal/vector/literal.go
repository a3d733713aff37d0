package vector

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"greenmcp/internal/util"
)

// ToLiteral renders v in the bracketed form pgvector accepts for a ::vector
// cast. Each component uses the shortest float32 representation, so
// ParseLiteral(ToLiteral(v)) returns v exactly.
func ToLiteral(v []float32) string {
	var b strings.Builder
	b.Grow(len(v)*10 + 2)
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(x), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// ParseLiteral is the inverse of ToLiteral. It also accepts whitespace
// around components, as emitted by pgvector's text output and CSV exports.
func ParseLiteral(s string) ([]float32, error) {
	body := strings.TrimSpace(s)
	body = strings.TrimPrefix(body, "[")
	body = strings.TrimSuffix(body, "]")
	if strings.TrimSpace(body) == "" {
		return []float32{}, nil
	}
	parts := strings.Split(body, ",")
	out := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: component %d %q", util.ErrInvalidVector, i, strings.TrimSpace(p))
		}
		out[i] = float32(f)
	}
	return out, nil
}
