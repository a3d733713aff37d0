package vector

import (
	"errors"
	"testing"

	"greenmcp/internal/util"
)

func TestToLiteral(t *testing.T) {
	cases := map[string][]float32{
		"[]":            {},
		"[0.1,0.2,0.3]": {0.1, 0.2, 0.3},
		"[-1.5,0,2]":    {-1.5, 0, 2},
	}
	for want, in := range cases {
		if got := ToLiteral(in); got != want {
			t.Fatalf("ToLiteral(%v): got %q want %q", in, got, want)
		}
	}
	if got := ToLiteral(nil); got != "[]" {
		t.Fatalf("nil vector: got %q", got)
	}
}

func TestLiteralRoundTrip(t *testing.T) {
	large := make([]float32, 1024)
	for i := range large {
		large[i] = float32(i) * 0.001
	}
	vectors := [][]float32{
		{},
		{0.5},
		{-0.1, 0.2, -0.3},
		{1e-7, 3.4028235e38, -2.5e-12},
		large,
	}
	for _, v := range vectors {
		got, err := ParseLiteral(ToLiteral(v))
		if err != nil {
			t.Fatalf("parse %d-element literal: %v", len(v), err)
		}
		if len(got) != len(v) {
			t.Fatalf("length mismatch: got %d want %d", len(got), len(v))
		}
		for i := range v {
			if got[i] != v[i] {
				t.Fatalf("component %d: got %v want %v", i, got[i], v[i])
			}
		}
	}
}

func TestParseLiteralTrimsWhitespace(t *testing.T) {
	got, err := ParseLiteral(" [ 1 , -2.5 ,3e-2 ] ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float32{1, -2.5, 0.03}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("component %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestParseLiteralEmpty(t *testing.T) {
	for _, in := range []string{"[]", "[ ]", ""} {
		got, err := ParseLiteral(in)
		if err != nil {
			t.Fatalf("ParseLiteral(%q): %v", in, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("ParseLiteral(%q): expected empty non-nil slice, got %#v", in, got)
		}
	}
}

func TestParseLiteralRejectsGarbage(t *testing.T) {
	for _, in := range []string{"[0.1,abc]", "[0.1,,0.2]", "[1,2,]", "[NaN]", "[1,Inf]", "[1e39]"} {
		if _, err := ParseLiteral(in); !errors.Is(err, util.ErrInvalidVector) {
			t.Fatalf("ParseLiteral(%q): expected ErrInvalidVector, got %v", in, err)
		}
	}
}
