package providers

import "testing"

func TestParseProviderRef(t *testing.T) {
	ref := ParseProviderRef(" ollama:mxbai-embed-large ")
	if ref.Name != "ollama" || ref.KeyAlias != "mxbai-embed-large" {
		t.Fatalf("unexpected parse result: %+v", ref)
	}
	if ref := ParseProviderRef("openai"); ref.Name != "openai" || ref.KeyAlias != "" {
		t.Fatalf("unexpected parse result: %+v", ref)
	}
	if ref := ParseProviderRef(""); ref.Name != "mock" {
		t.Fatalf("expected mock default, got %+v", ref)
	}
}
