package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveOllamaEmbedModel_Default(t *testing.T) {
	t.Setenv("GREENMCP_OLLAMA_EMBED_MODEL", "")
	if got := resolveOllamaEmbedModel(""); got != "mxbai-embed-large" {
		t.Fatalf("expected default mxbai-embed-large, got %q", got)
	}
	if got := resolveOllamaEmbedModel("bge"); got != "bge-m3" {
		t.Fatalf("expected bge-m3, got %q", got)
	}
	if got := resolveOllamaEmbedModel("nomic-embed-text"); got != "nomic-embed-text" {
		t.Fatalf("expected direct model, got %q", got)
	}
}

func TestOllamaEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embeddings", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "mxbai-embed-large", body["model"])
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{0.25, -0.5}})
	}))
	defer srv.Close()
	t.Setenv("GREENMCP_OLLAMA_BASE_URL", srv.URL+"/")
	t.Setenv("GREENMCP_OLLAMA_EMBED_MODEL", "")

	out, info, err := NewOllamaEmbeddingProvider("").Embed(context.Background(), EmbedRequest{Inputs: []string{"Radverkehr"}})
	require.NoError(t, err)
	require.Equal(t, "ollama", info.Name)
	require.Equal(t, [][]float32{{0.25, -0.5}}, out)
}

func TestOllamaEmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	t.Setenv("GREENMCP_OLLAMA_BASE_URL", srv.URL)

	_, _, err := NewOllamaEmbeddingProvider("").Embed(context.Background(), EmbedRequest{Inputs: []string{"x"}})
	require.ErrorContains(t, err, "503")
}
