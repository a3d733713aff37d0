package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAIEmbedMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GREENMCP_OPENAI_KEY_TEAM", "")
	_, _, err := NewOpenAIProvider("team").Embed(context.Background(), EmbedRequest{Inputs: []string{"x"}})
	require.ErrorContains(t, err, "key missing")
}

func TestOpenAIEmbedOrdersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.EqualValues(t, 2, body["dimensions"])
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{"index": 1, "embedding": []float32{3, 4}},
			{"index": 0, "embedding": []float32{1, 2}},
		}})
	}))
	defer srv.Close()
	t.Setenv("GREENMCP_OPENAI_BASE_URL", srv.URL)
	t.Setenv("GREENMCP_OPENAI_KEY_TEAM", "sk-test")

	out, info, err := NewOpenAIProvider("team").Embed(context.Background(), EmbedRequest{Inputs: []string{"a", "b"}, Dimension: 2})
	require.NoError(t, err)
	require.Equal(t, "openai", info.Name)
	require.Equal(t, [][]float32{{1, 2}, {3, 4}}, out)
}
