package providers

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/time/rate"

	"greenmcp/internal/config"
	"greenmcp/internal/util"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	out [][]float32
	err error
}

func (s stubProvider) Embed(context.Context, EmbedRequest) ([][]float32, ProviderInfo, error) {
	return s.out, ProviderInfo{Name: "stub", Model: "stub-1"}, s.err
}

func TestNewManagerRejectsUnknownProvider(t *testing.T) {
	_, err := NewManager(config.Config{EmbedProvider: "groq", EmbedDim: 4})
	require.ErrorContains(t, err, "unsupported embedding provider")
}

func TestManagerMockQueryEmbedder(t *testing.T) {
	m, err := NewManager(config.Config{EmbedProvider: "mock", EmbedDim: 16})
	require.NoError(t, err)
	require.Equal(t, "mock", m.Ref().Name)
	vec, err := m.QueryEmbedder().EmbedQuery(context.Background(), "Wohnungsbau")
	require.NoError(t, err)
	require.Len(t, vec, 16)
}

func TestQueryEmbedderWrapsProviderError(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")
	_, err := NewQueryEmbedder(stubProvider{err: boom}, 2).EmbedQuery(context.Background(), "q")
	require.ErrorIs(t, err, util.ErrEmbedderUnavailable)
	require.ErrorIs(t, err, boom)
}

func TestQueryEmbedderChecksDimension(t *testing.T) {
	_, err := NewQueryEmbedder(stubProvider{out: [][]float32{{1, 2, 3}}}, 2).EmbedQuery(context.Background(), "q")
	require.ErrorIs(t, err, util.ErrDimensionMismatch)

	_, err = NewQueryEmbedder(stubProvider{out: nil}, 2).EmbedQuery(context.Background(), "q")
	require.ErrorIs(t, err, util.ErrEmbedderUnavailable)

	vec, err := NewQueryEmbedder(stubProvider{out: [][]float32{{1, 2}}}, 2).EmbedQuery(context.Background(), "q")
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2}, vec)
}

func TestNewLimiterDisabledWithoutRate(t *testing.T) {
	require.Nil(t, newLimiter(0, 4))
	require.Nil(t, newLimiter(-1, 4))
	l := newLimiter(2, 0)
	require.NotNil(t, l)
	require.Equal(t, 1, l.Burst())
}

func TestQueryEmbedderLimiterHonoursContext(t *testing.T) {
	l := rate.NewLimiter(rate.Limit(0.001), 1)
	q := NewQueryEmbedder(stubProvider{out: [][]float32{{1, 2}}}, 2).WithLimiter(l)

	_, err := q.EmbedQuery(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = q.EmbedQuery(ctx, "second")
	require.ErrorIs(t, err, util.ErrEmbedderUnavailable)
}
