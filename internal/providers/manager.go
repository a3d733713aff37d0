package providers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/time/rate"

	"greenmcp/internal/config"
	"greenmcp/internal/util"
)

// Manager owns the single embedding provider of the process. Every vector in
// the store must come from one model, so there is no failover between
// providers.
type Manager struct {
	ref      ProviderRef
	provider EmbeddingProvider
	dim      int
	limiter  *rate.Limiter
}

func NewManager(cfg config.Config) (*Manager, error) {
	ref := ParseProviderRef(cfg.EmbedProvider)
	p, err := buildProvider(ref, cfg.EmbedDim)
	if err != nil {
		return nil, err
	}
	return &Manager{ref: ref, provider: p, dim: cfg.EmbedDim, limiter: newLimiter(cfg.EmbedRPS, cfg.EmbedBurst)}, nil
}

// newLimiter returns nil, meaning unthrottled, when rps is not positive.
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

func (m *Manager) Ref() ProviderRef {
	return m.ref
}

// QueryEmbedder returns an embedder sharing the manager's request budget.
func (m *Manager) QueryEmbedder() *QueryEmbedder {
	return NewQueryEmbedder(m.provider, m.dim).WithLimiter(m.limiter)
}

func buildProvider(ref ProviderRef, dim int) (EmbeddingProvider, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(dim), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias), nil
	case "ollama":
		return NewOllamaEmbeddingProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", ref.Name)
	}
}

// QueryEmbedder embeds one search text per call and checks the result has
// the corpus dimension.
type QueryEmbedder struct {
	provider EmbeddingProvider
	dim      int
	limiter  *rate.Limiter
}

func NewQueryEmbedder(p EmbeddingProvider, dim int) *QueryEmbedder {
	return &QueryEmbedder{provider: p, dim: dim}
}

// WithLimiter throttles calls to the provider. A nil limiter disables it.
func (q *QueryEmbedder) WithLimiter(l *rate.Limiter) *QueryEmbedder {
	q.limiter = l
	return q
}

func (q *QueryEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if q.limiter != nil {
		if err := q.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: wait for request budget: %w", util.ErrEmbedderUnavailable, err)
		}
	}
	vecs, info, err := q.provider.Embed(ctx, EmbedRequest{
		Operation: "search_query",
		Inputs:    []string{text},
		Dimension: q.dim,
	})
	if err != nil {
		log.Printf("embed query failed provider=%s model=%s class=%s err=%v", info.Name, info.Model, ClassifyError(err), err)
		return nil, fmt.Errorf("%w: %w", util.ErrEmbedderUnavailable, err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("%w: %s returned %d vectors for one input", util.ErrEmbedderUnavailable, info.Name, len(vecs))
	}
	if q.dim > 0 && len(vecs[0]) != q.dim {
		return nil, fmt.Errorf("%w: %s/%s returned %d components, want %d", util.ErrDimensionMismatch, info.Name, info.Model, len(vecs[0]), q.dim)
	}
	return vecs[0], nil
}
