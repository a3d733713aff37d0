package vector

import (
	"context"
	"fmt"

	"greenmcp/internal/models"
)

type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// ChunkStore ranks by vector distance on the server side. Results come back
// nearest first and are never re-sorted here.
type ChunkStore interface {
	NearestByVector(ctx context.Context, vecLiteral string, limit int) ([]models.Chunk, error)
	NearestByVectorAndFilename(ctx context.Context, pattern, vecLiteral string, limit int) ([]models.Chunk, error)
	DistinctFilenames(ctx context.Context) ([]string, error)
}

// Searcher holds no per-call state and is safe for concurrent use.
type Searcher struct {
	embedder Embedder
	store    ChunkStore
}

func NewSearcher(embedder Embedder, store ChunkStore) *Searcher {
	return &Searcher{embedder: embedder, store: store}
}

// Search returns the limit chunks nearest to query. limit is passed through
// unchanged; clamping belongs to the caller-facing layer.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]models.QueryResult, error) {
	vecLiteral, err := s.queryLiteral(ctx, query)
	if err != nil {
		return nil, err
	}
	chunks, err := s.store.NearestByVector(ctx, vecLiteral, limit)
	if err != nil {
		return nil, fmt.Errorf("nearest chunks: %w", err)
	}
	return project(chunks), nil
}

// SearchWithin restricts Search to chunks whose filename contains
// filenamePattern, ignoring case.
func (s *Searcher) SearchWithin(ctx context.Context, filenamePattern, query string, limit int) ([]models.QueryResult, error) {
	vecLiteral, err := s.queryLiteral(ctx, query)
	if err != nil {
		return nil, err
	}
	chunks, err := s.store.NearestByVectorAndFilename(ctx, ContainsPattern(filenamePattern), vecLiteral, limit)
	if err != nil {
		return nil, fmt.Errorf("nearest chunks in %q: %w", filenamePattern, err)
	}
	return project(chunks), nil
}

func (s *Searcher) ListFilenames(ctx context.Context) ([]string, error) {
	names, err := s.store.DistinctFilenames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list filenames: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// ContainsPattern wraps p in ILIKE wildcards. Wildcards already inside p are
// left as they are.
func ContainsPattern(p string) string {
	return "%" + p + "%"
}

func (s *Searcher) queryLiteral(ctx context.Context, query string) (string, error) {
	vec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}
	return ToLiteral(vec), nil
}

func project(chunks []models.Chunk) []models.QueryResult {
	out := make([]models.QueryResult, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, c.Result())
	}
	return out
}
