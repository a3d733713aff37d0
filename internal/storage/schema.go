package storage

import (
	"context"
	"fmt"
)

// EnsureSchema creates the pgvector extension and the tables used by the
// chunk store and import audit. dim fixes the width of the embedding column.
//
// The embedding column has no ANN index: nearest-neighbour queries are exact
// scans, so a filename filter always sees every matching row. An HNSW index
// would filter after its ef_search candidates and drop matches. Filename
// containment uses a trigram index, which ILIKE '%p%' can use.
func (d *DB) EnsureSchema(ctx context.Context, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("ensure schema: embedding dimension must be positive, got %d", dim)
	}
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS chunks (
  id uuid PRIMARY KEY,
  source_url text,
  chunk_index integer,
  content text,
  title text,
  topic text,
  filename text,
  word_count integer,
  embedding vector(%d)
)`, dim),
		`DROP INDEX IF EXISTS chunks_embedding_hnsw`,
		`DROP INDEX IF EXISTS chunks_filename_idx`,
		`CREATE INDEX IF NOT EXISTS chunks_filename_trgm ON chunks USING gin (filename gin_trgm_ops)`,
		`
CREATE TABLE IF NOT EXISTS import_runs (
  run_id uuid PRIMARY KEY,
  trigger text NOT NULL,
  status text NOT NULL,
  written integer NOT NULL DEFAULT 0,
  failed_rows integer NOT NULL DEFAULT 0,
  error text,
  started_at timestamptz NOT NULL,
  finished_at timestamptz NOT NULL DEFAULT now()
)`,
	}
	for _, stmt := range stmts {
		if _, err := d.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
