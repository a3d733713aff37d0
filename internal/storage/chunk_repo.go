package storage

import (
	"context"
	"errors"
	"fmt"

	"greenmcp/internal/models"
	"greenmcp/internal/vector"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrChunkNotFound = errors.New("chunk not found")

const chunkColumns = `id::text, COALESCE(source_url, ''), COALESCE(chunk_index, 0), COALESCE(content, ''),
       COALESCE(title, ''), COALESCE(topic, ''), COALESCE(filename, ''), word_count`

type ChunkRepo struct {
	db *DB
}

func NewChunkRepo(db *DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

func (r *ChunkRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

// Insert writes one chunk. vecLiteral is cast to the vector column on the
// server; a duplicate id fails with the primary key violation.
func (r *ChunkRepo) Insert(ctx context.Context, c models.Chunk, vecLiteral string) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO chunks (id, source_url, chunk_index, content, title, topic, filename, word_count, embedding)
VALUES ($1::uuid, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9::vector)`,
		c.ID.String(), c.SourceURL, c.ChunkIndex, c.Content, c.Title, c.Topic, c.Filename, c.WordCount, vecLiteral,
	)
	if err != nil {
		return fmt.Errorf("insert chunk %s: %w", c.ID, err)
	}
	return nil
}

func (r *ChunkRepo) NearestByVector(ctx context.Context, vecLiteral string, limit int) ([]models.Chunk, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT `+chunkColumns+`
FROM chunks
ORDER BY embedding <=> $1::vector
LIMIT $2`, vecLiteral, limit)
	if err != nil {
		return nil, fmt.Errorf("query nearest chunks: %w", err)
	}
	return scanChunks(rows, limit)
}

// NearestByVectorAndFilename expects pattern in ILIKE form, e.g. "%name%".
func (r *ChunkRepo) NearestByVectorAndFilename(ctx context.Context, pattern, vecLiteral string, limit int) ([]models.Chunk, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT `+chunkColumns+`
FROM chunks
WHERE filename ILIKE $1
ORDER BY embedding <=> $2::vector
LIMIT $3`, pattern, vecLiteral, limit)
	if err != nil {
		return nil, fmt.Errorf("query nearest chunks by filename: %w", err)
	}
	return scanChunks(rows, limit)
}

func (r *ChunkRepo) DistinctFilenames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT DISTINCT filename
FROM chunks
WHERE filename IS NOT NULL
ORDER BY filename`)
	if err != nil {
		return nil, fmt.Errorf("list filenames: %w", err)
	}
	defer rows.Close()
	out := make([]string, 0, 32)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan filename: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filenames: %w", err)
	}
	return out, nil
}

// Get loads one chunk including its embedding.
func (r *ChunkRepo) Get(ctx context.Context, id uuid.UUID) (models.Chunk, error) {
	var (
		c      models.Chunk
		rawID  string
		rawVec *string
	)
	err := r.db.Pool.QueryRow(ctx, `
SELECT `+chunkColumns+`, embedding::text
FROM chunks
WHERE id = $1::uuid`, id.String()).Scan(
		&rawID, &c.SourceURL, &c.ChunkIndex, &c.Content, &c.Title, &c.Topic, &c.Filename, &c.WordCount, &rawVec,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Chunk{}, fmt.Errorf("%w: %s", ErrChunkNotFound, id)
	}
	if err != nil {
		return models.Chunk{}, fmt.Errorf("get chunk %s: %w", id, err)
	}
	if c.ID, err = uuid.Parse(rawID); err != nil {
		return models.Chunk{}, fmt.Errorf("parse chunk id %q: %w", rawID, err)
	}
	if rawVec != nil {
		if c.Embedding, err = vector.ParseLiteral(*rawVec); err != nil {
			return models.Chunk{}, fmt.Errorf("decode embedding of chunk %s: %w", id, err)
		}
	}
	return c, nil
}

// Reset empties the chunk table so a fresh import can run.
func (r *ChunkRepo) Reset(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, `TRUNCATE TABLE chunks`); err != nil {
		return fmt.Errorf("truncate chunks: %w", err)
	}
	return nil
}

func scanChunks(rows pgx.Rows, capHint int) ([]models.Chunk, error) {
	defer rows.Close()
	if capHint <= 0 {
		capHint = 8
	}
	out := make([]models.Chunk, 0, capHint)
	for rows.Next() {
		var (
			c     models.Chunk
			rawID string
		)
		if err := rows.Scan(&rawID, &c.SourceURL, &c.ChunkIndex, &c.Content, &c.Title, &c.Topic, &c.Filename, &c.WordCount); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse chunk id %q: %w", rawID, err)
		}
		c.ID = id
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks: %w", err)
	}
	return out, nil
}
