package storage

import (
	"context"
	"fmt"
	"time"

	"greenmcp/internal/models"
)

type ImportRunRecord struct {
	RunID      string
	Trigger    string
	Status     string
	Written    int
	FailedRows int
	Error      string
	StartedAt  time.Time
}

type ImportRunRepo struct {
	db *DB
}

func NewImportRunRepo(db *DB) *ImportRunRepo {
	return &ImportRunRepo{db: db}
}

func (r *ImportRunRepo) Insert(ctx context.Context, rec ImportRunRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO import_runs(run_id, trigger, status, written, failed_rows, error, started_at)
VALUES (COALESCE(NULLIF($1,'')::uuid, gen_random_uuid()), $2, $3, $4, $5, NULLIF($6,''), $7)`,
		rec.RunID, rec.Trigger, rec.Status, rec.Written, rec.FailedRows, rec.Error, rec.StartedAt)
	if err != nil {
		return fmt.Errorf("insert import run: %w", err)
	}
	return nil
}

func (r *ImportRunRepo) ListRecent(ctx context.Context, limit int) ([]models.ImportRun, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT run_id::text, trigger, status, written, failed_rows, started_at, finished_at
FROM import_runs
ORDER BY started_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	defer rows.Close()
	out := make([]models.ImportRun, 0, limit)
	for rows.Next() {
		var run models.ImportRun
		if err := rows.Scan(&run.RunID, &run.Trigger, &run.Status, &run.Written, &run.FailedRows, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan import run: %w", err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate import runs: %w", err)
	}
	return out, nil
}
