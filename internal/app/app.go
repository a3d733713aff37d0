// Package app wires the storage, embedding and search components for the
// binaries under cmd/.
package app

import (
	"context"
	"fmt"
	"log"

	"greenmcp/internal/config"
	"greenmcp/internal/ingest"
	"greenmcp/internal/providers"
	"greenmcp/internal/storage"
	"greenmcp/internal/tools"
	"greenmcp/internal/vector"
)

type App struct {
	Cfg        config.Config
	DB         *storage.DB
	Chunks     *storage.ChunkRepo
	ImportRuns *storage.ImportRunRepo
	Providers  *providers.Manager
	Searcher   *vector.Searcher
	Tools      *tools.Toolset
	Loader     *ingest.Loader
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx, cfg.EmbedDim); err != nil {
		db.Close()
		return nil, err
	}
	pm, err := providers.NewManager(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}
	chunks := storage.NewChunkRepo(db)
	runs := storage.NewImportRunRepo(db)
	searcher := vector.NewSearcher(pm.QueryEmbedder(), chunks)
	return &App{
		Cfg:        cfg,
		DB:         db,
		Chunks:     chunks,
		ImportRuns: runs,
		Providers:  pm,
		Searcher:   searcher,
		Tools:      tools.New(searcher),
		Loader:     ingest.NewLoader(chunks, cfg.EmbedDim).WithAuditor(runs),
	}, nil
}

// ImportConfigured runs the pipeline over the configured CSV sources.
func (a *App) ImportConfigured(ctx context.Context, trigger string) (ingest.Stats, error) {
	stats, err := a.Loader.Import(ctx, trigger, ingest.FileOpener(a.Cfg.MetadataCSV), ingest.FileOpener(a.Cfg.ChunksCSV))
	if err != nil {
		return stats, fmt.Errorf("import %s: %w", trigger, err)
	}
	return stats, nil
}

// ImportOnBoot runs the configured import when enabled. Failures are logged
// and the process keeps serving whatever the store already holds.
func (a *App) ImportOnBoot(ctx context.Context) {
	if !a.Cfg.ImportOnBoot {
		return
	}
	if _, err := a.ImportConfigured(ctx, "boot"); err != nil {
		log.Printf("boot import failed err=%v", err)
	}
}

func (a *App) Close() {
	if a != nil {
		a.DB.Close()
	}
}
