package activities

import (
	"context"

	"greenmcp/internal/config"
	"greenmcp/internal/ingest"
)

type Importer interface {
	Import(ctx context.Context, trigger string, metadata, chunks ingest.Opener) (ingest.Stats, error)
}

type Activities struct {
	cfg      config.Config
	importer Importer
}

func New(cfg config.Config, importer Importer) *Activities {
	return &Activities{cfg: cfg, importer: importer}
}

// ImportCorpusActivity runs the ingestion pipeline on the worker host. Empty
// paths fall back to the worker's configured sources.
func (a *Activities) ImportCorpusActivity(ctx context.Context, in ImportCorpusInput) (ImportCorpusOutput, error) {
	metaPath := in.MetadataPath
	if metaPath == "" {
		metaPath = a.cfg.MetadataCSV
	}
	chunksPath := in.ChunksPath
	if chunksPath == "" {
		chunksPath = a.cfg.ChunksCSV
	}
	trigger := in.Trigger
	if trigger == "" {
		trigger = "temporal"
	}
	stats, err := a.importer.Import(ctx, trigger, ingest.FileOpener(metaPath), ingest.FileOpener(chunksPath))
	if err != nil {
		return ImportCorpusOutput{}, err
	}
	return ImportCorpusOutput{Written: stats.Written, Failed: stats.Failed, Skipped: stats.Skipped}, nil
}
