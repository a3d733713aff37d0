// Package tools is the caller-facing boundary shared by the MCP server, the
// HTTP API and the CLI. It owns limit clamping and the tool descriptions.
package tools

import (
	"context"

	"greenmcp/internal/models"
)

const (
	DefaultLimit = 5
	MaxLimit     = 20
)

const (
	SearchChunksName         = "searchChunks"
	SearchWithinDocumentName = "searchWithinDocument"
	ListDocumentsName        = "listDocuments"
)

const (
	SearchChunksDescription = "Searches the resolution archive semantically. Returns the most relevant " +
		"passages with title, topic, content, source link and filename."
	SearchWithinDocumentDescription = "Searches for relevant passages inside one document (PDF file). Use it " +
		"when the user asks about a specific document; the filename may be given partially."
	ListDocumentsDescription = "Lists all searchable documents (PDF filenames). Use it to find out which " +
		"documents exist before searching within one."

	QueryParamDescription    = "the search query in natural language, e.g. 'climate protection' or 'education policy'"
	LimitParamDescription    = "number of results to return (1-20, default 5)"
	FilenameParamDescription = "filename of the document or part of it, e.g. 'Klimaschutz' or '2024-Wahlprogramm'"
)

type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.QueryResult, error)
	SearchWithin(ctx context.Context, filenamePattern, query string, limit int) ([]models.QueryResult, error)
	ListFilenames(ctx context.Context) ([]string, error)
}

// EffectiveLimit maps a requested limit to the one sent to the store: nil or
// non-positive becomes DefaultLimit, anything above MaxLimit becomes MaxLimit.
func EffectiveLimit(requested *int) int {
	if requested == nil || *requested < 1 {
		return DefaultLimit
	}
	return min(*requested, MaxLimit)
}

type Toolset struct {
	searcher Searcher
}

func New(searcher Searcher) *Toolset {
	return &Toolset{searcher: searcher}
}

func (t *Toolset) SearchChunks(ctx context.Context, query string, limit *int) ([]models.QueryResult, error) {
	return t.searcher.Search(ctx, query, EffectiveLimit(limit))
}

func (t *Toolset) SearchWithinDocument(ctx context.Context, filenamePattern, query string, limit *int) ([]models.QueryResult, error) {
	return t.searcher.SearchWithin(ctx, filenamePattern, query, EffectiveLimit(limit))
}

func (t *Toolset) ListDocuments(ctx context.Context) ([]string, error) {
	return t.searcher.ListFilenames(ctx)
}
