package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"greenmcp/internal/models"
	"greenmcp/internal/storage"
	"greenmcp/internal/util"
	"greenmcp/internal/vector"

	"github.com/google/uuid"
)

const progressEvery = 500

type Store interface {
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, c models.Chunk, vecLiteral string) error
}

type Auditor interface {
	Insert(ctx context.Context, rec storage.ImportRunRecord) error
}

// Opener yields a fresh reader over one source. Sources are opened lazily so
// a skipped import never touches them.
type Opener func() (io.ReadCloser, error)

func FileOpener(path string) Opener {
	return func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return f, nil
	}
}

type Stats struct {
	Written int  `json:"written"`
	Failed  int  `json:"failed"`
	Skipped bool `json:"skipped"`
}

type Loader struct {
	store   Store
	dim     int
	auditor Auditor
}

// NewLoader returns a loader that enforces dim components per embedding.
// With dim <= 0 the first accepted row fixes the dimension of the run.
func NewLoader(store Store, dim int) *Loader {
	return &Loader{store: store, dim: dim}
}

func (l *Loader) WithAuditor(a Auditor) *Loader {
	l.auditor = a
	return l
}

// Import runs Run and records the outcome under trigger. Audit failures are
// logged only.
func (l *Loader) Import(ctx context.Context, trigger string, metadata, chunks Opener) (Stats, error) {
	started := time.Now().UTC()
	stats, err := l.Run(ctx, metadata, chunks)
	if l.auditor == nil {
		return stats, err
	}
	rec := storage.ImportRunRecord{
		RunID:      uuid.NewString(),
		Trigger:    trigger,
		Status:     "completed",
		Written:    stats.Written,
		FailedRows: stats.Failed,
		StartedAt:  started,
	}
	switch {
	case err != nil:
		rec.Status = "failed"
		rec.Error = err.Error()
	case stats.Skipped:
		rec.Status = "skipped"
	}
	if aErr := l.auditor.Insert(ctx, rec); aErr != nil {
		log.Printf("import audit failed trigger=%s err=%v", trigger, aErr)
	}
	return stats, err
}

// Run imports both sources unless the store already holds rows. Failing
// chunk rows are logged and skipped; only an unreadable metadata source or
// an unreadable chunk source aborts the run.
func (l *Loader) Run(ctx context.Context, metadata, chunks Opener) (Stats, error) {
	existing, err := l.store.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count existing chunks: %w", err)
	}
	if existing > 0 {
		log.Printf("import skipped existing_rows=%d", existing)
		return Stats{Skipped: true}, nil
	}

	log.Printf("import starting")
	meta, err := loadMetadataFrom(metadata)
	if err != nil {
		return Stats{}, err
	}
	log.Printf("import metadata loaded entries=%d", len(meta))

	rc, err := chunks()
	if err != nil {
		return Stats{}, fmt.Errorf("open chunk source: %w", err)
	}
	defer rc.Close()

	stats, err := l.insertChunks(ctx, rc, meta)
	if err != nil {
		return stats, err
	}
	log.Printf("import finished written=%d failed=%d", stats.Written, stats.Failed)
	return stats, nil
}

func loadMetadataFrom(open Opener) (map[uuid.UUID]models.MetadataEntry, error) {
	rc, err := open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrMetadataSource, err)
	}
	defer rc.Close()
	return LoadMetadata(rc)
}

// LoadMetadata builds the id lookup table from a metadata source with a
// header row. Short rows are skipped; a malformed id or word count fails the
// whole load.
func LoadMetadata(r io.Reader) (map[uuid.UUID]models.MetadataEntry, error) {
	out := make(map[uuid.UUID]models.MetadataEntry)
	lines := newLineReader(r)
	for {
		line, lineNo, err := lines.next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read line %d: %v", util.ErrMetadataSource, lineNo, err)
		}
		if lineNo == 1 || strings.TrimSpace(line) == "" {
			continue
		}
		parts := SplitFields(line)
		if len(parts) < minMetaLen {
			log.Printf("metadata row skipped line=%d fields=%d", lineNo, len(parts))
			continue
		}
		id, err := uuid.Parse(cleanField(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: id: %v", util.ErrMetadataSource, lineNo, err)
		}
		wordCount, err := strconv.Atoi(cleanField(parts[5]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: word count: %v", util.ErrMetadataSource, lineNo, err)
		}
		out[id] = models.MetadataEntry{
			Filename:  parts[1],
			Title:     parts[2],
			Topic:     parts[3],
			WordCount: wordCount,
		}
	}
}

func (l *Loader) insertChunks(ctx context.Context, r io.Reader, meta map[uuid.UUID]models.MetadataEntry) (Stats, error) {
	var stats Stats
	dim := l.dim
	lines := newLineReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line, lineNo, err := lines.next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("read chunk source line %d: %w", lineNo, err)
		}
		if lineNo == 1 || strings.TrimSpace(line) == "" {
			continue
		}
		chunk, err := parseChunkRow(line, meta)
		if err == nil {
			err = checkDimension(&dim, len(chunk.Embedding))
		}
		if err == nil {
			err = l.store.Insert(ctx, chunk, vector.ToLiteral(chunk.Embedding))
		}
		if err != nil {
			stats.Failed++
			log.Printf("import row failed line=%d err=%v", lineNo, err)
			continue
		}
		stats.Written++
		if stats.Written%progressEvery == 0 {
			log.Printf("import progress written=%d", stats.Written)
		}
	}
}

func parseChunkRow(line string, meta map[uuid.UUID]models.MetadataEntry) (models.Chunk, error) {
	parts := SplitEmbeddingFields(line)
	if len(parts) < minChunkLen {
		return models.Chunk{}, fmt.Errorf("%w: %d fields, want at least %d", util.ErrMalformedRow, len(parts), minChunkLen)
	}
	id, err := uuid.Parse(cleanField(parts[0]))
	if err != nil {
		return models.Chunk{}, fmt.Errorf("%w: id: %v", util.ErrMalformedRow, err)
	}
	chunkIndex, err := strconv.Atoi(cleanField(parts[2]))
	if err != nil || chunkIndex < 0 {
		return models.Chunk{}, fmt.Errorf("%w: chunk index %q", util.ErrMalformedRow, cleanField(parts[2]))
	}
	vec, err := vector.ParseLiteral(cleanField(parts[4]))
	if err != nil {
		return models.Chunk{}, err
	}
	c := models.Chunk{
		ID:         id,
		SourceURL:  util.StripQuotes(parts[1]),
		ChunkIndex: chunkIndex,
		Content:    util.SanitizeContent(util.StripQuotes(parts[3])),
		Embedding:  vec,
	}
	if m, ok := meta[id]; ok {
		wc := m.WordCount
		c.Filename = m.Filename
		c.Title = m.Title
		c.Topic = m.Topic
		c.WordCount = &wc
	}
	return c, nil
}

// checkDimension locks *dim to n on first use when it is unset.
func checkDimension(dim *int, n int) error {
	if n == 0 {
		return fmt.Errorf("%w: empty embedding", util.ErrDimensionMismatch)
	}
	if *dim <= 0 {
		*dim = n
		return nil
	}
	if n != *dim {
		return fmt.Errorf("%w: got %d want %d", util.ErrDimensionMismatch, n, *dim)
	}
	return nil
}

func cleanField(s string) string {
	return strings.TrimSpace(util.StripQuotes(s))
}

type lineReader struct {
	br     *bufio.Reader
	lineNo int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReaderSize(r, 1<<16)}
}

// next returns the following line without its terminator. Lines of any
// length are supported; embedding rows easily exceed bufio.Scanner limits.
func (l *lineReader) next() (string, int, error) {
	line, err := l.br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", l.lineNo + 1, err
	}
	l.lineNo++
	return strings.TrimRight(line, "\r\n"), l.lineNo, nil
}
