package models

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is one unit of ingested, embedded, retrievable text. Title, Topic,
// Filename and WordCount stay empty/nil when no metadata matched at import.
type Chunk struct {
	ID         uuid.UUID `json:"id"`
	SourceURL  string    `json:"source_url"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `json:"content"`
	Title      string    `json:"title,omitempty"`
	Topic      string    `json:"topic,omitempty"`
	Filename   string    `json:"filename,omitempty"`
	WordCount  *int      `json:"word_count,omitempty"`
	Embedding  []float32 `json:"-"`
}

// MetadataEntry lives only for the duration of an import run.
type MetadataEntry struct {
	Filename  string
	Title     string
	Topic     string
	WordCount int
}

// QueryResult is the caller-facing projection of a Chunk.
type QueryResult struct {
	Title     string `json:"title"`
	Topic     string `json:"topic"`
	Content   string `json:"content"`
	SourceURL string `json:"sourceUrl"`
	Filename  string `json:"filename"`
}

func (c Chunk) Result() QueryResult {
	return QueryResult{
		Title:     c.Title,
		Topic:     c.Topic,
		Content:   c.Content,
		SourceURL: c.SourceURL,
		Filename:  c.Filename,
	}
}

type ImportRun struct {
	RunID      string    `json:"run_id"`
	Trigger    string    `json:"trigger"`
	Status     string    `json:"status"`
	Written    int       `json:"written"`
	FailedRows int       `json:"failed_rows"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
