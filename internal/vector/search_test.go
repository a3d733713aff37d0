package vector

import (
	"context"
	"errors"
	"testing"

	"greenmcp/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	mock.Mock
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	args := f.Called(ctx, text)
	v, _ := args.Get(0).([]float32)
	return v, args.Error(1)
}

type fakeStore struct {
	mock.Mock
}

func (f *fakeStore) NearestByVector(ctx context.Context, vecLiteral string, limit int) ([]models.Chunk, error) {
	args := f.Called(ctx, vecLiteral, limit)
	c, _ := args.Get(0).([]models.Chunk)
	return c, args.Error(1)
}

func (f *fakeStore) NearestByVectorAndFilename(ctx context.Context, pattern, vecLiteral string, limit int) ([]models.Chunk, error) {
	args := f.Called(ctx, pattern, vecLiteral, limit)
	c, _ := args.Get(0).([]models.Chunk)
	return c, args.Error(1)
}

func (f *fakeStore) DistinctFilenames(ctx context.Context) ([]string, error) {
	args := f.Called(ctx)
	n, _ := args.Get(0).([]string)
	return n, args.Error(1)
}

func klimaChunk(title, filename string) models.Chunk {
	wc := 50
	return models.Chunk{
		SourceURL:  "https://example.com/" + filename,
		ChunkIndex: 0,
		Content:    "Inhalt zu " + title,
		Title:      title,
		Topic:      "Umwelt",
		Filename:   filename,
		WordCount:  &wc,
		Embedding:  []float32{0.1, 0.2},
	}
}

func TestSearchPreservesStoreOrder(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{}
	store := &fakeStore{}
	emb.On("EmbedQuery", ctx, "Klimaschutz").Return([]float32{0.1, 0.2, 0.3}, nil)
	store.On("NearestByVector", ctx, "[0.1,0.2,0.3]", 5).Return([]models.Chunk{
		klimaChunk("B", "b.pdf"),
		klimaChunk("A", "a.pdf"),
	}, nil)

	got, err := NewSearcher(emb, store).Search(ctx, "Klimaschutz", 5)
	require.NoError(t, err)
	require.Equal(t, []models.QueryResult{
		{Title: "B", Topic: "Umwelt", Content: "Inhalt zu B", SourceURL: "https://example.com/b.pdf", Filename: "b.pdf"},
		{Title: "A", Topic: "Umwelt", Content: "Inhalt zu A", SourceURL: "https://example.com/a.pdf", Filename: "a.pdf"},
	}, got)
	emb.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestSearchEmptyStoreReturnsEmptyList(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{}
	store := &fakeStore{}
	emb.On("EmbedQuery", ctx, "q").Return([]float32{1}, nil)
	store.On("NearestByVector", ctx, "[1]", 5).Return(nil, nil)

	got, err := NewSearcher(emb, store).Search(ctx, "q", 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSearchEmbedderFailurePropagates(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{}
	store := &fakeStore{}
	boom := errors.New("model offline")
	emb.On("EmbedQuery", ctx, "q").Return(nil, boom)

	got, err := NewSearcher(emb, store).Search(ctx, "q", 5)
	require.ErrorIs(t, err, boom)
	require.Nil(t, got)
	store.AssertNotCalled(t, "NearestByVector", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchStoreFailurePropagates(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{}
	store := &fakeStore{}
	boom := errors.New("connection reset")
	emb.On("EmbedQuery", ctx, "q").Return([]float32{1}, nil)
	store.On("NearestByVector", ctx, "[1]", 3).Return(nil, boom)

	got, err := NewSearcher(emb, store).Search(ctx, "q", 3)
	require.ErrorIs(t, err, boom)
	require.Nil(t, got)
}

func TestSearchWithinWrapsPatternInWildcards(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{}
	store := &fakeStore{}
	emb.On("EmbedQuery", ctx, "Radwege").Return([]float32{0.5}, nil)
	store.On("NearestByVectorAndFilename", ctx, "%klimaschutz%", "[0.5]", 5).
		Return([]models.Chunk{klimaChunk("K", "Klimaschutz-2024.pdf")}, nil)

	got, err := NewSearcher(emb, store).SearchWithin(ctx, "klimaschutz", "Radwege", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Klimaschutz-2024.pdf", got[0].Filename)
	store.AssertExpectations(t)
}

func TestSearchWithinEmbedderFailure(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{}
	store := &fakeStore{}
	emb.On("EmbedQuery", ctx, "q").Return(nil, errors.New("503 unavailable"))

	_, err := NewSearcher(emb, store).SearchWithin(ctx, "x", "q", 5)
	require.Error(t, err)
	store.AssertNotCalled(t, "NearestByVectorAndFilename", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListFilenames(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	store.On("DistinctFilenames", ctx).Return([]string{"a.pdf", "b.pdf"}, nil)

	got, err := NewSearcher(&fakeEmbedder{}, store).ListFilenames(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a.pdf", "b.pdf"}, got)
}

func TestListFilenamesEmpty(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	store.On("DistinctFilenames", ctx).Return(nil, nil)

	got, err := NewSearcher(&fakeEmbedder{}, store).ListFilenames(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestContainsPattern(t *testing.T) {
	if got := ContainsPattern("wahlprogramm"); got != "%wahlprogramm%" {
		t.Fatalf("unexpected pattern %q", got)
	}
}
