package reindex

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/manhaj/coursesearch/core"
	"github.com/manhaj/coursesearch/storage"
	"github.com/manhaj/coursesearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEmbedder for testing
type mockEmbedder struct {
	embedQueryFunc    func(ctx context.Context, text string) ([]float32, error)
	embedPassagesFunc func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if m.embedQueryFunc != nil {
		return m.embedQueryFunc(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockEmbedder) EmbedPassages(ctx context.Context, texts []string) ([][]float32, error) {
	if m.embedPassagesFunc != nil {
		return m.embedPassagesFunc(ctx, texts)
	}
	// Default: return unnormalized vectors for each text
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = []float32{1.0, 2.0, 2.0} // magnitude = 3.0
	}
	return result, nil
}

func setupTestDB(t *testing.T) (storage.CatalogRepository, *badger.Backend, func()) {
	t.Helper()
	repo, backend, err := badger.NewMemoryCatalogRepository()
	require.NoError(t, err)
	return repo, backend, func() {
		repo.Close()
		backend.Close()
	}
}

func catalogEntry(title string) *core.CatalogEntry {
	return &core.CatalogEntry{
		Title:    title,
		Category: "Programming",
		Level:    core.LevelBeginner,
	}
}

func TestBatchProcessor_Process(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	added, err := repo.AddEntries(ctx,
		catalogEntry("Python Basics"),
		catalogEntry("Data Analysis with Pandas"),
	)
	require.NoError(t, err)

	embedder := &mockEmbedder{}
	processor := NewBatchProcessor(repo, embedder, 3, 10*time.Millisecond)

	err = processor.Process(ctx, added)
	require.NoError(t, err)

	// Verify entries were updated with normalized vectors
	updated, err := repo.GetEntries(ctx, added[0].Id, added[1].Id)
	require.NoError(t, err)
	require.Len(t, updated, 2)

	for _, entry := range updated {
		require.NotEmpty(t, entry.Vector, "should have embedding")
		var magnitude float32
		for _, v := range entry.Vector {
			magnitude += v * v
		}
		assert.InDelta(t, 1.0, magnitude, 0.01, "vector should be normalized")
	}
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	embedder := &mockEmbedder{}
	processor := NewBatchProcessor(repo, embedder, 3, 10*time.Millisecond)

	err := processor.Process(context.Background(), []*core.CatalogEntry{})
	require.NoError(t, err, "empty batch should not error")
}

func TestBatchProcessor_EmbeddingError(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	added, err := repo.AddEntries(ctx, catalogEntry("Python Basics"))
	require.NoError(t, err)

	embedder := &mockEmbedder{
		embedPassagesFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("embedding service down")
		},
	}
	processor := NewBatchProcessor(repo, embedder, 2, 10*time.Millisecond)

	err = processor.Process(ctx, added)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestBatchProcessor_CountMismatch(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	added, err := repo.AddEntries(ctx,
		catalogEntry("Python Basics"),
		catalogEntry("SQL for Beginners"),
	)
	require.NoError(t, err)

	embedder := &mockEmbedder{
		embedPassagesFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1.0, 0.0, 0.0}}, nil
		},
	}
	processor := NewBatchProcessor(repo, embedder, 1, 10*time.Millisecond)

	err = processor.Process(ctx, added)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count mismatch")
}
