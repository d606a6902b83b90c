package coursesearch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/manhaj/coursesearch/ai/mock"
	"github.com/manhaj/coursesearch/core"
	"github.com/manhaj/coursesearch/reindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func axisEmbedder(p *mock.MockProvider, queryVec []float32, passageVecs map[string][]float32) {
	p.MockEmbedder().EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
		return queryVec, nil
	}
	p.MockEmbedder().EmbedPassagesFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			if v, ok := passageVecs[text]; ok {
				out[i] = v
			} else {
				out[i] = []float32{0, 1, 0}
			}
		}
		return out, nil
	}
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine("", WithInMemoryStorage(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestNewEngine(t *testing.T) {
	t.Run("create new engine", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		engine, err := NewEngine(tmpDir, WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, engine)
		defer engine.Close()

		assert.NotNil(t, engine.CatalogRepository())
		assert.NotNil(t, engine.CheckpointRepository())
		assert.NotNil(t, engine.backend)
		assert.NotNil(t, engine.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file where the database directory should be
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		engine, err := NewEngine(tmpFile, WithProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, engine)
	})
}

func TestEngine_Close(t *testing.T) {
	provider := mock.NewMockProvider()
	engine, err := NewEngine("", WithInMemoryStorage(), WithProvider(provider))
	require.NoError(t, err)

	err = engine.Close()
	assert.NoError(t, err)
	assert.True(t, provider.Closed(), "close should propagate to the provider")
}

func TestEngine_IngestAndRouteExact(t *testing.T) {
	engine := testEngine(t)
	ctx := context.Background()

	added, err := engine.Ingest(ctx, &core.CatalogEntry{
		Title:    "Python for Beginners",
		Category: "Programming",
		Level:    core.LevelBeginner,
	})
	require.NoError(t, err)
	require.Len(t, added, 1)

	// The snapshot reload makes the title route see the entry immediately,
	// before its passage embedding lands.
	decision, err := engine.Route(ctx, "python for beginners")
	require.NoError(t, err)
	assert.Equal(t, core.StatusOK, decision.Status)
	assert.Equal(t, core.RouteTitle, decision.Route)
	assert.Equal(t, 1, decision.Results.Total())
}

func TestEngine_RouteEmptyCatalog(t *testing.T) {
	engine := testEngine(t)

	decision, err := engine.Route(context.Background(), "python")
	require.NoError(t, err)
	assert.Equal(t, core.StatusNoMatch, decision.Status)
	assert.Equal(t, core.ReasonEmptyCatalog, decision.Reason)
}

func TestEngine_Search(t *testing.T) {
	provider := mock.NewMockProvider()
	axisEmbedder(provider, []float32{0, 0, 1}, map[string][]float32{
		"Deep Learning foundations neural networks": {0, 0.1, 0.99},
	})

	engine, err := NewEngine("", WithInMemoryStorage(), WithProvider(provider))
	require.NoError(t, err)
	defer engine.Close()

	ctx := context.Background()

	_, err = engine.Ingest(ctx,
		&core.CatalogEntry{
			Title:       "Deep Learning",
			Category:    "AI",
			Level:       core.LevelAdvanced,
			Description: "foundations",
			Skills:      "neural networks",
		},
		&core.CatalogEntry{
			Title:    "Graphic Design Intro",
			Category: "Design",
			Level:    core.LevelBeginner,
		},
	)
	require.NoError(t, err)

	// Wait for the async passage embedding to land, then refresh
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, engine.Reload(ctx))

	results, err := engine.Search(ctx, "deep learning", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Deep Learning", results[0].Entry.Title)
	assert.Equal(t, core.RouteSemantic, results[0].Route)
}

func TestEngine_EmbedPendingAndReindex(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.MockEmbedder().EmbedPassagesFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{3, 0, 4} // magnitude 5, normalized by reindex
		}
		return out, nil
	}

	engine, err := NewEngine("", WithInMemoryStorage(), WithProvider(provider))
	require.NoError(t, err)
	defer engine.Close()

	ctx := context.Background()

	// Seed directly through the repository so no embedding is scheduled
	_, err = engine.CatalogRepository().AddEntries(ctx,
		&core.CatalogEntry{Title: "SQL Basics", Category: "Data", Level: core.LevelBeginner},
		&core.CatalogEntry{Title: "Advanced SQL", Category: "Data", Level: core.LevelAdvanced},
	)
	require.NoError(t, err)

	count, err := engine.EmbedPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = engine.EmbedPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "nothing left to embed")

	var buf bytes.Buffer
	config := &reindex.Config{BatchSize: 1, ReportInterval: 1, MaxRetries: 1, RetryDelay: 10 * time.Millisecond}
	processed, err := engine.Reindex(ctx, config, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Contains(t, buf.String(), "Reindex complete")

	entries, err := engine.CatalogRepository().ListEntries(ctx)
	require.NoError(t, err)
	for _, entry := range entries {
		var magnitude float32
		for _, v := range entry.Vector {
			magnitude += v * v
		}
		assert.InDelta(t, 1.0, magnitude, 0.01, "reindexed vectors are normalized")
	}
}

func TestEngine_FactoryMethods(t *testing.T) {
	engine := testEngine(t)

	pipeline, err := engine.NewIngestionPipeline()
	require.NoError(t, err)
	require.NotNil(t, pipeline)
	pipeline.Release()
}
