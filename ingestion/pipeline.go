package ingestion

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"

	"github.com/manhaj/coursesearch/ai"
	"github.com/manhaj/coursesearch/core"
	"github.com/manhaj/coursesearch/storage"
)

// Pipeline orchestrates the ingestion of catalog entries: persist first,
// then embed passages on a worker pool.
type Pipeline struct {
	catalogRepository    storage.CatalogRepository
	checkpointRepository storage.CheckpointRepository
	embeddingPool        *ants.Pool
	embeddingProc        processor
	logger               *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.embeddingPool = embeddingPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	catalogRepository storage.CatalogRepository,
	checkpointRepository storage.CheckpointRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if catalogRepository == nil {
		return nil, ErrCatalogRepositoryRequired
	}
	if checkpointRepository == nil {
		return nil, ErrCheckpointRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		catalogRepository:    catalogRepository,
		checkpointRepository: checkpointRepository,
		embeddingPool:        embeddingPool,
		logger:               slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create the processor after options are applied so it gets final config
	embeddingProc, err := newEmbeddingProcessor(catalogRepository, checkpointRepository,
		provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}

	p.embeddingProc = embeddingProc

	return p, nil
}

// Ingest validates and persists catalog entries, then submits them for
// asynchronous passage embedding. A malformed entry fails the whole batch
// before anything is written. Errors during async embedding are logged but
// do not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, entries ...*core.CatalogEntry) ([]*core.CatalogEntry, error) {
	added, err := p.catalogRepository.AddEntries(ctx, entries...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	ids := make([]core.ID, len(added))
	for i, entry := range added {
		ids[i] = entry.Id
	}

	p.embeddingPool.Submit(func() {
		if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
			return
		}
		if err := p.embeddingProc.checkpoint(context.Background()); err != nil {
			p.logger.Error("error applying embedding checkpoint", "err", err)
		}
	})

	return added, nil
}

// EmbedPending embeds every stored entry that has no vector yet. It runs
// synchronously and is what the reindex path and a restart after a crashed
// embedding run use to catch up.
func (p *Pipeline) EmbedPending(ctx context.Context) (int, error) {
	pending, err := p.catalogRepository.ListEntriesWithoutVectors(ctx)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	ids := make([]core.ID, len(pending))
	for i, entry := range pending {
		ids[i] = entry.Id
	}

	if err := p.embeddingProc.process(ctx, ids...); err != nil {
		return 0, err
	}
	if err := p.embeddingProc.checkpoint(ctx); err != nil {
		return 0, err
	}
	return len(pending), nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
