// Copyright 2025 Manhaj Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package coursesearch

import (
	"context"
	"io"
	"log/slog"

	"github.com/manhaj/coursesearch/ai"
	"github.com/manhaj/coursesearch/ai/openai"
	"github.com/manhaj/coursesearch/catalog"
	"github.com/manhaj/coursesearch/core"
	"github.com/manhaj/coursesearch/ingestion"
	"github.com/manhaj/coursesearch/reindex"
	"github.com/manhaj/coursesearch/search"
	"github.com/manhaj/coursesearch/storage"
	"github.com/manhaj/coursesearch/storage/badger"
	"github.com/manhaj/coursesearch/textnorm"
)

// Engine is the top-level handle on a course search database. It owns the
// storage backend, the embedding provider, the in-memory catalog snapshot
// and the routing chain built over it.
type Engine struct {
	backend        *badger.Backend
	catalogRepo    storage.CatalogRepository
	checkpointRepo storage.CheckpointRepository
	provider       ai.Provider
	pipeline       *ingestion.Pipeline
	holder         *catalog.Holder
	router         *search.Router
	searchFilter   *search.RelevanceFilter
	logger         *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the embedding service configuration.
// Ignored when WithProvider is also given.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider supplies a pre-built embedding provider instead of the
// default OpenAI-compatible one.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all data in memory. Nothing survives Close.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens (or creates) a course search database at filePath and
// loads the current catalog into an in-memory snapshot.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	catalogRepo, err := badger.NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	checkpointRepo := badger.NewCheckpointRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			catalogRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	holder := catalog.NewHolder(nil)

	router, err := search.NewRouter(holder, provider.Embedder())
	if err != nil {
		provider.Close()
		catalogRepo.Close()
		backend.Close()
		return nil, err
	}

	searchFilter, err := search.NewRelevanceFilter(search.RouterDefaultProfile, nil)
	if err != nil {
		provider.Close()
		catalogRepo.Close()
		backend.Close()
		return nil, err
	}

	pipeline, err := ingestion.NewPipeline(catalogRepo, checkpointRepo, provider)
	if err != nil {
		provider.Close()
		catalogRepo.Close()
		backend.Close()
		return nil, err
	}

	e := &Engine{
		backend:        backend,
		catalogRepo:    catalogRepo,
		checkpointRepo: checkpointRepo,
		provider:       provider,
		pipeline:       pipeline,
		holder:         holder,
		router:         router,
		searchFilter:   searchFilter,
		logger:         slog.Default(),
	}

	if err := e.Reload(context.Background()); err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

// Close releases the worker pool, the embedding provider and the storage
// backend.
func (e *Engine) Close() error {
	if e.pipeline != nil {
		e.pipeline.Release()
	}

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.catalogRepo.Close(); err != nil {
		e.logger.Error("error closing catalog repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Reload rebuilds the catalog snapshot from storage and swaps it in.
// In-flight route calls keep the snapshot they started with.
func (e *Engine) Reload(ctx context.Context) error {
	entries, err := e.catalogRepo.ListEntries(ctx)
	if err != nil {
		return err
	}

	snap, err := catalog.NewSnapshot(entries)
	if err != nil {
		return err
	}

	e.holder.Swap(snap)
	e.logger.Debug("catalog snapshot reloaded", "entries", snap.Len())
	return nil
}

// Route runs the full decision chain (guard, title, category, semantic)
// for a raw user query.
func (e *Engine) Route(ctx context.Context, query string) (*core.RouteDecision, error) {
	return e.router.Route(ctx, query)
}

// RouteWithMonitor is Route with stage callbacks for instrumentation.
func (e *Engine) RouteWithMonitor(ctx context.Context, query string, monitor search.RouteMonitor) (*core.RouteDecision, error) {
	return e.router.RouteWithMonitor(ctx, query, monitor)
}

// Search runs a plain semantic search over the stored catalog, bypassing
// the guard and exact-match routes. Results are gated by the default
// relevance profile and capped at maxHits.
func (e *Engine) Search(ctx context.Context, query string, maxHits int) ([]*core.CandidateResult, error) {
	parsed := textnorm.ParseQuery(query)
	expanded := textnorm.DefaultSynonyms.Expand(parsed.Normalized)

	vector, err := e.provider.Embedder().EmbedQuery(ctx, expanded)
	if err != nil {
		return nil, err
	}

	candidates, err := e.catalogRepo.FindSimilar(ctx, vector, search.SemanticFloor, search.MaxCandidates)
	if err != nil {
		return nil, err
	}

	results := e.searchFilter.Apply(parsed.Normalized, candidates)
	if maxHits > 0 && len(results) > maxHits {
		results = results[:maxHits]
	}
	return results, nil
}

// Ingest persists catalog entries and schedules their passage embeddings,
// then reloads the snapshot so exact-match routes see them immediately.
// Semantic routes pick the entries up once embedding completes and the
// snapshot is reloaded again (typically via Reindex or a later Ingest).
func (e *Engine) Ingest(ctx context.Context, entries ...*core.CatalogEntry) ([]*core.CatalogEntry, error) {
	added, err := e.pipeline.Ingest(ctx, entries...)
	if err != nil {
		return nil, err
	}

	if err := e.Reload(ctx); err != nil {
		return nil, err
	}
	return added, nil
}

// EmbedPending synchronously embeds every entry that has no vector yet and
// reloads the snapshot. Returns the number of entries embedded.
func (e *Engine) EmbedPending(ctx context.Context) (int, error) {
	count, err := e.pipeline.EmbedPending(ctx)
	if err != nil {
		return count, err
	}

	if count > 0 {
		if err := e.Reload(ctx); err != nil {
			return count, err
		}
	}
	return count, nil
}

// Reindex re-embeds the entire catalog with the current embedding model,
// reporting progress to the given writer, then reloads the snapshot.
// Returns the number of entries processed.
func (e *Engine) Reindex(ctx context.Context, config *reindex.Config, progress io.Writer) (int, error) {
	reindexer := reindex.NewReindexer(e.catalogRepo, e.checkpointRepo, e.provider.Embedder(), config, progress)
	processed, err := reindexer.Run(ctx)
	if err != nil {
		return processed, err
	}

	if err := e.Reload(ctx); err != nil {
		return processed, err
	}
	return processed, nil
}

// CatalogRepository exposes the underlying catalog storage.
func (e *Engine) CatalogRepository() storage.CatalogRepository {
	return e.catalogRepo
}

// CheckpointRepository exposes the underlying checkpoint storage.
func (e *Engine) CheckpointRepository() storage.CheckpointRepository {
	return e.checkpointRepo
}

// NewIngestionPipeline builds an ingestion pipeline over the engine's
// repositories and provider.
func (e *Engine) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(e.catalogRepo, e.checkpointRepo, e.provider, opts...)
}
