package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/manhaj/coursesearch/ai"
	"github.com/manhaj/coursesearch/core"
	"github.com/manhaj/coursesearch/storage"
)

// embeddingProcessorType names the checkpoint slot for passage embedding.
const embeddingProcessorType = "passage-embedding"

// embeddingProcessor generates passage embeddings for catalog entries.
type embeddingProcessor struct {
	catalogRepository    storage.CatalogRepository
	checkpointRepository storage.CheckpointRepository
	embedder             ai.Embedder
	lastID               core.ID
	logger               *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(
	catalogRepository storage.CatalogRepository,
	checkpointRepository storage.CheckpointRepository,
	embedder ai.Embedder,
	logger *slog.Logger,
) (processor, error) {
	if catalogRepository == nil {
		return nil, ErrCatalogRepositoryRequired
	}
	if checkpointRepository == nil {
		return nil, ErrCheckpointRepositoryRequired
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		catalogRepository:    catalogRepository,
		checkpointRepository: checkpointRepository,
		embedder:             embedder,
		logger:               logger.With("processor", "embeddings"),
	}, nil
}

// process generates passage embeddings for the specified catalog entries.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing entries for embeddings", "entries", len(ids))

	// Sort first so checkpointing works correctly
	slices.Sort(ids)

	entries, err := ep.catalogRepository.GetEntries(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving catalog entries", "err", err)
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.PassageText()
	}

	ep.logger.Debug("generating passage embeddings", "entries", len(texts))
	embeddings, err := ep.embedder.EmbedPassages(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(entries) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(entries), len(embeddings))
	}

	for i := range embeddings {
		entries[i].Vector = embeddings[i]
	}

	updated, err := ep.catalogRepository.UpdateEntries(ctx, entries...)
	if err != nil {
		return err
	}

	highestID := updated[len(updated)-1].Id
	if highestID > ep.lastID {
		ep.lastID = highestID
	}

	return nil
}

// checkpoint persists the highest entry ID processed so far.
func (ep *embeddingProcessor) checkpoint(ctx context.Context) error {
	if ep.lastID == 0 {
		return nil
	}
	return ep.checkpointRepository.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType: embeddingProcessorType,
		LastProcessed: ep.lastID,
	})
}
