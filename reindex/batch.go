package reindex

import (
	"context"
	"fmt"
	"time"

	"github.com/manhaj/coursesearch/ai"
	"github.com/manhaj/coursesearch/core"
	"github.com/manhaj/coursesearch/storage"
)

// BatchProcessor handles embedding generation for batches of catalog entries.
type BatchProcessor struct {
	repo           storage.CatalogRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.CatalogRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of entries and updates them in the
// database. Vectors are normalized after embedding so that dot-product
// similarity behaves like cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, entries []*core.CatalogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.PassageText()
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedPassages(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(entries) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(entries), len(embeddings))
	}

	for i := range entries {
		entries[i].Vector = NormalizeVector(embeddings[i])
	}

	_, err = bp.repo.UpdateEntries(ctx, entries...)
	if err != nil {
		return fmt.Errorf("failed to update entries: %w", err)
	}

	return nil
}
