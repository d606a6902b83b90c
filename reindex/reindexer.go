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


package reindex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/manhaj/coursesearch/ai"
	"github.com/manhaj/coursesearch/core"
	"github.com/manhaj/coursesearch/storage"
)

// reindexProcessorType identifies reindex checkpoints in storage.
const reindexProcessorType = "catalog-reindex"

// Config holds configuration for the reindexing operation.
type Config struct {
	// BatchSize is the number of entries to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of entries)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reindexer orchestrates the re-embedding of all catalog entries.
type Reindexer struct {
	repo        storage.CatalogRepository
	checkpoints storage.CheckpointRepository
	embedder    ai.Embedder
	config      *Config
	progress    io.Writer
	processor   *BatchProcessor
	iterator    *EntryIterator
}

// NewReindexer creates a new reindexer.
// checkpoints may be nil, in which case progress checkpoints are not persisted.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(repo storage.CatalogRepository, checkpoints storage.CheckpointRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reindexer {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay)
	iterator := NewEntryIterator(repo, config.BatchSize)

	return &Reindexer{
		repo:        repo,
		checkpoints: checkpoints,
		embedder:    embedder,
		config:      config,
		progress:    progress,
		processor:   processor,
		iterator:    iterator,
	}
}

// Run executes the reindexing operation.
// Every catalog entry is re-embedded with the configured embedder.
// Progress is reported to the configured writer.
// Returns the number of entries processed.
func (r *Reindexer) Run(ctx context.Context) (int, error) {
	allEntries, err := r.repo.ListEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list entries: %w", err)
	}

	totalEntries := len(allEntries)
	if totalEntries == 0 {
		fmt.Fprintf(r.progress, "No entries found in catalog (0 entries)\n")
		return 0, nil
	}

	fmt.Fprintf(r.progress, "Starting reindex of %d entries (batch size: %d)\n",
		totalEntries, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, totalEntries, r.config.ReportInterval)
	tracker.Start()

	processed := 0

	err = r.iterator.ForEach(ctx, func(entries []*core.CatalogEntry) error {
		if err := r.processor.Process(ctx, entries); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(entries)
		tracker.Update(processed)

		if r.checkpoints != nil {
			checkpoint := &core.Checkpoint{
				ProcessorType: reindexProcessorType,
				LastProcessed: entries[len(entries)-1].Id,
			}
			if err := r.checkpoints.SaveCheckpoint(ctx, checkpoint); err != nil {
				return fmt.Errorf("failed to save checkpoint: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return processed, err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindex complete. Processed %d entries in %v (%.1f entries/sec)\n",
		totalEntries, elapsed.Round(time.Second), float64(totalEntries)/elapsed.Seconds())

	return processed, nil
}
