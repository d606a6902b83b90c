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

	"github.com/manhaj/coursesearch/core"
	"github.com/manhaj/coursesearch/storage"
)

const (
	// DefaultBatchSize is the default number of entries to process in each batch
	DefaultBatchSize = 100
)

// EntryIterator iterates over all catalog entries in batches.
type EntryIterator struct {
	repo      storage.CatalogRepository
	batchSize int
}

// NewEntryIterator creates a new entry iterator.
// batchSize: number of entries to process in each batch (must be > 0)
func NewEntryIterator(repo storage.CatalogRepository, batchSize int) *EntryIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &EntryIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all catalog entries, calling fn for each batch.
// Iteration stops on the first error from fn or when all entries are processed.
// Context cancellation is checked between batches.
func (it *EntryIterator) ForEach(ctx context.Context, fn func([]*core.CatalogEntry) error) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	entries, err := it.repo.ListEntries(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return nil
	}

	for i := 0; i < len(entries); i += it.batchSize {
		end := i + it.batchSize
		if end > len(entries) {
			end = len(entries)
		}

		batch := entries[i:end]

		if err := fn(batch); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
