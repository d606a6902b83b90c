// Copyright 2025 Manhaj Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package catalog holds immutable course-catalog snapshots. A snapshot
// carries the entry list, the distinct title and category sets, and the
// embedded vectors, so routing and similarity lookups against one snapshot
// always see a single consistent catalog generation.
package catalog

import (
	"fmt"
	"sort"

	"github.com/manhaj/coursesearch/core"
)

// Snapshot is an immutable view of the catalog. Construct one with
// NewSnapshot and never mutate it afterwards; replacing the catalog means
// building a new snapshot and swapping it in through a Holder.
type Snapshot struct {
	entries    []*core.CatalogEntry
	titles     []string
	categories []string
	byTitle    map[string][]*core.CatalogEntry
	byCategory map[string][]*core.CatalogEntry
	byID       map[core.ID]*core.CatalogEntry
	dim        int
}

// NewSnapshot validates the entries and builds the lookup structures.
// Malformed entries and vector dimension mismatches fail fast; a snapshot
// never contains an entry it cannot vouch for.
func NewSnapshot(entries []*core.CatalogEntry) (*Snapshot, error) {
	s := &Snapshot{
		entries:    make([]*core.CatalogEntry, 0, len(entries)),
		byTitle:    make(map[string][]*core.CatalogEntry),
		byCategory: make(map[string][]*core.CatalogEntry),
		byID:       make(map[core.ID]*core.CatalogEntry, len(entries)),
	}
	for i, entry := range entries {
		if err := core.ValidateCatalogEntry(entry); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if s.dim == 0 {
			s.dim = len(entry.Vector)
		}
		if err := core.ValidateVectorDim(entry, s.dim); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, dup := s.byID[entry.Id]; dup {
			continue
		}
		s.byID[entry.Id] = entry
		s.entries = append(s.entries, entry)
		s.byTitle[entry.Title] = append(s.byTitle[entry.Title], entry)
		s.byCategory[entry.Category] = append(s.byCategory[entry.Category], entry)
	}
	for title := range s.byTitle {
		s.titles = append(s.titles, title)
	}
	for category := range s.byCategory {
		s.categories = append(s.categories, category)
	}
	sort.Strings(s.titles)
	sort.Strings(s.categories)
	return s, nil
}

// Len returns the number of entries in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Dim returns the embedding dimension, or 0 when no entry carries a vector.
func (s *Snapshot) Dim() int {
	return s.dim
}

// Entries returns the entry list. Callers must not modify it.
func (s *Snapshot) Entries() []*core.CatalogEntry {
	return s.entries
}

// Titles returns the distinct titles, sorted.
func (s *Snapshot) Titles() []string {
	return s.titles
}

// Categories returns the distinct categories, sorted.
func (s *Snapshot) Categories() []string {
	return s.categories
}

// Entry returns the entry with the given id, or nil.
func (s *Snapshot) Entry(id core.ID) *core.CatalogEntry {
	return s.byID[id]
}

// EntriesByTitle returns every entry sharing the exact title.
func (s *Snapshot) EntriesByTitle(title string) []*core.CatalogEntry {
	return s.byTitle[title]
}

// EntriesByCategory returns every entry in the exact category.
func (s *Snapshot) EntriesByCategory(category string) []*core.CatalogEntry {
	return s.byCategory[category]
}

// FindSimilar scans the snapshot's vectors and returns up to limit entries
// whose dot product with the query vector meets minSimilarity, ordered by
// similarity descending. Scores are only comparable within this snapshot's
// generation.
func (s *Snapshot) FindSimilar(vector []float32, minSimilarity float32, limit int) ([]*core.CandidateResult, error) {
	if s.dim != 0 && len(vector) != s.dim {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, catalog has %d",
			core.ErrDimensionMismatch, len(vector), s.dim)
	}

	results := make([]*core.CandidateResult, 0, limit)
	for _, entry := range s.entries {
		if len(entry.Vector) == 0 {
			continue
		}
		similarity := dotProduct(vector, entry.Vector)
		if similarity < minSimilarity {
			continue
		}
		results = append(results, &core.CandidateResult{
			Entry: entry,
			Score: similarity,
			Route: core.RouteSemantic,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// dotProduct calculates the dot product of two equal-length vectors.
// With normalized embeddings this equals cosine similarity.
func dotProduct(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
