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


package core

import "fmt"

// ValidateCatalogEntry validates a CatalogEntry according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Category must not be empty
//   - Level must be one of the three tiers
//
// NOT validated (populated by the ingestion pipeline):
//   - Vector (can be empty until the embedding processor runs)
//   - ID (0 is valid until content hashing assigns one)
func ValidateCatalogEntry(entry *CatalogEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrMalformedEntry)
	}

	if entry.Title == "" {
		return fmt.Errorf("%w: %w", ErrMalformedEntry, ErrEmptyTitle)
	}

	if entry.Category == "" {
		return fmt.Errorf("%w: %w", ErrMalformedEntry, ErrEmptyCategory)
	}

	if err := ValidateLevel(entry.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEntry, err)
	}

	return nil
}

// ValidateLevel validates that a Level has a valid value.
func ValidateLevel(level Level) error {
	if level < LevelBeginner || level > LevelAdvanced {
		return fmt.Errorf("%w: value %d", ErrInvalidLevel, level)
	}
	return nil
}

// ValidateVectorDim checks an entry vector against the expected index
// dimension. A dim of 0 means "not established yet" and accepts any vector.
func ValidateVectorDim(entry *CatalogEntry, dim int) error {
	if len(entry.Vector) == 0 || dim == 0 {
		return nil
	}
	if len(entry.Vector) != dim {
		return fmt.Errorf("%w: entry %d has dim %d, index has dim %d",
			ErrDimensionMismatch, entry.Id, len(entry.Vector), dim)
	}
	return nil
}
