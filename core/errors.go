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

import "errors"

// Fault taxonomy. These are real faults that fail fast with a typed error.
// An empty catalog or a query that matches nothing is never an error; those
// degrade to a no_match RouteDecision.
var (
	// ErrMalformedEntry indicates a CatalogEntry failed validation.
	ErrMalformedEntry = errors.New("malformed catalog entry")

	// ErrDimensionMismatch indicates an entry vector whose dimension differs
	// from the rest of the index generation.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrInvalidProfile indicates missing or out-of-range relevance threshold
	// constants. Detected at construction, before any query is routed.
	ErrInvalidProfile = errors.New("invalid relevance profile")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyCategory indicates the Category field is empty.
	ErrEmptyCategory = errors.New("category cannot be empty")

	// ErrInvalidLevel indicates a Level value outside the known tiers.
	ErrInvalidLevel = errors.New("invalid level")
)
