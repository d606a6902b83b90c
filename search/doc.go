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


// Package search decides which catalog entries are relevant to a free-text
// bilingual query.
//
// The Router type implements a strict three-tier decision chain:
//   - Guard: generic/opinion queries without a subject terminate immediately
//   - Title route: exact/fuzzy matching against catalog titles
//   - Category route: exact/fuzzy matching against catalog categories
//   - Semantic route: vector search gated by score-band and keyword-overlap
//     filters
//
// Routes are tried in a fixed priority order and the first match wins. A
// query that matches nothing produces a no_match decision with a structured
// reason code; the router never invents results and never raises an error
// for ordinary misses.
package search
