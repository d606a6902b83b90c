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


// Package textnorm canonicalizes bilingual (Arabic/English) query text.
//
// It provides:
//   - Normalize: diacritic stripping, Arabic letter-form unification,
//     digit unification, whitespace collapsing and case folding.
//     Normalize is idempotent.
//   - Expand: deterministic bilingual query expansion against a versioned
//     synonym table.
//   - CanonicalVariants: a small bounded set of query rewrites used to
//     widen exact/fuzzy matching.
//   - ParseExplicitLevel: detection of an explicitly requested skill level.
package textnorm
