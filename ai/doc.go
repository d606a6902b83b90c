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

// Package ai defines the embedding service interfaces and configuration
// used by the search engine. Concrete implementations live in the openai
// and mock subpackages.
//
// Query and passage texts carry asymmetric role prefixes; see QueryPrefix
// and PassagePrefix for the contract.
package ai
