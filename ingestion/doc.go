// Package ingestion provides pipeline orchestration for loading catalog
// entries into storage.
//
// The Pipeline type manages the ingestion workflow for catalog entries:
//   - Validating and persisting entries
//   - Generating passage embeddings asynchronously
//   - Checkpointing embedding progress so a restart can resume
//
// Embedding is performed on a worker pool. Errors during async processing
// are logged but do not fail the ingestion operation.
package ingestion
