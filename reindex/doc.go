// Package reindex provides functionality for re-embedding the full course
// catalog with a new or updated embedding model.
//
// This package supports batch processing of catalog entries, progress
// tracking, retry logic with exponential backoff, and vector normalization
// so that dot-product similarity behaves like cosine similarity.
package reindex
