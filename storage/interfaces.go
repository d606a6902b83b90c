package storage

import (
	"context"

	"github.com/manhaj/coursesearch/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds catalog entries similar to the given vector.
	// Returns entries with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.CandidateResult, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CatalogRepository provides operations for managing catalog entries.
type CatalogRepository interface {
	Repository

	// AddEntries adds one or more catalog entries to storage.
	// Entries are validated first; a malformed entry fails the whole batch.
	// Entries with Id=0 get a content-based ID derived from ContentKey.
	// Sets InsertedAt and UpdatedAt timestamps.
	// Returns the entries with IDs and timestamps populated.
	AddEntries(ctx context.Context, entries ...*core.CatalogEntry) ([]*core.CatalogEntry, error)

	// UpdateEntries updates existing catalog entries.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any entry doesn't exist.
	UpdateEntries(ctx context.Context, entries ...*core.CatalogEntry) ([]*core.CatalogEntry, error)

	// DeleteEntries removes catalog entries by their IDs.
	// Returns ErrNotFound if any entry doesn't exist.
	DeleteEntries(ctx context.Context, ids ...core.ID) error

	// GetEntry retrieves a single catalog entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (*core.CatalogEntry, error)

	// GetEntries retrieves multiple catalog entries by their IDs.
	// Returns only the entries that exist (no error for missing entries).
	GetEntries(ctx context.Context, ids ...core.ID) ([]*core.CatalogEntry, error)

	// ListEntries retrieves every catalog entry, ordered by ID.
	// This is how a fresh catalog snapshot gets built.
	ListEntries(ctx context.Context) ([]*core.CatalogEntry, error)

	// ListEntriesWithoutVectors retrieves entries that have not been
	// embedded yet, ordered by ID.
	ListEntriesWithoutVectors(ctx context.Context) ([]*core.CatalogEntry, error)
}

// CheckpointRepository persists processor progress checkpoints.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for a processor type.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)
}
