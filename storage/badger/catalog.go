package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/manhaj/coursesearch/core"
	"github.com/manhaj/coursesearch/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend *Backend
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(backend *Backend) (*CatalogRepository, error) {
	return &CatalogRepository{
		backend: backend,
	}, nil
}

// Close releases resources. CatalogRepository has no resources to release.
func (r *CatalogRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *CatalogRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.CandidateResult, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *CatalogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddEntries adds one or more catalog entries to storage. The whole batch is
// validated before anything is written; a malformed entry is a fault, not
// something to skip silently.
func (r *CatalogRepository) AddEntries(ctx context.Context, entries ...*core.CatalogEntry) ([]*core.CatalogEntry, error) {
	for _, entry := range entries {
		if err := core.ValidateCatalogEntry(entry); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			// Use content-based ID if not set
			if entry.Id == 0 {
				entry.Id = core.IDFromContent(entry.ContentKey())
			}

			entry.InsertedAt = time.Now().UTC()
			entry.UpdatedAt = entry.InsertedAt

			key := makeEntryKey(entry.Id)
			value := storage.MarshalCatalogEntry(entry)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entries, err
}

// UpdateEntries updates existing catalog entries.
func (r *CatalogRepository) UpdateEntries(ctx context.Context, entries ...*core.CatalogEntry) ([]*core.CatalogEntry, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			key := makeEntryKey(entry.Id)

			old, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			entry.UpdatedAt = time.Now().UTC()

			value := storage.MarshalCatalogEntry(entry)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entries, err
}

// DeleteEntries removes catalog entries by their IDs.
func (r *CatalogRepository) DeleteEntries(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEntryKey(id)

			entry, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if entry == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEntry retrieves a single catalog entry by ID.
func (r *CatalogRepository) GetEntry(ctx context.Context, id core.ID) (*core.CatalogEntry, error) {
	var entry *core.CatalogEntry

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		entry, err = readEntry(tx, makeEntryKey(id))
		return err
	}, false)

	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, storage.ErrNotFound
	}
	return entry, nil
}

// GetEntries retrieves multiple catalog entries by their IDs.
// Missing entries are skipped without error.
func (r *CatalogRepository) GetEntries(ctx context.Context, ids ...core.ID) ([]*core.CatalogEntry, error) {
	entries := make([]*core.CatalogEntry, 0, len(ids))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			entry, err := readEntry(tx, makeEntryKey(id))
			if err != nil {
				return err
			}
			if entry != nil {
				entries = append(entries, entry)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListEntries retrieves every catalog entry, ordered by ID.
func (r *CatalogRepository) ListEntries(ctx context.Context) ([]*core.CatalogEntry, error) {
	return r.listEntries(func(*core.CatalogEntry) bool { return true })
}

// ListEntriesWithoutVectors retrieves entries that have not been embedded
// yet, ordered by ID.
func (r *CatalogRepository) ListEntriesWithoutVectors(ctx context.Context) ([]*core.CatalogEntry, error) {
	return r.listEntries(func(e *core.CatalogEntry) bool { return len(e.Vector) == 0 })
}

func (r *CatalogRepository) listEntries(keep func(*core.CatalogEntry) bool) ([]*core.CatalogEntry, error) {
	var entries []*core.CatalogEntry

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(catalogEntryPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.CatalogEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalCatalogEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry != nil && keep(entry) {
				entries = append(entries, entry)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Keys are decimal strings, so iteration order is not numeric
	slices.SortFunc(entries, func(a, b *core.CatalogEntry) int {
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})

	return entries, nil
}

// readEntry reads an entry by key within a transaction.
// Returns nil, nil if the key doesn't exist.
func readEntry(tx *badger.Txn, key []byte) (*core.CatalogEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.CatalogEntry
	err = item.Value(func(val []byte) error {
		var err error
		entry, err = storage.UnmarshalCatalogEntry(val)
		return err
	})
	return entry, err
}
