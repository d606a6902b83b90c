package catalog

import "sync/atomic"

// Holder publishes the current snapshot to concurrent readers. Readers call
// Snapshot and work against what they got; a reload builds a new snapshot
// and swaps the pointer, so no in-flight reader ever observes a half-updated
// catalog.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder creates a holder seeded with the given snapshot.
func NewHolder(initial *Snapshot) *Holder {
	h := &Holder{}
	h.current.Store(initial)
	return h
}

// Snapshot returns the current snapshot.
func (h *Holder) Snapshot() *Snapshot {
	return h.current.Load()
}

// Swap atomically replaces the current snapshot and returns the previous one.
func (h *Holder) Swap(next *Snapshot) *Snapshot {
	return h.current.Swap(next)
}
