package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntry() *CatalogEntry {
	return &CatalogEntry{
		Title:       "Python for Everybody",
		Category:    "Programming",
		Level:       LevelBeginner,
		Description: "Introductory programming with Python",
	}
}

func TestValidateCatalogEntry(t *testing.T) {
	t.Run("valid entry", func(t *testing.T) {
		require.NoError(t, ValidateCatalogEntry(validEntry()))
	})

	t.Run("nil entry", func(t *testing.T) {
		err := ValidateCatalogEntry(nil)
		assert.ErrorIs(t, err, ErrMalformedEntry)
	})

	t.Run("empty title", func(t *testing.T) {
		entry := validEntry()
		entry.Title = ""
		err := ValidateCatalogEntry(entry)
		assert.ErrorIs(t, err, ErrMalformedEntry)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("empty category", func(t *testing.T) {
		entry := validEntry()
		entry.Category = ""
		err := ValidateCatalogEntry(entry)
		assert.ErrorIs(t, err, ErrMalformedEntry)
		assert.ErrorIs(t, err, ErrEmptyCategory)
	})

	t.Run("invalid level", func(t *testing.T) {
		entry := validEntry()
		entry.Level = Level(7)
		err := ValidateCatalogEntry(entry)
		assert.ErrorIs(t, err, ErrMalformedEntry)
		assert.ErrorIs(t, err, ErrInvalidLevel)
	})

	t.Run("missing vector is allowed", func(t *testing.T) {
		entry := validEntry()
		entry.Vector = nil
		require.NoError(t, ValidateCatalogEntry(entry))
	})
}

func TestValidateVectorDim(t *testing.T) {
	entry := validEntry()
	entry.Vector = []float32{0.1, 0.2, 0.3}

	t.Run("matching dim", func(t *testing.T) {
		assert.NoError(t, ValidateVectorDim(entry, 3))
	})

	t.Run("unestablished dim accepts anything", func(t *testing.T) {
		assert.NoError(t, ValidateVectorDim(entry, 0))
	})

	t.Run("empty vector accepted", func(t *testing.T) {
		assert.NoError(t, ValidateVectorDim(validEntry(), 384))
	})

	t.Run("mismatch is a typed fault", func(t *testing.T) {
		err := ValidateVectorDim(entry, 384)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}
