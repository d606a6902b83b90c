package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manhaj/coursesearch/core"
)

func leveled(title string, level core.Level, score float32) *core.CandidateResult {
	return &core.CandidateResult{
		Entry: &core.CatalogEntry{
			Id:       core.IDFromContent(title),
			Title:    title,
			Category: "Programming",
			Level:    level,
		},
		Score: score,
	}
}

func TestApplyLevelFilter(t *testing.T) {
	input := []*core.CandidateResult{
		leveled("Python Basics", core.LevelBeginner, 0.9),
		leveled("Python in Practice", core.LevelIntermediate, 0.85),
		leveled("Python Internals", core.LevelAdvanced, 0.8),
	}

	t.Run("no requested level passes through", func(t *testing.T) {
		out, mode := ApplyLevelFilter(input, 0, false)
		assert.Equal(t, core.LevelModeAll, mode)
		assert.Len(t, out, 3)
	})

	t.Run("requested level keeps level and above", func(t *testing.T) {
		out, mode := ApplyLevelFilter(input, core.LevelAdvanced, true)
		assert.Equal(t, core.LevelModeFiltered, mode)
		require.Len(t, out, 1)
		assert.Equal(t, "Python Internals", out[0].Entry.Title)

		out, mode = ApplyLevelFilter(input, core.LevelIntermediate, true)
		assert.Equal(t, core.LevelModeFiltered, mode)
		assert.Len(t, out, 2)
	})

	t.Run("fallback returns full input when filter empties it", func(t *testing.T) {
		beginnerOnly := []*core.CandidateResult{
			leveled("Python Basics", core.LevelBeginner, 0.9),
		}
		out, mode := ApplyLevelFilter(beginnerOnly, core.LevelAdvanced, true)
		assert.Equal(t, core.LevelModeFallbackAll, mode)
		assert.Len(t, out, len(beginnerOnly))
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		out, mode := ApplyLevelFilter(nil, core.LevelAdvanced, true)
		assert.Equal(t, core.LevelModeFiltered, mode)
		assert.Empty(t, out)
	})

	t.Run("output never exceeds input length", func(t *testing.T) {
		for _, level := range []core.Level{core.LevelBeginner, core.LevelIntermediate, core.LevelAdvanced} {
			out, mode := ApplyLevelFilter(input, level, true)
			assert.LessOrEqual(t, len(out), len(input))
			if mode == core.LevelModeFallbackAll {
				assert.Len(t, out, len(input))
			}
		}
	})
}

func TestGroupByLevel(t *testing.T) {
	t.Run("partitions and sorts by score descending", func(t *testing.T) {
		buckets := GroupByLevel([]*core.CandidateResult{
			leveled("Python Basics", core.LevelBeginner, 0.7),
			leveled("Starting Python", core.LevelBeginner, 0.9),
			leveled("Python in Practice", core.LevelIntermediate, 0.85),
			leveled("Python Internals", core.LevelAdvanced, 0.8),
		})

		require.Len(t, buckets.Beginner, 2)
		assert.Equal(t, "Starting Python", buckets.Beginner[0].Entry.Title)
		assert.Equal(t, "Python Basics", buckets.Beginner[1].Entry.Title)
		assert.Len(t, buckets.Intermediate, 1)
		assert.Len(t, buckets.Advanced, 1)
		assert.Equal(t, 4, buckets.Total())
	})

	t.Run("deduplicates by entry id", func(t *testing.T) {
		dup := leveled("Python Basics", core.LevelBeginner, 0.9)
		buckets := GroupByLevel([]*core.CandidateResult{dup, dup})
		assert.Equal(t, 1, buckets.Total())
	})

	t.Run("out of range level lands in intermediate", func(t *testing.T) {
		buckets := GroupByLevel([]*core.CandidateResult{
			leveled("Mystery Course", core.Level(7), 0.9),
		})
		assert.Len(t, buckets.Intermediate, 1)
	})
}
