package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("Advanced CSS|Sara Adel")
		id2 := IDFromContent("Advanced CSS|Sara Adel")
		assert.Equal(t, id1, id2)
	})

	t.Run("different content different id", func(t *testing.T) {
		id1 := IDFromContent("Advanced CSS|Sara Adel")
		id2 := IDFromContent("HTML Basics|Sara Adel")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content", func(t *testing.T) {
		id := IDFromContent("")
		assert.NotZero(t, id)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"Beginner", LevelBeginner},
		{"beginner", LevelBeginner},
		{"  Beginner Level ", LevelBeginner},
		{"مبتدئ", LevelBeginner},
		{"Intermediate", LevelIntermediate},
		{"متوسط", LevelIntermediate},
		{"Advanced", LevelAdvanced},
		{"Expert", LevelAdvanced},
		{"متقدم", LevelAdvanced},
		{"محترف", LevelAdvanced},
		{"", LevelIntermediate},
		{"unknown junk", LevelIntermediate},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "input %q", tt.input)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "Beginner", LevelBeginner.String())
	assert.Equal(t, "Intermediate", LevelIntermediate.String())
	assert.Equal(t, "Advanced", LevelAdvanced.String())
	// Out-of-range values display as the middle tier rather than panicking.
	assert.Equal(t, "Intermediate", Level(99).String())
}

func TestPassageText(t *testing.T) {
	entry := &CatalogEntry{
		Title:       "Advanced CSS",
		Description: "Deep dive into layout",
		Skills:      "css flexbox grid",
	}
	assert.Equal(t, "Advanced CSS Deep dive into layout css flexbox grid", entry.PassageText())
}

func TestLevelBucketsTotal(t *testing.T) {
	b := LevelBuckets{
		Beginner:     []*CandidateResult{{}, {}},
		Intermediate: []*CandidateResult{{}},
	}
	assert.Equal(t, 3, b.Total())

	var empty LevelBuckets
	assert.Equal(t, 0, empty.Total())
}
