package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	t.Run("drops stopwords and short tokens", func(t *testing.T) {
		keywords := ExtractKeywords("i want to learn python for data analysis")
		assert.True(t, keywords["python"])
		assert.True(t, keywords["data"])
		assert.True(t, keywords["analysis"])
		assert.False(t, keywords["learn"])
		assert.False(t, keywords["i"])
	})

	t.Run("arabic fillers removed", func(t *testing.T) {
		keywords := ExtractKeywords("عايز اتعلم بايثون")
		assert.Len(t, keywords, 1)
		assert.True(t, keywords["بايثون"])
	})

	t.Run("level keywords are not subjects", func(t *testing.T) {
		keywords := ExtractKeywords("advanced course for beginners")
		assert.Empty(t, keywords)
	})
}

func TestIsGeneric(t *testing.T) {
	tests := []struct {
		query   string
		generic bool
	}{
		{"", true},
		{"recommend", true},
		{"recommend SQL", false},
		{"is this a good course?", true},
		{"كورس كويس", true},
		{"تنصح", true},
		{"python", false},
		{"كورس بايثون", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.generic, IsGeneric(tt.query))
		})
	}
}

func TestKeywordOverlap(t *testing.T) {
	syn := DefaultKeywordSynonyms

	t.Run("single keyword needs one match", func(t *testing.T) {
		kw := ExtractKeywords("css")
		assert.True(t, KeywordOverlap(kw, "Advanced CSS layouts and grids", syn))
		assert.False(t, KeywordOverlap(kw, "HTML structure markup", syn))
	})

	t.Run("two keywords need both", func(t *testing.T) {
		kw := ExtractKeywords("python pandas")
		assert.True(t, KeywordOverlap(kw, "Python data wrangling with pandas", syn))
		assert.False(t, KeywordOverlap(kw, "Python scripting", syn))
	})

	t.Run("three or more need 0.6 ratio", func(t *testing.T) {
		kw := ExtractKeywords("python pandas numpy matplotlib visualization")
		assert.True(t, KeywordOverlap(kw, "Python pandas numpy visualization walkthrough", syn))
		assert.False(t, KeywordOverlap(kw, "numpy reference", syn))
	})

	t.Run("substring matches both directions", func(t *testing.T) {
		kw := ExtractKeywords("script")
		assert.True(t, KeywordOverlap(kw, "javascript deep dive", syn))
	})

	t.Run("transliterated terms map to canonical", func(t *testing.T) {
		kw := ExtractKeywords("بايثون")
		assert.True(t, KeywordOverlap(kw, "Python for Data Analysis", syn))
	})

	t.Run("exact-only java never matches inside javascript", func(t *testing.T) {
		kw := ExtractKeywords("java")
		assert.False(t, KeywordOverlap(kw, "JavaScript fundamentals deep dive", syn))
		assert.True(t, KeywordOverlap(kw, "Java concurrency in practice", syn))
	})

	t.Run("empty keyword set never overlaps", func(t *testing.T) {
		assert.False(t, KeywordOverlap(nil, "anything at all", syn))
	})
}
