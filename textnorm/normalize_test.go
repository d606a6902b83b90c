package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manhaj/coursesearch/core"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercases", "Python Basics", "python basics"},
		{"collapses whitespace", "  data \t analysis \n", "data analysis"},
		{"strips tashkeel", "مُحَمَّد", "محمد"},
		{"unifies hamza alef", "أحمد إلى آخر", "احمد الي اخر"},
		{"closing ta to ha", "دورة برمجة", "دوره برمجه"},
		{"alef maqsura to ya", "مستشفى", "مستشفي"},
		{"arabic digits", "بايثون ٣", "بايثون 3"},
		{"mixed script", "كورس SQL للمبتدئين", "كورس sql للمبتدين"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Python",
		"مُحَمَّد يتعلم البرمجة",
		"أساسيات قواعد البيانات ٢٠٢٤",
		"Is This  A Good   Course؟",
		"3D MAX للمحترفين",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"python", "3", "web"}, Tokens("python-3 web!"))
	assert.Equal(t, []string{"تحليل", "بيانات"}, Tokens("تحليل بيانات"))
	assert.Empty(t, Tokens("?!، "))
}

func TestSynonymTableExpand(t *testing.T) {
	t.Run("appends canonical term", func(t *testing.T) {
		got := DefaultSynonyms.Expand("عايز اتعلم بايثون")
		assert.Contains(t, got, "python")
		// Expansion never removes the original text.
		assert.Contains(t, got, "بايثون")
	})

	t.Run("no duplicate append", func(t *testing.T) {
		got := DefaultSynonyms.Expand("python بايثون")
		assert.Equal(t, 1, countOccurrences(got, "python"))
	})

	t.Run("deterministic", func(t *testing.T) {
		a := DefaultSynonyms.Expand("قواعد بيانات وذكاء اصطناعي")
		b := DefaultSynonyms.Expand("قواعد بيانات وذكاء اصطناعي")
		assert.Equal(t, a, b)
	})

	t.Run("no match passes through", func(t *testing.T) {
		assert.Equal(t, "underwater basket weaving", DefaultSynonyms.Expand("Underwater Basket Weaving"))
	})

	t.Run("versioned", func(t *testing.T) {
		assert.NotEmpty(t, DefaultSynonyms.Version())
	})
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}

func TestCanonicalVariants(t *testing.T) {
	t.Run("bounded at four", func(t *testing.T) {
		variants := CanonicalVariants("عايز اتعلم machine learning for beginners يعني كورس")
		assert.NotEmpty(t, variants)
		assert.LessOrEqual(t, len(variants), 4)
	})

	t.Run("first variant is normalized text", func(t *testing.T) {
		variants := CanonicalVariants("Python Basics")
		assert.Equal(t, "python basics", variants[0])
	})

	t.Run("latin chunk extracted from mixed query", func(t *testing.T) {
		variants := CanonicalVariants("عايز اتعلم SQL")
		assert.Contains(t, variants, "sql")
	})

	t.Run("noise stripped variant", func(t *testing.T) {
		variants := CanonicalVariants("عايز اتعلم بايثون للمبتدئين")
		assert.Contains(t, variants, "بايثون")
	})

	t.Run("no duplicates", func(t *testing.T) {
		variants := CanonicalVariants("sql")
		seen := map[string]bool{}
		for _, v := range variants {
			assert.False(t, seen[v], "duplicate variant %q", v)
			seen[v] = true
		}
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Nil(t, CanonicalVariants("   "))
	})
}

func TestParseExplicitLevel(t *testing.T) {
	tests := []struct {
		input    string
		want     core.Level
		hasLevel bool
	}{
		{"python advanced", core.LevelAdvanced, true},
		{"كورس بايثون للمبتدئين", core.LevelBeginner, true},
		{"intermediate sql", core.LevelIntermediate, true},
		{"دورة متقدمة", core.LevelAdvanced, false}, // substring only, not a token
		{"محترف", core.LevelAdvanced, true},
		{"python", core.LevelIntermediate, false},
		{"", core.LevelIntermediate, false},
	}

	for _, tt := range tests {
		level, ok := ParseExplicitLevel(tt.input)
		assert.Equal(t, tt.hasLevel, ok, "input %q", tt.input)
		if tt.hasLevel {
			assert.Equal(t, tt.want, level, "input %q", tt.input)
		}
	}
}

func TestParseQuery(t *testing.T) {
	q := ParseQuery("عايز اتعلم Python advanced")
	assert.Equal(t, "عايز اتعلم python advanced", q.Normalized)
	assert.True(t, q.HasLevel)
	assert.Equal(t, core.LevelAdvanced, q.Level)
	assert.NotEmpty(t, q.Variants)
	assert.Equal(t, q.Normalized, q.Variants[0])
}
