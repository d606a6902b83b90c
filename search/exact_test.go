package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactMatcher_BestMatch(t *testing.T) {
	titles := []string{
		"Python for Data Analysis",
		"Advanced CSS",
		"HTML Basics",
		"3D Modeling Fundamentals",
		"تصميم الجرافيك",
	}
	matcher := NewExactMatcher(titles, ExactMatchThreshold)

	t.Run("every title matches itself", func(t *testing.T) {
		for _, title := range titles {
			match, ratio, ok := matcher.BestMatch(title)
			require.True(t, ok, "title %q should match itself", title)
			assert.Equal(t, title, match)
			assert.Equal(t, 1.0, ratio)
		}
	})

	t.Run("normalized equality ignores case and diacritics", func(t *testing.T) {
		match, _, ok := matcher.BestMatch("ADVANCED CSS")
		require.True(t, ok)
		assert.Equal(t, "Advanced CSS", match)
	})

	t.Run("near miss above threshold", func(t *testing.T) {
		match, ratio, ok := matcher.BestMatch("html basic")
		require.True(t, ok)
		assert.Equal(t, "HTML Basics", match)
		assert.Less(t, ratio, 1.0)
	})

	t.Run("unrelated query rejected", func(t *testing.T) {
		_, _, ok := matcher.BestMatch("quantum chemistry")
		assert.False(t, ok)
	})

	t.Run("digit spacing variant", func(t *testing.T) {
		match, _, ok := matcher.BestMatch("3d modeling fundamentals")
		require.True(t, ok)
		assert.Equal(t, "3D Modeling Fundamentals", match)
	})

	t.Run("empty query never matches", func(t *testing.T) {
		_, _, ok := matcher.BestMatch("   ")
		assert.False(t, ok)
	})
}

func TestExactMatcher_TieBreak(t *testing.T) {
	// Both candidates are the same edit distance from the query, so the
	// lexicographically smallest normalized candidate must win regardless
	// of input order.
	query := "data course"
	a, b := "data courss", "data coursa"

	for _, order := range [][]string{{a, b}, {b, a}} {
		matcher := NewExactMatcher(order, 0.8)
		match, _, ok := matcher.BestMatch(query)
		require.True(t, ok)
		assert.Equal(t, "data coursa", match)
	}
}

func TestExactMatcher_PrefixMatch(t *testing.T) {
	matcher := NewExactMatcher([]string{"Python for Data Analysis"}, ExactMatchThreshold)
	match, ratio, ok := matcher.BestMatch("python")
	require.True(t, ok)
	assert.Equal(t, "Python for Data Analysis", match)
	assert.Greater(t, ratio, 0.0)
}

func TestExactMatcher_MidWordPrefixMatch(t *testing.T) {
	// The prefix rule is a bare prefix, so a query that stops mid-word
	// still takes the candidate even when its edit-distance ratio is far
	// below the fuzzy threshold.
	cases := []struct {
		query string
		want  string
	}{
		{"java", "JavaScript Fundamentals"},
		{"prog", "Programming 101"},
	}
	matcher := NewExactMatcher([]string{"JavaScript Fundamentals", "Programming 101"}, ExactMatchThreshold)

	for _, tc := range cases {
		match, ratio, ok := matcher.BestMatch(tc.query)
		require.True(t, ok, "query %q should prefix-match %q", tc.query, tc.want)
		assert.Equal(t, tc.want, match)
		assert.Greater(t, ratio, 0.0)
	}
}
