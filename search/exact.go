package search

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/manhaj/coursesearch/textnorm"
)

// ExactMatcher performs fuzzy matching of a query variant against a fixed
// candidate list (catalog titles or categories). Candidates are held in
// normalized form alongside their original spelling so the caller gets back
// the exact catalog string.
type ExactMatcher struct {
	threshold  float64
	candidates []exactCandidate
}

type exactCandidate struct {
	original   string
	normalized string
}

// NewExactMatcher builds a matcher over the given candidates. Candidates are
// sorted by normalized form so equal-ratio matches resolve to the
// lexicographically smallest candidate regardless of input order.
func NewExactMatcher(candidates []string, threshold float64) *ExactMatcher {
	m := &ExactMatcher{
		threshold:  threshold,
		candidates: make([]exactCandidate, 0, len(candidates)),
	}
	for _, c := range candidates {
		n := textnorm.Normalize(c)
		if n == "" {
			continue
		}
		m.candidates = append(m.candidates, exactCandidate{original: c, normalized: n})
	}
	sort.Slice(m.candidates, func(i, j int) bool {
		return m.candidates[i].normalized < m.candidates[j].normalized
	})
	return m
}

// BestMatch returns the candidate most similar to the query variant and its
// similarity ratio, or ok=false when nothing clears the threshold. The query
// is normalized before comparison and digit-letter runs like "3d" are also
// tried with a space inserted, since catalog titles spell them both ways.
func (m *ExactMatcher) BestMatch(variant string) (match string, ratio float64, ok bool) {
	query := textnorm.Normalize(variant)
	if query == "" {
		return "", 0, false
	}

	forms := []string{query}
	if spaced := spaceDigitRuns(query); spaced != query {
		forms = append(forms, spaced)
	}

	// Rules are evaluated in priority order across the whole candidate
	// list; candidates are pre-sorted so each rule resolves ties to the
	// lexicographically smallest candidate.

	// Rule 1: normalized exact equality.
	for _, cand := range m.candidates {
		for _, form := range forms {
			if form == cand.normalized {
				return cand.original, 1.0, true
			}
		}
	}

	// Rule 2: candidate starts with the query. A bare prefix, not a
	// whole-word one: "java" takes "javascript fundamentals".
	for _, cand := range m.candidates {
		for _, form := range forms {
			if strings.HasPrefix(cand.normalized, form) {
				return cand.original, prefixRatio(form, cand.normalized), true
			}
		}
	}

	// Rule 3: best edit-distance ratio, accepted only above the threshold.
	best := -1.0
	bestIdx := -1
	for i, cand := range m.candidates {
		for _, form := range forms {
			if r := similarity(form, cand.normalized); r > best {
				best = r
				bestIdx = i
			}
		}
	}
	if bestIdx < 0 || best < m.threshold {
		return "", 0, false
	}
	return m.candidates[bestIdx].original, best, true
}

// similarity is a difflib ratio over rune sequences, so Arabic text compares
// per character rather than per byte.
func similarity(a, b string) float64 {
	sm := difflib.NewMatcher(runeSlice(a), runeSlice(b))
	return sm.Ratio()
}

// prefixRatio is the reported similarity for a prefix hit.
// Prefix matches are accepted unconditionally; the ratio is informational.
func prefixRatio(query, candidate string) float64 {
	r := float64(len([]rune(query))) / float64(len([]rune(candidate)))
	if r < 0.5 {
		r = 0.5
	}
	return 0.5 + r/2
}

func runeSlice(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// spaceDigitRuns inserts a space between a digit and a following letter,
// turning "3d" into "3 d".
func spaceDigitRuns(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		b.WriteRune(r)
		if i+1 < len(runes) && isDigit(r) && isLetter(runes[i+1]) {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || r >= 0x0600 && r <= 0x06FF }
