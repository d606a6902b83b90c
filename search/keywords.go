package search

import (
	"strings"

	"github.com/manhaj/coursesearch/textnorm"
)

// Stopwords and generic terms filtered out during keyword extraction.
// A query reduced to nothing by this set has no identifiable subject.
// Entries are written in their source spelling and normalized at init.
var stopwords = stopwordSet(
	// Arabic common
	"في", "من", "على", "الى", "إلى", "عن", "مع", "كيف", "ازاي", "اتعلم", "تعلم",
	"اساسيات", "مبادئ", "مقدمه", "مقدمة", "تمهيدي", "كورس", "دوره", "دورة", "تدريب", "شرح", "دليل",
	"مسار", "تراك", "ابدأ", "بداية", "تطوير", "تنصح", "رايك", "كويس", "جيد", "افضل", "مناسب",
	"هل", "ما", "هذا", "هذه", "دي", "ده", "انا", "عايز", "عايزه", "عاوز", "عاوزه", "اريد", "ابغى", "محتاج", "محتاجه", "بدور",
	"مازلت", "مازال", "لسه", "كنت", "يعني",
	// Level keywords Arabic
	"مبتدئ", "مبتدا", "متوسط", "متقدم", "محترف", "خبير",
	// English common
	"fundamentals", "basic", "basics", "introduction", "intro", "overview", "essential", "essentials",
	"kick", "start", "kickstart", "course", "courses", "training", "tutorial", "guide", "masterclass", "complete",
	"career", "development", "learn", "study", "recommend", "suggestion", "good", "best", "ok", "worth",
	"is", "this", "a", "an", "the", "for", "to", "in", "on", "of", "and", "or", "with", "what", "how",
	// Level keywords English
	"beginner", "beginners", "intermediate", "advanced", "expert", "professional",
)

func stopwordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[textnorm.Normalize(w)] = true
	}
	return set
}

// ExtractKeywords derives the stopword-filtered keyword set of a text.
// Tokens shorter than two runes are discarded. The result has set semantics:
// no ordering guarantee.
func ExtractKeywords(text string) map[string]bool {
	normalized := textnorm.Normalize(text)
	keywords := make(map[string]bool)
	for _, tok := range textnorm.Tokens(normalized) {
		if len([]rune(tok)) < 2 {
			continue
		}
		if stopwords[tok] {
			continue
		}
		keywords[tok] = true
	}
	return keywords
}

// IsGeneric reports whether a query has no identifiable subject: everything
// in it is stopwords, filler or level keywords ("recommend", "كورس كويس").
func IsGeneric(text string) bool {
	return len(ExtractKeywords(text)) == 0
}

// SynonymMap bridges transliterated keywords to a canonical technical term
// for overlap checks. Terms marked exact-only never match as substrings, in
// either direction, so "java" cannot ride along inside "javascript".
type SynonymMap struct {
	canonical map[string]string
	exactOnly map[string]bool
}

// NewSynonymMap builds a keyword synonym map. Keys are normalized at build
// time so lookups against extracted keywords line up.
func NewSynonymMap(pairs map[string]string, exactOnly ...string) *SynonymMap {
	m := &SynonymMap{
		canonical: make(map[string]string, len(pairs)),
		exactOnly: make(map[string]bool, len(exactOnly)),
	}
	for k, v := range pairs {
		m.canonical[textnorm.Normalize(k)] = strings.ToLower(v)
	}
	for _, term := range exactOnly {
		m.exactOnly[strings.ToLower(term)] = true
	}
	return m
}

// Canonical maps a keyword through the synonym table, returning the keyword
// itself when no mapping exists.
func (m *SynonymMap) Canonical(keyword string) string {
	if c, ok := m.canonical[keyword]; ok {
		return c
	}
	return keyword
}

// ExactOnly reports whether a term is restricted to exact matching.
func (m *SynonymMap) ExactOnly(term string) bool {
	return m.exactOnly[term]
}

// DefaultKeywordSynonyms covers the transliterations users actually type.
// Catalog passages are written in English; queries often are not.
var DefaultKeywordSynonyms = NewSynonymMap(map[string]string{
	"بايثون":     "python",
	"جافا":       "java",
	"جافاسكريبت": "javascript",
	"جافاسكربت":  "javascript",
	"قواعد":      "sql", // قواعد بيانات
	"داتا":       "data",
	"ماشين":      "machine",
	"ذكاء":       "ai",
}, "java")

// KeywordOverlap applies the overlap gate between a query keyword set and a
// candidate text. Both sides are mapped through the synonym table first.
//
// Rules:
//   - one query keyword: at least one match
//   - two query keywords: both must match
//   - three or more: match ratio >= 0.6
//
// A match is exact equality or a substring hit in either direction, except
// for exact-only terms.
func KeywordOverlap(queryKeywords map[string]bool, candidateText string, synonyms *SynonymMap) bool {
	if len(queryKeywords) == 0 {
		return false
	}

	normQuery := canonicalSet(queryKeywords, synonyms)
	normCandidate := canonicalSet(ExtractKeywords(candidateText), synonyms)

	matches := 0
	for q := range normQuery {
		if normCandidate[q] {
			matches++
			continue
		}
		if synonyms.ExactOnly(q) {
			continue
		}
		for c := range normCandidate {
			if synonyms.ExactOnly(c) {
				continue
			}
			if strings.Contains(c, q) || strings.Contains(q, c) {
				matches++
				break
			}
		}
	}

	switch n := len(normQuery); {
	case n == 1:
		return matches >= 1
	case n == 2:
		return matches >= 2
	default:
		return float64(matches)/float64(n) >= 0.6
	}
}

func canonicalSet(keywords map[string]bool, synonyms *SynonymMap) map[string]bool {
	out := make(map[string]bool, len(keywords))
	for k := range keywords {
		out[synonyms.Canonical(k)] = true
	}
	return out
}
