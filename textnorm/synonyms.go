package textnorm

import (
	"sort"
	"strings"
)

// SynonymTable is a versioned bilingual expansion table. Keys are matched as
// substrings of normalized query text; values are canonical terms appended to
// the query. The table is built once and never mutated afterwards.
type SynonymTable struct {
	version string
	entries []expansion // sorted by key for deterministic application order
}

type expansion struct {
	key   string
	value string
}

// NewSynonymTable builds a table from raw key/value pairs. Keys are
// normalized so lookups against normalized query text line up.
func NewSynonymTable(version string, pairs map[string]string) *SynonymTable {
	entries := make([]expansion, 0, len(pairs))
	for k, v := range pairs {
		nk := Normalize(k)
		if nk == "" {
			continue
		}
		entries = append(entries, expansion{key: nk, value: strings.ToLower(v)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return &SynonymTable{version: version, entries: entries}
}

// Version returns the table version identifier.
func (t *SynonymTable) Version() string {
	return t.version
}

// Expand looks up known substrings of the normalized text and appends each
// matched canonical term that is not already present. It never removes
// anything, and application order is fixed, so the output is deterministic.
func (t *SynonymTable) Expand(text string) string {
	base := Normalize(text)
	if base == "" {
		return ""
	}

	expanded := base
	for _, e := range t.entries {
		if !strings.Contains(base, e.key) {
			continue
		}
		if strings.Contains(expanded, e.value) {
			continue
		}
		expanded += " " + e.value
	}
	return strings.Join(strings.Fields(expanded), " ")
}

// DefaultSynonyms is the expansion table shipped with the engine. It bridges
// Arabic and transliterated spellings of technical topics to the English
// terms catalog passages are written in.
var DefaultSynonyms = NewSynonymTable("2025-06", map[string]string{
	"الصحه النفسيه": "mental health psychology",
	"تحليل بيانات":  "data analysis",
	"ذكاء اصطناعي":  "artificial intelligence ai",
	"تعلم الي":      "machine learning",
	"برمجه":         "programming",
	"جافا":          "java",
	"بايثون":        "python",
	"بايثون3":       "python",
	"باثون":         "python",
	"جافاسكربت":     "javascript js",
	"سي شارب":       "c# csharp",
	"سي بلس بلس":    "c++",
	"قواعد بيانات":  "database sql",
	"js":            "javascript",
	"مبتدا":         "beginner",
	"مبتدئ":         "beginner",
	"مبتدئين":       "beginner",
	"متوسط":         "intermediate",
	"محترف":         "advanced",
	"كورسات":        "course courses",
	"دورة":          "course",
	"تعلم":          "learn learning",
	"اتعلم":         "learn learning",
	"عايز":          "want",
	"عاوز":          "want",
	"شرح":           "tutorial explained",
})
