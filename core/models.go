package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for catalog entries.
// It is generated using content-based hashing so that re-seeding the same
// catalog produces identical IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Level is an ordinal skill level. The ordering is load-bearing:
// level filtering keeps entries at the requested level and above.
type Level int

const (
	LevelBeginner Level = iota
	LevelIntermediate
	LevelAdvanced
)

// String returns the canonical display name for the level.
func (l Level) String() string {
	switch l {
	case LevelBeginner:
		return "Beginner"
	case LevelAdvanced:
		return "Advanced"
	default:
		return "Intermediate"
	}
}

// ParseLevel normalizes free-form level strings from catalog data into one of
// the three tiers. Unknown or empty values default to Intermediate.
func ParseLevel(s string) Level {
	l := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(l, "beginner"), strings.Contains(l, "مبتدئ"), strings.Contains(l, "مبتدا"):
		return LevelBeginner
	case strings.Contains(l, "advanced"), strings.Contains(l, "expert"),
		strings.Contains(l, "متقدم"), strings.Contains(l, "محترف"):
		return LevelAdvanced
	default:
		return LevelIntermediate
	}
}

// CatalogEntry is a single course in the catalog. Entries are immutable once
// loaded into a snapshot; a catalog reload builds new entries.
type CatalogEntry struct {
	Id          ID
	Title       string
	Category    string
	Level       Level
	Skills      string
	Description string
	Instructor  string
	Vector      []float32 // Passage embedding (populated by the ingestion pipeline)
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// ContentKey returns the string the entry's content-based ID is derived from.
func (e *CatalogEntry) ContentKey() string {
	return e.Title + "|" + e.Instructor
}

// PassageText returns the text that gets embedded for this entry.
// Must be stable across reindex runs: scores from different passage texts
// are not comparable.
func (e *CatalogEntry) PassageText() string {
	return strings.TrimSpace(e.Title + " " + e.Description + " " + e.Skills)
}

// Checkpoint records how far a background processor (embedding, reindex)
// has progressed, so a restart resumes instead of starting over.
type Checkpoint struct {
	ProcessorType string
	LastProcessed ID
	UpdatedAt     time.Time
}

// Route identifies the strategy that produced a result set.
type Route string

const (
	RouteTitle    Route = "title"
	RouteCategory Route = "category"
	RouteSemantic Route = "semantic"
	RouteNone     Route = "no_match"
)

// Status is the outcome of a routing decision.
type Status string

const (
	StatusOK      Status = "ok"
	StatusNoMatch Status = "no_match"
)

// LevelMode describes how level filtering was applied to a result set.
type LevelMode string

const (
	LevelModeAll         LevelMode = "all_levels"
	LevelModeSingle      LevelMode = "single_level"
	LevelModeFiltered    LevelMode = "level_filtered"
	LevelModeFallbackAll LevelMode = "fallback_all_levels"
)

// ReasonCode explains a no_match decision. The core never generates prose;
// turning these into user-facing text belongs to the conversational layer.
type ReasonCode string

const (
	ReasonGenericNoSubject      ReasonCode = "generic_no_subject"
	ReasonOpinionNoSubject      ReasonCode = "opinion_no_subject"
	ReasonSemanticEmpty         ReasonCode = "semantic_empty"
	ReasonSemanticFilteredEmpty ReasonCode = "semantic_filtered_empty"
	ReasonSemanticUnavailable   ReasonCode = "semantic_unavailable"
	ReasonEmptyCatalog          ReasonCode = "empty_catalog"
)

// Query is a parsed user query. Variants holds up to four canonical rewrites
// used to widen exact/fuzzy matching; Variants[0] is the normalized text.
type Query struct {
	Raw        string
	Normalized string
	Variants   []string
	Level      Level
	HasLevel   bool
}

// ParsedLevelMode is the parse-time level mode of the query, before any
// filtering. The final envelope carries the level filter's mode instead.
func (q Query) ParsedLevelMode() LevelMode {
	if q.HasLevel {
		return LevelModeSingle
	}
	return LevelModeAll
}

// CandidateResult references a catalog entry together with the transient
// score that ranked it. Scores are comparable only within one index
// generation.
type CandidateResult struct {
	Entry *CatalogEntry
	Score float32
	Route Route
}

// LevelBuckets groups results by skill level. All three buckets are always
// present in a decision envelope, possibly empty, each sorted by score
// descending.
type LevelBuckets struct {
	Beginner     []*CandidateResult
	Intermediate []*CandidateResult
	Advanced     []*CandidateResult
}

// Total returns the number of results across all buckets.
func (b *LevelBuckets) Total() int {
	return len(b.Beginner) + len(b.Intermediate) + len(b.Advanced)
}

// RouteDecision is the result envelope emitted by the search router.
// "Nothing matched" is a normal decision with StatusNoMatch and a reason
// code, never an error.
type RouteDecision struct {
	Status    Status
	Route     Route
	LevelMode LevelMode
	Results   LevelBuckets
	Reason    ReasonCode
}
