package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/manhaj/coursesearch/core"
)

const (
	// MaxCandidates bounds the neighbor set requested from the index.
	MaxCandidates = 30
	// MaxResults bounds the semantic result set handed downstream.
	MaxResults = 5
)

// Profile names a relevance threshold pair. MinScore is the absolute floor;
// Band, when positive, additionally drops anything more than Band below the
// top candidate's score. The two built-in profiles serve different call
// sites and are not interchangeable.
type Profile struct {
	Name     string
	MinScore float32
	Band     float32
}

// StrictProfile gates the router's semantic route.
var StrictProfile = Profile{Name: "strict", MinScore: 0.78, Band: 0.04}

// RouterDefaultProfile gates the direct search path, which relies on the
// index-side 0.60 similarity floor instead of a band.
var RouterDefaultProfile = Profile{Name: "router-default", MinScore: 0.70, Band: 0}

// Validate checks the profile constants at construction time.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: profile has no name", core.ErrInvalidProfile)
	}
	if p.MinScore <= 0 || p.MinScore > 1 {
		return fmt.Errorf("%w: %s min score %v out of range", core.ErrInvalidProfile, p.Name, p.MinScore)
	}
	if p.Band < 0 || p.Band >= 1 {
		return fmt.Errorf("%w: %s band %v out of range", core.ErrInvalidProfile, p.Name, p.Band)
	}
	return nil
}

// RelevanceFilter applies score-band and keyword-overlap gating to semantic
// candidates. A single filter is safe for concurrent use.
type RelevanceFilter struct {
	profile  Profile
	synonyms *SynonymMap
}

// NewRelevanceFilter builds a filter for the given profile, failing fast on
// invalid threshold constants.
func NewRelevanceFilter(profile Profile, synonyms *SynonymMap) (*RelevanceFilter, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if synonyms == nil {
		synonyms = DefaultKeywordSynonyms
	}
	return &RelevanceFilter{profile: profile, synonyms: synonyms}, nil
}

// Profile returns the threshold profile the filter was built with.
func (f *RelevanceFilter) Profile() Profile {
	return f.profile
}

// Apply gates candidates for a query. It never returns more than MaxResults
// entries, and returns nothing at all for a subject-less query: semantic
// scores alone are not evidence of relevance.
func (f *RelevanceFilter) Apply(query string, candidates []*core.CandidateResult) []*core.CandidateResult {
	if len(candidates) == 0 {
		return nil
	}

	keywords := ExtractKeywords(query)
	if len(keywords) == 0 {
		return nil
	}

	sorted := make([]*core.CandidateResult, len(candidates))
	copy(sorted, candidates)
	if len(sorted) > MaxCandidates {
		sorted = sorted[:MaxCandidates]
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	threshold := f.profile.MinScore
	if f.profile.Band > 0 {
		if banded := sorted[0].Score - f.profile.Band; banded > threshold {
			threshold = banded
		}
	}

	kept := make([]*core.CandidateResult, 0, MaxResults)
	for _, cand := range sorted {
		if cand.Score < threshold {
			continue
		}
		if !KeywordOverlap(keywords, candidateText(cand.Entry), f.synonyms) {
			continue
		}
		kept = append(kept, cand)
		if len(kept) == MaxResults {
			break
		}
	}
	return kept
}

func candidateText(entry *core.CatalogEntry) string {
	return strings.TrimSpace(entry.Title + " " + entry.Description + " " + entry.Skills)
}
