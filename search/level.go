package search

import (
	"sort"

	"github.com/manhaj/coursesearch/core"
)

// ApplyLevelFilter keeps results at or above the requested level. A level
// mismatch never turns an existing match into zero results: when filtering
// would empty a non-empty input, the full input is returned unfiltered and
// the mode reports the fallback.
func ApplyLevelFilter(results []*core.CandidateResult, level core.Level, hasLevel bool) ([]*core.CandidateResult, core.LevelMode) {
	if !hasLevel {
		return results, core.LevelModeAll
	}

	filtered := make([]*core.CandidateResult, 0, len(results))
	for _, r := range results {
		if r.Entry.Level >= level {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 && len(results) > 0 {
		return results, core.LevelModeFallbackAll
	}
	return filtered, core.LevelModeFiltered
}

// GroupByLevel partitions results into the three level buckets, deduplicating
// by entry id and sorting each bucket by score descending. Entries with an
// out-of-range level land in the Intermediate bucket.
func GroupByLevel(results []*core.CandidateResult) core.LevelBuckets {
	var buckets core.LevelBuckets
	seen := make(map[core.ID]bool, len(results))
	for _, r := range results {
		if seen[r.Entry.Id] {
			continue
		}
		seen[r.Entry.Id] = true
		switch r.Entry.Level {
		case core.LevelBeginner:
			buckets.Beginner = append(buckets.Beginner, r)
		case core.LevelAdvanced:
			buckets.Advanced = append(buckets.Advanced, r)
		default:
			buckets.Intermediate = append(buckets.Intermediate, r)
		}
	}
	sortByScore(buckets.Beginner)
	sortByScore(buckets.Intermediate)
	sortByScore(buckets.Advanced)
	return buckets
}

func sortByScore(results []*core.CandidateResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
