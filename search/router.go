package search

import (
	"context"
	"errors"
	"log/slog"

	"github.com/manhaj/coursesearch/ai"
	"github.com/manhaj/coursesearch/catalog"
	"github.com/manhaj/coursesearch/core"
	"github.com/manhaj/coursesearch/textnorm"
)

const (
	// ExactMatchThreshold is the similarity floor for title and category
	// fuzzy matching.
	ExactMatchThreshold = 0.85
	// SemanticFloor is the absolute similarity floor belonging to the
	// router-default profile path. The strict route takes the raw top
	// neighbors instead and lets its own profile gate them.
	SemanticFloor = 0.60
)

// SnapshotProvider supplies the current catalog snapshot. The router reads
// the snapshot once per route call so a concurrent reload never splits one
// decision across two catalog generations.
type SnapshotProvider interface {
	Snapshot() *catalog.Snapshot
}

// Router decides which catalog entries answer a query. Routes are tried in
// a fixed priority order: guard, title, category, semantic. Each route
// either terminates with a decision or falls through to the next.
type Router struct {
	snapshots SnapshotProvider
	embedder  ai.Embedder
	filter    *RelevanceFilter
	synonyms  *textnorm.SynonymTable
	logger    *slog.Logger
}

// Option configures a Router.
type Option func(*Router) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithSynonyms overrides the query-expansion synonym table.
func WithSynonyms(table *textnorm.SynonymTable) Option {
	return func(r *Router) error {
		if table != nil {
			r.synonyms = table
		}
		return nil
	}
}

// NewRouter creates a router over the given snapshot provider and embedder.
// The semantic route always uses the strict relevance profile; invalid
// profile constants fail here, at startup, not per query.
func NewRouter(snapshots SnapshotProvider, embedder ai.Embedder, opts ...Option) (*Router, error) {
	if snapshots == nil {
		return nil, ErrSnapshotsRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	filter, err := NewRelevanceFilter(StrictProfile, DefaultKeywordSynonyms)
	if err != nil {
		return nil, err
	}

	r := &Router{
		snapshots: snapshots,
		embedder:  embedder,
		filter:    filter,
		synonyms:  textnorm.DefaultSynonyms,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Route evaluates the decision chain for a raw query.
func (r *Router) Route(ctx context.Context, raw string) (*core.RouteDecision, error) {
	return r.RouteWithMonitor(ctx, raw, nil)
}

// RouteWithMonitor evaluates the decision chain with stage callbacks.
// "Nothing matched" is always a normal no_match decision with a reason
// code; the error return is reserved for true faults such as a vector
// dimension mismatch.
func (r *Router) RouteWithMonitor(ctx context.Context, raw string, monitor RouteMonitor) (*core.RouteDecision, error) {
	if monitor == nil {
		monitor = noopMonitor{}
	}

	query := textnorm.ParseQuery(raw)
	log := r.logger.With("query", query.Normalized, "level_mode", query.ParsedLevelMode())

	// Guard: a query with no identifiable subject never reaches matching.
	if IsGeneric(query.Normalized) {
		log.Debug("guard rejected query", "reason", core.ReasonGenericNoSubject)
		return r.reject(query, core.ReasonGenericNoSubject, monitor), nil
	}
	if IsOpinionWithoutSubject(query.Normalized) {
		log.Debug("guard rejected query", "reason", core.ReasonOpinionNoSubject)
		return r.reject(query, core.ReasonOpinionNoSubject, monitor), nil
	}

	snap := r.snapshots.Snapshot()
	if snap == nil || snap.Len() == 0 {
		log.Debug("catalog is empty")
		return r.reject(query, core.ReasonEmptyCatalog, monitor), nil
	}

	if decision := r.routeExact(query, snap, monitor, log); decision != nil {
		return decision, nil
	}

	return r.routeSemantic(ctx, query, snap, monitor, log)
}

// routeExact tries the title route then the category route over every
// canonical variant of the query. Title is tried first and wins even when
// the same text would also match a category.
func (r *Router) routeExact(query core.Query, snap *catalog.Snapshot, monitor RouteMonitor, log *slog.Logger) *core.RouteDecision {
	titles := NewExactMatcher(snap.Titles(), ExactMatchThreshold)
	for _, variant := range query.Variants {
		if match, ratio, ok := titles.BestMatch(variant); ok {
			log.Debug("title route matched", "title", match, "ratio", ratio)
			monitor.OnExactMatch(query, core.RouteTitle, match, ratio)
			entries := snap.EntriesByTitle(match)
			return r.accept(query, core.RouteTitle, entriesToResults(entries, core.RouteTitle, ratio), monitor)
		}
	}

	categories := NewExactMatcher(snap.Categories(), ExactMatchThreshold)
	for _, variant := range query.Variants {
		if match, ratio, ok := categories.BestMatch(variant); ok {
			log.Debug("category route matched", "category", match, "ratio", ratio)
			monitor.OnExactMatch(query, core.RouteCategory, match, ratio)
			entries := snap.EntriesByCategory(match)
			return r.accept(query, core.RouteCategory, entriesToResults(entries, core.RouteCategory, ratio), monitor)
		}
	}

	return nil
}

// routeSemantic embeds the expanded query, pulls nearest neighbors from the
// snapshot and applies the strict relevance filter. An unreachable embedder
// degrades to a no_match with its own reason code; a dimension mismatch is
// a fault and propagates.
func (r *Router) routeSemantic(ctx context.Context, query core.Query, snap *catalog.Snapshot, monitor RouteMonitor, log *slog.Logger) (*core.RouteDecision, error) {
	expanded := r.synonyms.Expand(query.Normalized)
	vector, err := r.embedder.EmbedQuery(ctx, expanded)
	if err != nil {
		log.Warn("embedding service unavailable", "err", err)
		return r.reject(query, core.ReasonSemanticUnavailable, monitor), nil
	}

	candidates, err := snap.FindSimilar(vector, 0, MaxCandidates)
	if err != nil {
		if errors.Is(err, core.ErrDimensionMismatch) {
			return nil, err
		}
		log.Warn("similarity search unavailable", "err", err)
		return r.reject(query, core.ReasonSemanticUnavailable, monitor), nil
	}
	if len(candidates) == 0 {
		log.Debug("semantic route found no neighbors")
		return r.reject(query, core.ReasonSemanticEmpty, monitor), nil
	}

	kept := r.filter.Apply(query.Normalized, candidates)
	monitor.OnSemanticCandidates(query, len(candidates), len(kept))
	if len(kept) == 0 {
		log.Debug("relevance filter removed all candidates", "retrieved", len(candidates))
		return r.reject(query, core.ReasonSemanticFilteredEmpty, monitor), nil
	}

	log.Debug("semantic route matched", "retrieved", len(candidates), "kept", len(kept))
	return r.accept(query, core.RouteSemantic, kept, monitor), nil
}

func (r *Router) accept(query core.Query, route core.Route, results []*core.CandidateResult, monitor RouteMonitor) *core.RouteDecision {
	filtered, mode := ApplyLevelFilter(results, query.Level, query.HasLevel)
	decision := &core.RouteDecision{
		Status:    core.StatusOK,
		Route:     route,
		LevelMode: mode,
		Results:   GroupByLevel(filtered),
	}
	monitor.OnDecision(query, decision)
	return decision
}

func (r *Router) reject(query core.Query, reason core.ReasonCode, monitor RouteMonitor) *core.RouteDecision {
	if reason == core.ReasonGenericNoSubject || reason == core.ReasonOpinionNoSubject {
		monitor.OnGuardRejected(query, reason)
	}
	decision := &core.RouteDecision{
		Status:    core.StatusNoMatch,
		Route:     core.RouteNone,
		LevelMode: core.LevelModeAll,
		Reason:    reason,
	}
	monitor.OnDecision(query, decision)
	return decision
}

func entriesToResults(entries []*core.CatalogEntry, route core.Route, score float64) []*core.CandidateResult {
	results := make([]*core.CandidateResult, len(entries))
	for i, entry := range entries {
		results[i] = &core.CandidateResult{Entry: entry, Score: float32(score), Route: route}
	}
	return results
}
