package search

import "github.com/manhaj/coursesearch/core"

// RouteMonitor receives callbacks at each stage of a route evaluation.
// Implementations must be safe for concurrent use and should return quickly;
// the router calls them inline.
type RouteMonitor interface {
	// OnGuardRejected fires when the guard terminates the query.
	OnGuardRejected(query core.Query, reason core.ReasonCode)
	// OnExactMatch fires when the title or category route matched.
	OnExactMatch(query core.Query, route core.Route, match string, ratio float64)
	// OnSemanticCandidates fires with the raw neighbor count and the count
	// surviving the relevance filter.
	OnSemanticCandidates(query core.Query, retrieved, kept int)
	// OnDecision fires exactly once per route call with the final envelope.
	OnDecision(query core.Query, decision *core.RouteDecision)
}

type noopMonitor struct{}

func (noopMonitor) OnGuardRejected(core.Query, core.ReasonCode)             {}
func (noopMonitor) OnExactMatch(core.Query, core.Route, string, float64)    {}
func (noopMonitor) OnSemanticCandidates(core.Query, int, int)               {}
func (noopMonitor) OnDecision(core.Query, *core.RouteDecision)              {}
