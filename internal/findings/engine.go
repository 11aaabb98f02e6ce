// Package findings is the AnalysisEngine: it runs graph algorithms over a
// frozen Graph and produces a Findings record, without mutating the graph.
// Grounded on internal/analyzer's circular_detector.go, coupling_metrics.go,
// dead_code.go and grouping_strategy.go, generalized from the teacher's
// DependencyGraph adjacency maps to domain.Graph's ComponentNode edges.
package findings

import (
	"sort"

	"github.com/compscan/compscan/domain"
)

// Analyze computes a Findings record for g. g must already satisfy
// domain.Graph's structural invariants; Analyze calls Validate itself and
// returns its error unchanged (wrapping corerr.InvalidGraph) if g is
// malformed.
func Analyze(g *domain.Graph) (domain.Findings, error) {
	if err := g.Validate(); err != nil {
		return domain.Findings{}, err
	}

	f := domain.Findings{
		OrphanComponents:     orphans(g),
		UnusedProps:          unusedProps(g),
		CircularDependencies: detectCycles(g),
		ComponentComplexity:  componentComplexity(g),
		DependencyDepth:      dependencyDepth(g),
		HubComponents:        hubComponents(g),
		DeadCode:             deadCode(g),
		Coupling:             coupling(g),
	}
	f.ComponentGroups = componentGroups(g)
	f.BreakSuggestions = breakSuggestions(g, f.CircularDependencies)
	f.Recommendations = recommendations(g, f)

	return f, nil
}

func orphans(g *domain.Graph) []domain.Orphan {
	var out []domain.Orphan
	for _, id := range g.SortedNodeIds() {
		n := g.Nodes[id]
		if n.InDegree != 0 {
			continue
		}
		reason := domain.OrphanEntryPoint
		if n.OutDegree == 0 {
			reason = domain.OrphanIsolated
		}
		out = append(out, domain.Orphan{
			FileId:    id,
			Name:      n.Name,
			Reason:    reason,
			OutDegree: n.OutDegree,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OutDegree > out[j].OutDegree })
	return out
}

func unusedProps(g *domain.Graph) []domain.UnusedProp {
	var out []domain.UnusedProp
	for _, id := range g.SortedNodeIds() {
		n := g.Nodes[id]
		if n.UsesRestSpread {
			continue
		}
		unused := n.UnusedProps()
		if len(unused) == 0 {
			continue
		}
		declared := len(n.PropsDeclared)
		used := declared - len(unused)
		rate := 0.0
		if declared > 0 {
			rate = float64(used) / float64(declared) * 100
		}
		out = append(out, domain.UnusedProp{
			FileId:        id,
			Name:          n.Name,
			Unused:        unused,
			DeclaredCount: declared,
			UsageRate:     round2(rate),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].Unused) > len(out[j].Unused) })
	return out
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
