// Package graphbuilder folds a sequence of FileFacts into the frozen
// dependency graph described by spec.md §4.3: node/edge creation with
// placeholder restoration, degree counters, weak-connected-component
// labeling, centrality, and graph-wide structural metadata.
package graphbuilder

import (
	"sort"

	"github.com/compscan/compscan/domain"
)

// Build assembles facts into a Graph. facts need not be pre-sorted; Build
// sorts them internally by FileId to satisfy the determinism contract.
func Build(facts []*domain.FileFacts) *domain.Graph {
	sorted := make([]*domain.FileFacts, len(facts))
	copy(sorted, facts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].FileId < sorted[j].FileId })

	g := domain.NewGraph()

	createNodes(g, sorted)
	createEdges(g, sorted)
	computeMetadata(g)

	return g
}

// createNodes is Pass 1: one ComponentNode per FileFacts that either is a
// component or carries at least one export (spec.md §4.3 Pass 1, §3
// invariant 5).
func createNodes(g *domain.Graph, sorted []*domain.FileFacts) {
	for _, f := range sorted {
		if !f.HasContribution() {
			continue
		}
		n := domain.NewComponentNode(f.FileId, f.ComponentName)
		n.IsComponent = f.IsComponent
		n.UsesRestSpread = f.UsesRestSpread
		n.CyclomaticComplexity = f.CyclomaticComplexity
		n.ExportCount = len(f.Exports)
		for p := range f.PropsDeclared {
			n.PropsDeclared[p] = struct{}{}
		}
		for p := range f.PropsUsed {
			n.PropsUsed[p] = struct{}{}
		}
		g.Nodes[f.FileId] = n
	}
}

// createEdges is Pass 2: one edge per (source, target) pair, merging
// parallel imports' specifiers and materializing placeholder nodes for
// resolved-but-unanalyzed targets (spec.md §3 invariant 6).
func createEdges(g *domain.Graph, sorted []*domain.FileFacts) {
	for _, f := range sorted {
		if !f.HasContribution() {
			continue
		}
		targets := make([]domain.FileId, 0, len(f.Imports))
		for target := range f.Imports {
			targets = append(targets, target)
		}
		sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

		for _, target := range targets {
			importEdge := f.Imports[target]
			ensureNode(g, target)
			edge := ensureEdge(g.Nodes[f.FileId], target)
			edge.SourceSpecifiers = appendUnique(edge.SourceSpecifiers, importEdge.SourceSpecifier)
			edge.Specifiers = append(edge.Specifiers, importEdge.Specifiers...)

			if usage, ok := f.ComponentUsages[target]; ok {
				edge.UsageCount += usage.UsageCount
				if edge.PassedProps == nil {
					edge.PassedProps = make(map[string]struct{})
				}
				for p := range usage.PassedProps {
					edge.PassedProps[p] = struct{}{}
				}
			}

			updateDegrees(g, f.FileId, target)
		}
	}
}

// ensureNode creates a placeholder node for id if one does not already
// exist, per spec.md §3 invariant 6.
func ensureNode(g *domain.Graph, id domain.FileId) {
	if _, ok := g.Nodes[id]; ok {
		return
	}
	n := domain.NewComponentNode(id, id.Base())
	n.IsPlaceholder = true
	g.Nodes[id] = n
}

// ensureEdge returns the EdgeInfo for (source, target), creating it (and
// the reciprocal in/out bookkeeping) on first sight. A second call for
// the same pair returns the existing EdgeInfo so callers merge into it
// instead of creating a parallel edge.
func ensureEdge(source *domain.ComponentNode, target domain.FileId) *domain.EdgeInfo {
	if e, ok := source.OutEdges[target]; ok {
		return e
	}
	e := &domain.EdgeInfo{PassedProps: make(map[string]struct{})}
	source.OutEdges[target] = e
	return e
}

func updateDegrees(g *domain.Graph, source, target domain.FileId) {
	sn := g.Nodes[source]
	tn := g.Nodes[target]
	if _, already := tn.InEdges[source]; already {
		return // degrees already counted for this pair; this call is a merge
	}
	tn.InEdges[source] = struct{}{}
	sn.OutDegree = len(sn.OutEdges)
	tn.InDegree = len(tn.InEdges)
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
