package findings

import "github.com/compscan/compscan/domain"

// breakSuggestions proposes, for each reported cycle, the lowest-usage
// edge among its consecutive member pairs as the best candidate to invert
// or extract — reusing internal/analyzer/circular_detector.go's
// findBestEdgeToBreak "lowest weight" heuristic, with
// component_usages.usage_count standing in for the teacher's edge weight.
func breakSuggestions(g *domain.Graph, cycles []domain.Cycle) []domain.BreakSuggestion {
	var out []domain.BreakSuggestion
	for _, cycle := range cycles {
		if len(cycle.Members) == 0 {
			continue
		}
		var bestSource, bestTarget domain.FileId
		bestUsage := -1
		for i, source := range cycle.Members {
			target := cycle.Members[(i+1)%len(cycle.Members)]
			n := g.Nodes[source]
			edge, ok := n.OutEdges[target]
			usage := 0
			if ok {
				usage = edge.UsageCount
			}
			if bestUsage == -1 || usage < bestUsage {
				bestUsage = usage
				bestSource = source
				bestTarget = target
			}
		}
		out = append(out, domain.BreakSuggestion{
			Cycle:  cycle.Members,
			Source: bestSource,
			Target: bestTarget,
			Reason: "lowest usage_count edge in the cycle; invert or extract an interface to break it",
		})
	}
	return out
}

// recommendations synthesizes a prioritized, deduplicated list from the
// rest of the Findings record. Priority order: critical > high > medium >
// low; each recommendation carries up to 5 exemplar subjects.
func recommendations(g *domain.Graph, f domain.Findings) []domain.Recommendation {
	var out []domain.Recommendation

	if len(f.CircularDependencies) > 0 {
		out = append(out, domain.Recommendation{
			Type:        "circular_dependency",
			Priority:    domain.PriorityCritical,
			Title:       "Break circular dependencies",
			Description: "Components import each other in a cycle, which makes them impossible to load or test independently.",
			Subjects:    topCycleSubjects(f.CircularDependencies),
		})
	}

	if highHubs := filterHighImpactHubs(f.HubComponents); len(highHubs) > 0 {
		out = append(out, domain.Recommendation{
			Type:        "hub_component",
			Priority:    domain.PriorityHigh,
			Title:       "Reduce blast radius of hub components",
			Description: "These components have unusually high total degree; a change to them ripples through a large part of the dependency graph.",
			Subjects:    subjectsOf(hubFileIds(highHubs)),
		})
	}

	if veryHigh := filterVeryHighComplexity(f.ComponentComplexity); len(veryHigh) > 0 {
		out = append(out, domain.Recommendation{
			Type:        "complexity",
			Priority:    domain.PriorityHigh,
			Title:       "Split very-high-complexity components",
			Description: "These components combine a large fan-out, large fan-in, and unused props into a single unit.",
			Subjects:    subjectsOf(complexityFileIds(veryHigh)),
		})
	}

	if len(f.UnusedProps) > 0 {
		out = append(out, domain.Recommendation{
			Type:        "unused_props",
			Priority:    domain.PriorityMedium,
			Title:       "Remove unused props",
			Description: "These components declare props that are never read in their own body, which is dead surface area for every caller.",
			Subjects:    subjectsOf(unusedPropFileIds(f.UnusedProps)),
		})
	}

	if len(f.DeadCode) > 0 {
		out = append(out, domain.Recommendation{
			Type:        "dead_code",
			Priority:    domain.PriorityLow,
			Title:       "Review likely-dead components",
			Description: "These components have no incoming references from the rest of the project and are not recognizable entry points.",
			Subjects:    subjectsOf(deadCodeFileIds(f.DeadCode)),
		})
	}

	return out
}

func topCycleSubjects(cycles []domain.Cycle) []domain.FileId {
	var ids []domain.FileId
	for _, c := range cycles {
		ids = append(ids, c.Members...)
	}
	return subjectsOf(ids)
}

func filterHighImpactHubs(hubs []domain.Hub) []domain.Hub {
	var out []domain.Hub
	for _, h := range hubs {
		if h.DirectImpact+h.IndirectImpact > 0 {
			out = append(out, h)
		}
	}
	return out
}

func hubFileIds(hubs []domain.Hub) []domain.FileId {
	ids := make([]domain.FileId, len(hubs))
	for i, h := range hubs {
		ids[i] = h.FileId
	}
	return ids
}

func filterVeryHighComplexity(cs []domain.ComponentComplexity) []domain.ComponentComplexity {
	var out []domain.ComponentComplexity
	for _, c := range cs {
		if c.Bucket == domain.ComplexityVeryHigh {
			out = append(out, c)
		}
	}
	return out
}

func complexityFileIds(cs []domain.ComponentComplexity) []domain.FileId {
	ids := make([]domain.FileId, len(cs))
	for i, c := range cs {
		ids[i] = c.FileId
	}
	return ids
}

func unusedPropFileIds(ups []domain.UnusedProp) []domain.FileId {
	ids := make([]domain.FileId, len(ups))
	for i, u := range ups {
		ids[i] = u.FileId
	}
	return ids
}

func deadCodeFileIds(dc []domain.DeadCodeEntry) []domain.FileId {
	ids := make([]domain.FileId, len(dc))
	for i, d := range dc {
		ids[i] = d.FileId
	}
	return ids
}

func subjectsOf(ids []domain.FileId) []domain.FileId {
	if len(ids) > 5 {
		return ids[:5]
	}
	return ids
}
