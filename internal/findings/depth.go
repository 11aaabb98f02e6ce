package findings

import "github.com/compscan/compscan/domain"

// dependencyDepth computes, for each node, the longest acyclic forward
// path starting there via DFS with an active-visit set that suppresses
// cycles (a node reached while still on the current path contributes 0).
// Grounded on internal/analyzer/coupling_metrics.go's CalculateMaxDepth
// memoized-DFS pattern.
func dependencyDepth(g *domain.Graph) domain.DepthDistribution {
	memo := make(map[domain.FileId]int)
	active := make(map[domain.FileId]bool)

	var depthOf func(id domain.FileId) int
	depthOf = func(id domain.FileId) int {
		if d, ok := memo[id]; ok {
			return d
		}
		if active[id] {
			return 0
		}
		active[id] = true
		defer func() { active[id] = false }()

		n := g.Nodes[id]
		maxChild := 0
		for _, target := range n.SortedOutTargets() {
			if d := depthOf(target); d > maxChild {
				maxChild = d
			}
		}
		d := 0
		if n.OutDegree > 0 {
			d = maxChild + 1
		}
		memo[id] = d
		return d
	}

	ids := g.SortedNodeIds()
	var byNode []domain.DepthInfo
	total := 0
	max := 0
	for _, id := range ids {
		d := depthOf(id)
		n := g.Nodes[id]
		byNode = append(byNode, domain.DepthInfo{FileId: id, Name: n.Name, Depth: d})
		total += d
		if d > max {
			max = d
		}
	}

	avg := 0.0
	if len(ids) > 0 {
		avg = round2(float64(total) / float64(len(ids)))
	}

	threshold := 0.8 * float64(max)
	var deep []domain.FileId
	for _, info := range byNode {
		if float64(info.Depth) >= threshold && max > 0 {
			deep = append(deep, info.FileId)
		}
	}

	return domain.DepthDistribution{
		ByNode:    byNode,
		Average:   avg,
		Max:       max,
		DeepNodes: deep,
	}
}
