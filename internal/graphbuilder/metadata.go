package graphbuilder

import (
	"math"
	"sort"

	"github.com/compscan/compscan/domain"
)

// computeMetadata is Pass 3: weak-connected-component labeling, degree
// centrality, and the graph-wide structural summary (spec.md §4.3).
func computeMetadata(g *domain.Graph) {
	labelComponents(g)
	computeCentrality(g)
	computeGraphMetadata(g)
}

// labelComponents runs DFS over the undirected projection and assigns a
// stable component_group_id: groups are numbered in the order of their
// smallest-FileId member, so the labeling is deterministic regardless of
// map iteration order.
func labelComponents(g *domain.Graph) {
	ids := g.SortedNodeIds()
	visited := make(map[domain.FileId]bool)
	var groups [][]domain.FileId

	for _, id := range ids {
		if visited[id] {
			continue
		}
		var members []domain.FileId
		stack := []domain.FileId{id}
		visited[id] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, cur)
			n := g.Nodes[cur]
			for neighbor := range n.OutEdges {
				if !visited[neighbor] {
					visited[neighbor] = true
					stack = append(stack, neighbor)
				}
			}
			for neighbor := range n.InEdges {
				if !visited[neighbor] {
					visited[neighbor] = true
					stack = append(stack, neighbor)
				}
			}
		}
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		groups = append(groups, members)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	for groupId, members := range groups {
		for _, m := range members {
			g.Nodes[m].ComponentGroupId = groupId
		}
	}
}

func computeCentrality(g *domain.Graph) {
	n := len(g.Nodes)
	for _, node := range g.Nodes {
		if n <= 1 {
			node.DegreeCentrality = 0
			continue
		}
		node.DegreeCentrality = float64(node.InDegree+node.OutDegree) / float64(n-1)
	}
}

func computeGraphMetadata(g *domain.Graph) {
	n := len(g.Nodes)
	edgeCount := 0
	var inDegs, outDegs, totalDegs []float64
	var isolated, leaf, root []domain.FileId

	groupSizes := make(map[int]int)

	for _, id := range g.SortedNodeIds() {
		node := g.Nodes[id]
		edgeCount += node.OutDegree
		inDegs = append(inDegs, float64(node.InDegree))
		outDegs = append(outDegs, float64(node.OutDegree))
		totalDegs = append(totalDegs, float64(node.InDegree+node.OutDegree))
		groupSizes[node.ComponentGroupId]++

		switch {
		case node.InDegree == 0 && node.OutDegree == 0:
			isolated = append(isolated, id)
		case node.OutDegree == 0 && node.InDegree > 0:
			leaf = append(leaf, id)
		case node.InDegree == 0 && node.OutDegree > 0:
			root = append(root, id)
		}
	}

	density := 0.0
	if n > 1 {
		density = float64(edgeCount) / float64(n*(n-1))
	}

	largest := 0
	for _, size := range groupSizes {
		if size > largest {
			largest = size
		}
	}

	g.Metadata = domain.GraphMetadata{
		NodeCount:               n,
		EdgeCount:               edgeCount,
		Density:                 density,
		InDegreeDist:            distributionOf(inDegs),
		OutDegreeDist:           distributionOf(outDegs),
		TotalDegreeDist:         distributionOf(totalDegs),
		ConnectedComponentCount: len(groupSizes),
		LargestComponentSize:    largest,
		IsolatedNodes:           isolated,
		LeafNodes:               leaf,
		RootNodes:               root,
	}
}

func distributionOf(values []float64) domain.DegreeDistribution {
	if len(values) == 0 {
		return domain.DegreeDistribution{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	min := sorted[0]
	max := sorted[len(sorted)-1]

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	variance := 0.0
	for _, v := range sorted {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(sorted))
	stddev := math.Sqrt(variance)

	return domain.DegreeDistribution{
		Min:    int(min),
		Max:    int(max),
		Mean:   mean,
		Median: median,
		StdDev: stddev,
	}
}
