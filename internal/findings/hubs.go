package findings

import (
	"math"

	"github.com/compscan/compscan/domain"
)

// hubComponents flags nodes whose total degree is at least one population
// standard deviation above the mean, then scores each by direct impact
// (twice its in-degree) and indirect impact: a breadth-first walk over
// reverse edges (who depends on it, and transitively who depends on
// those) up to depth 3, weighting each distinct node found by 1/(depth+1).
func hubComponents(g *domain.Graph) []domain.Hub {
	ids := g.SortedNodeIds()
	if len(ids) == 0 {
		return nil
	}

	total := 0.0
	degrees := make(map[domain.FileId]int, len(ids))
	for _, id := range ids {
		n := g.Nodes[id]
		d := n.InDegree + n.OutDegree
		degrees[id] = d
		total += float64(d)
	}
	mean := total / float64(len(ids))

	variance := 0.0
	for _, d := range degrees {
		diff := float64(d) - mean
		variance += diff * diff
	}
	variance /= float64(len(ids))
	stddev := math.Sqrt(variance)

	threshold := mean + stddev

	var hubs []domain.Hub
	for _, id := range ids {
		d := degrees[id]
		if float64(d) < threshold {
			continue
		}
		n := g.Nodes[id]
		hubs = append(hubs, domain.Hub{
			FileId:         id,
			Name:           n.Name,
			TotalDegree:    d,
			DirectImpact:   round2(2 * float64(n.InDegree)),
			IndirectImpact: round2(reverseImpact(g, id)),
		})
	}

	sortHubsByTotalDegreeDesc(hubs)
	return hubs
}

func reverseImpact(g *domain.Graph, start domain.FileId) float64 {
	type queued struct {
		id    domain.FileId
		depth int
	}
	visited := map[domain.FileId]bool{start: true}
	queue := []queued{{start, 0}}
	sum := 0.0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= 3 {
			continue
		}
		n := g.Nodes[cur.id]
		for _, parent := range n.SortedInTargets() {
			if visited[parent] {
				continue
			}
			visited[parent] = true
			depth := cur.depth + 1
			sum += 1.0 / float64(depth+1)
			queue = append(queue, queued{parent, depth})
		}
	}

	return sum
}

func sortHubsByTotalDegreeDesc(hubs []domain.Hub) {
	for i := 1; i < len(hubs); i++ {
		for j := i; j > 0 && hubs[j].TotalDegree > hubs[j-1].TotalDegree; j-- {
			hubs[j], hubs[j-1] = hubs[j-1], hubs[j]
		}
	}
}
