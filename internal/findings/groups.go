package findings

import (
	"sort"

	"github.com/compscan/compscan/domain"
)

// componentGroups surfaces GraphBuilder's weakly-connected-component
// partition as named clusters with an aggregate stability reading.
// Supplemented feature grounded on internal/analyzer/grouping_strategy.go
// and coupling_metrics.go's main-sequence/zone-of-pain classification,
// generalized onto ComponentGroupId partitions instead of the teacher's
// own clustering heuristics.
func componentGroups(g *domain.Graph) []domain.ComponentGroup {
	byGroup := make(map[int][]domain.FileId)
	for _, id := range g.SortedNodeIds() {
		n := g.Nodes[id]
		byGroup[n.ComponentGroupId] = append(byGroup[n.ComponentGroupId], id)
	}

	groupIds := make([]int, 0, len(byGroup))
	for gid := range byGroup {
		groupIds = append(groupIds, gid)
	}
	sort.Ints(groupIds)

	var out []domain.ComponentGroup
	for _, gid := range groupIds {
		members := byGroup[gid]
		sumInstability := 0.0
		sumZoneScore := 0.0
		for _, id := range members {
			n := g.Nodes[id]
			ca, ce := n.InDegree, n.OutDegree
			instability := 0.0
			if ca+ce > 0 {
				instability = float64(ce) / float64(ca+ce)
			}
			sumInstability += instability
			sumZoneScore += stabilityZoneScore(instability, abstractness(n))
		}
		avg := round2(sumInstability / float64(len(members)))
		zone := "balanced"
		switch {
		case sumZoneScore/float64(len(members)) < -0.25:
			zone = "stable"
		case sumZoneScore/float64(len(members)) > 0.25:
			zone = "unstable"
		}

		out = append(out, domain.ComponentGroup{
			GroupId:        gid,
			Members:        members,
			Size:           len(members),
			AvgInstability: avg,
			StabilityZone:  zone,
		})
	}
	return out
}

// abstractness approximates the Martin metric's A using the node's export
// count: A = |exports|/(|exports|+1), asymptotically approaching 1 as a
// module accumulates more public surface. Adapted from
// coupling_metrics.go's calculateAbstractness, whose export-ratio basis
// assumed whole packages; component files rarely export more than a
// handful of names, so the denominator here is |exports|+1 rather than a
// fixed baseline of 10.
func abstractness(n *domain.ComponentNode) float64 {
	return float64(n.ExportCount) / float64(n.ExportCount+1)
}

// stabilityZoneScore is negative toward "zone of pain" (stable + concrete)
// and positive toward "zone of uselessness" (unstable + abstract).
func stabilityZoneScore(instability, abstract float64) float64 {
	if instability < 0.5 && abstract < 0.5 {
		return -1
	}
	if instability > 0.5 && abstract > 0.5 {
		return 1
	}
	return 0
}
