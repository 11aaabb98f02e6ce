package findings

import (
	"sort"

	"github.com/compscan/compscan/domain"
)

// coupling computes afferent/efferent/instability per node, grounded on
// internal/analyzer/coupling_metrics.go's Ca/Ce/instability/bucket shape,
// generalized from DependencyGraph edge lists to ComponentNode degrees.
// Unlike the teacher's 0.5-neutral convention for zero-coupling nodes,
// instability here is 0 when Ca+Ce = 0, matching the documented formula.
func coupling(g *domain.Graph) []domain.Coupling {
	var out []domain.Coupling
	for _, id := range g.SortedNodeIds() {
		n := g.Nodes[id]
		ca := n.InDegree
		ce := n.OutDegree
		total := ca + ce

		instability := 0.0
		if total > 0 {
			instability = round2(float64(ce) / float64(total))
		}

		out = append(out, domain.Coupling{
			FileId:      id,
			Name:        n.Name,
			Afferent:    ca,
			Efferent:    ce,
			Instability: instability,
			Bucket:      couplingBucket(total),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Afferent+out[i].Efferent > out[j].Afferent+out[j].Efferent
	})
	return out
}

func couplingBucket(total int) domain.CouplingBucket {
	switch {
	case total < 5:
		return domain.CouplingLow
	case total < 10:
		return domain.CouplingMedium
	case total < 15:
		return domain.CouplingHigh
	default:
		return domain.CouplingVeryHigh
	}
}
