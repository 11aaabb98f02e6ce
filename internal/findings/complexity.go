package findings

import "github.com/compscan/compscan/domain"

func componentComplexity(g *domain.Graph) []domain.ComponentComplexity {
	var out []domain.ComponentComplexity
	for _, id := range g.SortedNodeIds() {
		n := g.Nodes[id]
		score := 2*float64(n.OutDegree) + 1.5*float64(n.InDegree) +
			0.5*float64(len(n.PropsDeclared)) + float64(len(n.UnusedProps()))
		score = round2(score)
		out = append(out, domain.ComponentComplexity{
			FileId: id,
			Name:   n.Name,
			Score:  score,
			Bucket: complexityBucket(score),
		})
	}
	return out
}

func complexityBucket(score float64) domain.ComplexityBucket {
	switch {
	case score < 5:
		return domain.ComplexityVeryLow
	case score < 10:
		return domain.ComplexityLow
	case score < 15:
		return domain.ComplexityMedium
	case score < 20:
		return domain.ComplexityHigh
	default:
		return domain.ComplexityVeryHigh
	}
}
