package findings

import (
	"strings"

	"github.com/compscan/compscan/domain"
)

// entryPointNamePatterns are component-name substrings (matched case
// insensitively) that exempt a zero-in-degree, non-isolated node from the
// unused-entry-point dead-code reason: these are the shapes a router or
// app shell conventionally uses for its top-level files.
var entryPointNamePatterns = []string{"page", "route", "app", "main", "index", "layout"}

// deadCode flags isolated nodes (no edges at all, confidence 0.9) and
// unreferenced roots (no incoming edges but at least one outgoing,
// confidence 0.6) unless the component name looks like a conventional
// entry point. Grounded on internal/analyzer/dead_code.go's
// confidence/reason-tag vocabulary, repurposed from CFG-block
// reachability to graph in/out-degree.
func deadCode(g *domain.Graph) []domain.DeadCodeEntry {
	var out []domain.DeadCodeEntry
	for _, id := range g.SortedNodeIds() {
		n := g.Nodes[id]
		switch {
		case n.InDegree == 0 && n.OutDegree == 0:
			out = append(out, domain.DeadCodeEntry{
				FileId:     id,
				Name:       n.Name,
				Reason:     domain.DeadCodeIsolated,
				Confidence: 0.9,
			})
		case n.InDegree == 0 && n.OutDegree > 0:
			if looksLikeEntryPoint(n.Name) {
				continue
			}
			out = append(out, domain.DeadCodeEntry{
				FileId:     id,
				Name:       n.Name,
				Reason:     domain.DeadCodeUnusedEntryPoint,
				Confidence: 0.6,
			})
		}
	}
	return out
}

func looksLikeEntryPoint(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range entryPointNamePatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
