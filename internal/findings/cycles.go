package findings

import (
	"sort"
	"strings"

	"github.com/compscan/compscan/domain"
)

// detectCycles finds circular dependencies via DFS with a recursion-stack
// set: each back-edge to a node still on the stack yields the cycle formed
// by the stack slice from that node to the top. Cycles are normalized by
// rotating so the lexicographically smallest FileId is first, which lets
// equal cycles discovered from different start points dedupe against each
// other. Grounded on internal/analyzer/circular_detector.go's overall
// shape (deterministic ordering, severity-by-size), with the algorithm
// itself replaced by the spec's DFS-plus-rotation instead of Tarjan SCC.
func detectCycles(g *domain.Graph) []domain.Cycle {
	visited := make(map[domain.FileId]bool)
	onStack := make(map[domain.FileId]bool)
	var stack []domain.FileId
	seen := make(map[string]bool)
	var cycles []domain.Cycle

	var dfs func(id domain.FileId)
	dfs = func(id domain.FileId) {
		visited[id] = true
		onStack[id] = true
		stack = append(stack, id)

		node := g.Nodes[id]
		for _, target := range node.SortedOutTargets() {
			if !visited[target] {
				dfs(target)
			} else if onStack[target] {
				members := normalizeCycle(extractStackCycle(stack, target))
				sig := cycleSignature(members)
				if !seen[sig] {
					seen[sig] = true
					cycles = append(cycles, buildCycle(g, members))
				}
			}
		}

		stack = stack[:len(stack)-1]
		onStack[id] = false
	}

	for _, id := range g.SortedNodeIds() {
		if !visited[id] {
			dfs(id)
		}
	}

	sort.SliceStable(cycles, func(i, j int) bool { return cycles[i].Severity > cycles[j].Severity })
	return cycles
}

func extractStackCycle(stack []domain.FileId, repeated domain.FileId) []domain.FileId {
	idx := 0
	for i, id := range stack {
		if id == repeated {
			idx = i
			break
		}
	}
	members := make([]domain.FileId, len(stack)-idx)
	copy(members, stack[idx:])
	return members
}

func normalizeCycle(members []domain.FileId) []domain.FileId {
	minIdx := 0
	for i, id := range members {
		if id < members[minIdx] {
			minIdx = i
		}
	}
	rotated := make([]domain.FileId, len(members))
	for i := range members {
		rotated[i] = members[(minIdx+i)%len(members)]
	}
	return rotated
}

func cycleSignature(members []domain.FileId) string {
	parts := make([]string, len(members))
	for i, id := range members {
		parts[i] = string(id)
	}
	return strings.Join(parts, "->")
}

func buildCycle(g *domain.Graph, members []domain.FileId) domain.Cycle {
	degreeSum := 0
	for _, id := range members {
		n := g.Nodes[id]
		degreeSum += n.InDegree + n.OutDegree
	}
	return domain.Cycle{
		Members:  members,
		Severity: 10*len(members) + degreeSum,
	}
}
