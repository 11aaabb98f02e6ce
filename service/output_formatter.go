package service

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/compscan/compscan/domain"
)

// WriteJSON writes data as indented JSON to writer, in the teacher's
// encoder-with-indent idiom.
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// NodeJson is the serialized shape of one graph node (spec.md §6).
type NodeJson struct {
	Id                   string   `json:"id"`
	Name                 string   `json:"name"`
	PropsDeclared        []string `json:"propsDeclared"`
	PropsUsedInBody      []string `json:"propsUsedInBody"`
	UnusedProps          []string `json:"unusedProps"`
	InDegree             int      `json:"inDegree"`
	OutDegree            int      `json:"outDegree"`
	CyclomaticComplexity int      `json:"cyclomaticComplexity"`
	Dependencies         []string `json:"dependencies"`
	Dependents           []string `json:"dependents"`
	RelativePath         string   `json:"relativePath"`
}

// EdgeJson is the serialized shape of one directed dependency edge.
type EdgeJson struct {
	Source   string                 `json:"source"`
	Target   string                 `json:"target"`
	Metadata map[string]interface{} `json:"metadata"`
}

// MetadataJson wraps domain.GraphMetadata with the run-level fields
// spec.md §6 asks for alongside it.
type MetadataJson struct {
	domain.GraphMetadata
	GeneratedAt string `json:"generatedAt"`
	ProjectPath string `json:"projectPath"`
	Framework   string `json:"framework"`
}

// AnalysisDocument is the single bit-stable JSON document spec.md §6
// mandates as the core's serialized output.
type AnalysisDocument struct {
	Nodes    map[string]NodeJson `json:"nodes"`
	Edges    []EdgeJson          `json:"edges"`
	Metadata MetadataJson        `json:"metadata"`
	Analysis domain.Findings     `json:"analysis"`
}

// BuildAnalysisDocument converts a CoreResult into the wire document. It is
// deterministic over identical inputs modulo Metadata.GeneratedAt (spec.md
// §8's determinism property).
func BuildAnalysisDocument(result domain.CoreResult, cfg domain.CoreConfig, generatedAt time.Time) AnalysisDocument {
	g := result.Graph

	nodes := make(map[string]NodeJson, len(g.Nodes))
	var edges []EdgeJson

	for _, id := range g.SortedNodeIds() {
		n := g.Nodes[id]
		nodes[string(id)] = NodeJson{
			Id:                   string(id),
			Name:                 n.Name,
			PropsDeclared:        sortedKeys(n.PropsDeclared),
			PropsUsedInBody:      sortedKeys(n.PropsUsed),
			UnusedProps:          n.UnusedProps(),
			InDegree:             n.InDegree,
			OutDegree:            n.OutDegree,
			CyclomaticComplexity: n.CyclomaticComplexity,
			Dependencies:         idsToStrings(n.SortedOutTargets()),
			Dependents:           idsToStrings(n.SortedInTargets()),
			RelativePath:         relativePath(cfg.ProjectPath, id),
		}

		for _, target := range n.SortedOutTargets() {
			edges = append(edges, EdgeJson{
				Source:   string(id),
				Target:   string(target),
				Metadata: edgeMetadata(n.OutEdges[target]),
			})
		}
	}

	return AnalysisDocument{
		Nodes: nodes,
		Edges: edges,
		Metadata: MetadataJson{
			GraphMetadata: g.Metadata,
			GeneratedAt:   generatedAt.Format(time.RFC3339),
			ProjectPath:   cfg.ProjectPath,
			Framework:     string(cfg.Framework),
		},
		Analysis: result.Findings,
	}
}

// WriteAnalysisJSON serializes result as the spec.md §6 document.
func WriteAnalysisJSON(writer io.Writer, result domain.CoreResult, cfg domain.CoreConfig, generatedAt time.Time) error {
	return WriteJSON(writer, BuildAnalysisDocument(result, cfg, generatedAt))
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func idsToStrings(ids []domain.FileId) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func relativePath(projectPath string, id domain.FileId) string {
	rel, err := filepath.Rel(projectPath, string(id))
	if err != nil {
		return string(id)
	}
	return filepath.ToSlash(rel)
}

// edgeMetadata flattens an EdgeInfo into a map so Go's map-key-sorting
// json.Marshal behavior gives EdgeJson.Metadata sorted keys, per spec.md §6.
func edgeMetadata(e *domain.EdgeInfo) map[string]interface{} {
	specifiers := make([]map[string]string, 0, len(e.Specifiers))
	for _, s := range e.Specifiers {
		specifiers = append(specifiers, map[string]string{
			"kind":     string(s.Kind),
			"imported": s.Imported,
			"local":    s.Local,
		})
	}

	sourceSpecifiers := append([]string(nil), e.SourceSpecifiers...)
	sort.Strings(sourceSpecifiers)

	return map[string]interface{}{
		"sourceSpecifiers": sourceSpecifiers,
		"specifiers":       specifiers,
		"usageCount":       e.UsageCount,
		"passedProps":      sortedKeys(e.PassedProps),
	}
}
