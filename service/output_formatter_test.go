package service

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/compscan/compscan/domain"
	"github.com/compscan/compscan/internal/findings"
	"github.com/compscan/compscan/internal/graphbuilder"
)

func TestWriteJSON(t *testing.T) {
	data := map[string]interface{}{"name": "test", "value": 42}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse output as JSON: %v", err)
	}
	if result["name"] != "test" {
		t.Errorf("expected name to be 'test', got %v", result["name"])
	}
}

func twoNodeFacts() []*domain.FileFacts {
	app := domain.NewFileFacts(domain.FileId("/proj/App.jsx"), "App")
	app.IsComponent = true
	app.RecordImport(domain.FileId("/proj/Button.jsx"), "./Button", domain.ImportSpecifier{
		Kind: domain.ImportDefaultSpec, Local: "Button",
	})

	button := domain.NewFileFacts(domain.FileId("/proj/Button.jsx"), "Button")
	button.IsComponent = true
	button.Exports = []domain.Export{{Kind: domain.ExportDefault}}
	button.PropsDeclared["label"] = struct{}{}

	return []*domain.FileFacts{app, button}
}

func TestBuildAnalysisDocumentShape(t *testing.T) {
	g := graphbuilder.Build(twoNodeFacts())
	result, err := findings.Analyze(g)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	cfg := domain.CoreConfig{ProjectPath: "/proj", Framework: domain.FrameworkReact}
	generatedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	doc := BuildAnalysisDocument(domain.CoreResult{Graph: g, Findings: result}, cfg, generatedAt)

	if len(doc.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(doc.Nodes))
	}
	appNode, ok := doc.Nodes["/proj/App.jsx"]
	if !ok {
		t.Fatal("expected App.jsx node in document")
	}
	if appNode.RelativePath != "App.jsx" {
		t.Errorf("expected relative path App.jsx, got %q", appNode.RelativePath)
	}
	if len(doc.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(doc.Edges))
	}
	if doc.Edges[0].Source != "/proj/App.jsx" || doc.Edges[0].Target != "/proj/Button.jsx" {
		t.Errorf("unexpected edge: %+v", doc.Edges[0])
	}
	if doc.Metadata.ProjectPath != "/proj" || doc.Metadata.Framework != "react" {
		t.Errorf("unexpected metadata: %+v", doc.Metadata)
	}
	if doc.Metadata.GeneratedAt != generatedAt.Format(time.RFC3339) {
		t.Errorf("unexpected generatedAt: %s", doc.Metadata.GeneratedAt)
	}
}

func TestBuildAnalysisDocumentIsDeterministic(t *testing.T) {
	g := graphbuilder.Build(twoNodeFacts())
	result, err := findings.Analyze(g)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	cfg := domain.CoreConfig{ProjectPath: "/proj", Framework: domain.FrameworkReact}
	generatedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var bufA, bufB bytes.Buffer
	if err := WriteAnalysisJSON(&bufA, domain.CoreResult{Graph: g, Findings: result}, cfg, generatedAt); err != nil {
		t.Fatalf("WriteAnalysisJSON: %v", err)
	}
	if err := WriteAnalysisJSON(&bufB, domain.CoreResult{Graph: g, Findings: result}, cfg, generatedAt); err != nil {
		t.Fatalf("WriteAnalysisJSON: %v", err)
	}
	if bufA.String() != bufB.String() {
		t.Error("expected identical serialization across repeated runs over the same input")
	}
}
