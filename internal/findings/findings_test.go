package findings

import (
	"testing"

	"github.com/compscan/compscan/domain"
	"github.com/compscan/compscan/internal/graphbuilder"
)

func fid(p string) domain.FileId {
	return domain.NewFileId(p)
}

func TestOrphansAndDeadCodeForIsolatedNode(t *testing.T) {
	a := domain.NewFileFacts(fid("/p/a.jsx"), "A")
	a.IsComponent = true

	g := graphbuilder.Build([]*domain.FileFacts{a})
	f, err := Analyze(g)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(f.OrphanComponents) != 1 || f.OrphanComponents[0].Reason != domain.OrphanIsolated {
		t.Fatalf("expected one isolated orphan, got %+v", f.OrphanComponents)
	}
	if len(f.DeadCode) != 1 || f.DeadCode[0].Reason != domain.DeadCodeIsolated {
		t.Fatalf("expected one isolated dead-code entry, got %+v", f.DeadCode)
	}
}

func TestEntryPointNamedNodeIsExemptFromUnusedEntryPointDeadCode(t *testing.T) {
	page := domain.NewFileFacts(fid("/p/HomePage.jsx"), "HomePage")
	page.IsComponent = true
	child := domain.NewFileFacts(fid("/p/Widget.jsx"), "Widget")
	child.IsComponent = true
	page.RecordImport(fid("/p/Widget.jsx"), "./Widget", domain.ImportSpecifier{Kind: domain.ImportDefaultSpec, Imported: "default", Local: "Widget"})

	g := graphbuilder.Build([]*domain.FileFacts{page, child})
	f, err := Analyze(g)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	for _, d := range f.DeadCode {
		if d.FileId == fid("/p/HomePage.jsx") {
			t.Errorf("expected HomePage to be exempt from dead-code flagging, got %+v", d)
		}
	}
}

func TestCircularDependencyDetectedAndSeverityComputed(t *testing.T) {
	a := domain.NewFileFacts(fid("/p/a.jsx"), "A")
	a.IsComponent = true
	b := domain.NewFileFacts(fid("/p/b.jsx"), "B")
	b.IsComponent = true
	a.RecordImport(fid("/p/b.jsx"), "./b", domain.ImportSpecifier{Kind: domain.ImportDefaultSpec, Imported: "default", Local: "B"})
	b.RecordImport(fid("/p/a.jsx"), "./a", domain.ImportSpecifier{Kind: domain.ImportDefaultSpec, Imported: "default", Local: "A"})

	g := graphbuilder.Build([]*domain.FileFacts{a, b})
	f, err := Analyze(g)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(f.CircularDependencies) != 1 {
		t.Fatalf("expected exactly one deduplicated cycle, got %d: %+v", len(f.CircularDependencies), f.CircularDependencies)
	}
	cycle := f.CircularDependencies[0]
	if len(cycle.Members) != 2 {
		t.Fatalf("expected a 2-member cycle, got %v", cycle.Members)
	}
	// Each node has in_degree=1, out_degree=1: severity = 10*2 + (2+2) = 24.
	if cycle.Severity != 24 {
		t.Errorf("expected severity 24, got %d", cycle.Severity)
	}
	if len(f.BreakSuggestions) != 1 {
		t.Errorf("expected one break suggestion for the one cycle, got %d", len(f.BreakSuggestions))
	}
}

func TestUnusedPropsReportedWithUsageRate(t *testing.T) {
	btn := domain.NewFileFacts(fid("/p/Button.jsx"), "Button")
	btn.IsComponent = true
	btn.PropsDeclared = map[string]struct{}{"label": {}, "size": {}}
	btn.PropsUsed = map[string]struct{}{"label": {}}

	g := graphbuilder.Build([]*domain.FileFacts{btn})
	f, err := Analyze(g)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(f.UnusedProps) != 1 {
		t.Fatalf("expected one unused-props entry, got %+v", f.UnusedProps)
	}
	up := f.UnusedProps[0]
	if len(up.Unused) != 1 || up.Unused[0] != "size" {
		t.Errorf("expected 'size' unused, got %v", up.Unused)
	}
	if up.UsageRate != 50 {
		t.Errorf("expected usage rate 50, got %v", up.UsageRate)
	}
}

func TestAnalyzeRejectsInvalidGraph(t *testing.T) {
	g := domain.NewGraph()
	n := domain.NewComponentNode(fid("/p/a.jsx"), "A")
	n.InDegree = 1 // no matching in-edge recorded: invariant violation
	g.Nodes[fid("/p/a.jsx")] = n

	if _, err := Analyze(g); err == nil {
		t.Error("expected InvalidGraph error for malformed graph")
	}
}

func TestComponentGroupsPartitionMatchesConnectedComponents(t *testing.T) {
	a := domain.NewFileFacts(fid("/p/a.jsx"), "A")
	a.IsComponent = true
	b := domain.NewFileFacts(fid("/p/b.jsx"), "B")
	b.IsComponent = true
	a.RecordImport(fid("/p/b.jsx"), "./b", domain.ImportSpecifier{Kind: domain.ImportDefaultSpec, Imported: "default", Local: "B"})
	c := domain.NewFileFacts(fid("/p/c.jsx"), "C")
	c.IsComponent = true

	g := graphbuilder.Build([]*domain.FileFacts{a, b, c})
	f, err := Analyze(g)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(f.ComponentGroups) != 2 {
		t.Fatalf("expected 2 component groups, got %d", len(f.ComponentGroups))
	}
	var sizes []int
	for _, grp := range f.ComponentGroups {
		sizes = append(sizes, grp.Size)
	}
	if !(sizes[0] == 2 && sizes[1] == 1) {
		t.Errorf("expected group sizes [2,1] in ascending group-id order, got %v", sizes)
	}
}
