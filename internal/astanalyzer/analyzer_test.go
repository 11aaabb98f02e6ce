package astanalyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/compscan/compscan/domain"
	"github.com/compscan/compscan/internal/scanner"
)

func writeFile(t *testing.T, path, content string) domain.FileId {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return domain.NewFileId(path)
}

func TestAnalyzeButtonDeclaresAndPartiallyUsesProps(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Button.jsx"), `export default function Button({label, size, onClick}){ return <button>{label}</button>; }`)

	sc, err := scanner.New(root, domain.FrameworkReact, nil, "")
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}
	a := New(sc)

	id := domain.NewFileId(filepath.Join(root, "Button.jsx"))
	facts, failure := a.Analyze(id)
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure)
	}
	if facts == nil {
		t.Fatal("expected facts")
	}
	if !facts.IsComponent {
		t.Error("expected IsComponent")
	}
	unused := facts.UnusedProps()
	if len(unused) != 2 {
		t.Errorf("expected 2 unused props, got %v", unused)
	}
}

func TestAnalyzeRestSpreadDisablesUnused(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Card.jsx"), `export default function Card({title, ...rest}){ return <div {...rest}>{title}</div>; }`)

	sc, err := scanner.New(root, domain.FrameworkReact, nil, "")
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}
	a := New(sc)

	id := domain.NewFileId(filepath.Join(root, "Card.jsx"))
	facts, failure := a.Analyze(id)
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure)
	}
	if !facts.UsesRestSpread {
		t.Error("expected UsesRestSpread")
	}
	if len(facts.UnusedProps()) != 0 {
		t.Errorf("expected no unused props, got %v", facts.UnusedProps())
	}
}

func TestAnalyzeJSXUsageRecordsPassedProps(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Button.jsx"), `export default function Button({label}){ return <button>{label}</button>; }`)
	writeFile(t, filepath.Join(root, "App.jsx"), `import Button from './Button'; export default function App(){ return <Button label="Go"/>; }`)

	sc, err := scanner.New(root, domain.FrameworkReact, nil, "")
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}
	a := New(sc)

	id := domain.NewFileId(filepath.Join(root, "App.jsx"))
	facts, failure := a.Analyze(id)
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure)
	}

	buttonId := domain.NewFileId(filepath.Join(root, "Button.jsx"))
	usage, ok := facts.ComponentUsages[buttonId]
	if !ok {
		t.Fatal("expected a usage record for Button")
	}
	if usage.UsageCount != 1 {
		t.Errorf("expected usage count 1, got %d", usage.UsageCount)
	}
	if _, ok := usage.PassedProps["label"]; !ok {
		t.Errorf("expected 'label' in passed props, got %v", usage.PassedProps)
	}
}

func TestAnalyzeFunctionConstructingJSXWithoutReturningItIsNotAComponent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Logger.jsx"),
		`export default function Logger(props){ const el = <div>{props.label}</div>; console.log(el); return compute(props); }`)

	sc, err := scanner.New(root, domain.FrameworkReact, nil, "")
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}
	a := New(sc)

	id := domain.NewFileId(filepath.Join(root, "Logger.jsx"))
	facts, failure := a.Analyze(id)
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure)
	}
	if facts != nil && facts.IsComponent {
		t.Error("expected IsComponent to be false: JSX is built but never returned")
	}
}

func TestAnalyzeArrowFunctionWithImplicitJSXReturnIsAComponent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Label.jsx"),
		`const Label = ({text}) => <span>{text}</span>; export default Label;`)

	sc, err := scanner.New(root, domain.FrameworkReact, nil, "")
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}
	a := New(sc)

	id := domain.NewFileId(filepath.Join(root, "Label.jsx"))
	facts, failure := a.Analyze(id)
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure)
	}
	if facts == nil || !facts.IsComponent {
		t.Error("expected IsComponent for an arrow function with an implicit JSX return")
	}
}

func TestAnalyzeFileWithNoExportsYieldsNoFacts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "util.js"), `function helper(){ return 1; }`)

	sc, err := scanner.New(root, domain.FrameworkReact, nil, "")
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}
	a := New(sc)

	id := domain.NewFileId(filepath.Join(root, "util.js"))
	facts, failure := a.Analyze(id)
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure)
	}
	if facts != nil {
		t.Errorf("expected no facts, got %+v", facts)
	}
}

func TestAnalyzeDeduplicatesImportAndRequireOfSameTarget(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "x.js"), `export default 1;`)
	writeFile(t, filepath.Join(root, "a.jsx"), `import X from './x'; const X2 = require('./x'); export default function A(){ return <div/>; }`)

	sc, err := scanner.New(root, domain.FrameworkReact, nil, "")
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}
	a := New(sc)

	id := domain.NewFileId(filepath.Join(root, "a.jsx"))
	facts, failure := a.Analyze(id)
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure)
	}

	xId := domain.NewFileId(filepath.Join(root, "x.js"))
	edge, ok := facts.Imports[xId]
	if !ok {
		t.Fatal("expected a single merged import edge for x.js")
	}
	if len(edge.Specifiers) != 2 {
		t.Errorf("expected 2 merged specifiers, got %d", len(edge.Specifiers))
	}
}
