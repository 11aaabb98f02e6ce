package domain

import "sort"

// ExportKind classifies a single export recorded in FileFacts.
type ExportKind string

const (
	ExportDefault         ExportKind = "default"
	ExportNamed           ExportKind = "named"
	ExportReexportWildcard ExportKind = "reexport_wildcard"
)

// Export is one exported construct of a file.
type Export struct {
	Kind           ExportKind
	Name           string // empty for an anonymous default export
	ReexportSource string // set when this export rides a `export * from` / `export {A} from`
}

// ImportKind classifies how a dependency edge was introduced.
type ImportKind string

const (
	ImportDefaultSpec  ImportKind = "default"
	ImportNamedSpec    ImportKind = "named"
	ImportNamespace    ImportKind = "namespace"
	ImportBareReexport ImportKind = "bare_reexport"
	ImportDynamic      ImportKind = "dynamic_import"
	ImportCjsRequire   ImportKind = "cjs_require"
)

// ImportSpecifier records one concrete binding introduced by an import
// statement or an equivalent construct (dynamic import, require).
type ImportSpecifier struct {
	Kind     ImportKind
	Imported string // the name as exported by the source module ("" for default/namespace/dynamic/require)
	Local    string // the local binding name ("" when none, e.g. bare reexport)
}

// ImportEdge is everything one file recorded about a single resolved
// import target; multiple import statements naming the same target merge
// their specifiers into one ImportEdge.
type ImportEdge struct {
	SourceSpecifier string // the literal module specifier as written
	Specifiers      []ImportSpecifier
}

// ComponentUsage tallies how a file used a single imported component.
type ComponentUsage struct {
	UsageCount  int
	PassedProps map[string]struct{}
}

// FileFacts is the immutable, per-file output of the AST analysis stage.
// It is produced from exactly one parse of a file and never mutated after
// extraction.
type FileFacts struct {
	FileId         FileId
	ComponentName  string
	IsComponent    bool
	Exports        []Export
	Imports        map[FileId]ImportEdge
	PropsDeclared  map[string]struct{}
	PropsUsed      map[string]struct{}
	UsesRestSpread bool
	ComponentUsages map[FileId]*ComponentUsage
	CyclomaticComplexity int
}

// NewFileFacts returns an empty FileFacts for fileId with its maps
// initialized, ready for incremental population by the analyzer.
func NewFileFacts(fileId FileId, componentName string) *FileFacts {
	return &FileFacts{
		FileId:          fileId,
		ComponentName:   componentName,
		Exports:         nil,
		Imports:         make(map[FileId]ImportEdge),
		PropsDeclared:   make(map[string]struct{}),
		PropsUsed:       make(map[string]struct{}),
		ComponentUsages: make(map[FileId]*ComponentUsage),
	}
}

// HasContribution reports whether this file should produce a graph node:
// it is recognized as a component, or it carries at least one export.
func (f *FileFacts) HasContribution() bool {
	return f.IsComponent || len(f.Exports) > 0
}

// RecordImport merges specifier into the ImportEdge for target, creating it
// if this is the first import of target from this file.
func (f *FileFacts) RecordImport(target FileId, sourceSpecifier string, spec ImportSpecifier) {
	edge, ok := f.Imports[target]
	if !ok {
		edge = ImportEdge{SourceSpecifier: sourceSpecifier}
	}
	edge.Specifiers = append(edge.Specifiers, spec)
	f.Imports[target] = edge
}

// RecordUsage increments the usage count for target and unions passedProps
// into the accumulated set for that target.
func (f *FileFacts) RecordUsage(target FileId, passedProps []string) {
	u, ok := f.ComponentUsages[target]
	if !ok {
		u = &ComponentUsage{PassedProps: make(map[string]struct{})}
		f.ComponentUsages[target] = u
	}
	u.UsageCount++
	for _, p := range passedProps {
		u.PassedProps[p] = struct{}{}
	}
}

// UnusedProps returns props_declared \ props_used, sorted.
func (f *FileFacts) UnusedProps() []string {
	var unused []string
	for p := range f.PropsDeclared {
		if _, used := f.PropsUsed[p]; !used {
			unused = append(unused, p)
		}
	}
	sort.Strings(unused)
	return unused
}
