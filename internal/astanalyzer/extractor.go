package astanalyzer

import (
	"strings"
	"unicode"

	"github.com/compscan/compscan/domain"
	"github.com/compscan/compscan/internal/jsast"
)

// extractor walks one file's AST once and accumulates a FileFacts,
// mirroring the single-traversal shape of internal/analyzer/module_analyzer.go
// generalized from module-dependency facts to the richer per-file record
// spec.md §4.2 requires.
type extractor struct {
	facts    *domain.FileFacts
	resolver Resolver
	fromFile domain.FileId

	// localToTarget maps a local binding name (the name used at JSX call
	// sites) to the import target it came from, so JSX usage scanning
	// can match "first import whose local/imported name matches" in O(1).
	localToTarget map[string]domain.FileId

	// pendingPropTypesClasses names every recognized class component
	// awaiting a `Name.propTypes = {...}` assignment, found elsewhere in
	// the same module-scope walk.
	pendingPropTypesClasses map[string]struct{}
}

func (e *extractor) run(ast *jsast.Node) {
	e.localToTarget = make(map[string]domain.FileId)

	for _, stmt := range ast.Body {
		e.processTopLevel(stmt)
	}

	// `export default Name;` exports a binding declared elsewhere at module
	// scope; component recognition applies to that declaration.
	for _, stmt := range ast.Body {
		if stmt.Type != jsast.NodeExportDefaultDeclaration || stmt.Declaration == nil || stmt.Declaration.Type != jsast.NodeIdentifier {
			continue
		}
		for _, decl := range ast.Body {
			if (decl.Type == jsast.NodeFunction || decl.Type == jsast.NodeClass) && decl.Name == stmt.Declaration.Name {
				e.considerComponent(decl, decl.Name)
			}
			for _, d := range decl.Declarations {
				if name, value := declaratorNameAndValue(d); name == stmt.Declaration.Name {
					e.considerComponent(value, name)
				}
			}
		}
	}

	ast.Walk(func(n *jsast.Node) bool {
		switch n.Type {
		case jsast.NodeCallExpression:
			e.processCallExpression(n)
		case jsast.NodeJSXElement, jsast.NodeJSXFragment, jsast.NodeJSXSelfClosing:
			e.processJSXUsage(n)
		case jsast.NodeAssignmentExpression:
			e.processPropTypesAssignment(n)
		}
		return true
	})
}

func (e *extractor) processTopLevel(n *jsast.Node) {
	switch n.Type {
	case jsast.NodeImportDeclaration:
		e.processImport(n)
	case jsast.NodeExportNamedDeclaration, jsast.NodeExportDefaultDeclaration, jsast.NodeExportAllDeclaration:
		e.processExport(n)
	}
}

// --- imports ---

func (e *extractor) processImport(n *jsast.Node) {
	specifier := literalText(n.Source)
	if specifier == "" {
		return
	}
	target, ok := e.resolver.ResolveImport(specifier, e.fromFile)
	if !ok {
		return // UnresolvedImport: silently dropped, per spec.md §7
	}

	for _, spec := range n.Specifiers {
		var importSpec domain.ImportSpecifier
		switch spec.Type {
		case jsast.NodeImportDefaultSpecifier:
			importSpec = domain.ImportSpecifier{Kind: domain.ImportDefaultSpec, Local: spec.Name}
			e.localToTarget[spec.Name] = target
		case jsast.NodeImportNamespaceSpecifier:
			importSpec = domain.ImportSpecifier{Kind: domain.ImportNamespace, Local: spec.Name}
			e.localToTarget[spec.Name] = target
		case jsast.NodeImportSpecifier:
			imported := spec.Name
			if spec.Imported != nil {
				imported = spec.Imported.Name
			}
			importSpec = domain.ImportSpecifier{Kind: domain.ImportNamedSpec, Imported: imported, Local: spec.Name}
			e.localToTarget[spec.Name] = target
		default:
			continue
		}
		e.facts.RecordImport(target, specifier, importSpec)
	}

	if len(n.Specifiers) == 0 {
		// Side-effect import: `import './styles.css';` — still an edge,
		// no binding to track for JSX usage matching.
		e.facts.RecordImport(target, specifier, domain.ImportSpecifier{Kind: domain.ImportNamedSpec})
	}
}

func (e *extractor) processCallExpression(n *jsast.Node) {
	if n.Callee == nil {
		return
	}

	if n.Callee.Name == "require" && len(n.Arguments) == 1 {
		specifier := literalText(n.Arguments[0])
		if specifier == "" {
			return
		}
		target, ok := e.resolver.ResolveImport(specifier, e.fromFile)
		if !ok {
			return
		}
		e.facts.RecordImport(target, specifier, domain.ImportSpecifier{Kind: domain.ImportCjsRequire})
		return
	}

	// Dynamic import(): tree-sitter reports `import(...)` as a
	// call_expression whose callee is the bare identifier/keyword "import".
	if (n.Callee.Name == "import" || n.Callee.Type == "import") && len(n.Arguments) >= 1 {
		specifier := literalText(n.Arguments[0])
		if specifier == "" {
			return
		}
		target, ok := e.resolver.ResolveImport(specifier, e.fromFile)
		if !ok {
			return
		}
		e.facts.RecordImport(target, specifier, domain.ImportSpecifier{Kind: domain.ImportDynamic})
	}
}

// --- exports ---

func (e *extractor) processExport(n *jsast.Node) {
	sourceSpecifier := literalText(n.Source)

	switch n.Type {
	case jsast.NodeExportAllDeclaration:
		// `export * from './X'`: drop when unresolved, edge+export when
		// resolved — per spec.md §9's Open Question decision.
		if sourceSpecifier == "" {
			return
		}
		target, ok := e.resolver.ResolveImport(sourceSpecifier, e.fromFile)
		if !ok {
			return
		}
		e.facts.RecordImport(target, sourceSpecifier, domain.ImportSpecifier{Kind: domain.ImportBareReexport})
		e.facts.Exports = append(e.facts.Exports, domain.Export{
			Kind:           domain.ExportReexportWildcard,
			ReexportSource: sourceSpecifier,
		})
		return

	case jsast.NodeExportDefaultDeclaration:
		name := ""
		if n.Declaration != nil {
			name = n.Declaration.Name
		}
		e.facts.Exports = append(e.facts.Exports, domain.Export{Kind: domain.ExportDefault, Name: name})
		if n.Declaration != nil {
			e.considerComponent(n.Declaration, name)
		}
		return

	case jsast.NodeExportNamedDeclaration:
		if sourceSpecifier != "" {
			// `export { A } from './X'`: bare reexport, still a dependency.
			target, ok := e.resolver.ResolveImport(sourceSpecifier, e.fromFile)
			if ok {
				e.facts.RecordImport(target, sourceSpecifier, domain.ImportSpecifier{Kind: domain.ImportBareReexport})
			}
			for _, spec := range n.Specifiers {
				e.facts.Exports = append(e.facts.Exports, domain.Export{Kind: domain.ExportNamed, Name: spec.Name, ReexportSource: sourceSpecifier})
			}
			return
		}

		if len(n.Specifiers) > 0 {
			for _, spec := range n.Specifiers {
				e.facts.Exports = append(e.facts.Exports, domain.Export{Kind: domain.ExportNamed, Name: spec.Name})
			}
			return
		}

		if n.Declaration != nil {
			e.processDeclarationExport(n.Declaration)
		}
	}
}

// processDeclarationExport handles `export const Name = ...`,
// `export function Name() {}`, `export class Name {}`.
func (e *extractor) processDeclarationExport(decl *jsast.Node) {
	if decl.Type == jsast.NodeVariableDeclaration {
		for _, d := range decl.Declarations {
			name, value := declaratorNameAndValue(d)
			if name == "" {
				continue
			}
			e.facts.Exports = append(e.facts.Exports, domain.Export{Kind: domain.ExportNamed, Name: name})
			if value != nil {
				e.considerComponent(value, name)
			}
		}
		return
	}

	name := decl.Name
	e.facts.Exports = append(e.facts.Exports, domain.Export{Kind: domain.ExportNamed, Name: name})
	e.considerComponent(decl, name)
}

// declaratorNameAndValue extracts the bound name and initializer of a
// `variable_declarator` generic node: its first identifier-shaped child
// is the name, its last non-operator child is the initializer.
func declaratorNameAndValue(declarator *jsast.Node) (string, *jsast.Node) {
	var name string
	var value *jsast.Node
	for _, c := range declarator.Children {
		if c.Type == "=" {
			continue
		}
		if name == "" && c.Type == jsast.NodeIdentifier {
			name = c.Name
			continue
		}
		value = c
	}
	return name, value
}

// --- component recognition (spec.md §4.2) ---

func (e *extractor) considerComponent(construct *jsast.Node, name string) {
	if construct == nil || name == "" || !startsUpper(name) {
		return
	}

	switch construct.Type {
	case jsast.NodeFunction, jsast.NodeFunctionExpression, jsast.NodeArrowFunction:
		if !bodyReturnsJSX(construct.Body) {
			return
		}
		e.facts.IsComponent = true
		e.extractProps(construct)
		e.facts.CyclomaticComplexity = maxInt(e.facts.CyclomaticComplexity, complexityOf(construct))

	case jsast.NodeClass:
		if !extendsComponent(construct) {
			return
		}
		e.facts.IsComponent = true
		e.extractClassPropTypes(construct)
		if render := findMethod(construct, "render"); render != nil {
			e.facts.CyclomaticComplexity = maxInt(e.facts.CyclomaticComplexity, complexityOf(render))
		}
	}
}

func extendsComponent(classNode *jsast.Node) bool {
	for _, heritage := range classNode.Arguments {
		if heritage == nil {
			continue
		}
		text := heritageText(heritage)
		if strings.Contains(text, "Component") {
			return true
		}
	}
	return false
}

func heritageText(n *jsast.Node) string {
	var sb strings.Builder
	if n.Name != "" {
		sb.WriteString(n.Name)
	}
	for _, c := range n.Children {
		sb.WriteString(heritageText(c))
	}
	return sb.String()
}

func findMethod(classNode *jsast.Node, name string) *jsast.Node {
	for _, m := range classNode.Body {
		if m.Type == jsast.NodeMethodDefinition && m.Name == name {
			return m
		}
	}
	return nil
}

// bodyReturnsJSX reports whether body contains a return of a JSX element
// or fragment (spec.md §4.2). body is either a block's statement list, or
// (for an arrow function with an implicit-return expression body) the
// single expression standing in for it — the latter is itself the JSX
// node when the component is written as `() => <div/>`.
func bodyReturnsJSX(body []*jsast.Node) bool {
	found := false
	for _, stmt := range body {
		if stmt.IsJSXElement() {
			return true
		}
		stmt.Walk(func(n *jsast.Node) bool {
			if n.Type == jsast.NodeReturnStatement && n.Argument != nil && n.Argument.IsJSXElement() {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}

func startsUpper(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

func literalText(n *jsast.Node) string {
	if n == nil {
		return ""
	}
	return strings.Trim(n.Raw, `"'`+"`")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
