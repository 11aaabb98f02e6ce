package astanalyzer

import "github.com/compscan/compscan/internal/jsast"

// extractProps implements spec.md §4.2's prop-extraction rules for a
// function/arrow component: an object-destructuring first parameter
// declares props directly (with rest elements flagging uses_rest_spread);
// a single-identifier first parameter (conventionally `props`) instead
// contributes every `props.X` access and every `const {X} = props`
// destructure to both props_declared and props_used (spec.md §9's Open
// Question decision).
func (e *extractor) extractProps(fn *jsast.Node) {
	if len(fn.Params) == 0 {
		e.scanPropsUsed(fn.Body, nil)
		return
	}

	first := fn.Params[0]

	switch first.Type {
	case jsast.NodeObjectPattern:
		declared := e.declareFromObjectPattern(first)
		e.scanPropsUsed(fn.Body, declared)

	case jsast.NodeIdentifier:
		propsName := first.Name
		e.scanPropsParamAccess(fn.Body, propsName)

	default:
		e.scanPropsUsed(fn.Body, nil)
	}
}

// declareFromObjectPattern adds every destructured key to props_declared,
// setting uses_rest_spread when a rest element is present, and returns the
// set of declared names for the subsequent body scan.
func (e *extractor) declareFromObjectPattern(pattern *jsast.Node) map[string]struct{} {
	declared := make(map[string]struct{})
	for _, child := range pattern.Children {
		switch child.Type {
		case jsast.NodeIdentifier:
			e.facts.PropsDeclared[child.Name] = struct{}{}
			declared[child.Name] = struct{}{}
		case jsast.NodePairPattern:
			if child.Name != "" {
				e.facts.PropsDeclared[child.Name] = struct{}{}
				declared[child.Name] = struct{}{}
			}
		case jsast.NodeRestElement:
			e.facts.UsesRestSpread = true
		}
	}
	return declared
}

// scanPropsUsed scans a component body for Identifier references matching
// a declared prop name, per spec.md §4.2 ("scan only the function body,
// not the parameter list").
func (e *extractor) scanPropsUsed(body []*jsast.Node, declared map[string]struct{}) {
	if len(declared) == 0 {
		return
	}
	for _, stmt := range body {
		stmt.Walk(func(n *jsast.Node) bool {
			if n.Type == jsast.NodeIdentifier {
				if _, ok := declared[n.Name]; ok {
					e.facts.PropsUsed[n.Name] = struct{}{}
				}
			}
			return true
		})
	}
}

// scanPropsParamAccess handles the single-identifier `props` parameter
// form: every `props.X` member access and every key destructured from
// `const {X, Y} = props;` contributes to both props_declared and
// props_used.
func (e *extractor) scanPropsParamAccess(body []*jsast.Node, propsName string) {
	if propsName == "" {
		return
	}
	for _, stmt := range body {
		stmt.Walk(func(n *jsast.Node) bool {
			switch n.Type {
			case jsast.NodeMemberExpression:
				if n.Object != nil && n.Object.Type == jsast.NodeIdentifier && n.Object.Name == propsName &&
					n.Property != nil && n.Property.Type == jsast.NodeIdentifier {
					e.facts.PropsDeclared[n.Property.Name] = struct{}{}
					e.facts.PropsUsed[n.Property.Name] = struct{}{}
				}
			case jsast.NodeVariableDeclaration:
				for _, d := range n.Declarations {
					name, value := declaratorNameAndValue(d)
					_ = name
					if value != nil && value.Type == jsast.NodeIdentifier && value.Name == propsName {
						// The declarator's pattern is the other (non-value) child.
						for _, c := range d.Children {
							if c.Type == jsast.NodeObjectPattern {
								for _, key := range objectPatternKeys(c) {
									e.facts.PropsDeclared[key] = struct{}{}
									e.facts.PropsUsed[key] = struct{}{}
								}
							}
						}
					}
				}
			}
			return true
		})
	}
}

func objectPatternKeys(pattern *jsast.Node) []string {
	var keys []string
	for _, child := range pattern.Children {
		switch child.Type {
		case jsast.NodeIdentifier:
			keys = append(keys, child.Name)
		case jsast.NodePairPattern:
			if child.Name != "" {
				keys = append(keys, child.Name)
			}
		}
	}
	return keys
}

// extractClassPropTypes records classNode's name so a later
// `ClassName.propTypes = {...}` assignment — reached by the whole-tree
// walk in run(), since that assignment sits at module scope rather than
// inside the class body — can be attributed back to it.
func (e *extractor) extractClassPropTypes(classNode *jsast.Node) {
	if e.pendingPropTypesClasses == nil {
		e.pendingPropTypesClasses = make(map[string]struct{})
	}
	e.pendingPropTypesClasses[classNode.Name] = struct{}{}
}

// processPropTypesAssignment handles `Name.propTypes = {...}` for a
// previously recognized class component, adding every own string-keyed
// property of the object literal to props_declared.
func (e *extractor) processPropTypesAssignment(assign *jsast.Node) {
	if assign.Left == nil || assign.Right == nil {
		return
	}
	if assign.Left.Type != jsast.NodeMemberExpression || assign.Left.Property == nil {
		return
	}
	if assign.Left.Property.Name != "propTypes" || assign.Left.Object == nil {
		return
	}
	className := assign.Left.Object.Name
	if _, tracked := e.pendingPropTypesClasses[className]; !tracked {
		return
	}
	for _, key := range objectExpressionKeys(assign.Right) {
		e.facts.PropsDeclared[key] = struct{}{}
	}
}

// objectExpressionKeys returns the own string-keyed property names of an
// object-literal node, generalized over however the generic builder
// happened to shape `property`/`pair` children.
func objectExpressionKeys(obj *jsast.Node) []string {
	var keys []string
	for _, child := range obj.Children {
		if child.Name != "" {
			keys = append(keys, child.Name)
			continue
		}
		if len(child.Children) > 0 && child.Children[0].Name != "" {
			keys = append(keys, child.Children[0].Name)
		}
	}
	return keys
}
