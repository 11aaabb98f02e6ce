package astanalyzer

import "github.com/compscan/compscan/internal/jsast"

// processJSXUsage implements spec.md §4.2's JSX usage-site rule: an
// opening/self-closing element with an uppercase name that matches a
// previously recorded import increments that import's usage_count and
// unions its attribute names into passed_props. First match wins.
func (e *extractor) processJSXUsage(n *jsast.Node) {
	if n.Name == "" || !startsUpper(n.Name) {
		return
	}
	target, ok := e.localToTarget[n.Name]
	if !ok {
		return
	}

	attrs := make([]string, 0, len(n.Attributes))
	for _, a := range n.Attributes {
		if a.Name != "" {
			attrs = append(attrs, a.Name)
		}
	}
	e.facts.RecordUsage(target, attrs)
}
