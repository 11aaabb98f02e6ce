package astanalyzer

import "github.com/compscan/compscan/internal/jsast"

// complexityOf computes cyclomatic complexity for one function/method body
// per spec.md §4.2: start at 1, add 1 for each if, case-with-test,
// for/for-in/for-of, while, do-while, ternary, short-circuit &&/||, and
// catch clause. Nested functions are NOT folded into the enclosing
// function's count (this run's consistent policy decision, DESIGN.md).
func complexityOf(fn *jsast.Node) int {
	complexity := 1
	for _, stmt := range fn.Body {
		stmt.Walk(func(n *jsast.Node) bool {
			if n != fn && n.IsFunction() {
				return false // nested function bodies are counted on their own
			}
			switch n.Type {
			case jsast.NodeIfStatement,
				jsast.NodeForStatement, jsast.NodeForInStatement, jsast.NodeForOfStatement,
				jsast.NodeWhileStatement, jsast.NodeDoWhileStatement,
				jsast.NodeConditionalExpression,
				jsast.NodeCatchClause:
				complexity++
			case jsast.NodeCaseClause:
				if n.Test != nil {
					complexity++
				}
			case jsast.NodeLogicalExpression:
				if n.Operator == "&&" || n.Operator == "||" {
					complexity++
				}
			}
			return true
		})
	}
	return complexity
}
