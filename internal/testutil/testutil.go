// Package testutil provides helper functions shared by this module's test
// files: building a parsed AST from a source snippet and a handful of
// assertion helpers in the bare-testing idiom.
package testutil

import (
	"testing"

	"github.com/compscan/compscan/internal/jsast"
)

// CreateTestAST parses source as JavaScript/TypeScript and fails the test
// on a parse error.
func CreateTestAST(t *testing.T, source string) *jsast.Node {
	t.Helper()
	p := jsast.NewParser()
	defer p.Close()

	ast, err := p.ParseString(source)
	if err != nil {
		t.Fatalf("failed to parse test code: %v", err)
	}
	return ast
}

// CreateTestASTNoFail parses source, returning the error instead of
// failing the test.
func CreateTestASTNoFail(source string) (*jsast.Node, error) {
	p := jsast.NewParser()
	defer p.Close()
	return p.ParseString(source)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual.
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("expected %v, got %v", expected, actual)
	}
}

// AssertTrue fails the test if condition is false.
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

// AssertFalse fails the test if condition is true.
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Error(msg)
	}
}

// AssertNotNil fails the test if value is nil.
func AssertNotNil(t *testing.T, value any) {
	t.Helper()
	if value == nil {
		t.Error("expected non-nil value")
	}
}

// AssertNil fails the test if value is not nil.
func AssertNil(t *testing.T, value any) {
	t.Helper()
	if value != nil {
		t.Errorf("expected nil, got %v", value)
	}
}

// FindFunctionInAST returns the first function node named name, or nil.
func FindFunctionInAST(ast *jsast.Node, name string) *jsast.Node {
	var found *jsast.Node
	ast.Walk(func(n *jsast.Node) bool {
		if n.IsFunction() && n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// CountFunctionsInAST counts function nodes in ast.
func CountFunctionsInAST(ast *jsast.Node) int {
	count := 0
	ast.Walk(func(n *jsast.Node) bool {
		if n.IsFunction() {
			count++
		}
		return true
	})
	return count
}

// CountNodesOfType counts nodes of the given type in ast.
func CountNodesOfType(ast *jsast.Node, nodeType jsast.NodeType) int {
	count := 0
	ast.Walk(func(n *jsast.Node) bool {
		if n.Type == nodeType {
			count++
		}
		return true
	})
	return count
}
