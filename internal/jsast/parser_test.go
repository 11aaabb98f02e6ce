package jsast

import (
	"os"
	"testing"
)

func TestParseSimpleFunction(t *testing.T) {
	code := `function hello() { return 42; }`

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if ast == nil {
		t.Fatal("AST is nil")
	}

	if ast.Type != NodeProgram {
		t.Errorf("Expected NodeProgram, got %s", ast.Type)
	}

	if len(ast.Body) == 0 {
		t.Fatal("Expected at least one statement in body")
	}

	funcNode := ast.Body[0]
	if funcNode.Type != NodeFunction {
		t.Errorf("Expected NodeFunction, got %s", funcNode.Type)
	}

	if funcNode.Name != "hello" {
		t.Errorf("Expected function name 'hello', got '%s'", funcNode.Name)
	}
}

func TestParseIfStatement(t *testing.T) {
	code := `
	function greet(name) {
		if (name) {
			return "Hello, " + name;
		} else {
			return "Hello, stranger";
		}
	}
	`

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if ast == nil || len(ast.Body) == 0 {
		t.Fatal("AST is nil or empty")
	}

	funcNode := ast.Body[0]
	if funcNode.Name != "greet" {
		t.Errorf("Expected function name 'greet', got '%s'", funcNode.Name)
	}

	if len(funcNode.Body) == 0 {
		t.Fatal("Function body is empty")
	}

	found := false
	funcNode.Walk(func(n *Node) bool {
		if n.Type == NodeIfStatement {
			found = true
			return false
		}
		return true
	})

	if !found {
		t.Error("Expected to find if statement in function body")
	}
}

func TestParseArrowFunction(t *testing.T) {
	code := `const add = (a, b) => { return a + b; };`

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	found := false
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeArrowFunction {
			found = true
			if len(n.Params) != 2 {
				t.Errorf("Expected 2 parameters, got %d", len(n.Params))
			}
			return false
		}
		return true
	})

	if !found {
		t.Error("Expected to find arrow function")
	}
}

func TestParseFile(t *testing.T) {
	content, err := os.ReadFile("../../testdata/javascript/simple/function.js")
	if err != nil {
		t.Skipf("Skipping file test: %v", err)
		return
	}

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseFile("function.js", content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if ast == nil {
		t.Fatal("AST is nil")
	}

	functionCount := 0
	ast.Walk(func(n *Node) bool {
		if n.IsFunction() {
			functionCount++
		}
		return true
	})

	if functionCount < 3 {
		t.Errorf("Expected at least 3 functions, found %d", functionCount)
	}
}

func TestParseForLoop(t *testing.T) {
	code := `
	for (let i = 0; i < 10; i++) {
		console.log(i);
	}
	`

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	found := false
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeForStatement {
			found = true
			if n.Init == nil {
				t.Error("Expected for loop to have init")
			}
			if n.Test == nil {
				t.Error("Expected for loop to have test")
			}
			if n.Update == nil {
				t.Error("Expected for loop to have update")
			}
			return false
		}
		return true
	})

	if !found {
		t.Error("Expected to find for statement")
	}
}

func TestParseTryCatch(t *testing.T) {
	code := `
	try {
		throw new Error("oops");
	} catch (e) {
		console.error(e);
	} finally {
		cleanup();
	}
	`

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	found := false
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeTryStatement {
			found = true
			if n.Handler == nil {
				t.Error("Expected try statement to have handler (catch)")
			}
			if n.Finalizer == nil {
				t.Error("Expected try statement to have finalizer (finally)")
			}
			return false
		}
		return true
	})

	if !found {
		t.Error("Expected to find try statement")
	}
}

func TestParseJSXSelfClosingElement(t *testing.T) {
	code := `function App(){ return <Button label="Go" size={12}/>; }`

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	found := false
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeJSXSelfClosing {
			found = true
			if n.Name != "Button" {
				t.Errorf("expected JSX tag name Button, got %q", n.Name)
			}
			if len(n.Attributes) != 2 {
				t.Errorf("expected 2 attributes, got %d", len(n.Attributes))
			}
			return false
		}
		return true
	})

	if !found {
		t.Error("expected to find a self-closing JSX element")
	}
}

func TestParseObjectPatternWithRest(t *testing.T) {
	code := `function Card({title, ...rest}){ return title; }`

	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	funcNode := ast.Body[0]
	if len(funcNode.Params) != 1 {
		t.Fatalf("expected 1 parameter, got %d", len(funcNode.Params))
	}

	pattern := funcNode.Params[0]
	if pattern.Type != NodeObjectPattern {
		t.Fatalf("expected ObjectPattern, got %s", pattern.Type)
	}

	var sawTitle, sawRest bool
	for _, child := range pattern.Children {
		switch child.Type {
		case NodeIdentifier:
			if child.Name == "title" {
				sawTitle = true
			}
		case NodeRestElement:
			if child.Name == "rest" {
				sawRest = true
			}
		}
	}

	if !sawTitle {
		t.Error("expected destructured key 'title'")
	}
	if !sawRest {
		t.Error("expected rest element 'rest'")
	}
}
