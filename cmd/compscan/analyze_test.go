package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeSourceFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunAnalyzeWritesReport(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, filepath.Join(root, "Button.jsx"),
		`export default function Button({label}){ return <button>{label}</button>; }`)
	writeSourceFile(t, filepath.Join(root, "App.jsx"),
		`import Button from './Button'; export default function App(){ return <Button label="Go"/>; }`)

	report := filepath.Join(root, "report.json")

	configPath = ""
	outputPath = report
	noProgress = true
	forceWrite = true
	defer func() {
		outputPath, noProgress, forceWrite = "", false, false
	}()

	cmd := analyzeCmd()
	if err := runAnalyze(cmd, []string{root}); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report was not written: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	nodes, ok := doc["nodes"].(map[string]interface{})
	if !ok || len(nodes) != 2 {
		t.Errorf("expected 2 nodes in report, got %v", doc["nodes"])
	}
}

func TestConfirmOverwriteSkipsPromptWhenFileAbsent(t *testing.T) {
	forceWrite = false
	defer func() { forceWrite = false }()

	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	if err := confirmOverwrite(path); err != nil {
		t.Errorf("expected no prompt for a missing file, got %v", err)
	}
}

func TestConfirmOverwriteSkipsPromptWhenForced(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "report.json")
	writeSourceFile(t, path, "{}")

	forceWrite = true
	defer func() { forceWrite = false }()

	if err := confirmOverwrite(path); err != nil {
		t.Errorf("expected --force to skip the prompt, got %v", err)
	}
}
