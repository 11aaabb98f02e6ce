package main

import "testing"

func TestAnalyzeCmd_FlagsExist(t *testing.T) {
	cmd := analyzeCmd()

	for _, flagName := range []string{"config", "output", "no-progress", "force"} {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("missing expected flag: --%s", flagName)
		}
	}
}

func TestAnalyzeCmd_ShortFlags(t *testing.T) {
	cmd := analyzeCmd()

	shortFlags := map[string]string{"c": "config", "o": "output", "f": "force"}
	for short, long := range shortFlags {
		if cmd.Flags().ShorthandLookup(short) == nil {
			t.Errorf("missing short flag -%s for --%s", short, long)
		}
	}
}

func TestAnalyzeCmd_RequiresExactlyOnePath(t *testing.T) {
	cmd := analyzeCmd()
	if err := cmd.Args(cmd, nil); err == nil {
		t.Error("expected an error when no path is given")
	}
	if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
		t.Error("expected an error when more than one path is given")
	}
	if err := cmd.Args(cmd, []string{"a"}); err != nil {
		t.Errorf("expected a single path to be accepted, got %v", err)
	}
}
