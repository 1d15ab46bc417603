package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewCleanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCleanCmd()
	if !strings.HasPrefix(cmd.Use, "clean") {
		t.Errorf("unexpected Use: %q", cmd.Use)
	}
	if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
		t.Error("expected error for two directory arguments")
	}
}

func TestRunCleanCmd(t *testing.T) {
	t.Run("cleans result files in directory", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "results_law_firm.json")
		content := `[{"url":"https://github.com/acme"},{"url":"https://smith-law.example.com"}]`
		if err := os.WriteFile(input, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"clean", dir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := out.String()
		for _, want := range []string{
			"Found 1 JSON files to process",
			"- Original entries: 2",
			"- Removed entries: 1",
			"- Remaining entries: 1",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got %q", want, output)
			}
		}

		if _, err := os.Stat(filepath.Join(dir, "results_law_firm_cleaned.json")); err != nil {
			t.Errorf("expected cleaned file: %v", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"clean", filepath.Join(t.TempDir(), "missing")})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
