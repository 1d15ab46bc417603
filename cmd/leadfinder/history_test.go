package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/leadfinder/internal/database"
	"github.com/nao1215/leadfinder/internal/model"
)

// seedHistory stores one run in a fresh database directory and returns the
// directory and run ID.
func seedHistory(t *testing.T) (string, int64) {
	t.Helper()

	dir := t.TempDir()
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	run := &database.Run{City: "Jaipur", Industry: "law firm", StartedAt: time.Now()}
	id, err := db.SaveRun(context.Background(), run, []*model.AnalysisResult{
		model.NewSuccessResult("https://smith-law.example.com", nil,
			model.ContactInfo{Emails: []string{"office@smith-law.example.com"}}, nil),
		model.NewErrorResult("https://down.example.com", errors.New("timeout")),
	})
	if err != nil {
		t.Fatalf("failed to save run: %v", err)
	}
	return dir, id
}

// executeHistory runs "leadfinder history" with args and returns stdout.
func executeHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"history"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	flagsWithShort := map[string]string{
		"industry": "i",
		"run":      "r",
		"json":     "j",
		"markdown": "m",
	}
	for flag, shorthand := range flagsWithShort {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			t.Errorf("expected flag %q to exist", flag)
			continue
		}
		if f.Shorthand != shorthand {
			t.Errorf("flag %q: expected shorthand %q, got %q", flag, shorthand, f.Shorthand)
		}
	}
	for _, flag := range []string{"city", "db-dir"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag %q to exist", flag)
		}
	}
}

func TestRunHistoryCmd(t *testing.T) {
	dir, id := seedHistory(t)

	t.Run("lists runs", func(t *testing.T) {
		output, err := executeHistory(t, "--db-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Stored runs (1)", "Jaipur", "law firm", "ok:1 err:1 email:1"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got %q", want, output)
			}
		}
	})

	t.Run("filter without matches", func(t *testing.T) {
		output, err := executeHistory(t, "--db-dir", dir, "--city", "Austin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "No runs found") {
			t.Errorf("expected empty message, got %q", output)
		}
	})

	t.Run("prints run with every section", func(t *testing.T) {
		output, err := executeHistory(t, "--db-dir", dir, "--run", strconv.FormatInt(id, 10))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"LEADFINDER SUMMARY",
			"DESIGN ISSUES",
			"TOTAL:      0 issues",
			"[+] https://smith-law.example.com",
			"[x] https://down.example.com",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got %q", want, output)
			}
		}
	})

	t.Run("prints run as JSON", func(t *testing.T) {
		output, err := executeHistory(t, "--db-dir", dir, "--run", strconv.FormatInt(id, 10), "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var entries []map[string]any
		if err := json.Unmarshal([]byte(output), &entries); err != nil {
			t.Fatalf("output is not a JSON array: %v\n%s", err, output)
		}
		if len(entries) != 2 || entries[0]["url"] != "https://smith-law.example.com" {
			t.Errorf("unexpected entries %v", entries)
		}
	})

	t.Run("prints run as Markdown", func(t *testing.T) {
		output, err := executeHistory(t, "--db-dir", dir, "-r", strconv.FormatInt(id, 10), "-m")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "# Leads: Law Firm in Jaipur") {
			t.Errorf("expected Markdown heading, got %q", output)
		}
	})

	t.Run("unknown run", func(t *testing.T) {
		_, err := executeHistory(t, "--db-dir", dir, "--run", "9999")
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("json requires run", func(t *testing.T) {
		_, err := executeHistory(t, "--db-dir", dir, "--json")
		if err == nil {
			t.Error("expected error for --json without --run")
		}
	})

	t.Run("json and markdown are exclusive", func(t *testing.T) {
		_, err := executeHistory(t, "--db-dir", dir, "-r", "1", "-j", "-m")
		if err == nil {
			t.Error("expected error for --json with --markdown")
		}
	})

	t.Run("missing database", func(t *testing.T) {
		_, err := executeHistory(t, "--db-dir", t.TempDir())
		if err == nil {
			t.Error("expected error for missing database")
		}
	})
}

func TestFormatRunSummary(t *testing.T) {
	t.Parallel()

	s := model.BatchSummary{
		Succeeded:  3,
		Failed:     1,
		WithEmails: 2,
		IssuesBySeverity: map[model.Severity]int{
			model.SeverityHigh: 2,
			model.SeverityLow:  1,
		},
	}

	want := "ok:3 err:1 email:2 H:2 L:1"
	if got := formatRunSummary(s); got != want {
		t.Errorf("formatRunSummary() = %q, want %q", got, want)
	}
}
