package model

import (
	"encoding/json"
	"testing"
)

// TestSeverityString tests the String method of Severity.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
	}{
		{SeverityLow, "low"},
		{SeverityMedium, "medium"},
		{SeverityHigh, "high"},
		{Severity(999), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.severity.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.severity.String(), tc.expected)
			}
		})
	}
}

// TestSeverityOrdering tests that severity levels are ordered correctly.
// Low < Medium < High
func TestSeverityOrdering(t *testing.T) {
	t.Parallel()

	if SeverityLow >= SeverityMedium {
		t.Error("expected SeverityLow < SeverityMedium")
	}
	if SeverityMedium >= SeverityHigh {
		t.Error("expected SeverityMedium < SeverityHigh")
	}

	all := Severities()
	if len(all) != 3 || all[0] != SeverityHigh || all[2] != SeverityLow {
		t.Errorf("Severities() = %v, expected high to low", all)
	}
}

// TestParseSeverity tests parsing severity names.
func TestParseSeverity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected Severity
		wantErr  bool
	}{
		{"low", SeverityLow, false},
		{"MEDIUM", SeverityMedium, false},
		{" high ", SeverityHigh, false},
		{"critical", SeverityLow, true},
		{"", SeverityLow, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSeverity(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseSeverity(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.expected {
				t.Errorf("ParseSeverity(%q) = %v, expected %v", tc.input, got, tc.expected)
			}
		})
	}
}

// TestSeverityJSON tests that severities encode as their names.
func TestSeverityJSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes as string", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(SeverityHigh)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `"high"` {
			t.Errorf("got %s, expected \"high\"", data)
		}
	})

	t.Run("decodes from string", func(t *testing.T) {
		t.Parallel()

		var s Severity
		if err := json.Unmarshal([]byte(`"medium"`), &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != SeverityMedium {
			t.Errorf("got %v, expected medium", s)
		}
	})

	t.Run("rejects unknown severity", func(t *testing.T) {
		t.Parallel()

		if _, err := json.Marshal(Severity(42)); err == nil {
			t.Error("expected error for invalid severity")
		}
		var s Severity
		if err := json.Unmarshal([]byte(`"urgent"`), &s); err == nil {
			t.Error("expected error for unknown name")
		}
	})
}

// TestGetSeverity tests the GetSeverity function.
func TestGetSeverity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		issueType IssueType
		expected  Severity
	}{
		{IssueMobileResponsive, SeverityHigh},
		{IssueOutdatedFramework, SeverityMedium},
		{IssueAccessibility, SeverityMedium},
		{IssuePerformance, SeverityLow},
		{IssueModernFrameworks, SeverityLow},
		{IssueType("unknown_type"), SeverityLow},
	}

	for _, tc := range testCases {
		t.Run(string(tc.issueType), func(t *testing.T) {
			t.Parallel()
			if got := GetSeverity(tc.issueType); got != tc.expected {
				t.Errorf("GetSeverity(%q) = %v, expected %v", tc.issueType, got, tc.expected)
			}
		})
	}
}

// TestIssueInfoMappingCompleteness tests that every issue type has full info.
func TestIssueInfoMappingCompleteness(t *testing.T) {
	t.Parallel()

	for _, issueType := range IssueTypes() {
		t.Run(string(issueType), func(t *testing.T) {
			t.Parallel()

			info := GetIssueInfo(issueType)
			if info.Title == "" {
				t.Errorf("issue type %q has empty Title", issueType)
			}
			if info.Recommendation == "" {
				t.Errorf("issue type %q has empty Recommendation", issueType)
			}
			if info.Recommendation == "Review the site manually." {
				t.Errorf("issue type %q returned default Recommendation", issueType)
			}
		})
	}

	t.Run("unknown type returns default", func(t *testing.T) {
		t.Parallel()

		info := GetIssueInfo("something_else")
		if info.Severity != SeverityLow {
			t.Errorf("expected SeverityLow, got %v", info.Severity)
		}
		if info.Title != "something_else" {
			t.Errorf("expected title to fall back to type, got %q", info.Title)
		}
	})
}

// TestNewDesignIssue tests that severities come from the issue table.
func TestNewDesignIssue(t *testing.T) {
	t.Parallel()

	issue := NewDesignIssue(IssueMobileResponsive, "No mobile viewport meta tag found")
	if issue.Severity != SeverityHigh {
		t.Errorf("expected high severity, got %v", issue.Severity)
	}
	if issue.Type != IssueMobileResponsive {
		t.Errorf("expected mobile_responsive, got %v", issue.Type)
	}

	data, err := json.Marshal(issue)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"type":"mobile_responsive","severity":"high","description":"No mobile viewport meta tag found"}`
	if string(data) != want {
		t.Errorf("got %s, expected %s", data, want)
	}
}
