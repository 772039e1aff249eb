package scanner

import (
	"reflect"
	"testing"

	"github.com/agentshield/agentshield/internal/framework"
	"github.com/agentshield/agentshield/internal/report"
)

func TestRunEmptyProjectAllChecks(t *testing.T) {
	tmp := t.TempDir()

	res, err := New().Run(tmp, framework.Get("all"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(res.Checks) != 8 {
		t.Fatalf("expected 8 check results, got %d", len(res.Checks))
	}
	if res.MaxScore != 130 {
		t.Fatalf("MaxScore=%d want 130", res.MaxScore)
	}
	// Penalty checks retain partial credit on an empty tree, credit
	// checks earn nothing.
	if res.Score != 31 {
		t.Fatalf("Score=%d want 31", res.Score)
	}
	if res.Pct != 24 {
		t.Fatalf("Pct=%d want 24", res.Pct)
	}
	if res.Project != tmp {
		t.Fatalf("Project=%q want %q", res.Project, tmp)
	}
	if res.Framework != "all" {
		t.Fatalf("Framework=%q want all", res.Framework)
	}

	var tally report.Summary
	for _, c := range res.Checks {
		for _, f := range c.Findings {
			switch f.Severity {
			case report.SeverityPass:
				tally.Passed++
			case report.SeverityWarning:
				tally.Warnings++
			case report.SeverityCritical:
				tally.Critical++
			}
		}
	}
	if res.Summary != tally {
		t.Fatalf("Summary=%+v want %+v", res.Summary, tally)
	}
}

func TestRunFrameworkSelection(t *testing.T) {
	tmp := t.TempDir()

	res, err := New().Run(tmp, framework.Get("gdpr"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []string{"Secrets & Access", "Audit & Logging", "Data Classification", "Documentation"}
	got := make([]string, len(res.Checks))
	for i, c := range res.Checks {
		got[i] = c.Name
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("check order=%v want %v", got, want)
	}
	if res.MaxScore != 65 {
		t.Fatalf("MaxScore=%d want 65", res.MaxScore)
	}
	if res.Framework != "gdpr" {
		t.Fatalf("Framework=%q want gdpr", res.Framework)
	}
}

func TestRunEUAIActExcludesArticleChecks(t *testing.T) {
	tmp := t.TempDir()

	res, err := New().Run(tmp, framework.Get("eu-ai-act"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if res.MaxScore != 85 {
		t.Fatalf("MaxScore=%d want 85", res.MaxScore)
	}
	for _, c := range res.Checks {
		if c.Name == "Art. 14 Human Oversight" || c.Name == "Art. 22 Accountability" {
			t.Fatalf("article check %q must not run under eu-ai-act", c.Name)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	tmp := t.TempDir()
	s := New()

	first, err := s.Run(tmp, framework.Get("all"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	second, err := s.Run(tmp, framework.Get("all"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("two scans of the same tree must produce identical results")
	}
}

func TestRunNoChecksSelected(t *testing.T) {
	tmp := t.TempDir()
	s := &Scanner{}

	res, err := s.Run(tmp, framework.Get("all"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.MaxScore != 0 || res.Score != 0 {
		t.Fatalf("empty scanner scored %d/%d", res.Score, res.MaxScore)
	}
	// Zero maximum must not divide by zero.
	if res.Pct != 0 {
		t.Fatalf("Pct=%d want 0", res.Pct)
	}
}

func TestRunMissingRoot(t *testing.T) {
	if _, err := New().Run("/nonexistent/project/path", framework.Get("all")); err == nil {
		t.Fatal("expected error for missing root")
	}
}
