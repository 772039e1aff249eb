package docs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentshield/agentshield/internal/checks"
	"github.com/agentshield/agentshield/internal/report"
)

func writeFile(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestRunFullyDocumentedProject(t *testing.T) {
	tmp := t.TempDir()
	files := []string{
		writeFile(t, tmp, "README.md", "# Project\n"),
		writeFile(t, tmp, "CONTRIBUTING.md", "PRs welcome\n"),
		writeFile(t, tmp, "CHANGELOG.md", "0.1.0\n"),
		writeFile(t, tmp, "LICENSE", "MIT\n"),
		writeFile(t, tmp, "model-card.md", "# Model card\n"),
		writeFile(t, tmp, filepath.Join("docs", "guide.md"), "usage\n"),
		writeFile(t, tmp, "main.py", "\"\"\"Module docstring.\"\"\"\n"),
	}

	res := Run(&checks.Target{Root: tmp, Files: files})

	// 4 standard + 6 governance + 3 architecture + 2 docstrings.
	if res.Score != 15 {
		t.Fatalf("score=%d want 15", res.Score)
	}
	for _, f := range res.Findings {
		if f.Severity != report.SeverityPass {
			t.Fatalf("expected all pass, got %s: %s", f.Severity, f.Title)
		}
	}
}

func TestRunBareProject(t *testing.T) {
	tmp := t.TempDir()
	files := []string{writeFile(t, tmp, "main.py", "x = 1\n")}

	res := Run(&checks.Target{Root: tmp, Files: files})

	if res.Score != 0 {
		t.Fatalf("score=%d want 0", res.Score)
	}

	var missingDocs, noGovernance bool
	for _, f := range res.Findings {
		if strings.HasPrefix(f.Title, "Missing key documentation") && f.Severity == report.SeverityCritical {
			missingDocs = true
		}
		if f.Title == "No governance documentation" && f.Severity == report.SeverityCritical {
			noGovernance = true
		}
	}
	if !missingDocs || !noGovernance {
		t.Fatalf("expected critical doc findings, got %+v", res.Findings)
	}
}

func TestRunPartialStandardDocs(t *testing.T) {
	tmp := t.TempDir()
	files := []string{
		writeFile(t, tmp, "README.md", "# Project\n"),
		writeFile(t, tmp, "LICENSE", "MIT\n"),
	}

	res := Run(&checks.Target{Root: tmp, Files: files})

	// 2 of 4 standard docs missing earns partial credit only.
	if res.Score != 2 {
		t.Fatalf("score=%d want 2", res.Score)
	}
	if !strings.Contains(res.Findings[0].Title, "contributing.md") {
		t.Fatalf("missing list not reported: %q", res.Findings[0].Title)
	}
}

func TestRunLowDocstringCoverage(t *testing.T) {
	tmp := t.TempDir()
	files := []string{
		writeFile(t, tmp, "a.py", "\"\"\"documented\"\"\"\n"),
		writeFile(t, tmp, "b.py", "x = 1\n"),
		writeFile(t, tmp, "c.py", "y = 2\n"),
	}

	res := Run(&checks.Target{Root: tmp, Files: files})

	var low bool
	for _, f := range res.Findings {
		if f.Title == "Low docstring coverage" {
			low = true
			if !strings.Contains(f.Detail, "1/3") {
				t.Fatalf("unexpected detail: %q", f.Detail)
			}
		}
	}
	if !low {
		t.Fatal("expected low docstring coverage warning")
	}
}
