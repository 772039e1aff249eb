package decisions

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
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestRunCleanProject(t *testing.T) {
	tmp := t.TempDir()
	f := writeFile(t, tmp, "app.py", "def handle(event):\n    return event\n")

	res := Run(&checks.Target{Root: tmp, Files: []string{f}})

	if res.Score != 15 {
		t.Fatalf("score=%d want 15", res.Score)
	}
	if len(res.Findings) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(res.Findings))
	}
	for _, f := range res.Findings {
		if f.Severity != report.SeverityPass {
			t.Fatalf("expected all pass, got %s: %s", f.Severity, f.Title)
		}
	}
}

func TestRunLLMConditional(t *testing.T) {
	tmp := t.TempDir()
	f := writeFile(t, tmp, "agent.py", `if llm_response == "approve":
    grant_access(user)
`)

	res := Run(&checks.Target{Root: tmp, Files: []string{f}})

	if res.Score != 10 {
		t.Fatalf("score=%d want 10", res.Score)
	}
	var hit *report.Finding
	for i, finding := range res.Findings {
		if finding.Title == "LLM output used directly in decision conditional" {
			hit = &res.Findings[i]
		}
	}
	if hit == nil {
		t.Fatal("expected LLM conditional finding")
	}
	if hit.Severity != report.SeverityCritical {
		t.Fatalf("severity=%s want critical", hit.Severity)
	}
	if !strings.Contains(hit.Detail, "agent.py:1") {
		t.Fatalf("location not reported: %q", hit.Detail)
	}
}

func TestRunAutoFunctionWithoutReview(t *testing.T) {
	tmp := t.TempDir()
	f := writeFile(t, tmp, "loans.py", "def auto_approve(request):\n    return True\n")

	res := Run(&checks.Target{Root: tmp, Files: []string{f}})

	if res.Score != 11 {
		t.Fatalf("score=%d want 11", res.Score)
	}
	var hit *report.Finding
	for i, finding := range res.Findings {
		if finding.Title == "Automated decision function without human review companion" {
			hit = &res.Findings[i]
		}
	}
	if hit == nil {
		t.Fatal("expected auto-function finding")
	}
	if !strings.Contains(hit.Detail, "auto_approve") {
		t.Fatalf("function name not reported: %q", hit.Detail)
	}
}

func TestRunAutoFunctionWithReview(t *testing.T) {
	tmp := t.TempDir()
	f := writeFile(t, tmp, "loans.py", `def auto_approve(request):
    if needs_human_review(request):
        return queue_for_review(request)
    return True
`)

	res := Run(&checks.Target{Root: tmp, Files: []string{f}})

	if res.Score != 15 {
		t.Fatalf("score=%d want 15", res.Score)
	}
	var companion bool
	for _, finding := range res.Findings {
		if finding.Title == "Automated functions have human review companion" {
			companion = true
			if finding.Severity != report.SeverityPass {
				t.Fatalf("severity=%s want pass", finding.Severity)
			}
		}
	}
	if !companion {
		t.Fatal("expected human review companion finding")
	}
}

func TestRunDirectActionSink(t *testing.T) {
	tmp := t.TempDir()
	f := writeFile(t, tmp, "writer.py", "db.execute(output)\n")

	res := Run(&checks.Target{Root: tmp, Files: []string{f}})

	if res.Score != 10 {
		t.Fatalf("score=%d want 10", res.Score)
	}
	var hit *report.Finding
	for i, finding := range res.Findings {
		if finding.Title == "Agent output flows directly to system action" {
			hit = &res.Findings[i]
		}
	}
	if hit == nil {
		t.Fatal("expected direct action finding")
	}
	if !strings.Contains(hit.Detail, "Agent output in database operation") {
		t.Fatalf("rule description not reported: %q", hit.Detail)
	}
}

func TestRunAllPenaltiesStack(t *testing.T) {
	tmp := t.TempDir()
	f := writeFile(t, tmp, "agent.py", `def auto_route(ticket):
    if llm_response == "approve":
        db.execute(output)
`)

	res := Run(&checks.Target{Root: tmp, Files: []string{f}})

	if res.Score != 1 {
		t.Fatalf("score=%d want 1", res.Score)
	}
}

func TestRunIgnoresNonCodeFiles(t *testing.T) {
	tmp := t.TempDir()
	f := writeFile(t, tmp, "notes.md", "if llm_response == \"approve\": def auto_approve\n")

	res := Run(&checks.Target{Root: tmp, Files: []string{f}})

	if res.Score != 15 {
		t.Fatalf("score=%d want 15 for non-code files", res.Score)
	}
}
