package ownership

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

func TestRunOwnerInConfigOnly(t *testing.T) {
	tmp := t.TempDir()
	f := writeFile(t, tmp, "config.yaml", "owner: \"team-x\"\n")

	res := Run(&checks.Target{Root: tmp, Files: []string{f}})

	// Owner declared; validation and audit trail still missing.
	if res.Score != 10 {
		t.Fatalf("score=%d want 10", res.Score)
	}
	if res.Findings[0].Title != "Accountability owner declared in configuration" {
		t.Fatalf("unexpected first finding: %q", res.Findings[0].Title)
	}
	if res.Findings[0].Severity != report.SeverityPass {
		t.Fatalf("severity=%s want pass", res.Findings[0].Severity)
	}
}

func TestRunOwnerOnlyCountsInConfigFiles(t *testing.T) {
	tmp := t.TempDir()
	f := writeFile(t, tmp, "app.py", "owner = \"team-x\"\n")

	res := Run(&checks.Target{Root: tmp, Files: []string{f}})

	if res.Findings[0].Title != "No accountability owner in configuration" {
		t.Fatalf("owner in code must not count: %q", res.Findings[0].Title)
	}
}

func TestRunMultiAgentWithoutEscalation(t *testing.T) {
	tmp := t.TempDir()
	f := writeFile(t, tmp, "pipeline.py", "result = run_agent(multi_agent_pipeline, task)\n")

	res := Run(&checks.Target{Root: tmp, Files: []string{f}})

	// No owner, no escalation, no validation, no audit trail.
	if res.Score != 3 {
		t.Fatalf("score=%d want 3", res.Score)
	}
	var hit bool
	for _, finding := range res.Findings {
		if finding.Title == "Multi-agent orchestration without escalation path" {
			hit = true
			if finding.Severity != report.SeverityCritical {
				t.Fatalf("severity=%s want critical", finding.Severity)
			}
		}
	}
	if !hit {
		t.Fatal("expected multi-agent escalation finding")
	}
}

func TestRunMultiAgentWithEscalation(t *testing.T) {
	tmp := t.TempDir()
	f := writeFile(t, tmp, "pipeline.py", `result = run_agent(multi_agent_pipeline, task)
if result.uncertain:
    escalate_to_human(result)
`)

	res := Run(&checks.Target{Root: tmp, Files: []string{f}})

	var hit bool
	for _, finding := range res.Findings {
		if finding.Title == "Multi-agent orchestration has escalation path" {
			hit = true
		}
	}
	if !hit {
		t.Fatal("expected escalation pass finding")
	}
}

func TestRunSilentErrorHandlers(t *testing.T) {
	tmp := t.TempDir()
	f := writeFile(t, tmp, "worker.py", `try:
    act()
except:
    pass
`)

	res := Run(&checks.Target{Root: tmp, Files: []string{f}})

	var hit *report.Finding
	for i, finding := range res.Findings {
		if finding.Title == "Silent error handling on agent decision paths" {
			hit = &res.Findings[i]
		}
	}
	if hit == nil {
		t.Fatal("expected silent error finding")
	}
	if !strings.Contains(hit.Detail, "Bare except with pass") {
		t.Fatalf("rule description not reported: %q", hit.Detail)
	}
	if !strings.Contains(hit.Detail, "worker.py:3") {
		t.Fatalf("location not reported: %q", hit.Detail)
	}
}

func TestRunFullAccountability(t *testing.T) {
	tmp := t.TempDir()
	cfg := writeFile(t, tmp, "agent.yaml", "owner: platform-team\n")
	code := writeFile(t, tmp, "audit.py", `entry = {"timestamp": now(), "agent_id": aid}
validate_output(entry)
`)

	res := Run(&checks.Target{Root: tmp, Files: []string{cfg, code}})

	if res.Score != 15 {
		t.Fatalf("score=%d want 15", res.Score)
	}
	for _, finding := range res.Findings {
		if finding.Severity != report.SeverityPass {
			t.Fatalf("expected all pass, got %s: %s", finding.Severity, finding.Title)
		}
	}
}
