// Package docs checks for governance-relevant documentation.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentshield/agentshield/internal/checks"
	"github.com/agentshield/agentshield/internal/report"
)

const (
	ID       = "documentation"
	Name     = "Documentation"
	Icon     = "\U0001f4dd"
	MaxScore = 15
)

type doc struct {
	File string
	Desc string
}

var standardDocs = []doc{
	{"readme.md", "Project overview"},
	{"contributing.md", "Contribution guidelines"},
	{"changelog.md", "Change history"},
	{"license", "License file"},
}

var governanceDocs = []doc{
	{"model-card.md", "Model card"},
	{"model_card.md", "Model card"},
	{"system-card.md", "System card"},
	{"data-sheet.md", "Data sheet"},
	{"risk-assessment.md", "Risk assessment"},
	{"risk_assessment.md", "Risk assessment"},
	{"impact-assessment.md", "Impact assessment"},
	{"dpia.md", "DPIA"},
	{"pia.md", "PIA"},
	{"transparency.md", "Transparency notice"},
	{"responsible-ai.md", "Responsible AI policy"},
}

var architectureDocs = []doc{
	{"architecture.md", "Architecture doc"},
	{"design.md", "Design doc"},
	{"adr", "Architecture decision records (dir)"},
	{"docs", "Documentation directory"},
}

// Run scores standard, governance, and architecture documentation plus
// docstring coverage. Credit check capped at MaxScore.
func Run(t *checks.Target) report.CheckResult {
	score := 0
	var findings []report.Finding

	filenames := make(map[string]struct{}, len(t.Files))
	for _, f := range t.Files {
		filenames[strings.ToLower(filepath.Base(f))] = struct{}{}
	}
	dirnames := make(map[string]struct{})
	if entries, err := os.ReadDir(t.Root); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				dirnames[strings.ToLower(e.Name())] = struct{}{}
			}
		}
	}

	var present, missing []string
	for _, d := range standardDocs {
		if _, ok := filenames[d.File]; ok {
			present = append(present, d.File)
		} else {
			missing = append(missing, d.File)
		}
	}

	switch {
	case len(missing) == 0:
		score += 4
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "All standard project docs present",
			Detail:   fmt.Sprintf("Found: %s.", strings.Join(present, ", ")),
		})
	case len(missing) <= 2:
		score += 2
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    fmt.Sprintf("Missing standard docs: %s", strings.Join(missing, ", ")),
			Detail:   fmt.Sprintf("Found %d/%d standard docs.", len(present), len(standardDocs)),
			Fix:      fmt.Sprintf("Add: %s.", strings.Join(missing, ", ")),
		})
	default:
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    fmt.Sprintf("Missing key documentation: %s", strings.Join(missing, ", ")),
			Detail:   fmt.Sprintf("Only %d/%d standard docs found.", len(present), len(standardDocs)),
			Fix:      fmt.Sprintf("Add: %s.", strings.Join(missing, ", ")),
		})
	}

	var govPresent []string
	for _, d := range governanceDocs {
		if _, ok := filenames[d.File]; ok {
			govPresent = append(govPresent, d.Desc)
		}
	}
	if len(govPresent) > 0 {
		score += 6
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Governance documentation found",
			Detail:   fmt.Sprintf("Found: %s.", strings.Join(govPresent, ", ")),
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    "No governance documentation",
			Detail:   "No model card, risk assessment, DPIA, or transparency notice found.",
			Fix:      "Add a model card (model-card.md) and risk assessment (risk-assessment.md) for EU AI Act compliance.",
			Articles: []string{"EU AI Act Art. 11", "EU AI Act Art. 13"},
		})
	}

	var archPresent []string
	for _, d := range architectureDocs {
		_, inFiles := filenames[d.File]
		_, inDirs := dirnames[d.File]
		if inFiles || inDirs {
			archPresent = append(archPresent, d.File)
		}
	}
	if len(archPresent) > 0 {
		score += 3
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Architecture documentation found",
			Detail:   fmt.Sprintf("Found: %s.", strings.Join(archPresent, ", ")),
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No architecture documentation",
			Detail:   "No architecture.md, design.md, ADR directory, or docs/ found.",
			Fix:      "Add architecture documentation describing system design and agent interaction patterns.",
			Articles: []string{"EU AI Act Art. 11"},
		})
	}

	withDocstrings := 0
	pyTotal := 0
	for _, f := range t.Files {
		if strings.ToLower(filepath.Ext(f)) != ".py" {
			continue
		}
		pyTotal++
		content, ok := t.Read(f)
		if !ok {
			continue
		}
		if strings.Contains(content, `"""`) || strings.Contains(content, "'''") {
			withDocstrings++
		}
	}
	if pyTotal > 0 {
		if float64(withDocstrings)/float64(pyTotal) >= 0.5 {
			score += 2
			findings = append(findings, report.Finding{
				Severity: report.SeverityPass,
				Category: ID,
				Title:    "Good docstring coverage",
				Detail:   fmt.Sprintf("%d/%d Python files contain docstrings.", withDocstrings, pyTotal),
			})
		} else {
			findings = append(findings, report.Finding{
				Severity: report.SeverityWarning,
				Category: ID,
				Title:    "Low docstring coverage",
				Detail:   fmt.Sprintf("Only %d/%d Python files contain docstrings.", withDocstrings, pyTotal),
				Fix:      "Add module and function docstrings for auditability.",
				Articles: []string{"EU AI Act Art. 11"},
			})
		}
	}

	return report.CheckResult{
		Name:     Name,
		Icon:     Icon,
		Score:    checks.Clamp(score, MaxScore),
		MaxScore: MaxScore,
		Findings: findings,
	}
}
