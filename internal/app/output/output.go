// Package output renders a ScanResult as text, JSON, or Markdown.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentshield/agentshield/internal/app/ui"
	"github.com/agentshield/agentshield/internal/report"
)

const divider = "================================================================"

// Render returns the report in the requested format. colored applies to
// the text format only and is ignored elsewhere.
func Render(res report.ScanResult, format string, colored bool) (string, error) {
	switch format {
	case "json":
		return renderJSON(res)
	case "markdown":
		return renderMarkdown(res), nil
	case "text", "":
		return renderText(res, colored), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func severityTag(s report.Severity) string {
	switch s {
	case report.SeverityPass:
		return "[PASS]"
	case report.SeverityWarning:
		return "[WARN]"
	case report.SeverityCritical:
		return "[CRIT]"
	default:
		return "[???]"
	}
}

func severityColor(s report.Severity) string {
	switch s {
	case report.SeverityPass:
		return ui.ColorGreen
	case report.SeverityWarning:
		return ui.ColorYellow
	case report.SeverityCritical:
		return ui.ColorRed
	default:
		return ui.ColorWhite
	}
}

func renderText(res report.ScanResult, colored bool) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("agent-shield scan  |  framework: %s", res.Framework))
	lines = append(lines, fmt.Sprintf("Project: %s", res.Project))
	lines = append(lines, divider)

	for _, check := range res.Checks {
		lines = append(lines, fmt.Sprintf("\n  %s %s  (%d/%d)", check.Icon, check.Name, check.Score, check.MaxScore))
		for _, f := range check.Findings {
			tag := severityTag(f.Severity)
			if colored {
				tag = severityColor(f.Severity) + tag + ui.ColorReset
			}
			lines = append(lines, fmt.Sprintf("    %s %s", tag, f.Title))
			lines = append(lines, fmt.Sprintf("           %s", f.Detail))
			if f.Fix != "" {
				lines = append(lines, fmt.Sprintf("           Fix: %s", f.Fix))
			}
			if len(f.Articles) > 0 {
				lines = append(lines, fmt.Sprintf("           Ref: %s", strings.Join(f.Articles, ", ")))
			}
		}
	}

	lines = append(lines, "\n"+divider)
	lines = append(lines, fmt.Sprintf("Score: %d/%d (%d%%)  |  passed: %d  warnings: %d  critical: %d",
		res.Score, res.MaxScore, res.Pct,
		res.Summary.Passed, res.Summary.Warnings, res.Summary.Critical))
	return strings.Join(lines, "\n")
}

func renderJSON(res report.ScanResult) (string, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func mdIcon(s report.Severity) string {
	switch s {
	case report.SeverityPass:
		return "✅"
	case report.SeverityWarning:
		return "⚠️"
	case report.SeverityCritical:
		return "❌"
	default:
		return "❓"
	}
}

func renderMarkdown(res report.ScanResult) string {
	var lines []string
	lines = append(lines, "# agent-shield scan")
	lines = append(lines, fmt.Sprintf("**Framework:** %s  ", res.Framework))
	lines = append(lines, fmt.Sprintf("**Project:** `%s`  ", res.Project))
	lines = append(lines, fmt.Sprintf("**Score:** %d/%d (%d%%)\n", res.Score, res.MaxScore, res.Pct))

	for _, check := range res.Checks {
		lines = append(lines, fmt.Sprintf("## %s %s  (%d/%d)\n", check.Icon, check.Name, check.Score, check.MaxScore))
		lines = append(lines, "| Status | Finding | Detail |")
		lines = append(lines, "|--------|---------|--------|")
		for _, f := range check.Findings {
			detail := f.Detail
			if f.Fix != "" {
				detail += fmt.Sprintf(" **Fix:** %s", f.Fix)
			}
			lines = append(lines, fmt.Sprintf("| %s | %s | %s |", mdIcon(f.Severity), f.Title, detail))
		}
		lines = append(lines, "")
	}

	lines = append(lines, fmt.Sprintf("---\n**Total: %d/%d (%d%%)** — passed: %d, warnings: %d, critical: %d",
		res.Score, res.MaxScore, res.Pct,
		res.Summary.Passed, res.Summary.Warnings, res.Summary.Critical))
	return strings.Join(lines, "\n")
}
