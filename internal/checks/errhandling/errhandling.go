// Package errhandling checks for robust error handling and graceful
// degradation in Python sources.
package errhandling

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agentshield/agentshield/internal/checks"
	"github.com/agentshield/agentshield/internal/report"
)

const (
	ID       = "error_handling"
	Name     = "Error Handling"
	Icon     = "⚠️"
	MaxScore = 15
)

var (
	bareExcept  = regexp.MustCompile(`(?m)^\s*except\s*:`)
	broadExcept = regexp.MustCompile(`except\s+Exception\s*:`)
)

type rule struct {
	Regex *regexp.Regexp
	Desc  string
}

var fallbackRules = []rule{
	{regexp.MustCompile(`(?i)fallback|graceful[_-]?degrad`), "Fallback / graceful degradation"},
	{regexp.MustCompile(`(?i)circuit[_-]?breaker|CircuitBreaker`), "Circuit breaker"},
	{regexp.MustCompile(`(?i)retry|backoff|Retry|tenacity`), "Retry / backoff"},
	{regexp.MustCompile(`(?i)timeout|Timeout`), "Timeout handling"},
}

var boundaryRules = []rule{
	{regexp.MustCompile(`(?i)max[_-]?(retries|attempts|iterations|steps|tokens|loops)`), "Loop / resource bounds"},
	{regexp.MustCompile(`(?i)rate[_-]?limit|throttle`), "Rate limiting"},
	{regexp.MustCompile(`(?i)input[_-]?valid|validate[_-]?input|sanitiz`), "Input validation / sanitisation"},
}

var errorReportingRules = []rule{
	{regexp.MustCompile(`(?i)sentry|bugsnag|rollbar|airbrake|datadog`), "Error reporting service"},
	{regexp.MustCompile(`(?i)error[_-]?handler|exception[_-]?handler`), "Centralised error handler"},
}

// Run evaluates exception hygiene, fallback logic, resource boundaries,
// and error reporting. Credit check capped at MaxScore.
func Run(t *checks.Target) report.CheckResult {
	score := 0
	var findings []report.Finding

	bareCount := 0
	broadCount := 0
	pyFiles := 0
	hasFallback := false
	hasBoundaries := false
	hasErrorReporting := false

	for _, f := range t.Files {
		if strings.ToLower(filepath.Ext(f)) != ".py" {
			continue
		}
		pyFiles++
		content, ok := t.Read(f)
		if !ok {
			continue
		}

		bareCount += len(bareExcept.FindAllStringIndex(content, -1))
		broadCount += len(broadExcept.FindAllStringIndex(content, -1))

		for _, r := range fallbackRules {
			if r.Regex.MatchString(content) {
				hasFallback = true
			}
		}
		for _, r := range boundaryRules {
			if r.Regex.MatchString(content) {
				hasBoundaries = true
			}
		}
		for _, r := range errorReportingRules {
			if r.Regex.MatchString(content) {
				hasErrorReporting = true
			}
		}
	}

	if pyFiles == 0 {
		return report.CheckResult{
			Name:     Name,
			Icon:     Icon,
			Score:    0,
			MaxScore: MaxScore,
			Findings: []report.Finding{{
				Severity: report.SeverityWarning,
				Category: ID,
				Title:    "No Python files to evaluate",
				Detail:   "No .py files found in the project.",
			}},
		}
	}

	if bareCount == 0 {
		score += 3
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "No bare except clauses",
			Detail:   "No bare 'except:' found; errors are caught specifically.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    fmt.Sprintf("%d bare except clause(s)", bareCount),
			Detail:   "Bare 'except:' silently swallows all errors including KeyboardInterrupt.",
			Fix:      "Replace bare except with specific exception types.",
			Articles: []string{"EU AI Act Art. 15"},
		})
	}

	if broadCount > 3 {
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    fmt.Sprintf("%d broad 'except Exception' clause(s)", broadCount),
			Detail:   "Excessive broad exception handling reduces observability.",
			Fix:      "Catch specific exceptions. Use broad catches only at top-level boundaries.",
			Articles: []string{"EU AI Act Art. 15"},
		})
	}

	if hasFallback {
		score += 4
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Fallback / retry patterns detected",
			Detail:   "Found circuit breaker, retry, backoff, or graceful degradation logic.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No fallback / retry patterns",
			Detail:   "No circuit breaker, retry, or graceful degradation patterns found.",
			Fix:      "Add retry with exponential backoff for external calls. Add a circuit breaker for downstream services.",
			Articles: []string{"EU AI Act Art. 15"},
		})
	}

	if hasBoundaries {
		score += 4
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Resource boundaries detected",
			Detail:   "Found max retries, rate limits, input validation, or loop bounds.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No resource boundaries detected",
			Detail:   "No max iterations, rate limits, or input validation found.",
			Fix:      "Add explicit bounds on loops, retries, and token usage to prevent runaway agents.",
			Articles: []string{"EU AI Act Art. 15"},
		})
	}

	if hasErrorReporting {
		score += 4
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Error reporting integration detected",
			Detail:   "Found Sentry, Datadog, or centralised error handler.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No error reporting integration",
			Detail:   "No centralised error reporting service found.",
			Fix:      "Add an error reporting service (Sentry, Datadog) for production observability.",
			Articles: []string{"EU AI Act Art. 12"},
		})
	}

	return report.CheckResult{
		Name:     Name,
		Icon:     Icon,
		Score:    checks.Clamp(score, MaxScore),
		MaxScore: MaxScore,
		Findings: findings,
	}
}
