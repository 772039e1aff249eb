// Package oversight checks for human oversight and control mechanisms.
package oversight

import (
	"regexp"

	"github.com/agentshield/agentshield/internal/checks"
	"github.com/agentshield/agentshield/internal/report"
)

const (
	ID       = "human_oversight"
	Name     = "Human Oversight"
	Icon     = "\U0001f464"
	MaxScore = 20
)

type rule struct {
	Regex *regexp.Regexp
	Desc  string
}

var hitlRules = []rule{
	{regexp.MustCompile(`(?i)human[_-]?(in[_-]?the[_-]?loop|review|approval|confirm)`), "Human-in-the-loop"},
	{regexp.MustCompile(`(?i)require[_-]?approval|needs[_-]?approval|pending[_-]?approval`), "Approval gate"},
	{regexp.MustCompile(`(?i)manual[_-]?review|manual[_-]?check`), "Manual review step"},
	{regexp.MustCompile(`(?i)confirm.*before|approve.*before|review.*before`), "Pre-action confirmation"},
}

var escalationRules = []rule{
	{regexp.MustCompile(`(?i)escalat(e|ion)|elevat(e|ion)`), "Escalation logic"},
	{regexp.MustCompile(`(?i)fallback[_-]?to[_-]?human|hand[_-]?off|handoff`), "Human handoff"},
	{regexp.MustCompile(`(?i)confidence[_-]?(score|threshold|level).*(?:low|below|under)`), "Confidence-based escalation"},
	{regexp.MustCompile(`(?i)risk[_-]?(score|level|threshold)`), "Risk-based routing"},
}

var overrideRules = []rule{
	{regexp.MustCompile(`(?i)kill[_-]?switch|emergency[_-]?stop|abort`), "Kill switch"},
	{regexp.MustCompile(`(?i)override|force[_-]?stop|disable[_-]?agent`), "Override mechanism"},
	{regexp.MustCompile(`(?i)rate[_-]?limit|throttle|circuit[_-]?break`), "Rate limiting / circuit breaker"},
	{regexp.MustCompile(`(?i)max[_-]?(retries|attempts|iterations|loops)`), "Loop bounds"},
}

var externalActionRules = []rule{
	{regexp.MustCompile(`(?i)(send|post|publish|deploy|delete|drop|execute).*confirm`), "Confirmation before destructive action"},
	{regexp.MustCompile(`(?i)dry[_-]?run|sandbox|preview`), "Dry run / sandbox mode"},
	{regexp.MustCompile(`(?i)allow[_-]?list|whitelist|permitted[_-]?actions`), "Action allowlisting"},
}

var codeExts = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {}, ".yaml": {}, ".yml": {},
}

// Run looks for human-in-the-loop, escalation, override, and external
// action gate patterns. Credit check capped at MaxScore.
func Run(t *checks.Target) report.CheckResult {
	score := 0
	var findings []report.Finding

	hasHITL := false
	hasEscalation := false
	hasOverride := false
	hasExternalGates := false

	for _, f := range t.Files {
		if !checks.HasExt(f, codeExts) {
			continue
		}
		content, ok := t.Read(f)
		if !ok {
			continue
		}
		for _, r := range hitlRules {
			if r.Regex.MatchString(content) {
				hasHITL = true
			}
		}
		for _, r := range escalationRules {
			if r.Regex.MatchString(content) {
				hasEscalation = true
			}
		}
		for _, r := range overrideRules {
			if r.Regex.MatchString(content) {
				hasOverride = true
			}
		}
		for _, r := range externalActionRules {
			if r.Regex.MatchString(content) {
				hasExternalGates = true
			}
		}
	}

	if hasHITL {
		score += 7
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Human-in-the-loop pattern detected",
			Detail:   "Found approval gate or human review requirement.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    "No human-in-the-loop pattern detected",
			Detail:   "No human approval, review, or confirmation gate found in agent logic.",
			Fix:      "Add a human approval gate before high-risk agent actions (external API calls, data writes, user-facing communications).",
			Articles: []string{"EU AI Act Art. 14"},
		})
	}

	if hasEscalation {
		score += 5
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Escalation logic detected",
			Detail:   "Found confidence-based escalation, human handoff, or risk routing.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No escalation logic detected",
			Detail:   "No pattern for escalating uncertain or high-risk decisions to humans.",
			Fix:      "Add escalation logic: if confidence < threshold or risk > threshold, route to human.",
			Articles: []string{"EU AI Act Art. 14"},
		})
	}

	if hasOverride {
		score += 4
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Override / kill switch detected",
			Detail:   "Found emergency stop, rate limiting, or loop bounds.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No override mechanism detected",
			Detail:   "No kill switch, circuit breaker, or emergency stop pattern found.",
			Fix:      "Add a kill switch or circuit breaker that halts agent execution on anomalous behavior.",
			Articles: []string{"EU AI Act Art. 14"},
		})
	}

	if hasExternalGates {
		score += 4
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "External action gates detected",
			Detail:   "Found confirmation gates, dry-run modes, or action allowlisting.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No external action gates detected",
			Detail:   "No confirmation step before destructive or external actions.",
			Fix:      "Add confirmation or dry-run mode for actions that affect external systems.",
			Articles: []string{"EU AI Act Art. 14", "GDPR Art. 22"},
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
