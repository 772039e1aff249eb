// Package ownership checks for missing accountability ownership
// (EU AI Act Article 22, GDPR Article 5(2)).
package ownership

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentshield/agentshield/internal/checks"
	"github.com/agentshield/agentshield/internal/report"
)

const (
	ID       = "art22_accountability"
	Name     = "Art. 22 Accountability"
	Icon     = "\U0001f4cb"
	MaxScore = 15
)

var ownerPattern = regexp.MustCompile(`(?i)["']?(?:owner|responsible[_\-]?party|contact|maintainer|accountable)["']?\s*[:=]`)

var multiAgentRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:agent|tool)[_\-]?chain`),
	regexp.MustCompile(`(?i)(?:multi[_\-]?agent|agent[_\-]?orchestrat|agent[_\-]?pipeline)`),
	regexp.MustCompile(`(?i)(?:run[_\-]?agent|call[_\-]?agent|invoke[_\-]?agent|spawn[_\-]?agent)`),
	regexp.MustCompile(`(?i)(?:crew|swarm|graph)\s*[({=]`),
	regexp.MustCompile(`(?i)agent\s*\(\s*["']`),
	regexp.MustCompile(`(?i)tools?\s*=\s*\[.*(?:agent|tool)`),
}

var escalationRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)escalat(?:e|ion)`),
	regexp.MustCompile(`(?i)fallback[_\-]?handler`),
	regexp.MustCompile(`(?i)on[_\-]?(?:error|failure)[_\-]?(?:escalate|notify|alert)`),
	regexp.MustCompile(`(?i)human[_\-]?fallback`),
}

type rule struct {
	Regex *regexp.Regexp
	Desc  string
}

var silentErrorRules = []rule{
	{regexp.MustCompile(`except\s*:\s*\n\s*pass`), "Bare except with pass"},
	{regexp.MustCompile(`except\s+\w+.*:\s*\n\s*pass`), "Typed except with pass"},
	{regexp.MustCompile(`except.*:\s*\n\s*logger?\.debug\(`), "Exception logged at debug level only"},
	{regexp.MustCompile(`except.*:\s*\n\s*#\s*(?:todo|ignore|skip)`), "Exception silenced with comment"},
}

var validationRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:schema|pydantic|validate|validator|jsonschema)`),
	regexp.MustCompile(`(?i)(?:type[_\-]?check|isinstance|assert\s+isinstance)`),
	regexp.MustCompile(`(?i)(?:bounds[_\-]?check|range[_\-]?check|clamp|min\(.*max\()`),
	regexp.MustCompile(`(?i)(?:sanitize|escape|clean|strip[_\-]?tags)`),
	regexp.MustCompile(`(?i)(?:output[_\-]?valid|response[_\-]?valid|result[_\-]?valid)`),
}

var auditTrailRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:timestamp|created[_\-]?at|logged[_\-]?at)`),
	regexp.MustCompile(`(?i)(?:agent[_\-]?id|actor[_\-]?id|user[_\-]?id)`),
	regexp.MustCompile(`(?i)(?:input[_\-]?hash|output[_\-]?hash|content[_\-]?hash)`),
	regexp.MustCompile(`(?i)(?:decision[_\-]?rationale|reasoning|justification|explanation)`),
	regexp.MustCompile(`(?i)(?:audit[_\-]?log|audit[_\-]?trail|audit[_\-]?record|audit[_\-]?entry)`),
}

var configExts = map[string]struct{}{
	".yaml": {}, ".yml": {}, ".toml": {}, ".json": {},
}

var codeExts = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {},
}

// Run evaluates whether someone is accountable for agent decisions: a
// declared owner, escalation paths for agent chains, loud error handling,
// output validation, and an audit trail. Penalty check from MaxScore.
func Run(t *checks.Target) report.CheckResult {
	score := MaxScore
	var findings []report.Finding

	hasOwner := false
	hasMultiAgent := false
	hasEscalation := false
	var silentHits []checks.Location
	var silentDescs []string
	hasValidation := false
	auditTrailFiles := 0

	for _, f := range t.Files {
		if !checks.HasExt(f, configExts) {
			continue
		}
		content, ok := t.Read(f)
		if !ok {
			continue
		}
		if ownerPattern.MatchString(content) {
			hasOwner = true
		}
	}

	for _, f := range t.Files {
		if !checks.HasExt(f, codeExts) {
			continue
		}
		content, ok := t.Read(f)
		if !ok {
			continue
		}
		rel := t.Rel(f)

		for _, r := range multiAgentRules {
			if r.MatchString(content) {
				hasMultiAgent = true
				break
			}
		}
		for _, r := range escalationRules {
			if r.MatchString(content) {
				hasEscalation = true
				break
			}
		}
		for _, r := range silentErrorRules {
			for _, m := range r.Regex.FindAllStringIndex(content, -1) {
				silentHits = append(silentHits, checks.Location{Path: rel, Line: checks.LineAt(content, m[0])})
				silentDescs = append(silentDescs, r.Desc)
			}
		}
		for _, r := range validationRules {
			if r.MatchString(content) {
				hasValidation = true
				break
			}
		}
		for _, r := range auditTrailRules {
			if r.MatchString(content) {
				auditTrailFiles++ // count per file, not per pattern
				break
			}
		}
	}

	if !hasOwner {
		score -= 3
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    "No accountability owner in configuration",
			Detail:   "No owner, responsible_party, or contact field found in any configuration file. There is no documented accountability owner for agent decisions.",
			Fix:      "Add an owner or responsible_party field to your agent/tool configuration specifying who is accountable for the system's decisions.",
			Articles: []string{"EU AI Act Art. 22", "GDPR Art. 5(2)"},
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Accountability owner declared in configuration",
			Detail:   "Found owner or responsible_party field in configuration.",
		})
	}

	switch {
	case hasMultiAgent && !hasEscalation:
		score -= 4
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    "Multi-agent orchestration without escalation path",
			Detail:   "Multi-agent or tool-chaining patterns detected but no escalation handler or fallback to human found. If an agent in the chain fails or produces uncertain output, there is no defined path to resolution.",
			Fix:      "Add an escalation handler or human fallback for agent chains. Define what happens when an agent in the pipeline fails or is uncertain.",
			Articles: []string{"EU AI Act Art. 22", "GDPR Art. 5(2)"},
		})
	case hasMultiAgent:
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Multi-agent orchestration has escalation path",
			Detail:   "Agent orchestration found with escalation or fallback handler.",
		})
	}

	if len(silentHits) > 0 {
		score -= 3
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    "Silent error handling on agent decision paths",
			Detail: fmt.Sprintf("Found %d silent error handler(s) (%s). Errors are swallowed without human notification. Locations: %s",
				len(silentHits), strings.Join(checks.Dedupe(silentDescs), ", "), checks.FormatLocations(silentHits, 5)),
			Fix:      "Replace silent error handlers with proper logging at warning/error level and add human notification for failures on agent decision paths.",
			Articles: []string{"EU AI Act Art. 22", "GDPR Art. 5(2)"},
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "No silent error handlers detected",
			Detail:   "No exception-swallowing patterns found on agent decision paths.",
		})
	}

	if !hasValidation {
		score -= 3
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    "No output validation detected",
			Detail:   "No schema validation, type checking, or bounds checking found for agent outputs. Unvalidated output going to external systems creates unaccountable behavior.",
			Fix:      "Add output validation (Pydantic, JSON Schema, or manual type/bounds checks) before agent output reaches external systems.",
			Articles: []string{"EU AI Act Art. 22"},
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Output validation detected",
			Detail:   "Found schema validation, type checking, or sanitization patterns.",
		})
	}

	if auditTrailFiles == 0 {
		score -= 2
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No audit trail for agent actions",
			Detail:   "No audit logging with timestamp, agent_id, input/output hash, or decision rationale found. Without an audit trail, accountability cannot be demonstrated.",
			Fix:      "Log agent actions with: timestamp, agent_id, input_hash, output_hash, and decision_rationale.",
			Articles: []string{"EU AI Act Art. 22", "GDPR Art. 5(2)"},
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Audit trail patterns detected",
			Detail:   fmt.Sprintf("Found audit-related fields in %d file(s).", auditTrailFiles),
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
