// Package audit checks for audit logging and traceability signals.
package audit

import (
	"regexp"

	"github.com/agentshield/agentshield/internal/checks"
	"github.com/agentshield/agentshield/internal/report"
)

const (
	ID       = "audit_logging"
	Name     = "Audit & Logging"
	Icon     = "\U0001f4cb"
	MaxScore = 20
)

// Rule tables: pattern, human-readable name, credit. Detection is boolean
// per area; the credit applies once no matter how many files match.
type rule struct {
	Regex  *regexp.Regexp
	Desc   string
	Points int
}

var loggingRules = []rule{
	{regexp.MustCompile(`(?i)import\s+logging`), "Python logging module", 2},
	{regexp.MustCompile(`(?i)from\s+logging\s+import`), "Python logging module", 2},
	{regexp.MustCompile(`(?i)structlog|structured.?log`), "Structured logging library", 3},
	{regexp.MustCompile(`(?i)winston|pino|bunyan`), "Node.js structured logger", 3},
	{regexp.MustCompile(`(?i)logger\.(info|warning|error|debug|critical)`), "Logger usage", 1},
	{regexp.MustCompile(`(?i)console\.(log|warn|error|info)`), "Console logging (basic)", 1},
}

var auditRules = []rule{
	{regexp.MustCompile(`(?i)audit[_-]?log|audit[_-]?trail`), "Audit trail reference", 4},
	{regexp.MustCompile(`(?i)trace[_-]?id|correlation[_-]?id|request[_-]?id`), "Trace/correlation ID", 3},
	{regexp.MustCompile(`(?i)decision[_-]?log|agent[_-]?log`), "Agent decision logging", 4},
	{regexp.MustCompile(`(?i)langfuse|langsmith|agentops|phoenix`), "Observability platform", 3},
	{regexp.MustCompile(`(?i)opentelemetry|otel`), "OpenTelemetry tracing", 3},
}

var ioLoggingRules = []rule{
	{regexp.MustCompile(`(?i)log.*input|log.*prompt|log.*request`), "Input logging", 2},
	{regexp.MustCompile(`(?i)log.*output|log.*response|log.*result`), "Output logging", 2},
	{regexp.MustCompile(`(?i)log.*tool[_-]?call|log.*function[_-]?call`), "Tool call logging", 2},
}

var codeExts = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {},
}

// Run looks for logging and traceability patterns. Credit check: starts
// at zero and adds per detected area, capped at MaxScore.
func Run(t *checks.Target) report.CheckResult {
	score := 0
	var findings []report.Finding

	hasBasic := false
	hasStructured := false
	hasAuditTrail := false
	hasTraceIDs := false
	hasIOLogging := false
	hasObservability := false

	for _, f := range t.Files {
		if !checks.HasExt(f, codeExts) {
			continue
		}
		content, ok := t.Read(f)
		if !ok {
			continue
		}

		for _, r := range loggingRules {
			if r.Regex.MatchString(content) {
				if r.Desc == "Structured logging library" || r.Desc == "Node.js structured logger" {
					hasStructured = true
				} else {
					hasBasic = true
				}
			}
		}
		for _, r := range auditRules {
			switch {
			case !r.Regex.MatchString(content):
			case r.Desc == "Trace/correlation ID":
				hasTraceIDs = true
			case r.Desc == "Observability platform":
				hasObservability = true
			default:
				hasAuditTrail = true
			}
		}
		for _, r := range ioLoggingRules {
			if r.Regex.MatchString(content) {
				hasIOLogging = true
			}
		}
	}

	if hasBasic {
		score += 3
		findings = append(findings, pass("Basic logging detected", "Found logging module usage."))
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: "audit",
			Title:    "No logging detected",
			Detail:   "No logging framework or logger usage found in code.",
			Fix:      "Add structured logging (structlog for Python, pino for Node.js).",
			Articles: []string{"EU AI Act Art. 12", "EU AI Act Art. 19"},
		})
	}

	if hasStructured {
		score += 3
		findings = append(findings, pass("Structured logging detected",
			"Found structured logging library (structlog, winston, pino, or similar)."))
	} else {
		findings = append(findings, warn("No structured logging detected",
			"Log output is unstructured; machine-readable audit records need a structured logger.",
			"Adopt a structured logging library so audit events carry queryable fields.",
			"EU AI Act Art. 12"))
	}

	if hasAuditTrail {
		score += 5
		findings = append(findings, pass("Audit trail pattern detected",
			"Found audit log or decision logging patterns."))
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: "audit",
			Title:    "No audit trail detected",
			Detail:   "No structured audit trail or decision logging found for agent actions.",
			Fix:      "Add decision logging middleware that captures: input, reasoning, tool calls, output, timestamp, and session ID.",
			Articles: []string{"EU AI Act Art. 12", "EU AI Act Art. 18"},
		})
	}

	if hasTraceIDs {
		score += 4
		findings = append(findings, pass("Trace/correlation IDs detected",
			"Found trace_id, correlation_id, or request_id patterns."))
	} else {
		findings = append(findings, warn("No trace IDs detected",
			"No correlation or trace ID patterns found. Agent actions cannot be linked across calls.",
			"Add a unique trace_id to every agent invocation for end-to-end traceability.",
			"EU AI Act Art. 12"))
	}

	if hasIOLogging {
		score += 3
		findings = append(findings, pass("Input/output logging detected",
			"Found patterns for logging agent inputs and outputs."))
	} else {
		findings = append(findings, warn("No input/output logging detected",
			"No patterns for logging agent prompts, responses, or tool calls found.",
			"Log agent inputs and outputs so every decision can be reconstructed.",
			"EU AI Act Art. 12"))
	}

	if hasObservability {
		score += 2
		findings = append(findings, pass("Observability platform integration detected",
			"Found integration with Langfuse, LangSmith, AgentOps, or OpenTelemetry."))
	} else {
		findings = append(findings, warn("No observability platform integration",
			"No Langfuse, LangSmith, AgentOps, or OpenTelemetry integration found.",
			"Integrate an observability platform for production traceability.",
			"EU AI Act Art. 12"))
	}

	return report.CheckResult{
		Name:     Name,
		Icon:     Icon,
		Score:    checks.Clamp(score, MaxScore),
		MaxScore: MaxScore,
		Findings: findings,
	}
}

func pass(title, detail string) report.Finding {
	return report.Finding{Severity: report.SeverityPass, Category: "audit", Title: title, Detail: detail}
}

func warn(title, detail, fix string, articles ...string) report.Finding {
	return report.Finding{
		Severity: report.SeverityWarning,
		Category: "audit",
		Title:    title,
		Detail:   detail,
		Fix:      fix,
		Articles: articles,
	}
}
