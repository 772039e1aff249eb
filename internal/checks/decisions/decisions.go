// Package decisions checks for automated decision paths that lack a human
// review checkpoint (EU AI Act Article 14).
package decisions

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentshield/agentshield/internal/checks"
	"github.com/agentshield/agentshield/internal/report"
)

const (
	ID       = "art14_human_oversight"
	Name     = "Art. 14 Human Oversight"
	Icon     = "⚖️"
	MaxScore = 15
)

type rule struct {
	Regex *regexp.Regexp
	Desc  string
}

// LLM/agent output used directly in conditionals.
var llmConditionalRules = []rule{
	{regexp.MustCompile(`if\s+(?:llm|gpt|claude|agent|model|ai)[_.]?(?:response|output|result|answer|decision)\s*[=!<>]`), "LLM output in conditional"},
	{regexp.MustCompile(`if\s+(?:response|result|output)\s*==\s*["'](?:approve|yes|true|allow|accept)`), "LLM string match driving decision"},
	{regexp.MustCompile(`if\s+(?:agent|bot|assistant)\.(?:decide|judge|evaluate|classify|determine)\s*\(`), "Agent decision method in conditional"},
	{regexp.MustCompile(`(?:response|result|output|decision)\s*=\s*(?:llm|gpt|claude|agent|model)\..+\n\s*if\s+(?:response|result|output|decision)`), "LLM call immediately followed by conditional"},
}

// Automation without a human checkpoint.
var autoFunctionRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)def\s+auto[_\-]?approve`),
	regexp.MustCompile(`(?i)def\s+auto[_\-]?decide`),
	regexp.MustCompile(`(?i)def\s+auto[_\-]?execute`),
	regexp.MustCompile(`(?i)def\s+auto[_\-]?process`),
	regexp.MustCompile(`(?i)def\s+auto[_\-]?classify`),
	regexp.MustCompile(`(?i)def\s+auto[_\-]?route`),
	regexp.MustCompile(`(?i)def\s+auto[_\-]?assign`),
}

// Presence anywhere in the scanned files mitigates the auto-* penalty.
var humanReviewRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)human[_\-]?review`),
	regexp.MustCompile(`(?i)human[_\-]?approval`),
	regexp.MustCompile(`(?i)human[_\-]?oversight`),
	regexp.MustCompile(`(?i)human[_\-]?intervention`),
	regexp.MustCompile(`(?i)manual[_\-]?review`),
	regexp.MustCompile(`(?i)require[_\-]?approval`),
	regexp.MustCompile(`(?i)pending[_\-]?review`),
	regexp.MustCompile(`(?i)approval[_\-]?gate`),
}

// Agent output piped directly into an action sink.
var directActionRules = []rule{
	{regexp.MustCompile(`(?s)(?:llm|agent|model|gpt|claude|ai)[_.]?(?:response|output|result).{0,80}(?:\.execute|\.run|\.send|\.write|\.delete|\.update|\.insert|\.post|\.put|\.patch)`), "Agent output piped to system action"},
	{regexp.MustCompile(`(?s)(?:cursor|db|conn|session|collection)\.(?:execute|insert|update|delete|write)\(.{0,40}(?:response|output|result|answer)`), "Agent output in database operation"},
	{regexp.MustCompile(`(?s)(?:requests|httpx|aiohttp|fetch|axios)\.\w+\(.{0,60}(?:response|output|result)`), "Agent output in HTTP request"},
	{regexp.MustCompile(`(?s)(?:send_email|send_message|send_notification|publish)\(.{0,60}(?:response|output|result)`), "Agent output in outbound communication"},
	{regexp.MustCompile(`(?s)(?:open|write_text|write_bytes)\(.{0,60}(?:response|output|result)`), "Agent output written to file"},
	{regexp.MustCompile(`(?s)(?:subprocess|os\.system|exec|eval)\(.{0,60}(?:response|output|result)`), "Agent output in code execution"},
}

var codeExts = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {},
}

type autoHit struct {
	Loc  checks.Location
	Func string
}

// Run flags agent output driving conditionals or action sinks and auto-*
// functions with no review companion. Penalty check from MaxScore.
func Run(t *checks.Target) report.CheckResult {
	score := MaxScore
	var findings []report.Finding

	var llmHits []checks.Location
	var autoHits []autoHit
	var actionHits []checks.Location
	var actionDescs []string
	hasHumanReview := false

	for _, f := range t.Files {
		if !checks.HasExt(f, codeExts) {
			continue
		}
		content, ok := t.Read(f)
		if !ok {
			continue
		}
		rel := t.Rel(f)

		for _, r := range humanReviewRules {
			if r.MatchString(content) {
				hasHumanReview = true
				break
			}
		}

		for _, r := range llmConditionalRules {
			for _, m := range r.Regex.FindAllStringIndex(content, -1) {
				llmHits = append(llmHits, checks.Location{Path: rel, Line: checks.LineAt(content, m[0])})
			}
		}

		for _, r := range autoFunctionRules {
			for _, m := range r.FindAllStringIndex(content, -1) {
				text := content[m[0]:m[1]]
				name := text
				if i := strings.LastIndex(strings.ToLower(text), "def "); i >= 0 {
					name = strings.TrimSpace(text[i+4:])
				}
				autoHits = append(autoHits, autoHit{
					Loc:  checks.Location{Path: rel, Line: checks.LineAt(content, m[0])},
					Func: name,
				})
			}
		}

		for _, r := range directActionRules {
			for _, m := range r.Regex.FindAllStringIndex(content, -1) {
				actionHits = append(actionHits, checks.Location{Path: rel, Line: checks.LineAt(content, m[0])})
				actionDescs = append(actionDescs, r.Desc)
			}
		}
	}

	if len(llmHits) > 0 {
		score -= 5
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    "LLM output used directly in decision conditional",
			Detail: fmt.Sprintf("Found %d instance(s) where LLM/agent output drives a decision without human validation: %s",
				len(llmHits), checks.FormatLocations(llmHits, 5)),
			Fix:      "Add a human review step between LLM output and decision execution. Route uncertain or high-impact decisions to a human reviewer.",
			Articles: []string{"EU AI Act Art. 14"},
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "No LLM output conditionals detected",
			Detail:   "No patterns found where LLM or agent output directly drives a decision.",
		})
	}

	switch {
	case len(autoHits) > 0 && !hasHumanReview:
		score -= 4
		locs := autoHits
		if len(locs) > 5 {
			locs = locs[:5]
		}
		parts := make([]string, len(locs))
		for i, h := range locs {
			parts[i] = fmt.Sprintf("%s (%s)", h.Loc, h.Func)
		}
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    "Automated decision function without human review companion",
			Detail:   fmt.Sprintf("Found auto-* functions with no corresponding human review mechanism: %s", strings.Join(parts, ", ")),
			Fix:      "Add a human_review or approval_gate function that can intercept or override automated decisions.",
			Articles: []string{"EU AI Act Art. 14"},
		})
	case len(autoHits) > 0:
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Automated functions have human review companion",
			Detail:   "Auto-* functions found alongside human review mechanisms.",
		})
	default:
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "No automated decision functions detected",
			Detail:   "No auto-approve, auto-execute, or similar functions found.",
		})
	}

	if len(actionHits) > 0 {
		score -= 5
		descs := checks.Dedupe(actionDescs)
		if len(descs) > 3 {
			descs = descs[:3]
		}
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    "Agent output flows directly to system action",
			Detail: fmt.Sprintf("Found %d instance(s) where agent output reaches a system action without human checkpoint: %s. Locations: %s",
				len(actionHits), strings.Join(descs, ", "), checks.FormatLocations(actionHits, 5)),
			Fix:      "Insert an approval step or validation layer between agent output and system actions. EU AI Act Article 14 requires humans can intervene or interrupt the system for high-risk AI.",
			Articles: []string{"EU AI Act Art. 14"},
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "No unreviewed agent-to-action flows detected",
			Detail:   "No patterns found where agent output reaches a system action without a human checkpoint.",
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
