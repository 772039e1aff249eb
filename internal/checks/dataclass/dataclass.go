// Package dataclass checks for data classification and PII handling practices.
package dataclass

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agentshield/agentshield/internal/checks"
	"github.com/agentshield/agentshield/internal/report"
)

const (
	ID       = "data_classification"
	Name     = "Data Classification"
	Icon     = "\U0001f4ca"
	MaxScore = 15
)

type rule struct {
	Regex *regexp.Regexp
	Desc  string
}

var classificationRules = []rule{
	{regexp.MustCompile(`(?i)data[_-]?classif(y|ication)`), "Data classification logic"},
	{regexp.MustCompile(`(?i)pii|personally[_-]?identifiable`), "PII reference"},
	{regexp.MustCompile(`(?i)sensitive[_-]?data|confidential`), "Sensitive data label"},
	{regexp.MustCompile(`(?i)data[_-]?category|data[_-]?level|data[_-]?tier`), "Data categorisation"},
}

var privacyRules = []rule{
	{regexp.MustCompile(`(?i)anonymiz(e|ation)|pseudonymiz(e|ation)`), "Anonymisation/pseudonymisation"},
	{regexp.MustCompile(`(?i)redact|mask|obfuscate`), "Data redaction"},
	{regexp.MustCompile(`(?i)encrypt|AES|RSA|fernet`), "Encryption usage"},
	{regexp.MustCompile(`(?i)data[_-]?retention|retention[_-]?polic`), "Retention policy"},
	{regexp.MustCompile(`(?i)right[_-]?to[_-]?erasure|right[_-]?to[_-]?forget|data[_-]?deletion`), "Right to erasure"},
}

var consentRules = []rule{
	{regexp.MustCompile(`(?i)consent|opt[_-]?(in|out)`), "Consent mechanism"},
	{regexp.MustCompile(`(?i)gdpr|data[_-]?protect`), "GDPR reference"},
	{regexp.MustCompile(`(?i)data[_-]?processing[_-]?agreement|dpa`), "DPA reference"},
}

var privacyDocFiles = map[string]struct{}{
	"privacy.md": {}, "privacy-policy.md": {}, "data-classification.md": {},
	"data_classification.md": {}, "dpia.md": {}, "pia.md": {},
}

var codeExts = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {}, ".yaml": {}, ".yml": {},
}

// Run looks for classification labels, privacy techniques, privacy
// documentation, and consent handling. Credit check capped at MaxScore.
func Run(t *checks.Target) report.CheckResult {
	score := 0
	var findings []report.Finding

	hasClassification := false
	hasPrivacyTech := false
	hasPrivacyDoc := false
	hasConsent := false

	for _, f := range t.Files {
		if _, ok := privacyDocFiles[strings.ToLower(filepath.Base(f))]; ok {
			hasPrivacyDoc = true
		}

		if !checks.HasExt(f, codeExts) {
			continue
		}
		content, ok := t.Read(f)
		if !ok {
			continue
		}
		for _, r := range classificationRules {
			if r.Regex.MatchString(content) {
				hasClassification = true
			}
		}
		for _, r := range privacyRules {
			if r.Regex.MatchString(content) {
				hasPrivacyTech = true
			}
		}
		for _, r := range consentRules {
			if r.Regex.MatchString(content) {
				hasConsent = true
			}
		}
	}

	if hasClassification {
		score += 4
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Data classification logic detected",
			Detail:   "Found data classification, PII labelling, or sensitivity tagging in code.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    "No data classification detected",
			Detail:   "No PII labelling, data categorisation, or sensitivity tagging found.",
			Fix:      "Tag data fields with classification levels (public, internal, confidential, restricted).",
			Articles: []string{"EU AI Act Art. 10", "GDPR Art. 5"},
		})
	}

	if hasPrivacyTech {
		score += 4
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Privacy-preserving techniques detected",
			Detail:   "Found anonymisation, pseudonymisation, redaction, or encryption patterns.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No privacy-preserving techniques detected",
			Detail:   "No anonymisation, pseudonymisation, redaction, or encryption found.",
			Fix:      "Apply data minimisation: anonymise or pseudonymise PII before processing.",
			Articles: []string{"GDPR Art. 25", "GDPR Art. 32"},
		})
	}

	if hasPrivacyDoc {
		score += 4
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Privacy documentation found",
			Detail:   "Found a privacy policy, DPIA, or data classification document.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No privacy documentation found",
			Detail:   "No privacy.md, dpia.md, or data-classification.md found.",
			Fix:      "Add a DPIA or data classification document describing what data is collected, stored, and processed.",
			Articles: []string{"GDPR Art. 35", "EU AI Act Art. 9"},
		})
	}

	if hasConsent {
		score += 3
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Consent / GDPR patterns detected",
			Detail:   "Found consent mechanism, opt-in/opt-out, or GDPR references.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No consent mechanisms detected",
			Detail:   "No consent, opt-in/opt-out, or GDPR references found in code.",
			Fix:      "Add explicit consent collection before processing personal data.",
			Articles: []string{"GDPR Art. 6", "GDPR Art. 7"},
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
