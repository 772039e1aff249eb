// Package secrets checks for exposed credentials and access hygiene.
package secrets

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agentshield/agentshield/internal/checks"
	"github.com/agentshield/agentshield/internal/report"
)

const (
	ID       = "secrets"
	Name     = "Secrets & Access"
	Icon     = "\U0001f510"
	MaxScore = 15
)

var secretPatterns = []struct {
	Regex *regexp.Regexp
	Type  string
}{
	{regexp.MustCompile(`(?i)(api[_-]?key|apikey)\s*[=:]\s*["']?[a-zA-Z0-9_\-]{20,}`), "API key"},
	{regexp.MustCompile(`(?i)(secret|password|passwd|pwd)\s*[=:]\s*["']?[^\s"']{8,}`), "Password/Secret"},
	{regexp.MustCompile(`(?i)(token)\s*[=:]\s*["']?[a-zA-Z0-9_\-]{20,}`), "Token"},
	{regexp.MustCompile(`sk-[a-zA-Z0-9]{32,}`), "OpenAI API key"},
	{regexp.MustCompile(`sk-ant-[a-zA-Z0-9\-]{32,}`), "Anthropic API key"},
	{regexp.MustCompile(`(?i)postgres(?:ql)?://[^\s"']+`), "Database connection string"},
	{regexp.MustCompile(`(?i)mysql://[^\s"']+`), "Database connection string"},
	{regexp.MustCompile(`(?i)mongodb(\+srv)?://[^\s"']+`), "Database connection string"},
	{regexp.MustCompile(`(?i)(aws_access_key_id|aws_secret_access_key)\s*[=:]\s*[^\s"']+`), "AWS credential"},
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), "AWS access key ID"},
	{regexp.MustCompile(`-----BEGIN (RSA |EC |DSA )?PRIVATE KEY-----`), "Private key"},
}

var envVarPatterns = []*regexp.Regexp{
	regexp.MustCompile(`os\.environ\.get\(`),
	regexp.MustCompile(`os\.getenv\(`),
	regexp.MustCompile(`process\.env\.`),
}

var secretManagerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`dotenv`),
	regexp.MustCompile(`vault`),
	regexp.MustCompile(`secret_?manager`),
	regexp.MustCompile(`key_?vault`),
}

var codeExts = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {},
	".yaml": {}, ".yml": {}, ".toml": {}, ".json": {},
}

var sensitiveFiles = map[string]struct{}{
	".env": {}, ".env.local": {}, ".env.production": {}, ".env.staging": {},
}

// Run scans for hard-coded secrets, env-file exposure, and configuration
// hygiene. Penalty check: starts at MaxScore and subtracts.
func Run(t *checks.Target) report.CheckResult {
	score := MaxScore
	var findings []report.Finding

	var secretLocs []checks.Location
	var secretTypes []string
	usesEnvVars := false
	usesSecretManager := false

	for _, f := range t.Files {
		if !checks.HasExt(f, codeExts) {
			continue
		}
		base := filepath.Base(f)
		if base == ".env.example" || base == ".env.template" {
			continue
		}
		content, ok := t.Read(f)
		if !ok {
			continue
		}

		for _, p := range secretPatterns {
			for _, m := range p.Regex.FindAllStringIndex(content, -1) {
				secretLocs = append(secretLocs, checks.Location{Path: t.Rel(f), Line: checks.LineAt(content, m[0])})
				secretTypes = append(secretTypes, p.Type)
			}
		}
		for _, p := range envVarPatterns {
			if p.MatchString(content) {
				usesEnvVars = true
			}
		}
		for _, p := range secretManagerPatterns {
			if p.MatchString(content) {
				usesSecretManager = true
			}
		}
	}

	if len(secretLocs) > 0 {
		score -= 5
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    "Potential secrets found in code",
			Detail: fmt.Sprintf("Found %d potential secret(s) (%s) in: %s",
				len(secretLocs),
				strings.Join(checks.Dedupe(secretTypes), ", "),
				checks.FormatLocations(secretLocs, 5)),
			Fix:      "Move secrets to environment variables. Use a secrets manager for production.",
			Articles: []string{"GDPR Art. 32", "EU AI Act Art. 15"},
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "No hard-coded secrets detected",
			Detail:   "No credential, key, or connection-string patterns matched in code or config files.",
		})
	}

	gitignoreContent, gitignoreExists := t.Read(filepath.Join(t.Root, ".gitignore"))

	var envFiles []string
	for _, f := range t.Files {
		if _, ok := sensitiveFiles[filepath.Base(f)]; ok {
			envFiles = append(envFiles, filepath.Base(f))
		}
	}
	envInGitignore := strings.Contains(gitignoreContent, ".env")

	if len(envFiles) > 0 && !envInGitignore {
		score -= 4
		findings = append(findings, report.Finding{
			Severity: report.SeverityCritical,
			Category: ID,
			Title:    ".env file not in .gitignore",
			Detail:   fmt.Sprintf("Found %s but .env is not in .gitignore.", strings.Join(envFiles, ", ")),
			Fix:      "Add .env to .gitignore immediately. Check git history for previously committed secrets.",
			Articles: []string{"GDPR Art. 32"},
		})
	} else if envInGitignore {
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    ".gitignore covers secret files",
			Detail:   ".env is listed in .gitignore.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "No exposed .env files",
			Detail:   "No .env files found in the scanned tree.",
		})
	}

	if !usesEnvVars {
		score -= 3
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No environment variable usage detected",
			Detail:   "No patterns for os.environ, os.getenv, or process.env found.",
			Fix:      "Use environment variables for all configuration secrets.",
			Articles: []string{"GDPR Art. 32"},
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Environment variable usage detected",
			Detail:   "Configuration secrets are read from the environment.",
		})
	}

	if usesSecretManager {
		findings = append(findings, report.Finding{
			Severity: report.SeverityPass,
			Category: ID,
			Title:    "Secret management pattern detected",
			Detail:   "Found usage of vault, secret manager, or similar.",
		})
	} else {
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No secret management pattern detected",
			Detail:   "No vault, secret manager, or dotenv usage found.",
			Fix:      "Load secrets through dotenv or a secrets manager rather than inline configuration.",
		})
	}

	if !gitignoreExists {
		score -= 3
		findings = append(findings, report.Finding{
			Severity: report.SeverityWarning,
			Category: ID,
			Title:    "No .gitignore file found",
			Detail:   "Project has no .gitignore, increasing risk of accidental secret exposure.",
			Fix:      "Add a .gitignore file covering .env, credentials, and build artifacts.",
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
