// Package framework defines the named regulatory frameworks, each a fixed
// subset of check identifiers.
package framework

// Framework is a static, immutable selection of checks.
type Framework struct {
	Name        string
	Description string
	// Checks lists included check IDs; empty means run everything.
	Checks []string
}

// Includes reports whether the check with the given ID belongs to the
// framework. The empty check list is the run-all sentinel.
func (f Framework) Includes(id string) bool {
	if len(f.Checks) == 0 {
		return true
	}
	for _, c := range f.Checks {
		if c == id {
			return true
		}
	}
	return false
}

var frameworks = map[string]Framework{
	"all": {
		Name:        "all",
		Description: "Run every available check.",
	},
	"eu-ai-act": {
		Name:        "eu-ai-act",
		Description: "EU Artificial Intelligence Act compliance checks.",
		Checks: []string{
			"human_oversight",
			"audit_logging",
			"error_handling",
			"documentation",
			"data_classification",
		},
	},
	"gdpr": {
		Name:        "gdpr",
		Description: "GDPR data-protection focused checks.",
		Checks: []string{
			"secrets",
			"data_classification",
			"audit_logging",
			"documentation",
		},
	},
	"owasp-llm": {
		Name:        "owasp-llm",
		Description: "OWASP Top 10 for LLM Applications.",
		Checks: []string{
			"secrets",
			"error_handling",
			"human_oversight",
			"audit_logging",
		},
	},
	"nist-ai-rmf": {
		Name:        "nist-ai-rmf",
		Description: "NIST AI Risk Management Framework.",
		Checks: []string{
			"human_oversight",
			"audit_logging",
			"error_handling",
			"documentation",
			"data_classification",
			"secrets",
		},
	},
}

// keyOrder fixes the order Keys reports, for stable help text.
var keyOrder = []string{"all", "eu-ai-act", "gdpr", "owasp-llm", "nist-ai-rmf"}

// Get returns the framework with the given name. Unknown names resolve to
// "all" rather than erroring; the CLI validates input, but library callers
// get lenient behavior.
func Get(name string) Framework {
	if f, ok := frameworks[name]; ok {
		return f
	}
	return frameworks["all"]
}

// Keys returns every registered framework key in display order.
func Keys() []string {
	out := make([]string, len(keyOrder))
	copy(out, keyOrder)
	return out
}
