// Package config loads the optional per-project scan policy.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PolicyFile is looked up in the scanned project root.
const PolicyFile = ".agent-shield.yaml"

// Policy carries the optional knobs a project may set. Every field
// defaults to the built-in behavior; a missing or malformed policy file
// is never an error.
type Policy struct {
	// Threshold is the pass/fail percentage gate (default 70).
	Threshold int `yaml:"threshold"`
	// Framework is the default framework key when no flag is given.
	Framework string `yaml:"framework"`
	// Format is the default output format when no flag is given.
	Format string `yaml:"format"`
	// Exclude adds directory names to the collector deny-list.
	Exclude []string `yaml:"exclude"`
}

func Default() Policy {
	return Policy{
		Threshold: 70,
		Framework: "all",
		Format:    "text",
	}
}

// Load reads PolicyFile from root. Unknown or out-of-range values fall
// back to their defaults field by field.
func Load(root string) Policy {
	p := Default()

	data, err := os.ReadFile(filepath.Join(root, PolicyFile))
	if err != nil {
		return p
	}

	var raw Policy
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return p
	}

	if raw.Threshold > 0 && raw.Threshold <= 100 {
		p.Threshold = raw.Threshold
	}
	if raw.Framework != "" {
		p.Framework = raw.Framework
	}
	switch raw.Format {
	case "text", "json", "markdown":
		p.Format = raw.Format
	}
	p.Exclude = raw.Exclude

	return p
}
