// Package scanner runs the checks a framework selects and aggregates
// their results into one ScanResult.
package scanner

import (
	"math"

	"github.com/agentshield/agentshield/internal/checks"
	"github.com/agentshield/agentshield/internal/checks/registry"
	"github.com/agentshield/agentshield/internal/collector"
	"github.com/agentshield/agentshield/internal/framework"
	"github.com/agentshield/agentshield/internal/report"
)

// Scanner holds the explicitly-constructed check set so callers (and
// tests) can substitute alternate checks or exclusions.
type Scanner struct {
	Checks []checks.Check
	// Exclude adds directory names to the collector's deny-list.
	Exclude []string
}

func New() *Scanner {
	return &Scanner{Checks: registry.DefaultChecks()}
}

// Run collects the file list once, invokes every check the framework
// includes in registration order, and reduces the results. It is
// side-effect-free beyond reading the file system. The only error is a
// root path that cannot be walked.
func (s *Scanner) Run(root string, fw framework.Framework) (report.ScanResult, error) {
	files, err := collector.Collect(root, s.Exclude)
	if err != nil {
		return report.ScanResult{}, err
	}

	target := &checks.Target{Root: root, Files: files}

	var results []report.CheckResult
	for _, c := range s.Checks {
		if !fw.Includes(c.ID) {
			continue
		}
		results = append(results, c.Run(target))
	}

	score := 0
	maxScore := 0
	var summary report.Summary
	for _, r := range results {
		score += r.Score
		maxScore += r.MaxScore
		for _, f := range r.Findings {
			switch f.Severity {
			case report.SeverityPass:
				summary.Passed++
			case report.SeverityWarning:
				summary.Warnings++
			case report.SeverityCritical:
				summary.Critical++
			}
		}
	}

	pct := 0
	if maxScore > 0 {
		pct = int(math.Round(float64(score) / float64(maxScore) * 100))
	}

	return report.ScanResult{
		Project:   root,
		Framework: fw.Name,
		Score:     score,
		MaxScore:  maxScore,
		Pct:       pct,
		Summary:   summary,
		Checks:    results,
	}, nil
}
