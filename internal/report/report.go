package report

type Severity string

const (
	SeverityPass     Severity = "pass"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Finding is one reported observation. It is built once by a check and
// never mutated afterwards.
type Finding struct {
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Detail   string   `json:"detail"`
	Fix      string   `json:"fix,omitempty"`
	Articles []string `json:"articles,omitempty"`
}

// CheckResult is the bounded outcome of a single check module.
// Score is clamped to [0, MaxScore] by the check before return.
type CheckResult struct {
	Name     string    `json:"name"`
	Icon     string    `json:"icon"`
	Score    int       `json:"score"`
	MaxScore int       `json:"max_score"`
	Findings []Finding `json:"findings"`
}

type Summary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Critical int `json:"critical"`
}

// ScanResult aggregates the checks selected by one framework over one
// project tree. Built fresh per invocation, never persisted.
type ScanResult struct {
	Project   string        `json:"project"`
	Framework string        `json:"framework"`
	Score     int           `json:"score"`
	MaxScore  int           `json:"max_score"`
	Pct       int           `json:"pct"`
	Summary   Summary       `json:"summary"`
	Checks    []CheckResult `json:"checks"`
}
