// Package checks defines the contract shared by every governance check
// module: a pure function over a pre-collected file list that yields a
// bounded score and an ordered list of findings.
package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentshield/agentshield/internal/report"
)

// Check describes one registered governance check. Run must be pure with
// respect to shared inputs: it may read the file system but never writes.
type Check struct {
	ID       string
	Name     string
	Icon     string
	MaxScore int
	Run      func(*Target) report.CheckResult
}

// Target carries the project root and the collector's file list into a
// check. The same Target is handed to every check in a scan.
type Target struct {
	Root  string
	Files []string
}

// Read returns the file content as text. Unreadable files report ok=false
// and are skipped by the caller; a read failure never fails a scan.
func (t *Target) Read(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Rel returns path relative to the project root, for display in findings.
func (t *Target) Rel(path string) string {
	rel, err := filepath.Rel(t.Root, path)
	if err != nil {
		return path
	}
	return rel
}

// HasExt reports whether path's extension is in exts.
func HasExt(path string, exts map[string]struct{}) bool {
	_, ok := exts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// LineAt converts a byte offset in content to a 1-based line number by
// counting preceding newlines.
func LineAt(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}

// Clamp bounds score into [0, max] before a check returns it.
func Clamp(score, max int) int {
	if score < 0 {
		return 0
	}
	if score > max {
		return max
	}
	return score
}

// Location is one example match site shown in finding details.
type Location struct {
	Path string
	Line int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.Path, l.Line)
}

// FormatLocations renders up to limit example locations as a comma list.
func FormatLocations(locs []Location, limit int) string {
	if len(locs) > limit {
		locs = locs[:limit]
	}
	parts := make([]string, len(locs))
	for i, l := range locs {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}

// Dedupe returns items with duplicates removed, first occurrence wins.
// Finding details must be stable across runs, so no sorting by map order.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
