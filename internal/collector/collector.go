// Package collector walks a project tree and returns the files the check
// modules are allowed to look at.
package collector

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Directory names that never contain project source worth scanning:
// dependency caches, compiled output, virtual environments.
var denyDirs = map[string]struct{}{
	"node_modules": {},
	"__pycache__":  {},
	"venv":         {},
	"env":          {},
	"dist":         {},
	"build":        {},
	"target":       {},
	"vendor":       {},
}

// Collect returns every regular file reachable from root, in walk order,
// excluding any path with a hidden or deny-listed component. Unreadable
// subtrees are skipped, never fatal; only a root-level error propagates.
func Collect(root string, extraExclude []string) ([]string, error) {
	extra := make(map[string]struct{}, len(extraExclude))
	for _, name := range extraExclude {
		extra[name] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // skip unreadable subtrees
		}
		if path == root {
			return nil
		}
		name := d.Name()
		if excluded(name, extra) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func excluded(name string, extra map[string]struct{}) bool {
	if SkipName(name) {
		return true
	}
	_, ok := extra[name]
	return ok
}

// SkipName reports whether a path component is hidden or on the built-in
// deny-list. Shared with the watch mode so both walk the same tree.
func SkipName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := denyDirs[name]
	return ok
}
