// Package watch reruns a scan whenever the project tree changes.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/agentshield/agentshield/internal/collector"
)

// Debounce collapses event bursts (editor saves, git checkouts) into a
// single rescan.
const Debounce = 300 * time.Millisecond

// Run watches root recursively and calls rescan after each settled burst
// of file events, until stop is closed. Hidden and vendor directories are
// not watched; events under them are ignored.
func Run(root string, rescan func(), stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init failed: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, root); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	var timer *time.Timer
	for {
		select {
		case <-stop:
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if skipPath(root, ev.Name) {
				continue
			}
			// New directories need their own watches.
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, ev.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(Debounce, rescan)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && collector.SkipName(filepath.Base(path)) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func skipPath(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return true
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if collector.SkipName(part) {
			return true
		}
	}
	return false
}
