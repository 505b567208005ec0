// Package watcher monitors a content tree and invalidates the repository cache on changes.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/supernalintelligence/sitegen/internal/content"
)

const debounceDelay = 2 * time.Second

// Watch starts watching the repository's content root and invalidates the
// repository after a quiet period following file changes. It blocks until
// the watcher's event channel closes or an unrecoverable error occurs.
func Watch(repo *content.Repository, skipDirs map[string]bool) error {
	root := repo.Root()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dirs := walkDirs(root, skipDirs)
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			fmt.Fprintf(os.Stderr, "  [WARN] Could not watch %s: %v\n", d, err)
		}
	}

	fmt.Fprintf(os.Stderr, "Watching %d directories in %s\n", len(dirs), root)

	// Debounce: collect changes over a window, then invalidate once.
	var (
		mu      sync.Mutex
		changed int
		timer   *time.Timer
	)

	flush := func() {
		mu.Lock()
		n := changed
		changed = 0
		mu.Unlock()

		if n == 0 {
			return
		}
		fmt.Fprintf(os.Stderr, "  %d change(s) detected, refreshing content...\n", n)
		repo.Invalidate()
	}

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !relevant(event.Name) {
				// New directories need to join the watch set so files
				// created inside them are seen.
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if !skipDirs[filepath.Base(event.Name)] {
							if err := w.Add(event.Name); err != nil {
								fmt.Fprintf(os.Stderr, "  [WARN] Could not watch %s: %v\n", event.Name, err)
							}
						}
					}
				}
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				mu.Lock()
				changed++
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounceDelay, flush)
				mu.Unlock()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "  [WARN] Watch error: %v\n", err)
		}
	}
}

// relevant reports whether a change to the named file affects rendered content.
func relevant(name string) bool {
	base := filepath.Base(name)
	if base == ".pages" || base == "site.yaml" {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx", ".markdown":
		return true
	}
	return false
}

func walkDirs(root string, skipDirs map[string]bool) []string {
	var dirs []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs
}
