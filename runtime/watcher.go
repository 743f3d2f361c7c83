package runtime

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileWatcher polls the experiment file and scenario tree for changes and
// invokes a callback.
type FileWatcher struct {
	paths      []string
	onChange   func()
	logger     Logger
	interval   time.Duration
	debounce   time.Duration
	mu         sync.Mutex
	lastModMap map[string]time.Time
}

// NewFileWatcher creates a watcher that polls the given files and
// directories every 2s. onChange is called (debounced) when changes are
// detected.
func NewFileWatcher(paths []string, onChange func(), logger Logger) *FileWatcher {
	return &FileWatcher{
		paths:      paths,
		onChange:   onChange,
		logger:     logger,
		interval:   2 * time.Second,
		debounce:   500 * time.Millisecond,
		lastModMap: make(map[string]time.Time),
	}
}

var watchedExtensions = map[string]bool{
	".yaml": true, ".yml": true, ".json": true, ".xml": true, ".net": true,
}

var skippedDirs = map[string]bool{
	".git": true, "__pycache__": true, "build": true, ".convoy-run": true,
}

// Watch starts polling until ctx is cancelled. It blocks.
func (w *FileWatcher) Watch(ctx context.Context) {
	w.mu.Lock()
	w.lastModMap = w.scan()
	w.mu.Unlock()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.detectChanges() {
				w.logger.Info("experiment change detected", nil)
				// Debounce: wait briefly for batched writes
				time.Sleep(w.debounce)
				w.onChange()
			}
		}
	}
}

func (w *FileWatcher) detectChanges() bool {
	current := w.scan()

	w.mu.Lock()
	defer w.mu.Unlock()

	changed := len(current) != len(w.lastModMap)
	if !changed {
		for path, mod := range current {
			if prev, ok := w.lastModMap[path]; !ok || !prev.Equal(mod) {
				changed = true
				break
			}
		}
	}
	w.lastModMap = current
	return changed
}

func (w *FileWatcher) scan() map[string]time.Time {
	mods := make(map[string]time.Time)
	for _, root := range w.paths {
		info, err := os.Stat(root)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			mods[root] = info.ModTime()
			continue
		}
		_ = filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if fi.IsDir() {
				if skippedDirs[fi.Name()] || strings.HasPrefix(fi.Name(), ".") && fi.Name() != "." {
					return filepath.SkipDir
				}
				return nil
			}
			if watchedExtensions[filepath.Ext(path)] {
				mods[path] = fi.ModTime()
			}
			return nil
		})
	}
	return mods
}
