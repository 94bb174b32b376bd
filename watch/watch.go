// Package watch implements `spectrum watch`: regenerating the spec
// file whenever a source file under one of the watched paths changes.
// Bursts of edits (an editor's autosave, `gofmt -w` touching several
// files) are coalesced with a debounce timer so one save doesn't
// trigger several back-to-back regenerations.
package watch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zainokta/spectrum/logger"
)

// DefaultDebounce is used when a caller passes a zero debounce.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a set of root paths (recursively) for filesystem
// events and debounces them before calling a regeneration function.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	log      logger.Logger
}

// New creates a Watcher recursively watching every directory under
// each of roots.
func New(roots []string, debounce time.Duration, log logger.Logger) (*Watcher, error) {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{fsw: fsw, debounce: debounce, log: log}
	for _, root := range roots {
		if err := w.addRecursive(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirName := filepath.Base(path)
			if dirName != "." && (dirName[0] == '.' || dirName == "vendor" || dirName == "node_modules") {
				return filepath.SkipDir
			}
			return w.fsw.Add(path)
		}
		return nil
	})
}

// Run blocks, invoking regenerate once per debounce window after the
// last detected change, until Close is called or regenerate returns a
// non-nil error.
func (w *Watcher) Run(regenerate func() error) error {
	var timer *time.Timer
	fire := make(chan struct{})

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !isRelevant(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() { fire <- struct{}{} })

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case <-fire:
			w.log.Info("source changed, regenerating")
			if err := regenerate(); err != nil {
				return err
			}
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return filepath.Ext(event.Name) == ".go"
}
