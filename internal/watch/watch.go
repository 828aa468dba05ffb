// Package watch monitors a drop folder for freshly sliced G-code files so
// an estimate can be prepared without a manual upload.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultSettle is how long to wait after a create event before handing
// the file over, so the slicer finishes writing it first.
const defaultSettle = 500 * time.Millisecond

// Handler is invoked with the path of each new G-code file.
type Handler func(path string)

// Watcher reports new .gcode files appearing in a directory.
type Watcher struct {
	dir     string
	settle  time.Duration
	handler Handler
	fsw     *fsnotify.Watcher
}

// New creates a watcher for dir. settle <= 0 uses a default write-settle
// delay.
func New(dir string, settle time.Duration, handler Handler) (*Watcher, error) {
	if settle <= 0 {
		settle = defaultSettle
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{dir: dir, settle: settle, handler: handler, fsw: fsw}, nil
}

// Run blocks delivering events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !isGcodeCreate(event) {
				continue
			}
			// Give the writer time to finish before reading.
			time.Sleep(w.settle)
			w.handler(event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error on %s: %v", w.dir, err)
		}
	}
}

func isGcodeCreate(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create == 0 {
		return false
	}
	return strings.EqualFold(filepath.Ext(event.Name), ".gcode")
}
