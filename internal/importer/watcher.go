// File system watcher for the import directory. OS-level events trigger a
// debounced catalog import instead of waiting for the next scheduled run.

package importer

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ademenev/booktrack/internal/jobs"
)

// WatcherService watches the import directory and triggers a catalog import
// when seed files are added or changed.
type WatcherService struct {
	ctx           jobs.JobContext
	watcher       *fsnotify.Watcher
	pending       bool
	mu            sync.Mutex
	debounceTimer *time.Timer
	debounceDelay time.Duration
	stopChan      chan struct{}
}

// NewWatcherService creates a new import directory watcher.
func NewWatcherService(ctx jobs.JobContext) *WatcherService {
	return &WatcherService{
		ctx:           ctx,
		debounceDelay: 2 * time.Second, // Wait 2 seconds after last change before importing
		stopChan:      make(chan struct{}),
	}
}

// Start begins watching the import directory for changes.
func (w *WatcherService) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	importPath := w.ctx.Config().Import.Path

	// Watch the import root and any nested directories.
	err = filepath.WalkDir(importPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return err
	}

	log.Printf("File watcher started for import directory: %s", importPath)

	go w.processEvents()

	return nil
}

// Stop stops the file watcher service.
func (w *WatcherService) Stop() error {
	close(w.stopChan)
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *WatcherService) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *WatcherService) handleEvent(event fsnotify.Event) {
	// Chmod events fire when files are merely opened; ignore them.
	if event.Op == fsnotify.Chmod {
		return
	}

	info, err := os.Stat(event.Name)
	isDir := err == nil && info.IsDir()

	// New nested directory: start watching it too.
	if event.Op&fsnotify.Create == fsnotify.Create && isDir {
		w.watcher.Add(event.Name)
		return
	}

	if !isDir && isSeedFile(event.Name) {
		w.scheduleImport()
	}
}

func isSeedFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// scheduleImport resets the debounce timer so a burst of file events results
// in one import run.
func (w *WatcherService) scheduleImport() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.triggerImport)
}

func (w *WatcherService) triggerImport() {
	w.mu.Lock()
	if !w.pending {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.mu.Unlock()

	log.Println("File watcher detected seed file changes, triggering catalog import")
	if err := w.ctx.JobManager().RunJob(JobID, w.ctx); err != nil {
		log.Printf("Catalog import could not start: %v", err)
	}
}
