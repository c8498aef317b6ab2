package steps

import (
	"os"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/logger"
)

// ListScripts returns the script names in dir, sorted. One-shot companion
// to the Watcher's cached listing.
func ListScripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading steps directory %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// Watcher keeps a cached listing of the scripts in the steps directory,
// refreshed on filesystem events.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher

	mu       sync.RWMutex
	files    []string
	onChange func([]string)
}

// NewWatcher creates a watcher over the steps directory and takes an
// initial listing.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch steps directory %s", dir)
	}

	w := &Watcher{dir: dir, watcher: fw}
	if err := w.Refresh(); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Start begins refreshing the listing on directory changes.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// OnChange registers a callback invoked with the fresh listing after every
// event-driven refresh.
func (w *Watcher) OnChange(fn func(files []string)) {
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0 {
				if err := w.Refresh(); err != nil {
					logger.Logger.Warnw("Steps listing refresh failed",
						logger.FieldPath, w.dir, logger.FieldError, err)
					continue
				}
				w.mu.RLock()
				fn, files := w.onChange, append([]string(nil), w.files...)
				w.mu.RUnlock()
				if fn != nil {
					fn(files)
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Logger.Warnw("Steps watcher error", logger.FieldError, err)
		}
	}
}

// Refresh re-reads the directory listing.
func (w *Watcher) Refresh() error {
	files, err := ListScripts(w.dir)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.files = files
	w.mu.Unlock()
	return nil
}

// List returns the cached script names, sorted.
func (w *Watcher) List() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]string(nil), w.files...)
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
