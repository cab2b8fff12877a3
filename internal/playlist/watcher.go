package playlist

import (
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// OnChangeFunc is a callback invoked when the playlist changes.
// It receives the reloaded list of URIs.
type OnChangeFunc func(uris []string)

// LoadFunc reloads a playlist source.
type LoadFunc func(source string) ([]string, error)

// Watcher monitors a playlist file or a media directory and reloads it
// whenever the file system reports a change.
type Watcher struct {
	mu       sync.RWMutex
	source   string
	dir      string
	isDir    bool
	uris     []string
	load     LoadFunc
	watcher  *fsnotify.Watcher
	onChange OnChangeFunc
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a Watcher for source using load to read it.
// A playlist file is watched through its parent directory so editors that
// save by renaming a temporary file over it are still noticed.
func NewWatcher(source string, load LoadFunc, onChange OnChangeFunc) (*Watcher, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, err
	}
	// Reloads must build the same URIs as Resolve, which follows symlinks.
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		source:   abs,
		dir:      abs,
		isDir:    info.IsDir(),
		load:     load,
		watcher:  fw,
		onChange: onChange,
		stopCh:   make(chan struct{}),
	}
	if !w.isDir {
		w.dir = filepath.Dir(abs)
	}

	// Perform initial load before starting the watch loop.
	w.reload()

	return w, nil
}

// reload re-reads the source and reports whether the URI list changed.
func (w *Watcher) reload() bool {
	uris, err := w.load(w.source)
	if err != nil {
		log.Printf("[watcher] reload error: %v", err)
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if slices.Equal(w.uris, uris) {
		return false
	}
	w.uris = uris
	return true
}

// URIs returns the most recently loaded list.
func (w *Watcher) URIs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.uris)
}

// Start begins watching for changes. It blocks until Stop() is called or
// the watcher encounters a fatal error.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}

	log.Printf("[watcher] monitoring: %s", w.source)

	for {
		select {
		case <-w.stopCh:
			log.Println("[watcher] stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.isRelevant(event) {
				continue
			}
			log.Printf("[watcher] event: %s %s", event.Op, event.Name)
			if !w.reload() {
				continue
			}
			uris := w.URIs()
			if len(uris) == 0 {
				log.Printf("[watcher] %s is now empty, keeping current playlist", w.source)
				continue
			}
			if w.onChange != nil {
				w.onChange(uris)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

// Stop halts the watcher loop and releases the fsnotify resources.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
	})
}

// isRelevant filters for events that could change the playlist contents.
// For a playlist file only events on that file count.
func (w *Watcher) isRelevant(e fsnotify.Event) bool {
	if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if w.isDir {
		return true
	}
	return filepath.Clean(e.Name) == w.source
}
