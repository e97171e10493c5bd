package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Result is the outcome of re-validating a watched system file.
type Result struct {
	Path   string
	System *System
	Err    error
}

// Watcher re-validates a system file whenever it changes on disk. It serves
// editing workflows only; a running simulation never reloads its system.
type Watcher struct {
	Path     string
	Results  <-chan Result // Read-only external channel
	Debounce time.Duration

	results chan Result // Internal write channel
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a new watcher for the system file at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Result, 4)
	return &Watcher{
		Path:     abs,
		Results:  ch,
		Debounce: 100 * time.Millisecond,
		results:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching. The parent directory is watched so that editors
// replacing the file by rename are still seen.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and the results channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.results)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.Debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case now := <-ticker.C:
			if !pending.IsZero() && now.Sub(pending) >= w.Debounce {
				pending = time.Time{}
				w.emit()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

func (w *Watcher) emit() {
	res := Result{Path: w.Path}

	f, err := ParseFile(w.Path)
	if err == nil {
		res.System, err = Validate(f)
	}
	res.Err = err

	select {
	case w.results <- res:
	default:
		// Drop the result when the reader is behind.
	}
}
