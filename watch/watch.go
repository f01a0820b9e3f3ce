// Package watch reports changes to the files an import reads.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce drops repeated events for the same file
// arriving closer together than this.
const Debounce = 100 * time.Millisecond

// Watcher emits the cleaned path of a tracked file
// every time it is written, created or replaced.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// New watches the directories holding the files
// and reports changes to the files only.
func New(files ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()

	if err != nil {
		return nil, err
	}

	tracked := map[string]bool{}
	dirs := map[string]bool{}

	for _, file := range files {
		abs, err := filepath.Abs(file)

		if err != nil {
			_ = w.Close()
			return nil, err
		}

		tracked[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		files:   tracked,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()

	return watcher, nil
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	var err error

	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})

	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			name, err := filepath.Abs(event.Name)

			if err != nil || !w.files[name] {
				continue
			}

			now := time.Now()

			if t, ok := last[name]; ok && now.Sub(t) < Debounce {
				continue
			}

			last[name] = now

			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			select {
			case w.Errors <- err:
			default:
			}

		case <-w.closeCh:
			return
		}
	}
}
