package preset

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/magmavr/icegen/core"
)

/**
 * @brief Watches preset files and reports when one is rewritten, so a
 * preview loop can regenerate with the new parameters. Determinism of
 * the generator guarantees the refreshed preview matches what a later
 * commit with the same seed produces.
 */
type Watcher struct {
	files map[string]struct{}

	mutex sync.Mutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	events   chan string
	errors   chan error
}

func NewWatcher() (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		files:    make(map[string]struct{}),
		fsnotify: fsWatch,
		events:   make(chan string),
		errors:   make(chan error),
		done:     make(chan struct{}),
	}
	go w.start()
	return w, nil
}

// Watch starts watching the named file. The parent directory is what
// fsnotify actually watches: editors typically replace files on save,
// and a watch on the old inode would go quiet after the first write.
func (w *Watcher) Watch(path string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.isClosed {
		return errors.New("watcher instance already closed")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.files[abs] = struct{}{}
	return w.fsnotify.Add(filepath.Dir(abs))
}

// Events reports the paths of watched files that changed.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Errors reports watcher failures.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.isClosed {
		return nil
	}
	w.isClosed = true
	close(w.done)
	return nil
}

func (w *Watcher) start() {
	for {
		select {

		case e := <-w.fsnotify.Events:
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(e.Name)
			if err != nil {
				continue
			}
			w.mutex.Lock()
			_, watched := w.files[abs]
			w.mutex.Unlock()
			if !watched {
				continue
			}
			select {
			case w.events <- abs:
			case <-w.done:
				w.shutdown()
				return
			}

		case e := <-w.fsnotify.Errors:
			core.LogError(e.Error())
			select {
			case w.errors <- e:
			case <-w.done:
				w.shutdown()
				return
			}

		case <-w.done:
			w.shutdown()
			return
		}
	}
}

func (w *Watcher) shutdown() {
	w.fsnotify.Close()
	close(w.events)
	close(w.errors)
}
