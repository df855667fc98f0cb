package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vovakirdan/tui-sokoban/internal/level/formats"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports level files that change under a directory.
// Bursts of events for the same file within the debounce window collapse
// into one notification.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan string
	errors chan error
	done   chan struct{}
	once   sync.Once
}

// NewWatcher starts watching dir (not recursively).
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("catalog: cannot watch %s: %w", dir, err)
	}

	w := &Watcher{
		fs:     fw,
		events: make(chan string, 16),
		errors: make(chan error, 1),
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Events delivers paths of changed level files. Closed after Close.
func (w *Watcher) Events() <-chan string { return w.events }

// Errors delivers watcher failures. Closed after Close.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Poll drains pending change notifications without blocking.
func (w *Watcher) Poll() []string {
	var changed []string
	for {
		select {
		case path, ok := <-w.events:
			if !ok {
				return changed
			}
			changed = append(changed, path)
		default:
			return changed
		}
	}
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.errors)
	defer close(w.events)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !formats.IsSupported(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[event.Name] = now

			select {
			case w.events <- event.Name:
			case <-w.done:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}
