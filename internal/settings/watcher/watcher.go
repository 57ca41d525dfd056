// Package watcher provides file watching for settings live reload.
//
// The watcher monitors settings files for changes and triggers reload
// callbacks when modifications are detected. Editors commonly write a
// file with several rapid events (truncate, write, rename), so events
// are debounced before handlers run.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event represents a settings file change.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the event occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified or created.
	OpWrite Operation = iota

	// OpRemove indicates the file was deleted or renamed away.
	OpRemove
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// Watcher monitors settings files for changes using fsnotify.
// The parent directory of each file is watched so that files recreated
// by atomic saves (write temp, rename over) keep reporting events.
type Watcher struct {
	mu sync.Mutex

	// Watched file paths (absolute).
	files map[string]bool

	// Watched parent directories.
	dirs map[string]bool

	// Handlers to call on file changes.
	handlers []Handler

	// Debounce window for rapid write bursts.
	debounce time.Duration

	// Pending debounce timers per file.
	pending map[string]*time.Timer

	fsw     *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	started bool
	closed  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a new settings file watcher.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		pending:  make(map[string]*time.Timer),
		debounce: 100 * time.Millisecond,
		fsw:      fsw,
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Watch adds a file to the watch list. The file does not need to exist
// yet; creation is reported as a write.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.files[absPath] = true

	dir := filepath.Dir(absPath)
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}

	return nil
}

// Unwatch removes a file from the watch list.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, absPath)
	return nil
}

// OnChange registers a handler for file change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins delivering events. It is a no-op if already started.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started || w.closed {
		return
	}
	w.started = true

	w.wg.Add(1)
	go w.loop()
}

// Stop shuts down the watcher. It is safe to call Stop multiple times.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	for _, timer := range w.pending {
		timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	_ = w.fsw.Close()
	w.wg.Wait()
}

// loop processes fsnotify events until Stop is called.
func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are not actionable here; the next poll of
			// the settings file surfaces real problems to the caller.
		}
	}
}

// handleFSEvent filters and debounces a raw fsnotify event.
func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	absPath, err := filepath.Abs(fsEvent.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.files[absPath] {
		return
	}

	var op Operation
	switch {
	case fsEvent.Op.Has(fsnotify.Write) || fsEvent.Op.Has(fsnotify.Create):
		op = OpWrite
	case fsEvent.Op.Has(fsnotify.Remove) || fsEvent.Op.Has(fsnotify.Rename):
		op = OpRemove
	default:
		return
	}

	// Collapse bursts: only the last event within the debounce window
	// for a given file is delivered.
	if timer, ok := w.pending[absPath]; ok {
		timer.Stop()
	}
	w.pending[absPath] = time.AfterFunc(w.debounce, func() {
		w.fire(Event{Path: absPath, Op: op, Time: time.Now()})
	})
}

// fire delivers an event to all handlers.
func (w *Watcher) fire(event Event) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	delete(w.pending, event.Path)
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}
