// Package watcher reports debounced file changes so the CLI can regenerate
// outputs when a build description is edited.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/conneroisu/planwriter/internal/logging"
)

// FileWatcher watches for file changes with debouncing
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	filters   []FileFilter
	handlers  []ChangeHandler
	logger    logging.Logger
	mutex     sync.RWMutex
}

// ChangeEvent represents a file change event
type ChangeEvent struct {
	Type    EventType
	Path    string
	ModTime time.Time
	Size    int64
}

// EventType represents the type of file change
type EventType int

const (
	EventTypeCreated EventType = iota
	EventTypeModified
	EventTypeDeleted
	EventTypeRenamed
)

// String returns the string representation of the EventType
func (e EventType) String() string {
	switch e {
	case EventTypeCreated:
		return "created"
	case EventTypeModified:
		return "modified"
	case EventTypeDeleted:
		return "deleted"
	case EventTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileFilter determines if a file should be reported
type FileFilter func(path string) bool

// ChangeHandler handles a batch of debounced change events
type ChangeHandler func(events []ChangeEvent) error

// Debouncer groups rapid file changes together
type Debouncer struct {
	delay   time.Duration
	events  chan ChangeEvent
	output  chan []ChangeEvent
	timer   *time.Timer
	pending []ChangeEvent
	mutex   sync.Mutex
}

// NewDebouncer creates a debouncer that emits a batch once no event has
// arrived for delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:   delay,
		events:  make(chan ChangeEvent, 100),
		output:  make(chan []ChangeEvent, 10),
		pending: make([]ChangeEvent, 0),
	}
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounceDelay time.Duration, logger logging.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}

	return &FileWatcher{
		watcher:   w,
		debouncer: NewDebouncer(debounceDelay),
		filters:   make([]FileFilter, 0),
		handlers:  make([]ChangeHandler, 0),
		logger:    logger.WithComponent("watcher"),
	}, nil
}

// AddFilter adds a file filter
func (fw *FileWatcher) AddFilter(filter FileFilter) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.filters = append(fw.filters, filter)
}

// AddHandler adds a change handler
func (fw *FileWatcher) AddHandler(handler ChangeHandler) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.handlers = append(fw.handlers, handler)
}

// AddPath adds a directory (or file) to watch
func (fw *FileWatcher) AddPath(path string) error {
	return fw.watcher.Add(filepath.Clean(path))
}

// WatchFile watches a single file. Editors often replace files by rename,
// so the parent directory is watched and events are filtered to path.
func (fw *FileWatcher) WatchFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("getting absolute path: %w", err)
	}
	fw.AddFilter(PathFilter(abs))
	return fw.AddPath(filepath.Dir(abs))
}

// Start starts the file watcher
func (fw *FileWatcher) Start(ctx context.Context) error {
	go fw.debouncer.start(ctx)
	go fw.processEvents(ctx)
	go fw.watchLoop(ctx)

	return nil
}

// Stop stops the file watcher and cleans up resources
func (fw *FileWatcher) Stop() error {
	fw.debouncer.stop()
	return fw.watcher.Close()
}

func (fw *FileWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleFsnotifyEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn(ctx, err, "File watcher error")
		}
	}
}

func (fw *FileWatcher) handleFsnotifyEvent(event fsnotify.Event) {
	if !fw.accepts(event.Name) {
		return
	}
	fw.debouncer.submit(toChangeEvent(event))
}

func (fw *FileWatcher) accepts(path string) bool {
	fw.mutex.RLock()
	defer fw.mutex.RUnlock()
	for _, filter := range fw.filters {
		if !filter(path) {
			return false
		}
	}
	return true
}

func toChangeEvent(event fsnotify.Event) ChangeEvent {
	var modTime time.Time
	var size int64
	if info, err := os.Stat(event.Name); err == nil {
		modTime = info.ModTime()
		size = info.Size()
	}

	var eventType EventType
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		eventType = EventTypeCreated
	case event.Op&fsnotify.Write == fsnotify.Write:
		eventType = EventTypeModified
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		eventType = EventTypeDeleted
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		eventType = EventTypeRenamed
	default:
		eventType = EventTypeModified
	}

	return ChangeEvent{
		Type:    eventType,
		Path:    event.Name,
		ModTime: modTime,
		Size:    size,
	}
}

func (fw *FileWatcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case events := <-fw.debouncer.output:
			fw.mutex.RLock()
			handlers := fw.handlers
			fw.mutex.RUnlock()

			for _, handler := range handlers {
				if err := handler(events); err != nil {
					fw.logger.Error(ctx, err, "File watcher handler error")
				}
			}
		}
	}
}

// Output returns the channel debounced batches are delivered on.
func (d *Debouncer) Output() <-chan []ChangeEvent {
	return d.output
}

func (d *Debouncer) start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.events:
			d.add(event)
		}
	}
}

// submit queues an event without blocking; events are dropped when the
// queue is full.
func (d *Debouncer) submit(event ChangeEvent) {
	select {
	case d.events <- event:
	default:
	}
}

func (d *Debouncer) add(event ChangeEvent) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.pending = append(d.pending, event)

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *Debouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.pending) == 0 {
		return
	}

	// Last event per path wins
	eventMap := make(map[string]ChangeEvent, len(d.pending))
	for _, event := range d.pending {
		eventMap[event.Path] = event
	}

	events := make([]ChangeEvent, 0, len(eventMap))
	for _, event := range eventMap {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })

	select {
	case d.output <- events:
	default:
	}

	d.pending = d.pending[:0]
}

// PathFilter accepts only the given absolute paths.
func PathFilter(paths ...string) FileFilter {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[filepath.Clean(p)] = true
	}
	return func(path string) bool {
		abs, err := filepath.Abs(path)
		if err != nil {
			return false
		}
		return set[abs]
	}
}
