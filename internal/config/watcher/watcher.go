// Package watcher re-parses a config file whenever it, or a file it
// includes, changes on disk.
//
// The watcher subscribes to the directories holding those files rather
// than the files themselves, so editors that save by renaming a new file
// into place are still seen. Bursts of events are coalesced: a reload runs
// once the files have been quiet for the debounce delay.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/keyrc/internal/logging"
	"github.com/dshills/keyrc/internal/rc"
)

// Errors returned by the watcher.
var (
	// ErrWatcherClosed indicates use of a closed watcher.
	ErrWatcherClosed = errors.New("watcher closed")

	// ErrAlreadyRunning indicates a second concurrent call to Run.
	ErrAlreadyRunning = errors.New("watcher already running")
)

// Op describes what happened to a file. Coalesced events combine ops.
type Op uint8

const (
	// OpCreate indicates a file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file was deleted.
	OpRemove
	// OpRename indicates a file was renamed away.
	OpRename
)

// Has reports whether op includes o.
func (op Op) Has(o Op) bool {
	return op&o != 0
}

// String returns the operation names joined by "|".
func (op Op) String() string {
	var names []string
	if op.Has(OpCreate) {
		names = append(names, "create")
	}
	if op.Has(OpWrite) {
		names = append(names, "write")
	}
	if op.Has(OpRemove) {
		names = append(names, "remove")
	}
	if op.Has(OpRename) {
		names = append(names, "rename")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Event represents a change to one watched file.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Op

	// Time is when the last change was seen.
	Time time.Time
}

// Reload is passed to handlers after each re-parse.
type Reload struct {
	// Result is the outcome of parsing the root file again.
	Result *rc.Result

	// Events are the changes that caused the reload, sorted by path.
	Events []Event

	// Time is when the reload ran.
	Time time.Time
}

// Handler is called after the config has been re-parsed.
type Handler func(Reload)

// ParseFunc parses the config file at path. A Parser's ParseFile method
// satisfies it. The watcher never runs two calls at once, so a ParseFunc
// need not be safe for concurrent use.
type ParseFunc func(path string) *rc.Result

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long files must be quiet before a reload.
// Zero reloads on every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l.WithComponent("watcher")
		}
	}
}

// Watcher monitors a config file and its includes.
type Watcher struct {
	mu sync.RWMutex

	// parseMu serializes parse calls from Load and reloads.
	parseMu sync.Mutex

	// root is the absolute path of the config file.
	root  string
	parse ParseFunc
	fsw   *fsnotify.Watcher

	// files are the absolute paths whose changes trigger a reload.
	files map[string]bool
	// dirs are the directories subscribed to.
	dirs map[string]bool

	handlers []Handler
	last     *rc.Result

	debounce time.Duration
	logger   *logging.Logger

	running bool
	closed  bool
}

// New creates a watcher for the config file at path. Nothing is watched
// until Load or Run is called.
func New(path string, parse ParseFunc, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:     abs,
		parse:    parse,
		fsw:      fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		debounce: 100 * time.Millisecond,
		logger:   logging.NullLogger,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// OnReload registers a handler for reloads.
func (w *Watcher) OnReload(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Load parses the config file and watches every file the parse read.
// Failing to watch a directory is reported but the result is still
// returned. Load may be called while Run is reloading; the parses run
// one after the other.
func (w *Watcher) Load() (*rc.Result, error) {
	w.mu.RLock()
	closed := w.closed
	w.mu.RUnlock()
	if closed {
		return nil, ErrWatcherClosed
	}

	w.parseMu.Lock()
	defer w.parseMu.Unlock()
	result := w.parse(w.root)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.last = result
	return result, w.syncLocked(result.Files)
}

// syncLocked makes the watched set the root file plus files.
// Caller must hold the write lock.
func (w *Watcher) syncLocked(files []string) error {
	wantFiles := map[string]bool{w.root: true}
	for _, f := range files {
		wantFiles[filepath.Clean(f)] = true
	}

	wantDirs := make(map[string]bool)
	for f := range wantFiles {
		wantDirs[filepath.Dir(f)] = true
	}

	var errs []error
	for dir := range wantDirs {
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			w.logger.WithField("dir", dir).Warn("cannot watch: %v", err)
			errs = append(errs, err)
			delete(wantDirs, dir)
			continue
		}
		w.logger.WithField("dir", dir).Debug("watching")
	}
	for dir := range w.dirs {
		if !wantDirs[dir] {
			_ = w.fsw.Remove(dir)
		}
	}

	w.files = wantFiles
	w.dirs = wantDirs
	return errors.Join(errs...)
}

// Run watches for changes until ctx is done, re-parsing the config and
// calling the handlers after each burst of changes. It calls Load first
// if that has not happened yet. Run returns ctx.Err() on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	w.running = true
	loaded := w.last != nil
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	if !loaded {
		if _, err := w.Load(); err != nil {
			w.logger.Warn("initial load: %v", err)
		}
	}

	pending := make(map[string]*Event)
	var quiet <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if !w.isWatched(fsEvent.Name) || convertOp(fsEvent.Op) == 0 {
				continue
			}
			w.queue(pending, fsEvent)
			if w.debounce == 0 {
				w.reload(pending)
				pending = make(map[string]*Event)
				continue
			}
			quiet = time.After(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			w.logger.Warn("watch error: %v", err)

		case <-quiet:
			quiet = nil
			w.reload(pending)
			pending = make(map[string]*Event)
		}
	}
}

func (w *Watcher) isWatched(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[filepath.Clean(path)]
}

// queue coalesces an fsnotify event into pending.
func (w *Watcher) queue(pending map[string]*Event, fsEvent fsnotify.Event) {
	path := filepath.Clean(fsEvent.Name)
	op := convertOp(fsEvent.Op)
	if p, ok := pending[path]; ok {
		p.Op |= op
		p.Time = time.Now()
		return
	}
	pending[path] = &Event{Path: path, Op: op, Time: time.Now()}
}

// reload re-parses the config and notifies the handlers.
func (w *Watcher) reload(pending map[string]*Event) {
	events := make([]Event, 0, len(pending))
	for _, e := range pending {
		events = append(events, *e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })

	result, err := w.Load()
	if err != nil && result == nil {
		return
	}
	if err != nil {
		w.logger.Warn("resync watches: %v", err)
	}
	w.logger.Info("reloaded %s: %d commands, %d errors", w.root, len(result.Commands), len(result.Errors))

	w.emit(Reload{Result: result, Events: events, Time: time.Now()})
}

// emit calls all handlers with the reload.
// Handlers are called with panic recovery to prevent a panicking handler
// from stopping the watcher.
func (w *Watcher) emit(r Reload) {
	w.mu.RLock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	for _, handler := range handlers {
		w.safeCallHandler(handler, r)
	}
}

func (w *Watcher) safeCallHandler(handler Handler, r Reload) {
	defer func() {
		if p := recover(); p != nil {
			w.logger.Error("reload handler panicked: %v", p)
		}
	}()
	handler(r)
}

// Result returns the outcome of the latest parse, or nil before the
// first one.
func (w *Watcher) Result() *rc.Result {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.last
}

// WatchedFiles returns the files whose changes trigger a reload, sorted.
func (w *Watcher) WatchedFiles() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// Close stops watching. A running Run returns ErrWatcherClosed.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsw.Close()
}

// convertOp converts fsnotify.Op to watcher.Op.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
