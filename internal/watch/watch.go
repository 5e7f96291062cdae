// Package watch reruns a build whenever the documentation tree or the
// settings file changes, and optionally on a fixed interval.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docmerge/internal/logfields"
)

// Trigger names passed to the build function.
const (
	TriggerStartup  = "startup"
	TriggerChange   = "change"
	TriggerInterval = "interval"
)

// DefaultDebounce collapses editor save bursts into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// BuildFunc runs one full build. Errors are logged and do not stop watching.
type BuildFunc func(ctx context.Context, trigger string) error

// Watcher serializes builds: at most one runs at a time and triggers that
// arrive meanwhile collapse into a single follow-up build.
type Watcher struct {
	build    BuildFunc
	dirs     []string
	files    []string
	exclude  []string
	debounce time.Duration
	interval time.Duration

	triggers chan string
	mu       sync.Mutex
	builds   int
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDirs watches dirs and their visible subdirectories.
func WithDirs(dirs ...string) Option {
	return func(w *Watcher) { w.dirs = append(w.dirs, dirs...) }
}

// WithFiles watches individual files such as the settings document.
func WithFiles(files ...string) Option {
	return func(w *Watcher) {
		for _, f := range files {
			if f != "" {
				w.files = append(w.files, f)
			}
		}
	}
}

// WithExclude ignores events below the given directories (the output dir).
func WithExclude(dirs ...string) Option {
	return func(w *Watcher) { w.exclude = append(w.exclude, dirs...) }
}

// WithDebounce sets the quiet period after a change before rebuilding.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithInterval rebuilds every d in addition to change triggers. Zero disables it.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) { w.interval = d }
}

// New creates a Watcher around build.
func New(build BuildFunc, opts ...Option) *Watcher {
	w := &Watcher{
		build:    build,
		debounce: DefaultDebounce,
		triggers: make(chan string, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	for i, d := range w.dirs {
		w.dirs[i] = absPath(d)
	}
	for i, f := range w.files {
		w.files[i] = absPath(f)
	}
	for i, d := range w.exclude {
		w.exclude[i] = absPath(d)
	}
	return w
}

// Trigger requests a build. It never blocks; a pending request absorbs it.
func (w *Watcher) Trigger(reason string) {
	select {
	case w.triggers <- reason:
	default:
		slog.Debug("Build already pending", logfields.Trigger(reason))
	}
}

// Builds reports how many builds have run.
func (w *Watcher) Builds() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.builds
}

// Run builds once, then watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if cerr := fsw.Close(); cerr != nil {
			slog.Error("Error closing file watcher", logfields.Error(cerr))
		}
	}()

	for _, dir := range w.dirs {
		if err := w.addTree(fsw, dir); err != nil {
			return err
		}
	}
	for _, f := range w.files {
		if err := fsw.Add(filepath.Dir(f)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", filepath.Dir(f), err)
		}
	}

	if w.interval > 0 {
		sched, err := newScheduler(w.interval, w.Trigger)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	slog.Info("Watching for changes",
		slog.Any("dirs", w.dirs),
		slog.Any("files", w.files),
		slog.Duration("debounce", w.debounce),
		slog.Duration("interval", w.interval))

	go w.watchLoop(ctx, fsw)

	w.Trigger(TriggerStartup)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case reason := <-w.triggers:
			w.runBuild(ctx, reason)
		}
	}
}

func (w *Watcher) runBuild(ctx context.Context, reason string) {
	w.mu.Lock()
	w.builds++
	w.mu.Unlock()

	if err := w.build(ctx, reason); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("Build failed", logfields.Trigger(reason), logfields.Error(err))
	}
}

// watchLoop turns filesystem events into debounced triggers.
func (w *Watcher) watchLoop(ctx context.Context, fsw *fsnotify.Watcher) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) && w.underDirs(event.Name) {
				// New directories need their own watch.
				if err := w.addTree(fsw, event.Name); err != nil {
					slog.Warn("Cannot watch new directory", logfields.Path(event.Name), logfields.Error(err))
				}
			}
			slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() { w.Trigger(TriggerChange) })
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

// relevant filters events to markdown files, directories in the tree and the
// watched files.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	name := event.Name
	for _, f := range w.files {
		if name == f {
			return true
		}
	}
	if !w.underDirs(name) || w.excluded(name) || hidden(name) {
		return false
	}
	if strings.EqualFold(filepath.Ext(name), ".md") {
		return true
	}
	// Removed or renamed directories have no extension and can no longer be stat'ed.
	return filepath.Ext(name) == "" && !event.Has(fsnotify.Write)
}

func (w *Watcher) underDirs(name string) bool {
	for _, d := range w.dirs {
		if within(d, name) {
			return true
		}
	}
	return false
}

func (w *Watcher) excluded(name string) bool {
	for _, d := range w.exclude {
		if within(d, name) {
			return true
		}
	}
	return false
}

// addTree watches root and every visible directory below it.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.excluded(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func within(dir, name string) bool {
	rel, err := filepath.Rel(dir, name)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func hidden(name string) bool {
	return strings.HasPrefix(filepath.Base(name), ".")
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
