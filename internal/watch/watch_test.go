package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu       sync.Mutex
	triggers []string
}

func (r *recorder) build(_ context.Context, trigger string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers = append(r.triggers, trigger)
	return nil
}

func (r *recorder) seen(trigger string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.triggers {
		if t == trigger {
			return true
		}
	}
	return false
}

func start(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func TestTriggerCoalesces(t *testing.T) {
	w := New(func(context.Context, string) error { return nil })
	w.Trigger("a")
	w.Trigger("b")
	w.Trigger("c")
	require.Len(t, w.triggers, 1)
	assert.Equal(t, "a", <-w.triggers)
}

func TestRunBuildsOnStartupAndChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "guide"), 0o755))

	rec := &recorder{}
	w := New(rec.build, WithDirs(root), WithDebounce(20*time.Millisecond))
	start(t, w)

	require.Eventually(t, func() bool { return rec.seen(TriggerStartup) }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "guide", "intro.md"), []byte("# Intro\n"), 0o644))
	require.Eventually(t, func() bool { return rec.seen(TriggerChange) }, 5*time.Second, 10*time.Millisecond)
}

func TestRunIntervalTrigger(t *testing.T) {
	rec := &recorder{}
	w := New(rec.build, WithDirs(t.TempDir()), WithInterval(50*time.Millisecond))
	start(t, w)

	require.Eventually(t, func() bool { return rec.seen(TriggerInterval) }, 5*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, w.Builds(), 2)
}

func TestRelevant(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	settings := filepath.Join(t.TempDir(), "docmerge.yaml")
	w := New(nil, WithDirs(root), WithFiles(settings), WithExclude(out))

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"markdown write", fsnotify.Event{Name: filepath.Join(root, "a.md"), Op: fsnotify.Write}, true},
		{"settings write", fsnotify.Event{Name: settings, Op: fsnotify.Write}, true},
		{"other extension", fsnotify.Event{Name: filepath.Join(root, "a.png"), Op: fsnotify.Create}, false},
		{"output dir", fsnotify.Event{Name: filepath.Join(out, "index.md"), Op: fsnotify.Create}, false},
		{"hidden file", fsnotify.Event{Name: filepath.Join(root, ".a.md"), Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: filepath.Join(root, "a.md"), Op: fsnotify.Chmod}, false},
		{"removed dir", fsnotify.Event{Name: filepath.Join(root, "guide"), Op: fsnotify.Remove}, true},
		{"outside tree", fsnotify.Event{Name: "/elsewhere/a.md", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}
