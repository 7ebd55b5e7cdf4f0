package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dshills/keyrc/internal/rc"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// setup writes main.rc including colors.rc and returns a loaded watcher.
func setup(t *testing.T, opts ...Option) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "colors.rc"), "set theme = dark\n")
	writeFile(t, filepath.Join(dir, "main.rc"), "include colors.rc\nset size = 12\n")

	p := rc.New[struct{}](nil)
	w, err := New(filepath.Join(dir, "main.rc"), p.ParseFile, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })

	if _, err := w.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return w, dir
}

// run starts w in the background and returns a channel of reloads.
func run(t *testing.T, w *Watcher) <-chan Reload {
	t.Helper()
	reloads := make(chan Reload, 10)
	w.OnReload(func(r Reload) { reloads <- r })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Run returned %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("Run did not stop after cancel")
		}
	})
	return reloads
}

func waitReload(t *testing.T, reloads <-chan Reload) Reload {
	t.Helper()
	select {
	case r := <-reloads:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
		return Reload{}
	}
}

func TestOp_String(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove | OpRename, "remove|rename"},
		{OpCreate | OpWrite, "create|write"},
		{0, "none"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestNew_WithOptions(t *testing.T) {
	w, err := New("keys.rc", rc.New[struct{}](nil).ParseFile, WithDebounce(50*time.Millisecond), WithLogger(nil))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if w.debounce != 50*time.Millisecond {
		t.Errorf("debounce = %v, want 50ms", w.debounce)
	}
	if !filepath.IsAbs(w.root) {
		t.Errorf("root %q should be absolute", w.root)
	}
	if w.Result() != nil {
		t.Error("Result should be nil before Load")
	}
}

func TestWatcher_LoadWatchesIncludes(t *testing.T) {
	w, dir := setup(t)

	want := []string{filepath.Join(dir, "colors.rc"), filepath.Join(dir, "main.rc")}
	if got := w.WatchedFiles(); !reflect.DeepEqual(got, want) {
		t.Errorf("WatchedFiles() = %v, want %v", got, want)
	}
	if len(w.Result().Commands) != 2 {
		t.Errorf("initial result = %v", w.Result().Commands)
	}
}

func TestWatcher_ReloadOnIncludeChange(t *testing.T) {
	w, dir := setup(t, WithDebounce(50*time.Millisecond))
	reloads := run(t, w)

	colors := filepath.Join(dir, "colors.rc")
	writeFile(t, colors, "set theme = light\n")

	r := waitReload(t, reloads)
	want := rc.SetCommand{Name: "theme", Value: rc.StrValue("light")}
	if len(r.Result.Commands) == 0 || r.Result.Commands[0] != want {
		t.Errorf("reloaded commands = %v, want %v first", r.Result.Commands, want)
	}
	if len(r.Events) != 1 || r.Events[0].Path != colors || !r.Events[0].Op.Has(OpWrite) {
		t.Errorf("events = %+v", r.Events)
	}
}

func TestWatcher_PicksUpNewInclude(t *testing.T) {
	w, dir := setup(t, WithDebounce(20*time.Millisecond))
	reloads := run(t, w)

	extra := filepath.Join(dir, "extra.rc")
	writeFile(t, extra, "set extra = true\n")
	writeFile(t, filepath.Join(dir, "main.rc"), "include colors.rc\ninclude extra.rc\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-reloads:
			if len(r.Result.Commands) == 2 {
				files := w.WatchedFiles()
				if len(files) != 3 || files[1] != extra {
					t.Errorf("WatchedFiles() = %v, want extra.rc included", files)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the reload with extra.rc")
		}
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	w, dir := setup(t, WithDebounce(10*time.Millisecond))
	reloads := run(t, w)

	writeFile(t, filepath.Join(dir, "notes.txt"), "unrelated")

	select {
	case r := <-reloads:
		t.Errorf("unexpected reload: %+v", r.Events)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_HandlerPanicRecovered(t *testing.T) {
	w, dir := setup(t, WithDebounce(0))
	w.OnReload(func(Reload) { panic("boom") })
	reloads := run(t, w)

	writeFile(t, filepath.Join(dir, "main.rc"), "set size = 14\n")
	r := waitReload(t, reloads)
	if r.Result == nil {
		t.Error("later handlers should still run after a panic")
	}
}

func TestWatcher_Closed(t *testing.T) {
	w, _ := setup(t)
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}

	if _, err := w.Load(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Load after Close = %v, want ErrWatcherClosed", err)
	}
	if err := w.Run(context.Background()); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Run after Close = %v, want ErrWatcherClosed", err)
	}
}

func TestWatcher_RunTwice(t *testing.T) {
	w, _ := setup(t)
	run(t, w)

	// Wait until the first Run has marked itself running.
	deadline := time.Now().Add(2 * time.Second)
	for {
		w.mu.RLock()
		running := w.running
		w.mu.RUnlock()
		if running || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := w.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run = %v, want ErrAlreadyRunning", err)
	}
}

func TestWatcher_ParseCallsSerialized(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.rc")
	writeFile(t, path, "set size = 12\n")

	p := rc.New[struct{}](nil)
	var inFlight, overlaps, calls atomic.Int32
	parse := func(path string) *rc.Result {
		if inFlight.Add(1) > 1 {
			overlaps.Add(1)
		}
		defer inFlight.Add(-1)
		calls.Add(1)
		time.Sleep(2 * time.Millisecond)
		return p.ParseFile(path)
	}

	w, err := New(path, parse, WithDebounce(0))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	if _, err := w.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	reloaded := make(chan struct{}, 1)
	w.OnReload(func(Reload) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	tests := []struct {
		name    string
		loaders int
		writes  int
	}{
		{"loads only", 8, 0},
		{"loads during reloads", 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < tt.loaders; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 5; j++ {
						if _, err := w.Load(); err != nil {
							t.Errorf("Load failed: %v", err)
							return
						}
					}
				}()
			}
			for i := 0; i < tt.writes; i++ {
				writeFile(t, path, "set size = 14\n")
				time.Sleep(5 * time.Millisecond)
			}
			wg.Wait()
			if tt.writes > 0 {
				select {
				case <-reloaded:
				case <-time.After(5 * time.Second):
					t.Fatal("timed out waiting for reload")
				}
			}
		})
	}

	if n := overlaps.Load(); n != 0 {
		t.Errorf("%d parse calls overlapped out of %d", n, calls.Load())
	}
}
