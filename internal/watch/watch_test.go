package watch

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// recorder collects callback invocations from the watcher goroutine.
type recorder struct {
	mu    sync.Mutex
	paths []string
	errs  []error
}

func (r *recorder) onFile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return nil
}

func (r *recorder) onError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder) snapshot() ([]string, []error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...), append([]error(nil), r.errs...)
}

func TestWatcher_ReportsGradientFiles(t *testing.T) {
	dir := t.TempDir()
	var rec recorder

	w, err := New(dir, 50*time.Millisecond, rec.onFile, rec.onError)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	w.Start()
	defer w.Stop()

	// Give watcher time to start
	time.Sleep(100 * time.Millisecond)

	grd := filepath.Join(dir, "Metals.GRD")
	if err := os.WriteFile(grd, []byte("gradient"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	time.Sleep(300 * time.Millisecond)

	paths, errs := rec.snapshot()
	if len(paths) != 1 || paths[0] != grd {
		t.Errorf("reported paths = %v, want [%s]", paths, grd)
	}
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestWatcher_DebouncesPerFile(t *testing.T) {
	dir := t.TempDir()
	var rec recorder

	w, err := New(dir, 100*time.Millisecond, rec.onFile, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)

	a := filepath.Join(dir, "a.grd")
	b := filepath.Join(dir, "b.grd")
	// Rapid writes to two files: one callback each.
	for i := 0; i < 5; i++ {
		for _, p := range []string{a, b} {
			if err := os.WriteFile(p, []byte{byte(i)}, 0o644); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}
		}
		time.Sleep(20 * time.Millisecond)
	}

	time.Sleep(300 * time.Millisecond)

	paths, _ := rec.snapshot()
	counts := map[string]int{}
	for _, p := range paths {
		counts[p]++
	}
	if counts[a] != 1 || counts[b] != 1 || len(paths) != 2 {
		t.Errorf("reported paths = %v, want a.grd and b.grd once each", paths)
	}
}

func TestWatcher_CallbackErrors(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	var got atomic.Value

	w, err := New(dir, 20*time.Millisecond,
		func(string) error { return boom },
		func(err error) { got.Store(err) },
	)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "x.grd"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if err, _ := got.Load().(error); !errors.Is(err, boom) {
		t.Errorf("onError got %v, want %v", err, boom)
	}
}

func TestWatcher_StopPreventsCallback(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w, err := New(dir, 50*time.Millisecond, func(string) error {
		calls.Add(1)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	w.Start()
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "late.grd"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop() // idempotent

	time.Sleep(150 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("callbacks after Stop = %d, want 0", n)
	}
}

func TestWatcher_StopBeforeStart(t *testing.T) {
	w, err := New(t.TempDir(), 0, nil, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}
	w.Stop()
	w.Start() // no-op after Stop
	w.Stop()
}

func TestNew_MissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent"), 0, nil, nil); err == nil {
		t.Error("New() on a missing directory should fail")
	}
}

func TestWatcher_SkipsUnchangedContent(t *testing.T) {
	dir := t.TempDir()
	var rec recorder

	w, err := New(dir, 30*time.Millisecond, rec.onFile, rec.onError)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)

	path := filepath.Join(dir, "same.grd")
	for _, content := range []string{"v1", "v1", "v2"} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		time.Sleep(150 * time.Millisecond)
	}

	paths, errs := rec.snapshot()
	if len(paths) != 2 {
		t.Errorf("reported %d times, want 2 (the identical rewrite is skipped)", len(paths))
	}
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}
