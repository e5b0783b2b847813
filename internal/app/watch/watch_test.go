package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	if _, err := New(filepath.Join(dir, "missing.txt")); !errors.Is(err, ErrPathNotExist) {
		t.Errorf("missing file: err = %v, want ErrPathNotExist", err)
	}
	if _, err := New(dir); !errors.Is(err, ErrIsDirectory) {
		t.Errorf("directory: err = %v, want ErrIsDirectory", err)
	}

	path := filepath.Join(dir, "in.txt")
	writeFile(t, path, "x")
	w, err := New(path, WithDelay(time.Second))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.Path() != path || w.delay != time.Second {
		t.Errorf("watcher = %+v", w)
	}
}

// startWatcher runs w in the background and reports each onChange call.
func startWatcher(t *testing.T, w *Watcher) <-chan struct{} {
	t.Helper()
	calls := make(chan struct{}, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls <- struct{}{}
			return nil
		})
	}()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run: %v", err)
		}
	})

	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("no initial run")
	}
	return calls
}

func TestWatcher_RerunsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	writeFile(t, path, "one")

	w, err := New(path, WithDelay(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	calls := startWatcher(t, w)

	// Give the watcher time to register before writing
	time.Sleep(50 * time.Millisecond)
	writeFile(t, path, "two")

	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("write did not trigger a run")
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	writeFile(t, path, "one")

	w, err := New(path, WithDelay(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	calls := startWatcher(t, w)

	time.Sleep(50 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "other.txt"), "noise")

	select {
	case <-calls:
		t.Error("sibling write triggered a run")
	case <-time.After(200 * time.Millisecond):
	}
	if w.Runs() != 1 {
		t.Errorf("Runs() = %d, want 1", w.Runs())
	}
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	writeFile(t, path, "one")

	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(context.Context) error { return errors.New("logged") }) }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
