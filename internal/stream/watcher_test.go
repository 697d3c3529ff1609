package stream

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"filespool/internal/spool"
)

func waitPending(t *testing.T, w *Watcher, timeout time.Duration) (fired, open bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		fired, open = w.Pending()
		if fired || !open {
			return fired, open
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false, open
}

func TestWatcherSignalsOnChange(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, 10*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if fired, open := w.Pending(); fired || !open {
		t.Fatalf("pending before any change: fired=%v open=%v", fired, open)
	}

	if err := os.WriteFile(filepath.Join(dir, "item"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if fired, _ := waitPending(t, w, 5*time.Second); !fired {
		t.Fatal("no signal observed after directory change")
	}
}

func TestWatcherClosedReportsNotOpen(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), 10*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		_, open := w.Pending()
		if !open {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("watcher still open after Close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatchedStreamDeliversPushedItem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spool")
	q, err := spool.New[int](dir)
	if err != nil {
		t.Fatalf("new queue: %v", err)
	}
	w, err := NewWatcher(dir, 10*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()
	s := NewWatched[int](q, w)

	if err := q.Push(7); err != nil {
		t.Fatalf("push: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		item, state, err := s.Poll()
		if err != nil {
			t.Fatalf("poll: %v", err)
		}
		if state == Ready {
			if item != 7 {
				t.Fatalf("delivered item: got %d, want 7", item)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("pushed item never delivered through watched stream")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
