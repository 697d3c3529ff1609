package stream

import (
	"errors"
	"path/filepath"
	"testing"

	"filespool/internal/spool"
)

type countedSource struct {
	items []int
	calls int
	err   error
}

func (s *countedSource) Pop() (int, bool, error) {
	s.calls++
	if s.err != nil {
		return 0, false, s.err
	}
	if len(s.items) == 0 {
		return 0, false, nil
	}
	item := s.items[0]
	s.items = s.items[1:]
	return item, true, nil
}

type stubNotifier struct {
	fired bool
	open  bool
}

func (n *stubNotifier) Pending() (bool, bool) {
	fired := n.fired
	n.fired = false
	return fired, n.open
}

func (n *stubNotifier) Close() error {
	n.open = false
	return nil
}

func TestPlainPollingFoldsQueue(t *testing.T) {
	q, err := spool.New[int](filepath.Join(t.TempDir(), "spool"))
	if err != nil {
		t.Fatalf("new queue: %v", err)
	}
	for i := 0; i < 100; i++ {
		if err := q.Push(i); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}

	s := New[int](q)
	sum := 0
	produced := 0
	for produced < 100 {
		item, state, err := s.Poll()
		if err != nil {
			t.Fatalf("poll: %v", err)
		}
		switch state {
		case Ready:
			sum += item
			produced++
		case NotReady:
			t.Fatalf("stream not ready with %d items left", 100-produced)
		case End:
			t.Fatal("plain stream can never end")
		}
	}
	if sum != 4950 {
		t.Fatalf("sum of produced indices: got %d, want 4950", sum)
	}

	if _, state, err := s.Poll(); err != nil || state != NotReady {
		t.Fatalf("drained stream: state=%v err=%v, want NotReady", state, err)
	}
}

func TestWatchedPollGatesOnNotifications(t *testing.T) {
	src := &countedSource{items: []int{1, 2}}
	notifier := &stubNotifier{open: true}
	s := NewWatched[int](src, notifier)

	// No notification yet: the spool must not be scanned.
	if _, state, err := s.Poll(); err != nil || state != NotReady {
		t.Fatalf("poll without notification: state=%v err=%v", state, err)
	}
	if src.calls != 0 {
		t.Fatalf("source polled %d times without a notification", src.calls)
	}

	// One coalesced notification announces both items.
	notifier.fired = true
	for want := 1; want <= 2; want++ {
		item, state, err := s.Poll()
		if err != nil || state != Ready {
			t.Fatalf("poll %d: state=%v err=%v", want, state, err)
		}
		if item != want {
			t.Fatalf("poll %d: got %d", want, item)
		}
	}

	// Drained: the stream disarms and waits for the next notification.
	if _, state, _ := s.Poll(); state != NotReady {
		t.Fatalf("poll after drain: state=%v, want NotReady", state)
	}
	calls := src.calls
	if _, state, _ := s.Poll(); state != NotReady {
		t.Fatalf("poll while idle: state=%v", state)
	}
	if src.calls != calls {
		t.Fatal("source polled again without a fresh notification")
	}
}

func TestWatchedPollEndsWhenNotifierCloses(t *testing.T) {
	src := &countedSource{items: []int{1}}
	notifier := &stubNotifier{open: true}
	s := NewWatched[int](src, notifier)

	if err := notifier.Close(); err != nil {
		t.Fatalf("close notifier: %v", err)
	}
	if _, state, err := s.Poll(); err != nil || state != End {
		t.Fatalf("poll after close: state=%v err=%v, want End", state, err)
	}
}

func TestPollSurfacesSourceErrors(t *testing.T) {
	wantErr := errors.New("disk gone")
	src := &countedSource{err: wantErr}
	s := New[int](src)

	_, state, err := s.Poll()
	if !errors.Is(err, wantErr) {
		t.Fatalf("poll error: got %v, want %v", err, wantErr)
	}
	if state != NotReady {
		t.Fatalf("poll error state: got %v, want NotReady", state)
	}
}
