package spool

import (
	"testing"

	"filespool/internal/testsupport"
)

func TestRecoverRedelivers(t *testing.T) {
	q := newTestQueue(t)

	want := testItem{Index: 42, Label: "redeliver me"}
	if err := q.Push(want); err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, ok, err := q.Pop(); err != nil || !ok {
		t.Fatalf("pop: ok=%v err=%v", ok, err)
	}

	// Not flushed: a crash here must not lose the item.
	if err := q.Recover(); err != nil {
		t.Fatalf("recover: %v", err)
	}

	got, ok, err := q.Pop()
	if err != nil || !ok {
		t.Fatalf("pop after recover: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("redelivered payload mismatch: got %+v, want %+v", got, want)
	}
}

func TestFlushAcknowledges(t *testing.T) {
	q := newTestQueue(t)

	if err := q.Push(testItem{Index: 1}); err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, ok, err := q.Pop(); err != nil || !ok {
		t.Fatalf("pop: ok=%v err=%v", ok, err)
	}
	if err := q.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := q.Recover(); err != nil {
		t.Fatalf("recover: %v", err)
	}

	if _, ok, err := q.Pop(); err != nil || ok {
		t.Fatalf("pop after flush+recover: ok=%v err=%v, want empty", ok, err)
	}
	if names := testsupport.EntryNames(t, q.Dir()); len(names) != 0 {
		t.Fatalf("spool not empty: %v", names)
	}
}

func TestFlushRecoverIdempotent(t *testing.T) {
	q := newTestQueue(t)

	for i := 0; i < 2; i++ {
		if err := q.Flush(); err != nil {
			t.Fatalf("flush on empty spool: %v", err)
		}
		if err := q.Recover(); err != nil {
			t.Fatalf("recover on empty spool: %v", err)
		}
	}

	// Same on a spool holding only visible items.
	if err := q.Push(testItem{Index: 1}); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := q.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := q.Recover(); err != nil {
		t.Fatalf("recover: %v", err)
	}
	if n, err := q.Len(); err != nil || n != 1 {
		t.Fatalf("visible item disturbed: len=%d err=%v", n, err)
	}
}

func TestFlushLeavesVisibleAndIncoming(t *testing.T) {
	q := newTestQueue(t)

	if err := q.Push(testItem{Index: 1}); err != nil {
		t.Fatalf("push: %v", err)
	}
	testsupport.WriteEntry(t, q.Dir(), "0000000000000009-orphan"+suffixIncoming, []byte("partial"))
	if err := q.Push(testItem{Index: 2}); err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, ok, err := q.Pop(); err != nil || !ok {
		t.Fatalf("pop: ok=%v err=%v", ok, err)
	}

	if err := q.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if n := testsupport.CountSuffix(t, q.Dir(), suffixConsumed); n != 0 {
		t.Fatalf("consumed entries remain: %d", n)
	}
	if n := testsupport.CountSuffix(t, q.Dir(), ""); n != 1 {
		t.Fatalf("visible entries: got %d, want 1", n)
	}
	if n := testsupport.CountSuffix(t, q.Dir(), suffixIncoming); n != 1 {
		t.Fatalf("incoming entries: got %d, want 1", n)
	}
}
