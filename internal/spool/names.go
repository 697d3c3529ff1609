package spool

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Spool file names follow <order-key>-<nonce> with an optional state suffix.
// The order-key is a zero-padded 16-digit hex value so lexicographic order
// matches numeric order; the nonce keeps names unique across writers whose
// order-keys collide.
const (
	suffixIncoming = ".incoming"
	suffixConsumed = ".consumed"
)

type nameSource interface {
	// next returns the name for the upcoming item. advance is called only
	// after the item has been durably published.
	next() string
	advance()
}

// sequenceNames orders items by a per-handle counter. The counter starts at
// zero on every handle and is never persisted; FIFO holds only for items
// written through one handle. The nonce still prevents collisions with other
// handles and earlier process runs.
type sequenceNames struct {
	mu  sync.Mutex
	seq uint64
}

func (s *sequenceNames) next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("%016x-%s", s.seq, nonce())
}

func (s *sequenceNames) advance() {
	s.mu.Lock()
	s.seq++
	s.mu.Unlock()
}

// clockNames orders items by wall-clock time, letting independent processes
// approximate a shared FIFO as long as their clocks agree.
type clockNames struct{}

func (clockNames) next() string {
	return fmt.Sprintf("%016x-%s", uint64(time.Now().UnixNano()), nonce())
}

func (clockNames) advance() {}

func nonce() string {
	return uuid.NewString()
}
