package spool

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"
)

// State is the lifecycle position of one spool entry, encoded in its name.
type State string

const (
	StateVisible  State = "visible"
	StateIncoming State = "incoming"
	StateConsumed State = "consumed"
)

// ItemInfo describes one spool entry without decoding its payload.
type ItemInfo struct {
	Name    string    `json:"name"`
	State   State     `json:"state"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Snapshot lists every spool entry, sorted by name, for operator tooling.
// Entries that vanish mid-scan (a concurrent flush or pull) are omitted.
func (q *Queue[T]) Snapshot() ([]ItemInfo, error) {
	entries, err := os.ReadDir(q.dir)
	if err != nil {
		return nil, fmt.Errorf("scan spool: %w", err)
	}
	items := make([]ItemInfo, 0, len(entries))
	for _, entry := range entries {
		state, ok := entryState(entry)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat spool entry: %w", err)
		}
		items = append(items, ItemInfo{
			Name:    entry.Name(),
			State:   state,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	slices.SortFunc(items, func(a, b ItemInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return items, nil
}

// Len counts the visible entries currently in the spool.
func (q *Queue[T]) Len() (int, error) {
	entries, err := os.ReadDir(q.dir)
	if err != nil {
		return 0, fmt.Errorf("scan spool: %w", err)
	}
	n := 0
	for _, entry := range entries {
		if eligible(entry) {
			n++
		}
	}
	return n, nil
}

func entryState(entry fs.DirEntry) (State, bool) {
	if !entry.Type().IsRegular() {
		return "", false
	}
	name := entry.Name()
	switch {
	case strings.HasSuffix(name, suffixIncoming):
		return StateIncoming, true
	case strings.HasSuffix(name, suffixConsumed):
		return StateConsumed, true
	case !strings.Contains(name, "."):
		return StateVisible, true
	default:
		// Foreign file; not part of the queue.
		return "", false
	}
}
