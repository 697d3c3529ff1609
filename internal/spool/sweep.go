package spool

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sweep deletes incoming entries whose modification time is at least
// olderThan in the past and reports how many were removed. These are the
// leftovers of pushes that crashed mid-write; nothing runs this implicitly,
// it is an explicit operator action. Choose olderThan comfortably above the
// longest plausible push duration so an in-flight write is never swept.
func (q *Queue[T]) Sweep(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(q.dir)
	if err != nil {
		return 0, fmt.Errorf("scan spool: %w", err)
	}
	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), suffixIncoming) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, fmt.Errorf("stat incoming item: %w", err)
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		err = os.Remove(filepath.Join(q.dir, entry.Name()))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("remove incoming item: %w", err)
		}
		removed++
	}
	return removed, nil
}
