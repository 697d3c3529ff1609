package spool

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Flush permanently deletes every consumed entry. This is the acknowledgment
// step: call it only once everything returned by Pop since the last Flush
// has been durably processed. Flushing an already-clean spool is a no-op.
func (q *Queue[T]) Flush() error {
	entries, err := os.ReadDir(q.dir)
	if err != nil {
		return fmt.Errorf("scan spool: %w", err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), suffixConsumed) {
			continue
		}
		err := os.Remove(filepath.Join(q.dir, entry.Name()))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("discard consumed item: %w", err)
		}
	}
	return nil
}

// Recover renames every consumed entry back to its visible name, re-entering
// it into the queue. Call it after an uncertain crash to guarantee that
// anything popped but never flushed is delivered again. Items that were
// fully processed before the crash are redelivered too, so consumers must be
// idempotent. Recovering a clean spool is a no-op.
func (q *Queue[T]) Recover() error {
	entries, err := os.ReadDir(q.dir)
	if err != nil {
		return fmt.Errorf("scan spool: %w", err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), suffixConsumed) {
			continue
		}
		consumed := filepath.Join(q.dir, entry.Name())
		visible := strings.TrimSuffix(consumed, suffixConsumed)
		err := os.Rename(consumed, visible)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("restore consumed item: %w", err)
		}
	}
	return nil
}
