package spool

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// Pop takes the next item without regard to ordering: the first eligible
// directory entry wins, in whatever order the filesystem enumerates.
//
// Pop is the ledgered selection: the entry is renamed to its ".consumed"
// name before it is read, so of any number of concurrent consumers exactly
// one wins each entry and the losers move on to the next candidate. The
// consumed file stays on disk until Flush deletes it or Recover returns it
// to the queue. An entry whose payload fails to decode after winning the
// rename is left consumed, counted, and skipped; it is never deleted here.
//
// The second return is false when no eligible entry exists.
func (q *Queue[T]) Pop() (T, bool, error) {
	var zero T
	entries, err := os.ReadDir(q.dir)
	if err != nil {
		return zero, false, fmt.Errorf("scan spool: %w", err)
	}
	for _, entry := range entries {
		if !eligible(entry) {
			continue
		}
		visible := filepath.Join(q.dir, entry.Name())
		consumed := visible + suffixConsumed
		if err := os.Rename(visible, consumed); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Another consumer won this entry.
				continue
			}
			return zero, false, fmt.Errorf("mark consumed: %w", err)
		}
		data, err := os.ReadFile(consumed)
		if err != nil {
			return zero, false, fmt.Errorf("read item: %w", err)
		}
		item, err := q.codec.Unmarshal(data)
		if err != nil {
			q.skip(entry.Name(), err)
			continue
		}
		return item, true, nil
	}
	return zero, false, nil
}

// Pull takes the lexicographically smallest visible entry, reading and then
// removing it. Delivery is FIFO when the names were produced by a single
// handle's counter or by clocks the writers share.
//
// Pull does not use the consumed ledger: read and remove are two separate
// steps, so running concurrent consumers against one spool can deliver an
// item twice. Use Pull from a single consumer only; Pop is the safe choice
// otherwise. Each call scans and sorts every visible name, which degrades as
// the queue grows.
func (q *Queue[T]) Pull() (T, bool, error) {
	var zero T
	entries, err := os.ReadDir(q.dir)
	if err != nil {
		return zero, false, fmt.Errorf("scan spool: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if eligible(entry) {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	for _, name := range names {
		path := filepath.Join(q.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return zero, false, fmt.Errorf("read item: %w", err)
		}
		item, err := q.codec.Unmarshal(data)
		if err != nil {
			q.skip(name, err)
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zero, false, fmt.Errorf("remove item: %w", err)
		}
		return item, true, nil
	}
	return zero, false, nil
}

// eligible reports whether a directory entry is a visible item: a regular
// file whose name carries no suffix. Incoming and consumed entries, foreign
// suffixed files, and subdirectories are never selected.
func eligible(entry fs.DirEntry) bool {
	return entry.Type().IsRegular() && filepath.Ext(entry.Name()) == ""
}
