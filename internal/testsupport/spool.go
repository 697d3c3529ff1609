// Package testsupport provides spool fixtures shared by package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// WriteEntry places a raw file with the given name directly into the spool,
// bypassing the queue. Use it to fabricate incoming, consumed, corrupt, or
// foreign entries.
func WriteEntry(t testing.TB, dir, name string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// EntryNames returns the sorted file names currently in the spool.
func EntryNames(t testing.TB, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read spool %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names
}

// CountSuffix counts spool entries carrying the given suffix. An empty
// suffix counts visible entries (names without any dot).
func CountSuffix(t testing.TB, dir, suffix string) int {
	t.Helper()

	n := 0
	for _, name := range EntryNames(t, dir) {
		if suffix == "" {
			if !strings.Contains(name, ".") {
				n++
			}
		} else if strings.HasSuffix(name, suffix) {
			n++
		}
	}
	return n
}
