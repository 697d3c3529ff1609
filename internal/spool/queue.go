package spool

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"filespool/internal/logging"
)

// Queue is a handle on one spool directory. Handles are cheap, hold no open
// file descriptors, and may be used from multiple goroutines. Several handles
// (in the same process or not) may share a directory; see Pull for the one
// single-consumer exception.
type Queue[T any] struct {
	dir     string
	codec   Codec[T]
	names   nameSource
	logger  *slog.Logger
	skipped atomic.Uint64
}

// Option adjusts queue construction.
type Option[T any] func(*Queue[T])

// WithCodec replaces the default JSON codec.
func WithCodec[T any](codec Codec[T]) Option[T] {
	return func(q *Queue[T]) { q.codec = codec }
}

// WithTimestampNames orders item names by wall-clock time instead of the
// per-handle counter, so writers in separate processes sharing a clock
// produce names that Pull sorts into a combined FIFO.
func WithTimestampNames[T any]() Option[T] {
	return func(q *Queue[T]) { q.names = clockNames{} }
}

// WithLogger routes skip warnings to the given logger.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(q *Queue[T]) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// New opens a queue on dir, creating the directory (owner-only) if needed.
func New[T any](dir string, opts ...Option[T]) (*Queue[T], error) {
	if dir == "" {
		return nil, errors.New("spool: directory path is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create spool directory: %w", err)
	}
	q := &Queue[T]{
		dir:    dir,
		codec:  JSONCodec[T]{},
		names:  &sequenceNames{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q, nil
}

// Dir returns the spool directory path.
func (q *Queue[T]) Dir() string {
	return q.dir
}

// Push durably appends item to the spool. The encoded bytes are staged under
// an ".incoming" name created with O_EXCL, then published with an atomic
// rename, so no reader ever observes a partial payload. A failure mid-write
// leaves the orphan incoming file behind (see Sweep) and no visible entry.
func (q *Queue[T]) Push(item T) error {
	data, err := q.codec.Marshal(item)
	if err != nil {
		return fmt.Errorf("%w: encode item: %w", ErrCodec, err)
	}

	name := q.names.next()
	final := filepath.Join(q.dir, name)
	staged := final + suffixIncoming

	f, err := os.OpenFile(staged, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("stage item: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write item: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write item: %w", err)
	}

	if err := os.Rename(staged, final); err != nil {
		return fmt.Errorf("publish item: %w", err)
	}
	q.names.advance()
	return nil
}

// Skipped reports how many undecodable entries this handle has skipped
// during Pop and Pull calls.
func (q *Queue[T]) Skipped() uint64 {
	return q.skipped.Load()
}

func (q *Queue[T]) skip(name string, err error) {
	q.skipped.Add(1)
	q.logger.Warn("skipping undecodable spool entry",
		logging.String("entry", name),
		logging.Error(err),
	)
}
