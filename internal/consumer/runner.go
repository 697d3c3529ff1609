package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	"filespool/internal/logging"
	"filespool/internal/spool"
	"filespool/internal/stream"
)

// ErrLocked reports that another consumer already holds the spool lock.
var ErrLocked = errors.New("spool is locked by another consumer")

// Handler processes one item. Returning an error stops the runner before the
// item is acknowledged, so it will be redelivered.
type Handler[T any] func(ctx context.Context, item T) error

// Options configures runner behavior.
type Options struct {
	// PollInterval is the sleep between polls while the stream is not ready.
	// Defaults to one second.
	PollInterval time.Duration
	// AckEvery flushes the consumed ledger after this many handled items.
	// Defaults to 1 (acknowledge each item immediately).
	AckEvery int
	// LockPath overrides the lock file location. Defaults to the spool
	// directory path with a ".lock" suffix.
	LockPath string
	// Logger may be nil.
	Logger *slog.Logger
}

// Runner drains a spool through a stream, acknowledging handled items.
type Runner[T any] struct {
	queue   *spool.Queue[T]
	stream  *stream.Stream[T]
	handler Handler[T]
	lock    *flock.Flock
	opts    Options
	logger  *slog.Logger
}

// New constructs a runner. The stream must be backed by the same queue.
func New[T any](queue *spool.Queue[T], st *stream.Stream[T], handler Handler[T], opts Options) (*Runner[T], error) {
	if queue == nil || st == nil || handler == nil {
		return nil, errors.New("consumer requires queue, stream, and handler")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.AckEvery <= 0 {
		opts.AckEvery = 1
	}
	if opts.LockPath == "" {
		opts.LockPath = queue.Dir() + ".lock"
	}
	return &Runner[T]{
		queue:   queue,
		stream:  st,
		handler: handler,
		lock:    flock.New(opts.LockPath),
		opts:    opts,
		logger:  logging.NewComponentLogger(opts.Logger, "consumer"),
	}, nil
}

// Run drains the spool until the context is canceled or the stream ends.
// It fails fast with ErrLocked when another consumer holds the lock, and
// starts by recovering consumed entries left behind by a crashed run.
func (r *Runner[T]) Run(ctx context.Context) error {
	ok, err := r.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire consumer lock: %w", err)
	}
	if !ok {
		return ErrLocked
	}
	defer func() {
		_ = r.lock.Unlock()
	}()

	if err := r.queue.Recover(); err != nil {
		return fmt.Errorf("recover consumed items: %w", err)
	}
	r.logger.Info("consumer started",
		logging.String("spool", r.queue.Dir()),
		logging.Duration("poll_interval", r.opts.PollInterval),
		logging.Int("ack_every", r.opts.AckEvery),
	)

	pending := 0
	flush := func() error {
		if pending == 0 {
			return nil
		}
		if err := r.queue.Flush(); err != nil {
			return fmt.Errorf("acknowledge items: %w", err)
		}
		r.logger.Debug("acknowledged items", logging.Int("count", pending))
		pending = 0
		return nil
	}

	ticker := time.NewTicker(r.opts.PollInterval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			if ferr := flush(); ferr != nil {
				return ferr
			}
			return err
		}

		item, state, err := r.stream.Poll()
		if err != nil {
			return fmt.Errorf("poll spool: %w", err)
		}
		switch state {
		case stream.Ready:
			if err := r.handler(ctx, item); err != nil {
				// The item stays consumed but unacknowledged; it comes back
				// on the next run's Recover, as does anything else pending.
				return fmt.Errorf("handle item: %w", err)
			}
			pending++
			if pending >= r.opts.AckEvery {
				if err := flush(); err != nil {
					return err
				}
			}
		case stream.NotReady:
			if err := flush(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		case stream.End:
			r.logger.Info("notification source closed, stopping")
			return flush()
		}
	}
}
