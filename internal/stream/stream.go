package stream

// State is the outcome of one poll attempt.
type State int

const (
	// NotReady means no item is available right now; poll again later.
	NotReady State = iota
	// Ready means an item was produced.
	Ready
	// End means the notification source closed and the stream is finished.
	End
)

// Source is the queue operation a stream draws from.
type Source[T any] interface {
	Pop() (T, bool, error)
}

// Stream adapts a Source into a pollable sequence.
type Stream[T any] struct {
	src      Source[T]
	notifier Notifier

	// armed is set when a change notification fired and cleared once a
	// subsequent poll finds the spool empty, so one coalesced notification
	// drains every item it announced.
	armed bool
}

// New returns a plain-polling stream: every Poll attempts a Pop.
func New[T any](src Source[T]) *Stream[T] {
	return &Stream[T]{src: src}
}

// NewWatched returns a watch-assisted stream that only attempts a Pop after
// notifier reported a change, and ends when notifier closes.
func NewWatched[T any](src Source[T], notifier Notifier) *Stream[T] {
	return &Stream[T]{src: src, notifier: notifier}
}

// Poll attempts to produce the next item. It never blocks: the caller's
// scheduler must treat NotReady as a request to poll again later. Errors
// from the underlying Pop are returned with state NotReady; the stream
// remains usable afterwards.
func (s *Stream[T]) Poll() (T, State, error) {
	var zero T
	if s.notifier != nil && !s.armed {
		fired, open := s.notifier.Pending()
		if !open {
			return zero, End, nil
		}
		if !fired {
			return zero, NotReady, nil
		}
		s.armed = true
	}

	item, ok, err := s.src.Pop()
	if err != nil {
		return zero, NotReady, err
	}
	if !ok {
		s.armed = false
		return zero, NotReady, nil
	}
	return item, Ready, nil
}
