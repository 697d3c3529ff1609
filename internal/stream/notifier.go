package stream

// Notifier tells a watch-assisted stream when the spool may have changed.
type Notifier interface {
	// Pending reports whether a change was observed since the previous call,
	// and whether the notification source is still open. It must not block.
	Pending() (fired, open bool)
	// Close releases the notification source. After Close, Pending reports
	// open=false.
	Close() error
}
