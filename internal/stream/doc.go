// Package stream exposes a spool queue as a pollable, lazily-produced
// sequence of items. A stream never signals natural completion on its own;
// it reports NotReady when the spool is empty and leaves rescheduling to the
// caller. The watch-assisted mode swaps busy-polling for filesystem change
// notifications behind the Notifier abstraction, and reports End once the
// notification source closes.
//
// The stream only selects items; acknowledging them (Flush) or returning
// them to the queue (Recover) stays with the caller.
package stream
