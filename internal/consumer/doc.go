// Package consumer drives a crash-safe drain loop over a spool queue. The
// runner composes the ledger operations for the caller: it recovers orphaned
// consumed entries on startup, hands each item to a handler, and flushes the
// consumed ledger as acknowledgment only after the handler succeeds. A flock
// lock file beside the spool enforces a single running consumer per spool.
//
// Delivery is at least once: a crash between handling and the next flush
// redelivers the affected items on the following run, so handlers must be
// idempotent.
package consumer
