// Package spool implements a durable, crash-recoverable queue that persists
// each item as one file in a spool directory.
//
// All synchronization and durability comes from filesystem primitives:
// exclusive file creation stages new items, and atomic rename publishes,
// selects, and restores them. An item file moves through three states encoded
// in its name: ".incoming" while a push is mid-write, no suffix once visible,
// and ".consumed" after a consumer selected it. Flush deletes consumed
// entries (acknowledgment); Recover renames them back to visible so that
// anything popped but never flushed is redelivered after a crash.
//
// The spool directory must live on a single filesystem volume so rename is
// atomic. Multiple processes may push and pop the same spool concurrently;
// the visible-to-consumed rename guarantees at most one winner per entry.
// Pull (ordered, delete-on-read) is the exception: its read-then-remove is
// two steps and is safe only with a single consumer.
//
// An incoming file abandoned by a crashed pusher is never cleaned up
// implicitly. It stays invisible to every selector until an operator runs
// Sweep.
package spool
