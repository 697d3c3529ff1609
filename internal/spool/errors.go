package spool

import "errors"

// ErrCodec tags payload encode failures so callers can distinguish them from
// I/O errors with errors.Is. Decode failures during selection never surface
// as errors: the entry is skipped, logged, and counted (see Queue.Skipped).
var ErrCodec = errors.New("codec error")
