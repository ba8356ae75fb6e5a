package chunkstore

import "errors"

var (
	// ErrOutOfBounds reports a non-empty range requested beyond the final
	// length of an ended stream.
	ErrOutOfBounds = errors.New("chunkstore: range beyond end of stream")

	// ErrChunkEvicted reports a range overlapping bytes already dropped by
	// the retention window. Evicted bytes are unrecoverable.
	ErrChunkEvicted = errors.New("chunkstore: range overlaps evicted bytes")

	// ErrReadCapExceeded reports a bulk read that accumulated more bytes
	// than the per-read cap allows.
	ErrReadCapExceeded = errors.New("chunkstore: read exceeds per-read cap")

	// ErrDestroyed reports an operation against a destroyed store. When
	// Destroy was given a cause, the returned error wraps both ErrDestroyed
	// and the cause.
	ErrDestroyed = errors.New("chunkstore: store destroyed")
)
