package chunkstore

// SizeHook is an optional callback invoked after each append with the
// retained span before and after the write (eviction included).
// Implementations may feed gauges or emit backpressure signals.
type SizeHook interface {
	EmitSizeChange(oldSize, newSize int64)
}

type noopSizeHook struct{}

func (noopSizeHook) EmitSizeChange(int64, int64) {}
