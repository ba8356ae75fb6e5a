package chunkstore

import (
	"fmt"
	"sort"
	"sync"
)

// chunk is one immutable run of bytes with its absolute start offset.
// end - off always equals len(data).
type chunk struct {
	off  int64
	data []byte
}

func (c chunk) end() int64 { return c.off + int64(len(c.data)) }

// Options configure a Store at construction time; they are immutable
// afterwards.
type Options struct {
	// RetentionWindow bounds the distance between the ledger's low- and
	// high-water marks. Appends evict chunks from the front until the span
	// fits, keeping at least the newest chunk. 0 means unbounded.
	RetentionWindow int64
	// PerReadCap bounds the bytes a single ReadRange may accumulate before
	// failing with ErrReadCapExceeded. 0 means unbounded.
	PerReadCap int64
	// SizeHook observes retained-span changes. nil installs a no-op.
	SizeHook SizeHook
}

type streamState int

const (
	stateOpen streamState = iota
	stateEnded
	stateDestroyed
)

// Store is a bounded, append-only byte store addressed by absolute offset.
//
// A single logical writer drives Append, End, and Destroy (never
// concurrently with each other); any number of readers may be in flight at
// once. The zero value is not usable; construct with New.
type Store struct {
	mu     sync.Mutex
	chunks []chunk
	endOff int64 // high-water mark; survives eviction and End

	st         streamState
	destroyErr error

	// shared cursor: the default offset for reads that do not pass one.
	// curKnown == false is the "unknown end" sentinel: the position
	// resolves to whatever the final length turns out to be.
	cur      int64
	curKnown bool

	// notifyCh is closed and replaced on every ledger mutation; waiters
	// grab the current channel under mu and re-check their predicate
	// after it closes.
	notifyCh chan struct{}

	window  int64
	readCap int64
	hook    SizeHook
}

// New creates an empty open Store.
func New(opts Options) *Store {
	hook := opts.SizeHook
	if hook == nil {
		hook = noopSizeHook{}
	}
	return &Store{
		st:       stateOpen,
		curKnown: true,
		notifyCh: make(chan struct{}),
		window:   opts.RetentionWindow,
		readCap:  opts.PerReadCap,
		hook:     hook,
	}
}

// RetentionWindow returns the configured retention window (0 = unbounded).
func (s *Store) RetentionWindow() int64 { return s.window }

// Append adds b to the end of the stream, evicts chunks that fell out of
// the retention window, and wakes every waiter. The bytes are copied; the
// caller keeps ownership of b. Append fails only once the store is
// destroyed. Rejecting writes after End is the ingress wrapper's job, so
// End followed by Append still extends the ledger at this level.
func (s *Store) Append(b []byte) error {
	s.mu.Lock()
	if s.st == stateDestroyed {
		err := s.destroyErr
		s.mu.Unlock()
		return err
	}
	if len(b) == 0 {
		s.mu.Unlock()
		return nil
	}
	oldSize := s.sizeLocked()
	data := make([]byte, len(b))
	copy(data, b)
	s.chunks = append(s.chunks, chunk{off: s.endOff, data: data})
	s.endOff += int64(len(data))
	s.evictLocked()
	newSize := s.sizeLocked()
	s.wakeLocked()
	hook := s.hook
	s.mu.Unlock()

	hook.EmitSizeChange(oldSize, newSize)
	return nil
}

// End marks the stream complete: no further bytes will arrive and the
// current high-water mark is the final length. An unknown shared cursor
// resolves to that length, and waiters are woken so suspended unbounded
// reads can reclamp their target.
func (s *Store) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st == stateDestroyed {
		return s.destroyErr
	}
	s.st = stateEnded
	if !s.curKnown {
		s.cur = s.endOff
		s.curKnown = true
	}
	s.wakeLocked()
	return nil
}

// Destroy tears the store down: the ledger is discarded, every pending and
// future read fails, and the given cause is surfaced by those failures
// (wrapped together with ErrDestroyed). A nil cause uses ErrDestroyed
// alone. Destroy is idempotent; only the first cause sticks.
func (s *Store) Destroy(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st == stateDestroyed {
		return
	}
	s.st = stateDestroyed
	if cause == nil {
		s.destroyErr = ErrDestroyed
	} else {
		s.destroyErr = fmt.Errorf("%w: %w", ErrDestroyed, cause)
	}
	s.chunks = nil
	s.wakeLocked()
}

// Size returns the retained span: high-water minus low-water mark, or 0
// for an empty ledger.
func (s *Store) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sizeLocked()
}

func (s *Store) sizeLocked() int64 {
	return s.endOff - s.lowWaterLocked()
}

// lowWaterLocked is the lowest offset still retrievable. An empty ledger
// has nothing retrievable, so low-water equals high-water.
func (s *Store) lowWaterLocked() int64 {
	if len(s.chunks) == 0 {
		return s.endOff
	}
	return s.chunks[0].off
}

// evictLocked drops chunks from the front until the retained span fits the
// window. The newest chunk is never evicted, which keeps a writer larger
// than the window live.
func (s *Store) evictLocked() {
	if s.window <= 0 {
		return
	}
	for len(s.chunks) > 1 && s.endOff-s.chunks[0].off > s.window {
		s.chunks[0] = chunk{}
		s.chunks = s.chunks[1:]
	}
}

// locateLocked is the lookup primitive both read paths route through. It
// returns the next contiguous run of bytes starting at off, truncated to
// the absolute bound limit (< 0 = unbounded). The outcomes are:
//
//   - ready == false, err == nil: the bytes are ahead of the write
//     frontier and the stream is still open; the caller must wait.
//   - ready == true, empty data: a clean read of nothing; the stream has
//     ended and an empty or unbounded range was requested at exactly the
//     final offset.
//   - ErrOutOfBounds: a non-empty range beyond the final length of an
//     ended stream.
//   - ErrChunkEvicted: off is behind the ledger's low-water mark.
//   - the destroy error: the store was destroyed, whatever the offset.
//
// The returned slice aliases the immutable chunk; callers must not write
// through it.
func (s *Store) locateLocked(off, limit int64) (data []byte, ready bool, err error) {
	if s.st == stateDestroyed {
		return nil, false, s.destroyErr
	}
	if off >= s.endOff {
		if s.st == stateOpen {
			return nil, false, nil
		}
		if off == s.endOff && (limit < 0 || limit <= off) {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("%w: offset %d, final length %d", ErrOutOfBounds, off, s.endOff)
	}
	if low := s.lowWaterLocked(); off < low {
		return nil, false, fmt.Errorf("%w: offset %d, low-water %d", ErrChunkEvicted, off, low)
	}
	i := sort.Search(len(s.chunks), func(i int) bool { return s.chunks[i].end() > off })
	c := s.chunks[i]
	hi := c.end()
	if limit >= 0 && limit < hi {
		hi = limit
	}
	if hi <= off {
		return nil, true, nil
	}
	return c.data[off-c.off : hi-c.off], true, nil
}
