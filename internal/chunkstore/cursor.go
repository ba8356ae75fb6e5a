package chunkstore

import (
	"context"
	"fmt"
	"io"
)

// RangeCursor is a lazily-pulled view over a byte range of a Store. It
// produces slices in strict offset order, suspending whenever it catches
// up to the write frontier. A cursor is for a single consumer; its methods
// must not be called concurrently.
type RangeCursor struct {
	s        *Store
	pos      int64
	end      int64 // meaningful only when endKnown
	endKnown bool
	err      error // sticky terminal failure; pre-set for unsatisfiable ranges
	done     bool
}

// OpenRange returns a cursor over [offset, offset+length) immediately;
// bytes flow lazily as the cursor is pulled. Offset and length resolve
// like ReadRange, and the shared cursor advances the same way, before
// return.
//
// When the resolved offset is the unknown-end sentinel, a bounded
// non-empty length is unsatisfiable and the cursor is pre-failed with
// ErrOutOfBounds; empty or unbounded lengths degrade to a cursor that is
// already exhausted at the current high-water mark.
func (s *Store) OpenRange(length, offset int64) *RangeCursor {
	s.mu.Lock()
	defer s.mu.Unlock()

	off, offKnown := offset, offset >= 0
	if !offKnown && s.curKnown {
		off, offKnown = s.cur, true
	}

	c := &RangeCursor{s: s}
	if !offKnown {
		// The shared cursor is already the unknown-end sentinel and the
		// target end of this read is equally unknown, so it stays put.
		if length > 0 {
			c.err = fmt.Errorf("%w: no concrete offset for a bounded range", ErrOutOfBounds)
			return c
		}
		c.pos, c.end, c.endKnown = s.endOff, s.endOff, true
		return c
	}

	c.pos = off
	if length >= 0 {
		c.end, c.endKnown = off+length, true
	}
	s.cur, s.curKnown = c.end, c.endKnown
	return c
}

// Next returns the next run of bytes, blocking while the range is ahead of
// the write frontier. io.EOF signals clean completion at the range end (or
// stream end for unbounded cursors). Any other error is terminal for the
// cursor and repeats on every subsequent call, except a ctx cancellation,
// which only abandons that pull.
//
// The returned slice aliases the store's immutable chunk; callers must not
// write through it.
func (c *RangeCursor) Next(ctx context.Context) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.done {
		return nil, io.EOF
	}
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.st == stateEnded && !c.endKnown {
			c.end, c.endKnown = s.endOff, true
		}
		if c.endKnown && c.pos >= c.end {
			c.done = true
			return nil, io.EOF
		}
		limit := int64(-1)
		if c.endKnown {
			limit = c.end
		}
		data, ready, err := s.locateLocked(c.pos, limit)
		if err != nil {
			c.err = err
			return nil, err
		}
		if !ready {
			if err := s.waitLocked(ctx); err != nil {
				return nil, err
			}
			continue
		}
		if len(data) == 0 {
			// Ended exactly at the frontier; the reclamp above turns this
			// into a clean completion on the next pass.
			continue
		}
		c.pos += int64(len(data))
		return data, nil
	}
}

// Err returns the cursor's terminal failure, or nil if the cursor is still
// live or completed cleanly. It lets callers distinguish "sequence ended
// cleanly" from "sequence ended via failure" after the fact.
func (c *RangeCursor) Err() error { return c.err }
