package chunkstore

import (
	"context"
	"fmt"
)

// Sentinel arguments for ReadRange and OpenRange.
const (
	// ToEnd requests bytes through the final length of the stream. The
	// read only completes once the stream has ended.
	ToEnd int64 = -1
	// AtCursor resolves the offset from the shared cursor.
	AtCursor int64 = -1
)

// ReadRange blocks until the requested range is fully available and
// returns it as one contiguous buffer.
//
// length < 0 (ToEnd) reads through the end of the stream; offset < 0
// (AtCursor) starts at the shared cursor. The shared cursor is advanced to
// the target end of this read synchronously, before any suspension, so
// concurrent defaulting readers observe it without waiting.
//
// A defaulting read whose cursor is the unknown-end sentinel suspends
// until the stream ends, then starts at the final length: a bounded
// non-empty request there fails with ErrOutOfBounds, an empty or unbounded
// one returns nothing cleanly.
//
// ctx only abandons this call; Destroy is the store-level cancellation.
func (s *Store) ReadRange(ctx context.Context, length, offset int64) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	off, offKnown := offset, offset >= 0
	if !offKnown && s.curKnown {
		off, offKnown = s.cur, true
	}
	var target int64
	targetKnown := false
	if offKnown && length >= 0 {
		target, targetKnown = off+length, true
	}
	// Advance the shared cursor before any suspension.
	s.cur, s.curKnown = target, targetKnown

	// An unknown offset only gains a meaning once the final length exists.
	for !offKnown {
		if s.st == stateDestroyed {
			return nil, s.destroyErr
		}
		if s.st == stateEnded {
			off, offKnown = s.endOff, true
			if length >= 0 {
				target, targetKnown = off+length, true
			}
			break
		}
		if err := s.waitLocked(ctx); err != nil {
			return nil, err
		}
	}

	var buf []byte
	pos := off
	for {
		if s.st == stateEnded && !targetKnown {
			// Reading to end: the target is now the final length.
			target, targetKnown = s.endOff, true
		}
		if targetKnown && pos >= target {
			return buf, nil
		}
		limit := int64(-1)
		if targetKnown {
			limit = target
		}
		data, ready, err := s.locateLocked(pos, limit)
		if err != nil {
			return nil, err
		}
		if !ready {
			if err := s.waitLocked(ctx); err != nil {
				return nil, err
			}
			continue
		}
		if len(data) == 0 {
			// Clean end-of-stream read; the reclamp above terminates the
			// loop on the next pass.
			continue
		}
		buf = append(buf, data...)
		pos += int64(len(data))
		if s.readCap > 0 && int64(len(buf)) > s.readCap {
			return nil, fmt.Errorf("%w: %d accumulated, cap %d", ErrReadCapExceeded, len(buf), s.readCap)
		}
	}
}
