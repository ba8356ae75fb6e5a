package chunkstore

import (
	"context"
	"time"
)

// WaitForChange blocks until the ledger mutates (append, End, or Destroy)
// or timeout elapses. It returns true when woken by a mutation, false on
// timeout. A timeout <= 0 waits indefinitely. The wake carries no payload;
// callers re-check whatever condition they were waiting on.
func (s *Store) WaitForChange(timeout time.Duration) bool {
	s.mu.Lock()
	ch := s.notifyCh
	s.mu.Unlock()
	if timeout <= 0 {
		<-ch
		return true
	}
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

// wakeLocked signals every waiter by closing the current notification
// channel and installing a fresh one.
func (s *Store) wakeLocked() {
	close(s.notifyCh)
	s.notifyCh = make(chan struct{})
}

// waitLocked releases the store lock until the next broadcast wake or ctx
// cancellation, then reacquires it. The caller must re-check its predicate
// either way.
func (s *Store) waitLocked(ctx context.Context) error {
	ch := s.notifyCh
	s.mu.Unlock()
	defer s.mu.Lock()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
