package chunkstore

// The shared cursor is store-wide, not per-reader: it reflects the target
// end of the last read that resolved a default offset, and any caller may
// move it. Two concurrent defaulting reads race to define the next default
// offset; last writer wins.

// Position returns the raw shared cursor. known == false means the
// position is the unknown-end sentinel: it resolves to whatever the final
// length turns out to be.
func (s *Store) Position() (off int64, known bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur, s.curKnown
}

// SetPosition pins the shared cursor to a concrete non-negative offset.
func (s *Store) SetPosition(off int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = off
	s.curKnown = true
}

// SeekToEnd points the shared cursor at the end of the stream. Once the
// stream has ended there is no ambiguity and the cursor resolves
// immediately to the final length; before that it becomes the unknown-end
// sentinel.
func (s *Store) SeekToEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st == stateEnded {
		s.cur = s.endOff
		s.curKnown = true
		return
	}
	s.cur = 0
	s.curKnown = false
}
