package chunkstore

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestAppendExtendsLedger(t *testing.T) {
	s := New(Options{})
	if err := s.Append([]byte("abcd")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append([]byte("efgh")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := s.Size(); got != 8 {
		t.Fatalf("size: got %d want 8", got)
	}
}

func TestAppendCopiesBytes(t *testing.T) {
	s := New(Options{})
	b := []byte("abcd")
	if err := s.Append(b); err != nil {
		t.Fatalf("append: %v", err)
	}
	b[0] = 'X'
	if err := s.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	got, err := s.ReadRange(context.Background(), 4, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "abcd" {
		t.Fatalf("ledger shares caller bytes: %q", got)
	}
}

func TestEmptyAppendIsNoOp(t *testing.T) {
	s := New(Options{})
	if err := s.Append(nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := s.Size(); got != 0 {
		t.Fatalf("size after empty append: %d", got)
	}
}

func TestEvictionKeepsSizeUnderWindow(t *testing.T) {
	s := New(Options{RetentionWindow: 12})
	for i := 0; i < 4; i++ {
		if err := s.Append([]byte("0123")); err != nil {
			t.Fatalf("append: %v", err)
		}
		if got := s.Size(); got > 12 {
			t.Fatalf("size %d exceeds window after append %d", got, i)
		}
	}
	if got := s.Size(); got != 12 {
		t.Fatalf("size: got %d want 12", got)
	}
}

func TestEvictionNeverDropsNewestChunk(t *testing.T) {
	s := New(Options{RetentionWindow: 4})
	if err := s.Append(make([]byte, 64)); err != nil {
		t.Fatalf("append: %v", err)
	}
	// A single chunk larger than the window is retained whole.
	if got := s.Size(); got != 64 {
		t.Fatalf("size: got %d want 64", got)
	}
	if err := s.Append([]byte("ab")); err != nil {
		t.Fatalf("append: %v", err)
	}
	// The oversized chunk is now evictable; only the new one stays.
	if got := s.Size(); got != 2 {
		t.Fatalf("size: got %d want 2", got)
	}
}

func TestAppendAfterDestroyFails(t *testing.T) {
	s := New(Options{})
	s.Destroy(nil)
	err := s.Append([]byte("x"))
	if !errors.Is(err, ErrDestroyed) {
		t.Fatalf("expected ErrDestroyed, got %v", err)
	}
}

func TestDestroyCarriesCause(t *testing.T) {
	s := New(Options{})
	cause := errors.New("upstream broke")
	s.Destroy(cause)
	err := s.Append([]byte("x"))
	if !errors.Is(err, ErrDestroyed) || !errors.Is(err, cause) {
		t.Fatalf("expected ErrDestroyed wrapping cause, got %v", err)
	}
	// Only the first cause sticks.
	s.Destroy(errors.New("second"))
	if err := s.End(); !errors.Is(err, cause) {
		t.Fatalf("cause replaced: %v", err)
	}
}

func TestDestroyDiscardsLedger(t *testing.T) {
	s := New(Options{})
	if err := s.Append([]byte("abcd")); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Destroy(nil)
	if got := s.Size(); got != 0 {
		t.Fatalf("size after destroy: %d", got)
	}
}

type captureSizeHook struct {
	mu    sync.Mutex
	pairs [][2]int64
}

func (h *captureSizeHook) EmitSizeChange(oldSize, newSize int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pairs = append(h.pairs, [2]int64{oldSize, newSize})
}

func TestSizeHookSeesOldAndNew(t *testing.T) {
	hook := &captureSizeHook{}
	s := New(Options{RetentionWindow: 6, SizeHook: hook})
	_ = s.Append([]byte("0123"))
	_ = s.Append([]byte("4567"))
	hook.mu.Lock()
	defer hook.mu.Unlock()
	if len(hook.pairs) != 2 {
		t.Fatalf("expected 2 emissions, got %d", len(hook.pairs))
	}
	if hook.pairs[0] != [2]int64{0, 4} {
		t.Fatalf("first emission: %v", hook.pairs[0])
	}
	// Second append evicts the first chunk: retained span is the new
	// chunk alone.
	if hook.pairs[1] != [2]int64{4, 4} {
		t.Fatalf("second emission: %v", hook.pairs[1])
	}
}

func TestSizeTracksWaterMarks(t *testing.T) {
	s := New(Options{RetentionWindow: 8})
	if got := s.Size(); got != 0 {
		t.Fatalf("empty size: %d", got)
	}
	_ = s.Append([]byte("0123"))
	_ = s.Append([]byte("4567"))
	_ = s.Append([]byte("89ab"))
	// Low-water moved to 4; high-water is 12.
	if got := s.Size(); got != 8 {
		t.Fatalf("size: got %d want 8", got)
	}
}
