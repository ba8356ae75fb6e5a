package chunkstore

import (
	"context"
	"testing"
)

func TestPositionStartsAtZero(t *testing.T) {
	s := New(Options{})
	off, known := s.Position()
	if !known || off != 0 {
		t.Fatalf("fresh store position: %d known=%v", off, known)
	}
}

func TestSetPosition(t *testing.T) {
	s := New(Options{})
	s.SetPosition(7)
	if off, known := s.Position(); !known || off != 7 {
		t.Fatalf("position: %d known=%v", off, known)
	}
}

func TestSeekToEndBeforeEndIsUnknown(t *testing.T) {
	s := New(Options{})
	_ = s.Append([]byte("abcd"))
	s.SeekToEnd()
	if _, known := s.Position(); known {
		t.Fatalf("seek-to-end on an open stream must be unknown")
	}
}

func TestSeekToEndAfterEndResolves(t *testing.T) {
	s := New(Options{})
	_ = s.Append([]byte("abcd"))
	if err := s.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	s.SeekToEnd()
	if off, known := s.Position(); !known || off != 4 {
		t.Fatalf("position: %d known=%v", off, known)
	}
}

func TestEndResolvesUnknownCursor(t *testing.T) {
	s := New(Options{})
	_ = s.Append([]byte("abcdef"))
	s.SeekToEnd()
	if err := s.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if off, known := s.Position(); !known || off != 6 {
		t.Fatalf("End should resolve the cursor to the final length: %d known=%v", off, known)
	}
}

func TestUnboundedReadLeavesUnknownCursor(t *testing.T) {
	s := New(Options{})
	_ = s.Append([]byte("abcd"))
	if err := s.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, err := s.ReadRange(context.Background(), ToEnd, 0); err != nil {
		t.Fatalf("read: %v", err)
	}
	// The read-to-end advanced the cursor to its target before resolving;
	// the raw stored value is the unknown-end sentinel.
	if _, known := s.Position(); known {
		t.Fatalf("unbounded read should store the unknown-end sentinel")
	}
}
