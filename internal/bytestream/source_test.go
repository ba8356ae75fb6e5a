package bytestream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/freund17/streambuffer17/internal/chunkstore"
)

func TestSourceReadsWholeStream(t *testing.T) {
	store := chunkstore.New(chunkstore.Options{})
	sink := NewSink(store, testLogger())
	src := NewSource(context.Background(), store.OpenRange(chunkstore.ToEnd, 0), testLogger())

	go func() {
		for _, part := range []string{"he", "llo ", "world"} {
			time.Sleep(5 * time.Millisecond)
			if _, err := sink.Submit([]byte(part)); err != nil {
				t.Errorf("submit: %v", err)
			}
		}
		_ = sink.Complete()
	}()

	got, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if string(got) != "hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestSourceSmallReadBuffer(t *testing.T) {
	store := chunkstore.New(chunkstore.Options{})
	_ = store.Append([]byte("abcdef"))
	_ = store.End()
	src := NewSource(context.Background(), store.OpenRange(chunkstore.ToEnd, 0), testLogger())

	var out []byte
	buf := make([]byte, 2)
	for {
		n, err := src.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read: %v", err)
		}
	}
	if string(out) != "abcdef" {
		t.Fatalf("got %q", out)
	}
}

func TestSourceWriteTo(t *testing.T) {
	store := chunkstore.New(chunkstore.Options{})
	_ = store.Append([]byte("one "))
	_ = store.Append([]byte("two"))
	_ = store.End()
	src := NewSource(context.Background(), store.OpenRange(chunkstore.ToEnd, 0), testLogger())

	var buf bytes.Buffer
	n, err := src.WriteTo(&buf)
	if err != nil {
		t.Fatalf("write to: %v", err)
	}
	if n != 7 || buf.String() != "one two" {
		t.Fatalf("n=%d out=%q", n, buf.String())
	}
}

func TestSourceSurfacesFailure(t *testing.T) {
	store := chunkstore.New(chunkstore.Options{})
	sink := NewSink(store, testLogger())
	src := NewSource(context.Background(), store.OpenRange(chunkstore.ToEnd, 0), testLogger())

	errCh := make(chan error, 1)
	go func() {
		_, err := io.ReadAll(src)
		errCh <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cause := errors.New("upstream gone")
	sink.Fail(cause)

	select {
	case err := <-errCh:
		if !errors.Is(err, chunkstore.ErrDestroyed) || !errors.Is(err, cause) {
			t.Fatalf("expected destroy error with cause, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("source hung through Fail")
	}
}

func TestSourceRoundTripThroughCopy(t *testing.T) {
	store := chunkstore.New(chunkstore.Options{})
	sink := NewSink(store, testLogger())
	src := NewSource(context.Background(), store.OpenRange(chunkstore.ToEnd, 0), testLogger())

	payload := bytes.Repeat([]byte("streambuffer "), 1024)
	go func() {
		w := sink.Writer()
		if _, err := io.Copy(w, bytes.NewReader(payload)); err != nil {
			t.Errorf("copy in: %v", err)
		}
		_ = w.Close()
	}()

	var out bytes.Buffer
	if _, err := io.Copy(&out, src); err != nil {
		t.Fatalf("copy out: %v", err)
	}
	if !bytes.Equal(out.Bytes(), payload) {
		t.Fatalf("round trip mismatch: %d vs %d bytes", out.Len(), len(payload))
	}
}
