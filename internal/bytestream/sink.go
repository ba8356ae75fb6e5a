package bytestream

import (
	"errors"
	"io"
	"sync"

	"github.com/freund17/streambuffer17/internal/chunkstore"
	logpkg "github.com/freund17/streambuffer17/pkg/log"
)

// ErrSinkCompleted reports a submit after Complete.
var ErrSinkCompleted = errors.New("bytestream: sink already completed")

// Sink is the ingress half of a buffered byte stream. A single producer
// submits chunks; Complete marks end of input and Fail tears the buffer
// down. Submit's accepted flag is the backpressure signal: false means the
// retention window is full and the producer should slow down so readers
// can catch up before eviction outruns them.
type Sink struct {
	store  *chunkstore.Store
	logger logpkg.Logger

	mu        sync.Mutex
	completed bool
	submitted int64
}

// NewSink wraps store. A nil logger defaults to a component-tagged one.
func NewSink(store *chunkstore.Store, logger logpkg.Logger) *Sink {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("bytestream"))
	}
	return &Sink{store: store, logger: logger}
}

// Submit appends b to the buffer. accepted == false is advice, not an
// error: the bytes were stored, but the window is full. Submit fails once
// the sink is completed or the buffer destroyed.
func (k *Sink) Submit(b []byte) (accepted bool, err error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.completed {
		return false, ErrSinkCompleted
	}
	if err := k.store.Append(b); err != nil {
		return false, err
	}
	k.submitted += int64(len(b))
	window := k.store.RetentionWindow()
	return window <= 0 || k.store.Size() < window, nil
}

// Complete marks end of input: the buffer's final length is now known.
// Calling it twice is harmless.
func (k *Sink) Complete() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.completed {
		return nil
	}
	if err := k.store.End(); err != nil {
		return err
	}
	k.completed = true
	k.logger.Debug("sink completed", logpkg.Int64("bytes", k.submitted))
	return nil
}

// Fail destroys the buffer with the given cause, failing every pending and
// future read. The sink is unusable afterwards.
func (k *Sink) Fail(cause error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.completed = true
	k.store.Destroy(cause)
	k.logger.Warn("sink failed", logpkg.Err(cause), logpkg.Int64("bytes", k.submitted))
}

// Writer adapts the sink to io.WriteCloser for hosts that speak io.Copy.
// Close completes the stream; the backpressure flag is dropped on this
// path, so a bounded buffer can still evict under a slow consumer.
func (k *Sink) Writer() io.WriteCloser { return sinkWriter{k} }

type sinkWriter struct{ k *Sink }

func (w sinkWriter) Write(p []byte) (int, error) {
	if _, err := w.k.Submit(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w sinkWriter) Close() error { return w.k.Complete() }
