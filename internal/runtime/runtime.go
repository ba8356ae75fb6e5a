package runtime

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/freund17/streambuffer17/internal/chunkstore"
	cfgpkg "github.com/freund17/streambuffer17/internal/config"
	logpkg "github.com/freund17/streambuffer17/pkg/log"
)

var (
	// ErrClosed reports use of a runtime after Close.
	ErrClosed = errors.New("runtime: closed")
	// ErrInvalidBufferName reports a name rejected by the configured regex.
	ErrInvalidBufferName = errors.New("runtime: invalid buffer name")
	// ErrTooManyBuffers reports the MaxBuffers cap being hit.
	ErrTooManyBuffers = errors.New("runtime: buffer cap reached")
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger logpkg.Logger
}

// Runtime holds the named-buffer registry for a single-process instance.
type Runtime struct {
	config cfgpkg.Config
	logger logpkg.Logger
	nameRe *regexp.Regexp

	mu      sync.Mutex
	buffers map[string]*chunkstore.Store
	closed  bool
}

// Open validates the configuration and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("runtime"))
	}
	re, err := regexp.Compile("^" + opts.Config.BufferNameRegex + "$")
	if err != nil {
		return nil, fmt.Errorf("runtime: bad buffer name regex: %w", err)
	}
	return &Runtime{
		config:  opts.Config,
		logger:  logger,
		nameRe:  re,
		buffers: map[string]*chunkstore.Store{},
	}, nil
}

// EnsureBuffer returns the named buffer, creating it from the configured
// defaults if absent.
func (r *Runtime) EnsureBuffer(name string) (*chunkstore.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	if s, ok := r.buffers[name]; ok {
		return s, nil
	}
	if !r.nameRe.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBufferName, name)
	}
	if max := r.config.MaxBuffers; max > 0 && len(r.buffers) >= max {
		return nil, fmt.Errorf("%w: %d", ErrTooManyBuffers, max)
	}
	s := chunkstore.New(chunkstore.Options{
		RetentionWindow: r.config.BufferDefaults.RetentionWindowBytes,
		PerReadCap:      r.config.BufferDefaults.PerReadCapBytes,
	})
	r.buffers[name] = s
	r.logger.Debug("buffer created",
		logpkg.Str("name", name),
		logpkg.Int64("retention", r.config.BufferDefaults.RetentionWindowBytes),
		logpkg.Int64("read_cap", r.config.BufferDefaults.PerReadCapBytes),
	)
	return s, nil
}

// Buffers lists the registered buffer names, sorted.
func (r *Runtime) Buffers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.buffers))
	for name := range r.buffers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckHealth performs a simple liveness check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	return nil
}

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Close destroys every registered buffer, failing all pending and future
// reads with ErrClosed as the cause, and rejects further registry calls.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	for name, s := range r.buffers {
		s.Destroy(ErrClosed)
		r.logger.Debug("buffer destroyed", logpkg.Str("name", name))
	}
	r.buffers = nil
	return nil
}
