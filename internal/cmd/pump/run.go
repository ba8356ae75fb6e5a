package pumprun

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freund17/streambuffer17/internal/bytestream"
	"github.com/freund17/streambuffer17/internal/chunkstore"
	cfgpkg "github.com/freund17/streambuffer17/internal/config"
	"github.com/freund17/streambuffer17/internal/runtime"
	logpkg "github.com/freund17/streambuffer17/pkg/log"
)

// ErrInterrupted is the destroy cause when a signal stops the pump mid-stream.
var ErrInterrupted = errors.New("pump: interrupted")

// backpressurePoll bounds how long the producer sleeps waiting for readers
// to drain a full retention window.
const backpressurePoll = 50 * time.Millisecond

type Options struct {
	In  io.Reader
	Out io.Writer
	// Retention and ReadCap override the configured buffer defaults when
	// non-zero. Retention < 0 forces an unbounded buffer.
	Retention int64
	ReadCap   int64
	// ChunkBytes is the producer's read size per submit; 0 uses the
	// configured default.
	ChunkBytes int
	// RateBytesPerSec throttles ingress; 0 uses the configured default and
	// a negative value disables throttling.
	RateBytesPerSec int64
	Config          cfgpkg.Config
	// Logger overrides the one built from Config's log settings.
	Logger logpkg.Logger
}

// Run copies opts.In through a bounded buffer to opts.Out and blocks until
// the stream drains, an error destroys the buffer, or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Be robust to callers that don't pass a signal-aware context. We
	// layer a local signal context over the provided one.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := opts.Logger
	if logger == nil {
		built, err := logpkg.ApplyConfig(&logpkg.Config{Level: opts.Config.LogLevel, Format: opts.Config.LogFormat})
		if err != nil {
			return err
		}
		logpkg.RedirectStdLog(built)
		logger = built.With(logpkg.Component("pump"))
	}

	cfg := opts.Config
	if opts.Retention != 0 {
		cfg.BufferDefaults.RetentionWindowBytes = opts.Retention
		if opts.Retention < 0 {
			cfg.BufferDefaults.RetentionWindowBytes = 0
		}
	}
	if opts.ReadCap != 0 {
		cfg.BufferDefaults.PerReadCapBytes = opts.ReadCap
	}
	chunkBytes := opts.ChunkBytes
	if chunkBytes <= 0 {
		chunkBytes = cfg.PumpChunkBytes
	}
	rate := opts.RateBytesPerSec
	if rate == 0 {
		rate = cfg.RateLimitBytesPerSec
	}

	rt, err := runtime.Open(runtime.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer rt.Close()

	store, err := rt.EnsureBuffer("pump")
	if err != nil {
		return err
	}

	sink := bytestream.NewSink(store, logger)
	// The consumer follows the whole stream from the beginning.
	src := bytestream.NewSource(sctx, store.OpenRange(chunkstore.ToEnd, 0), logger)

	produceErr := make(chan error, 1)
	go func() { produceErr <- produce(sctx, sink, limitReader(opts.In, rate), chunkBytes, logger) }()

	written, consumeErr := io.Copy(opts.Out, src)
	pErr := <-produceErr

	if sctx.Err() != nil && ctx.Err() == nil {
		logger.Info("pump interrupted", logpkg.Int64("bytes_out", written))
		return ErrInterrupted
	}
	if pErr != nil {
		return pErr
	}
	if consumeErr != nil {
		return consumeErr
	}
	logger.Info("pump drained", logpkg.Int64("bytes_out", written))
	return nil
}

// produce reads in chunk by chunk into the sink, pausing while the retention
// window is full, and completes or fails the sink when the input ends.
func produce(ctx context.Context, sink *bytestream.Sink, in io.Reader, chunkBytes int, logger logpkg.Logger) error {
	buf := make([]byte, chunkBytes)
	for {
		if err := ctx.Err(); err != nil {
			sink.Fail(ErrInterrupted)
			return nil
		}
		n, rerr := in.Read(buf)
		if n > 0 {
			accepted, serr := sink.Submit(buf[:n])
			if serr != nil {
				return serr
			}
			if !accepted {
				pause(ctx)
			}
		}
		if rerr == io.EOF {
			return sink.Complete()
		}
		if rerr != nil {
			logger.Error("input failed", logpkg.Err(rerr))
			sink.Fail(rerr)
			return rerr
		}
	}
}

// pause gives the consumer a slice of time to catch up when the retention
// window is full. Pacing is best effort: a consumer that stays behind for
// longer than the window still loses the evicted prefix.
func pause(ctx context.Context) {
	t := time.NewTimer(backpressurePoll)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
