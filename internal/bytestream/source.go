package bytestream

import (
	"context"
	"io"

	"github.com/freund17/streambuffer17/internal/chunkstore"
	logpkg "github.com/freund17/streambuffer17/pkg/log"
)

// Source drains a RangeCursor as an io.Reader. Construction never blocks;
// Read suspends whenever the cursor is ahead of the write frontier. A
// clean cursor completion surfaces as io.EOF, a failure as the chunkstore
// error. Source is for a single consumer.
type Source struct {
	ctx    context.Context
	cursor *chunkstore.RangeCursor
	logger logpkg.Logger
	rem    []byte
}

// NewSource wraps cursor. ctx bounds every blocking pull; a nil logger
// defaults to a component-tagged one.
func NewSource(ctx context.Context, cursor *chunkstore.RangeCursor, logger logpkg.Logger) *Source {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("bytestream"))
	}
	return &Source{ctx: ctx, cursor: cursor, logger: logger}
}

// Read implements io.Reader.
func (r *Source) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(r.rem) == 0 {
		data, err := r.cursor.Next(r.ctx)
		if err != nil {
			if err != io.EOF {
				r.logger.Debug("source terminated", logpkg.Err(err))
			}
			return 0, err
		}
		r.rem = data
	}
	n := copy(p, r.rem)
	r.rem = r.rem[n:]
	return n, nil
}

// WriteTo implements io.WriterTo, handing the cursor's slices to w without
// the intermediate copy Read needs.
func (r *Source) WriteTo(w io.Writer) (int64, error) {
	var total int64
	if len(r.rem) > 0 {
		n, err := w.Write(r.rem)
		total += int64(n)
		r.rem = r.rem[n:]
		if err != nil {
			return total, err
		}
	}
	for {
		data, err := r.cursor.Next(r.ctx)
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			r.logger.Debug("source terminated", logpkg.Err(err))
			return total, err
		}
		n, err := w.Write(data)
		total += int64(n)
		if err != nil {
			return total, err
		}
		if n != len(data) {
			return total, io.ErrShortWrite
		}
	}
}

var (
	_ io.Reader   = (*Source)(nil)
	_ io.WriterTo = (*Source)(nil)
)
