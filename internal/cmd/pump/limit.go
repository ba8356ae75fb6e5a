package pumprun

import (
	"io"

	"github.com/juju/ratelimit"
)

type limitedReader struct {
	io.Reader
	r *ratelimit.Bucket
}

func (l *limitedReader) Read(buf []byte) (int, error) {
	n, err := l.Reader.Read(buf)
	if l.r != nil {
		l.r.Wait(int64(n))
	}
	return n, err
}

// limitReader throttles in to rate bytes per second. rate <= 0 returns in
// unchanged.
func limitReader(in io.Reader, rate int64) io.Reader {
	if rate <= 0 {
		return in
	}
	return &limitedReader{in, ratelimit.NewBucketWithRate(float64(rate), rate)}
}
