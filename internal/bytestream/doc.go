// Package bytestream provides the ingress and egress contracts around a
// chunkstore.Store: a Sink that producers push bytes into, and a Source
// that drains a range cursor as an io.Reader.
//
// The store itself is transport-agnostic; hosts compose these two halves
// with whatever plumbing they have.
//
// Example:
//
//	store := chunkstore.New(chunkstore.Options{RetentionWindow: 1 << 20})
//	sink := bytestream.NewSink(store, logger)
//	src := bytestream.NewSource(ctx, store.OpenRange(chunkstore.ToEnd, 0), logger)
//
//	go func() {
//	    _, _ = io.Copy(sink.Writer(), upstream)
//	    _ = sink.Complete()
//	}()
//	_, err := io.Copy(downstream, src)
package bytestream
