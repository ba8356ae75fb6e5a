// Package chunkstore implements the bounded, append-only byte store at the
// heart of streambuffer.
//
// # Overview
//
// A Store keeps an ordered, contiguous ledger of byte chunks, each tagged
// with its absolute offset in the logical stream. A single producer appends
// chunks; appending evicts from the front of the ledger once the retained
// span exceeds the retention window (the newest chunk is never evicted, so
// a write larger than the window still makes progress). Arbitrarily many
// readers address the stream by absolute byte range. A range that is ahead
// of the write frontier blocks until the bytes arrive, the stream ends, or
// the store is destroyed; a range behind the low-water mark fails, since
// evicted bytes are gone for good.
//
// Readers are woken by a broadcast: every append, End, and Destroy closes
// and replaces the store's notification channel, and each waiter re-checks
// its own predicate. No wake carries data.
//
// API surface (internal)
//
//	s := chunkstore.New(chunkstore.Options{RetentionWindow: 1 << 20})
//	_ = s.Append([]byte("hello"))
//
//	// Bulk read: blocks until [0, 5) is satisfied.
//	b, _ := s.ReadRange(ctx, 5, 0)
//
//	// Lazy read: handle returned immediately, bytes flow per pull.
//	cur := s.OpenRange(chunkstore.ToEnd, 0)
//	for {
//	    data, err := cur.Next(ctx)
//	    if err != nil { break } // io.EOF = clean completion
//	    _ = data
//	}
//
//	_ = s.End()            // no further writes; final length is known
//	s.Destroy(nil)         // tear down, failing all pending and future reads
//
// The shared cursor (Position/SetPosition/SeekToEnd) supplies the default
// offset for reads that do not pass one. Every defaulting read advances it
// to its own target end synchronously, before suspending, so concurrent
// defaulting readers interleave deterministically over one store.
package chunkstore
