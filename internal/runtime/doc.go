// Package runtime wires config and buffers into a single-process
// streambuffer instance. It exposes Open/Close, a basic health check, and
// a registry of named buffers built from configured defaults.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{Config: cfg})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
//	store, _ := rt.EnsureBuffer("ingest")
//	_ = store.Append([]byte("hello"))
package runtime
