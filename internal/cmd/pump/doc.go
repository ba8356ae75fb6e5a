// Package pumprun exposes a shared Run entrypoint used by the CLI to move
// bytes from an input through a bounded in-memory buffer to an output,
// handling lifecycle and shutdown.
//
// Example:
//
//	opts := pumprun.Options{In: os.Stdin, Out: os.Stdout, Retention: 1 << 20, Config: config.Default()}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = pumprun.Run(ctx, opts)
package pumprun
