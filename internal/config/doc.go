// Package config holds the declarative configuration for streambuffer
// binaries: buffer defaults (retention window, per-read cap), pump tuning,
// and logging. Values come from built-in defaults, optionally a JSON file,
// and STREAMBUF_* environment overlays, in that order.
package config
