// Package log provides the structured logging facade used across
// streambuffer components.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Entries flow through a pluggable
// Formatter (text or JSON) to one or more Outputs. The console output only
// colors levels when stderr is a terminal.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("pump"))
//	l.Info("buffer ready", log.Int64("retention", 1<<20))
//
// # Configuration
//
// Use ApplyConfig to build a logger from a declarative Config (level and
// format strings, typically sourced from flags or STREAMBUF_* environment
// variables). RedirectStdLog routes standard-library log output through a
// Logger so third-party packages share the same stream.
package log
