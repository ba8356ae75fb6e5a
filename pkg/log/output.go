package log

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// ConsoleOutput writes formatted entries to stderr. Levels are colorized
// only when stderr is a terminal.
type ConsoleOutput struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewConsoleOutput creates a ConsoleOutput bound to stderr.
func NewConsoleOutput() *ConsoleOutput {
	return &ConsoleOutput{
		w:     os.Stderr,
		color: isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
	}
}

var levelColors = map[Level]string{
	DebugLevel: "\x1b[36m", // cyan
	InfoLevel:  "\x1b[32m", // green
	WarnLevel:  "\x1b[33m", // yellow
	ErrorLevel: "\x1b[31m", // red
	FatalLevel: "\x1b[35m", // magenta
}

// Write implements Output.
func (o *ConsoleOutput) Write(entry *Entry, formatted []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.color {
		if c, ok := levelColors[entry.Level]; ok {
			if _, err := io.WriteString(o.w, c); err != nil {
				return err
			}
			if _, err := o.w.Write(formatted[:len(formatted)-1]); err != nil {
				return err
			}
			_, err := io.WriteString(o.w, "\x1b[0m\n")
			return err
		}
	}
	_, err := o.w.Write(formatted)
	return err
}

// Close implements Output. Stderr is never closed.
func (o *ConsoleOutput) Close() error { return nil }

// WriterOutput writes formatted entries to an arbitrary io.Writer. It is
// mainly useful in tests.
type WriterOutput struct {
	mu sync.Mutex
	W  io.Writer
}

// Write implements Output.
func (o *WriterOutput) Write(_ *Entry, formatted []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := o.W.Write(formatted)
	return err
}

// Close implements Output.
func (o *WriterOutput) Close() error { return nil }

// NullOutput discards everything.
type NullOutput struct{}

// Write implements Output.
func (NullOutput) Write(*Entry, []byte) error { return nil }

// Close implements Output.
func (NullOutput) Close() error { return nil }
