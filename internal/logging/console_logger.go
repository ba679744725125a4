// Package logging provides concrete implementations of the ecomadmin.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: writes prefixed lines to stderr (or any io.Writer)
//   - NullLogger: discards all messages
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// ConsoleLogger writes log lines to a writer, stderr by default.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	out     io.Writer
	mu      sync.Mutex
}

var (
	_ ecomadmin.Logger = (*ConsoleLogger)(nil)
	_ ecomadmin.Logger = (*NullLogger)(nil)
)

// NewConsoleLogger creates a stderr logger. Verbose() is a no-op unless verbose is true.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewWriterLogger(os.Stderr, verbose)
}

// NewWriterLogger creates a logger writing to out.
func NewWriterLogger(out io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{verbose: verbose, out: out}
}

func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] ", format, args)
}

func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("[ERROR] ", format, args)
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) == 0 {
		fmt.Fprint(l.out, prefix+format+"\n")
		return
	}
	fmt.Fprintf(l.out, prefix+format+"\n", args...)
}

// NullLogger discards all log messages.
type NullLogger struct{}

func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}
func (l *NullLogger) Info(format string, args ...interface{})    {}
func (l *NullLogger) Error(format string, args ...interface{})   {}
