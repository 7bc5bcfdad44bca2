package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the interface for debug output from tests and harness components.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards all output.
func NullLogger() Logger { return nullLogger{} }

// CapturedMessage is a timestamped line of debug output from a test.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger accumulates debug output in memory so that it can be shown
// after a test finishes, depending on whether the test failed and on the
// verbosity options for the run.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes each captured message to dest with the given line prefix.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}

// WriterLogger returns a Logger that writes timestamped lines to w.
func WriterLogger(w io.Writer) Logger {
	return writerLogger{w: w}
}

type writerLogger struct {
	w io.Writer
}

func (l writerLogger) Printf(message string, args ...interface{}) {
	fmt.Fprintf(l.w, "[%s] %s\n", time.Now().Format(timestampFormat), fmt.Sprintf(message, args...))
}

// PrefixedLogger returns a Logger that forwards to another Logger, prepending
// a fixed prefix to every message. The harness uses this to distinguish output
// from subcomponents such as the cached API client.
func PrefixedLogger(base Logger, prefix string) Logger {
	return prefixedLogger{base: base, prefix: prefix}
}

type prefixedLogger struct {
	base   Logger
	prefix string
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.base.Printf(p.prefix+message, args...)
}
