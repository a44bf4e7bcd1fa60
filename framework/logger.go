package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the minimal logging interface used throughout the harness.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards everything.
func NullLogger() Logger { return nullLogger{} }

type prefixedLogger struct {
	base   Logger
	prefix string
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.base.Printf(p.prefix+message, args...)
}

// LoggerWithPrefix returns a Logger that prepends prefix to every message before passing it to
// base. A nil base is treated as NullLogger().
func LoggerWithPrefix(base Logger, prefix string) Logger {
	if base == nil {
		return NullLogger()
	}
	return prefixedLogger{base: base, prefix: prefix}
}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger accumulates messages in memory so that they can be shown later, for instance
// only if a test fails. It is safe for concurrent use.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

// Output returns a copy of everything logged so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes each captured message on its own line, with a timestamp and the given prefix.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}
