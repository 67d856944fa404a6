// ==============================================================================
// AUDIT LOGGER PACKAGE - pkg/logger/logger.go
// ==============================================================================
package logger

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger serializes concurrent Append calls into a single ordered stream.
// Each call's line is written atomically, never interleaved with another
// caller's, and is on its way to the sink before Append returns.
type Logger interface {
	Append(line string)
}

type lineLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// New returns a Logger writing timestamped lines to out.
func New(out io.Writer) Logger {
	return &lineLogger{out: out}
}

func (l *lineLogger) Append(line string) {
	// Timestamp reflects when the caller invoked Append, not when the write
	// won the lock.
	ts := time.Now().UTC().Format(time.RFC3339Nano)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s\n", ts, line)
}

func NewNop() Logger {
	return &nopLogger{}
}

type nopLogger struct{}

func (l *nopLogger) Append(line string) {}

// Recorder is an in-memory Logger for tests and demos that need to inspect
// the audit stream. Lines are kept verbatim, without timestamps.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Append(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

// Lines returns a copy of everything appended so far.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}
