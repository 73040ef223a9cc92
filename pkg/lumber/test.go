package lumber

import (
	"fmt"
	"sync"
)

// NewTestLogger returns a logger that discards everything, for use in tests.
func NewTestLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Fatalf(string, ...interface{}) {}
func (nopLogger) Panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}
func (l nopLogger) WithFields(Fields) Logger { return l }

// BufferLogger keeps every formatted line in memory.
type BufferLogger struct {
	mu    sync.Mutex
	lines []string
}

// NewBufferLogger returns an empty BufferLogger.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (b *BufferLogger) record(format string, args ...interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

// Lines returns a copy of the recorded lines.
func (b *BufferLogger) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

func (b *BufferLogger) Debugf(format string, args ...interface{}) { b.record(format, args...) }
func (b *BufferLogger) Infof(format string, args ...interface{})  { b.record(format, args...) }
func (b *BufferLogger) Warnf(format string, args ...interface{})  { b.record(format, args...) }
func (b *BufferLogger) Errorf(format string, args ...interface{}) { b.record(format, args...) }
func (b *BufferLogger) Fatalf(format string, args ...interface{}) { b.record(format, args...) }
func (b *BufferLogger) Panicf(format string, args ...interface{}) {
	b.record(format, args...)
	panic(fmt.Sprintf(format, args...))
}

// WithFields returns the same buffer, fields are not recorded.
func (b *BufferLogger) WithFields(Fields) Logger { return b }
