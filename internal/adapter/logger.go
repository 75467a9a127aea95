package adapter

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Logger is the host-supplied log sink. The adapter only calls Info;
// the remaining severities exist for host symmetry with its own
// logging protocol.
type Logger interface {
	Error(msg string)
	Warn(msg string)
	Info(msg string)
	Debug(msg string)
	Trace(err error)
}

// WriterLogger writes every message as one line to an io.Writer.
type WriterLogger struct {
	W io.Writer
}

func (l WriterLogger) Error(msg string) { fmt.Fprintln(l.W, msg) }
func (l WriterLogger) Warn(msg string)  { fmt.Fprintln(l.W, msg) }
func (l WriterLogger) Info(msg string)  { fmt.Fprintln(l.W, msg) }
func (l WriterLogger) Debug(msg string) { fmt.Fprintln(l.W, msg) }
func (l WriterLogger) Trace(err error)  { fmt.Fprintln(l.W, err) }

// BufferLogger accumulates an ordered sequence of lines from
// possibly-concurrent writers. Appends are serialized by a mutex and
// Snapshot returns an atomic copy, so a single BufferLogger can be
// shared across concurrently-executing tasks without corruption.
type BufferLogger struct {
	mu    sync.Mutex
	lines []string
}

// NewBufferLogger creates an empty buffer logger.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (l *BufferLogger) Error(msg string) { l.append(msg) }
func (l *BufferLogger) Warn(msg string)  { l.append(msg) }
func (l *BufferLogger) Info(msg string)  { l.append(msg) }
func (l *BufferLogger) Debug(msg string) { l.append(msg) }
func (l *BufferLogger) Trace(err error)  { l.append(err.Error()) }

func (l *BufferLogger) append(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, msg)
}

// Snapshot returns a copy of the accumulated lines in append order.
func (l *BufferLogger) Snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// SlogLogger bridges the host logger contract to log/slog. Trace maps
// to Debug with the error attached; slog has no finer level.
type SlogLogger struct {
	L *slog.Logger
}

func (l SlogLogger) Error(msg string) { l.L.Error(msg) }
func (l SlogLogger) Warn(msg string)  { l.L.Warn(msg) }
func (l SlogLogger) Info(msg string)  { l.L.Info(msg) }
func (l SlogLogger) Debug(msg string) { l.L.Debug(msg) }
func (l SlogLogger) Trace(err error)  { l.L.Debug("trace", "err", err) }
