// Package telemetry writes JSONL app logs. The browser core runs inside a
// fullscreen terminal UI, so logs go to a file, never stdout.
package telemetry

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

type Logger struct {
	mu   *sync.Mutex
	w    io.WriteCloser
	base map[string]any
}

// NewLogger opens a JSONL log at path. An empty path yields a logger that
// discards everything.
func NewLogger(path string) (*Logger, error) {
	if path == "" {
		return &Logger{mu: &sync.Mutex{}, w: nopCloser{Writer: io.Discard}}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Logger{mu: &sync.Mutex{}, w: f}, nil
}

// With returns a logger that attaches fields to every entry. The returned
// logger shares the destination and its lock.
func (l *Logger) With(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	merged := make(map[string]any, len(l.base)+len(fields))
	for k, v := range l.base {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{mu: l.mu, w: l.w, base: merged}
}

func (l *Logger) Info(msg string, fields map[string]any)  { l.log("info", msg, fields) }
func (l *Logger) Warn(msg string, fields map[string]any)  { l.log("warn", msg, fields) }
func (l *Logger) Error(msg string, fields map[string]any) { l.log("error", msg, fields) }

func (l *Logger) log(level, msg string, fields map[string]any) {
	if l == nil || l.w == nil {
		return
	}
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"msg":   msg,
	}
	for k, v := range l.base {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}
	b, _ := json.Marshal(entry)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(b, '\n'))
}

func (l *Logger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
