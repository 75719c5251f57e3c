package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// TraceLogger records every joined logical line a scanner looked at.
type TraceLogger interface {
	Log(kind string, line int, text string)
}

// traceLogger implements TraceLogger with thread-safe output.
type traceLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTrace creates a new TraceLogger. If writer is nil, returns a no-op logger.
func NewTrace(w io.Writer) TraceLogger {
	return &traceLogger{w: w}
}

// Log emits a single line with timestamp, kind ("decl", "call") and the
// input line the text started on.
func (r *traceLogger) Log(kind string, line int, text string) {
	if r == nil || r.w == nil || text == "" {
		return
	}

	out := fmt.Sprintf("%s %-4s line %d: %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		kind,
		line,
		strings.ReplaceAll(text, "\n", " "))

	r.mu.Lock()
	_, _ = io.WriteString(r.w, out)
	r.mu.Unlock()
}
