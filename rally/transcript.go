package rally

import (
	"fmt"
	"io"
	"sync"
)

// Transcript collects the output lines of a match and writes each one through to w.
type Transcript struct {
	mu    sync.Mutex
	w     io.Writer
	lines []string
	err   error
}

// NewTranscript returns a Transcript writing to w. A nil w only records.
func NewTranscript(w io.Writer) *Transcript {
	return &Transcript{w: w}
}

// Record appends line and writes it followed by a newline.
// The first write error is kept and later writes are skipped.
func (t *Transcript) Record(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = append(t.lines, line)
	if t.w == nil || t.err != nil {
		return
	}
	if _, err := fmt.Fprintln(t.w, line); err != nil {
		t.err = err
	}
}

// Lines returns a copy of every recorded line in order.
func (t *Transcript) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	lines := make([]string, len(t.lines))
	copy(lines, t.lines)
	return lines
}

// Len returns how many lines were recorded.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lines)
}

// Err returns the first write error, if any.
func (t *Transcript) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}
