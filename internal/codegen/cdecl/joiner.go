package cdecl

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var (
	// ErrInterrupted is returned when an empty line arrives before a
	// declaration's parentheses balance.
	ErrInterrupted = errors.New("empty line before parentheses balanced")
	// ErrTruncated is returned when input ends before parentheses balance.
	ErrTruncated = errors.New("input ended before parentheses balanced")
)

const maxLineSize = 1 << 20

// LineReader hands out input lines one by one and remembers the line number.
type LineReader struct {
	sc   *bufio.Scanner
	line int
}

func NewLineReader(r io.Reader) *LineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &LineReader{sc: sc}
}

// Next returns the next raw line (without its newline) and false at end of input.
func (r *LineReader) Next() (string, bool) {
	if !r.sc.Scan() {
		return "", false
	}
	r.line++
	return r.sc.Text(), true
}

// Line is the 1-based number of the line last returned by Next.
func (r *LineReader) Line() int { return r.line }

// Err reports a read error other than io.EOF.
func (r *LineReader) Err() error { return r.sc.Err() }

// JoinDeclaration merges first with the following lines until its
// parentheses balance. Lines are stripped and joined with a single space.
// An empty line stops the join with ErrInterrupted, end of input with
// ErrTruncated; the partial text is returned in both cases.
func JoinDeclaration(first string, r *LineReader) (string, error) {
	joined := strings.TrimSpace(StripLineComment(first))
	for {
		if depth, _ := Balance(joined); depth <= 0 {
			return joined, nil
		}
		next, ok := r.Next()
		if !ok {
			return joined, ErrTruncated
		}
		next = strings.TrimSpace(StripLineComment(next))
		if next == "" {
			return joined, ErrInterrupted
		}
		joined += " " + next
	}
}

// JoinCall is the call-expression variant of JoinDeclaration: it waits for
// the first opening parenthesis, skips empty lines and only stops early at
// end of input.
func JoinCall(first string, r *LineReader) (string, error) {
	joined := strings.TrimSpace(StripLineComment(first))
	for {
		if depth, opened := Balance(joined); opened && depth <= 0 {
			return joined, nil
		}
		next, ok := r.Next()
		if !ok {
			return joined, ErrTruncated
		}
		next = strings.TrimSpace(StripLineComment(next))
		if next == "" {
			continue
		}
		joined += " " + next
	}
}
