package parser

import (
	"bufio"
	"io"
)

const maxLineLength = 1 << 20

// cursor is the forward-only line reader shared by the dispatcher and the
// section handlers.
type cursor struct {
	sc      *bufio.Scanner
	pending string
	peeked  bool
	done    bool
	num     int
}

func newCursor(r io.Reader) *cursor {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLength)
	return &cursor{sc: sc}
}

// peek returns the next line without consuming it.
func (c *cursor) peek() (string, bool) {
	if c.peeked {
		return c.pending, true
	}
	if c.done || !c.sc.Scan() {
		c.done = true
		return "", false
	}
	c.pending = c.sc.Text()
	c.peeked = true
	return c.pending, true
}

// next consumes the next line. num is updated to its 1-based line number.
func (c *cursor) next() (string, bool) {
	line, ok := c.peek()
	if !ok {
		return "", false
	}
	c.peeked = false
	c.num++
	return line, true
}

func (c *cursor) err() error {
	return c.sc.Err()
}
