// Package scanner implements the barcode intake contract shared by
// scanner front-ends: keystrokes accumulate into a buffer and become a
// scan once the buffer reaches the minimum length and the input goes
// idle, or an explicit Enter arrives, whichever happens first.
package scanner

import (
	"strings"
	"time"
)

const (
	DefaultMinLength  = 8
	DefaultIdleWindow = 300 * time.Millisecond
)

// Capture is a single-scan keystroke buffer. Not safe for concurrent
// use; each input source owns its own Capture.
type Capture struct {
	MinLength  int
	IdleWindow time.Duration

	buf      strings.Builder
	lastKey  time.Time
	hasInput bool
}

func NewCapture() *Capture {
	return &Capture{MinLength: DefaultMinLength, IdleWindow: DefaultIdleWindow}
}

// Key feeds one keystroke. Enter ('\r' or '\n') terminates the scan
// immediately and returns the buffered code; any other rune is
// appended.
func (c *Capture) Key(r rune, at time.Time) (string, bool) {
	if r == '\r' || r == '\n' {
		return c.flush()
	}
	c.buf.WriteRune(r)
	c.lastKey = at
	c.hasInput = true
	return "", false
}

// Tick reports whether the buffer has settled into a scan: length at
// or past the threshold and no keystroke within the idle window.
func (c *Capture) Tick(at time.Time) (string, bool) {
	if !c.hasInput {
		return "", false
	}
	if c.buf.Len() < c.minLength() {
		return "", false
	}
	if at.Sub(c.lastKey) < c.idleWindow() {
		return "", false
	}
	return c.flush()
}

// Pending returns the buffered input without consuming it.
func (c *Capture) Pending() string {
	return c.buf.String()
}

func (c *Capture) flush() (string, bool) {
	code := c.buf.String()
	c.buf.Reset()
	c.hasInput = false
	if code == "" {
		return "", false
	}
	return code, true
}

func (c *Capture) minLength() int {
	if c.MinLength <= 0 {
		return DefaultMinLength
	}
	return c.MinLength
}

func (c *Capture) idleWindow() time.Duration {
	if c.IdleWindow <= 0 {
		return DefaultIdleWindow
	}
	return c.IdleWindow
}
