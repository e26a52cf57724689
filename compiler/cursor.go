package compiler

import (
	"unicode/utf8"

	"github.com/chazu/potato/diag"
)

// EOF is the rune Cursor reports once the input is exhausted.
const EOF rune = -1

// Cursor reads source text one character at a time and tracks the position
// of the next unread character. It never rewinds.
type Cursor struct {
	src string
	pos diag.Position
}

// NewCursor returns a cursor at the start of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src, pos: diag.Position{Line: 1}}
}

// Source returns the full text being read.
func (c *Cursor) Source() string { return c.src }

// Position returns the position of the next unread character.
func (c *Cursor) Position() diag.Position { return c.pos }

// AtEOF reports whether every character has been consumed.
func (c *Cursor) AtEOF() bool { return c.pos.Offset >= len(c.src) }

// Peek returns the next character without consuming it, or EOF.
func (c *Cursor) Peek() rune {
	if c.AtEOF() {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.pos.Offset:])
	return r
}

// Next consumes and returns the next character, or EOF. A line break moves
// the position to column 0 of the following line; CRLF counts as one break.
func (c *Cursor) Next() rune {
	if c.AtEOF() {
		return EOF
	}
	r, size := utf8.DecodeRuneInString(c.src[c.pos.Offset:])
	c.pos.Offset += size

	if r == '\n' || (r == '\r' && c.Peek() != '\n') {
		c.pos.Line++
		c.pos.Column = 0
	} else {
		c.pos.Column++
	}
	return r
}

// ReadWhile consumes the longest run of characters satisfying pred and
// returns it with its range.
func (c *Cursor) ReadWhile(pred func(rune) bool) (string, diag.Range) {
	start := c.pos
	c.SkipWhile(pred)
	return c.src[start.Offset:c.pos.Offset], diag.Range{Start: start, End: c.pos}
}

// SkipWhile consumes characters while pred holds.
func (c *Cursor) SkipWhile(pred func(rune) bool) {
	for {
		r := c.Peek()
		if r == EOF || !pred(r) {
			return
		}
		c.Next()
	}
}

// rangeFrom returns the range from start to the current position.
func (c *Cursor) rangeFrom(start diag.Position) diag.Range {
	return diag.Range{Start: start, End: c.pos}
}
