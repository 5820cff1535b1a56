package linecalc

import (
	"errors"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// cursor is the unconsumed remainder of a line. Cursors are values; every
// method that consumes input returns a new cursor.
type cursor struct {
	// rest is the text not yet consumed.
	rest string
	// col is the 1-based rune column of the first rune of rest.
	col int
}

func newCursor(src string) cursor {
	return cursor{rest: src, col: 1}
}

// eof returns whether there is no more input.
func (c cursor) eof() bool {
	return c.rest == ""
}

// consume advances past want if it is the next rune. The second result is
// false, and c is returned unchanged, if it is not.
func (c cursor) consume(want rune) (cursor, bool) {
	r, sz := utf8.DecodeRuneInString(c.rest)
	if sz == 0 || r != want {
		return c, false
	}
	return cursor{rest: c.rest[sz:], col: c.col + 1}, true
}

// next scans the next rune. The last result is false at the end of input.
func (c cursor) next() (rune, cursor, bool) {
	r, sz := utf8.DecodeRuneInString(c.rest)
	if sz == 0 {
		return 0, c, false
	}
	return r, cursor{rest: c.rest[sz:], col: c.col + 1}, true
}

// peek returns the next rune without consuming it.
func (c cursor) peek() (rune, bool) {
	r, _, ok := c.next()
	return r, ok
}

// spaces skips any number of ASCII spaces. Other whitespace is not skipped.
func (c cursor) spaces() cursor {
	i := 0
	for i < len(c.rest) && c.rest[i] == ' ' {
		i++
	}
	return cursor{rest: c.rest[i:], col: c.col + i}
}

// numre matches a number literal: an optional minus sign, digits, and
// optionally a decimal point followed by more digits.
var numre = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?`)

// float scans a number literal. The last result is false if the input does
// not start with one.
func (c cursor) float() (float64, cursor, bool) {
	s := numre.FindString(c.rest)
	if s == "" {
		return 0, c, false
	}
	f, err := strconv.ParseFloat(s, 64)
	// The pattern admits only valid syntax, so any error is a range error and
	// f is already ±Inf.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, c, false
	}
	// The pattern is ASCII only, so bytes and runes coincide.
	return f, cursor{rest: c.rest[len(s):], col: c.col + len(s)}, true
}
