package zish

import (
	"fmt"
	"unicode/utf8"
)

// Position represents a source location.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, counted in runes
	Offset int // byte offset into the input
}

// String returns position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// posTracker converts byte offsets into line/column positions. It is
// forward-only: successive offsets passed to at must not decrease,
// which holds for a single scan over the input.
//
// Every recognized Unicode line terminator counts as one line break:
// LF, CR, CRLF (as a single break), NEL (U+0085), LS (U+2028), and
// PS (U+2029).
type posTracker struct {
	input string
	off   int
	line  int
	col   int
}

func newPosTracker(input string) *posTracker {
	return &posTracker{input: input, line: 1, col: 1}
}

// at returns the position of the given byte offset. Offsets inside a
// multi-byte sequence are a programming error, not a runtime error.
func (t *posTracker) at(offset int) Position {
	for t.off < offset && t.off < len(t.input) {
		r, size := utf8.DecodeRuneInString(t.input[t.off:])
		t.off += size
		switch r {
		case '\n', '\u0085', '\u2028', '\u2029':
			t.line++
			t.col = 1
		case '\r':
			if t.off < len(t.input) && t.input[t.off] == '\n' {
				t.off++
			}
			t.line++
			t.col = 1
		default:
			t.col++
		}
	}
	return Position{Line: t.line, Column: t.col, Offset: offset}
}
