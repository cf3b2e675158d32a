package zish

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// tokenType represents the type of a scanner token.
type tokenType uint8

const (
	tokenEOF tokenType = iota

	// Structural
	tokenLBrace   // {
	tokenRBrace   // }
	tokenLBracket // [
	tokenRBracket // ]
	tokenColon    // :
	tokenComma    // ,

	// Keywords
	tokenNull
	tokenTrue
	tokenFalse

	// Literals
	tokenInt       // 123, -456
	tokenDecimal   // 1.23, 7E2, -4.56e-7
	tokenString    // "quoted string"
	tokenBytes     // 'base64 body'
	tokenTimestamp // 2023-01-15T10:30:00Z
)

// String returns the token type the way the parser names it in
// diagnostics.
func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenColon:
		return "':'"
	case tokenComma:
		return "','"
	case tokenNull:
		return "'null'"
	case tokenTrue:
		return "'true'"
	case tokenFalse:
		return "'false'"
	case tokenInt:
		return "an integer"
	case tokenDecimal:
		return "a decimal"
	case tokenString:
		return "a string"
	case tokenBytes:
		return "a bytes literal"
	case tokenTimestamp:
		return "a timestamp"
	default:
		return "unknown token"
	}
}

// token is one lexical token. For strings, text holds the decoded
// contents; for bytes, the raw base64 body; otherwise the literal text.
type token struct {
	typ  tokenType
	text string
	pos  Position
}

// Literal shapes. Compiled once at process start and only ever read.
// Timestamp matching is shape-only: digit ranges and calendar validity
// are checked at parse time.
var (
	reInteger   = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)$`)
	reDecimal   = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
	reTimestamp = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?([zZ]|[+-][0-9]{2}:[0-9]{2})$`)
)

// scanner produces tokens on demand, each call resuming where the
// previous one left off. It never rewinds; the parser's single token
// of lookahead lives in the parser, not here.
type scanner struct {
	input string
	pos   int
	track *posTracker
}

func newScanner(input string) *scanner {
	return &scanner{input: input, track: newPosTracker(input)}
}

// next returns the next token, skipping whitespace and comments.
func (s *scanner) next() (token, error) {
	if err := s.skipTrivia(); err != nil {
		return token{}, err
	}

	if s.pos >= len(s.input) {
		return token{typ: tokenEOF, pos: s.track.at(s.pos)}, nil
	}

	pos := s.track.at(s.pos)
	c := s.input[s.pos]

	switch c {
	case '{':
		s.pos++
		return token{typ: tokenLBrace, text: "{", pos: pos}, nil
	case '}':
		s.pos++
		return token{typ: tokenRBrace, text: "}", pos: pos}, nil
	case '[':
		s.pos++
		return token{typ: tokenLBracket, text: "[", pos: pos}, nil
	case ']':
		s.pos++
		return token{typ: tokenRBracket, text: "]", pos: pos}, nil
	case ':':
		s.pos++
		return token{typ: tokenColon, text: ":", pos: pos}, nil
	case ',':
		s.pos++
		return token{typ: tokenComma, text: ",", pos: pos}, nil
	case '"':
		return s.scanString(pos)
	case '\'':
		return s.scanBytes(pos)
	}

	if c == '+' || c == '-' || isDigit(c) || isLetter(c) {
		return s.scanBare(pos)
	}

	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])
	return token{}, errAt(ScanError, pos, "unexpected character %q", r)
}

// skipTrivia skips whitespace (ASCII whitespace plus no-break space)
// and // line comments.
func (s *scanner) skipTrivia() error {
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			s.pos++
		case c == '/':
			if s.pos+1 < len(s.input) && s.input[s.pos+1] == '/' {
				s.pos += 2
				for s.pos < len(s.input) && s.input[s.pos] != '\n' {
					s.pos++
				}
			} else {
				return errAt(ScanError, s.track.at(s.pos), "expected '//' to start a comment")
			}
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(s.input[s.pos:])
			if r != '\u00a0' {
				return nil
			}
			s.pos += size
		default:
			return nil
		}
	}
	return nil
}

// scanString scans a double-quoted string, decoding escape sequences
// inline.
func (s *scanner) scanString(pos Position) (token, error) {
	s.pos++ // opening quote

	var sb strings.Builder
	for {
		if s.pos >= len(s.input) {
			return token{}, errAt(ScanError, pos, "unterminated string literal")
		}
		c := s.input[s.pos]
		switch c {
		case '"':
			s.pos++
			return token{typ: tokenString, text: sb.String(), pos: pos}, nil
		case '\\':
			if err := s.scanEscape(&sb); err != nil {
				return token{}, err
			}
		default:
			sb.WriteByte(c)
			s.pos++
		}
	}
}

// scanEscape decodes one escape sequence, cursor on the backslash.
func (s *scanner) scanEscape(sb *strings.Builder) error {
	escPos := s.track.at(s.pos)
	s.pos++ // backslash
	if s.pos >= len(s.input) {
		return errAt(ScanError, escPos, "unterminated escape sequence")
	}

	c := s.input[s.pos]
	s.pos++
	switch c {
	case '0':
		sb.WriteByte(0x00)
	case 'a':
		sb.WriteByte(0x07)
	case 'b':
		sb.WriteByte(0x08)
	case 't':
		sb.WriteByte('\t')
	case 'n':
		sb.WriteByte('\n')
	case 'v':
		sb.WriteByte(0x0b)
	case 'f':
		sb.WriteByte(0x0c)
	case 'r':
		sb.WriteByte('\r')
	case '"', '\'', '?', '\\', '/':
		sb.WriteByte(c)
	case '\n':
		// Escaped line break: joins physical lines, contributes nothing.
	case '\r':
		if s.pos < len(s.input) && s.input[s.pos] == '\n' {
			s.pos++
		}
	case 'x':
		return s.scanHexEscape(sb, 2, escPos)
	case 'u':
		return s.scanHexEscape(sb, 4, escPos)
	case 'U':
		return s.scanHexEscape(sb, 8, escPos)
	default:
		return errAt(ScanError, escPos, `invalid escape sequence '\%c'`, c)
	}
	return nil
}

func (s *scanner) scanHexEscape(sb *strings.Builder, digits int, escPos Position) error {
	if s.pos+digits > len(s.input) {
		return errAt(ScanError, escPos, "escape sequence needs %d hex digits", digits)
	}
	n, err := strconv.ParseUint(s.input[s.pos:s.pos+digits], 16, 32)
	if err != nil {
		return errAt(ScanError, escPos, "escape sequence needs %d hex digits", digits)
	}
	if digits > 2 && !utf8.ValidRune(rune(n)) {
		return errAt(ScanError, escPos, "escape sequence denotes an invalid code point")
	}
	s.pos += digits
	sb.WriteRune(rune(n))
	return nil
}

// scanBytes scans a single-quoted bytes literal. The base64 body is
// kept as raw text; decoding to octets happens at parse time.
func (s *scanner) scanBytes(pos Position) (token, error) {
	s.pos++ // opening quote
	start := s.pos
	for s.pos < len(s.input) {
		if s.input[s.pos] == '\'' {
			body := s.input[start:s.pos]
			s.pos++
			return token{typ: tokenBytes, text: body, pos: pos}, nil
		}
		s.pos++
	}
	return token{}, errAt(ScanError, pos, "unterminated bytes literal")
}

// reTimestampStart spots the date-and-T prefix that opens a timestamp,
// whose time part contains ':' and would otherwise end a bare run. It
// is deliberately looser than reTimestamp so a near-miss shape is
// consumed whole and reported as one malformed timestamp.
// reTimestampPrefix is reTimestamp without the end anchor, used to
// give back a structural ':' trailing a timestamp map key.
var (
	reTimestampStart  = regexp.MustCompile(`^[0-9]+-[0-9]+-[0-9]+T`)
	reTimestampPrefix = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?([zZ]|[+-][0-9]{2}:[0-9]{2})`)
)

// scanBare scans an unquoted run (keyword, number, or timestamp) up to
// the next delimiter and classifies it.
func (s *scanner) scanBare(pos Position) (token, error) {
	start := s.pos
	if reTimestampStart.MatchString(s.input[start:]) {
		for s.pos < len(s.input) && isTimeChar(s.input[s.pos]) {
			s.pos++
		}
		// A timestamp key is followed by ':', which is also a time
		// character; trim the run back to the timestamp itself.
		run := s.input[start:s.pos]
		if m := reTimestampPrefix.FindString(run); m != "" && len(m) < len(run) {
			s.pos = start + len(m)
		}
	} else {
		for s.pos < len(s.input) && !s.delimitsBare() {
			s.pos++
		}
	}
	text := s.input[start:s.pos]

	switch text {
	case "null":
		return token{typ: tokenNull, text: text, pos: pos}, nil
	case "true":
		return token{typ: tokenTrue, text: text, pos: pos}, nil
	case "false":
		return token{typ: tokenFalse, text: text, pos: pos}, nil
	}

	switch {
	case reInteger.MatchString(text):
		return token{typ: tokenInt, text: text, pos: pos}, nil
	case reDecimal.MatchString(text):
		return token{typ: tokenDecimal, text: text, pos: pos}, nil
	case reTimestamp.MatchString(text):
		return token{typ: tokenTimestamp, text: text, pos: pos}, nil
	}

	switch {
	case strings.ContainsRune(text, 'T'):
		return token{}, errAt(ScanError, pos, "the timestamp %q is malformed", text)
	case text[0] == '+' || text[0] == '-' || isDigit(text[0]):
		return token{}, errAt(ScanError, pos, "malformed numeric literal %q", text)
	default:
		return token{}, errAt(ScanError, pos, "the value %q is not recognized", text)
	}
}

// delimitsBare reports whether the byte at the cursor ends an unquoted
// run: structural punctuation, quotes, a comment, or whitespace
// (including the two-byte no-break space).
func (s *scanner) delimitsBare() bool {
	c := s.input[s.pos]
	switch c {
	case '{', '}', '[', ']', ':', ',', '"', '\'', '/',
		' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	if c == 0xc2 && s.pos+1 < len(s.input) && s.input[s.pos+1] == 0xa0 {
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isTimeChar(c byte) bool {
	return isDigit(c) || c == '-' || c == ':' || c == 'T' ||
		c == 'Z' || c == 'z' || c == '+' || c == '.'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
