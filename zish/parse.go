package zish

import (
	"encoding/base64"
	"math/big"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// DecodeOptions configures the decoder.
type DecodeOptions struct {
	// MaxDepth bounds container nesting so adversarial input fails
	// with a diagnostic instead of exhausting the call stack.
	MaxDepth int
}

// DefaultDecodeOptions returns the default decoder configuration.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{MaxDepth: 1000}
}

// Decode parses a complete zish document into a single Value. The
// input must hold exactly one top-level value; anything after it is an
// error. Failures are *Error diagnostics with a 1-based line/column.
func Decode(input string) (*Value, error) {
	return DecodeWithOptions(input, DefaultDecodeOptions())
}

// DecodeWithOptions parses with an explicit configuration.
func DecodeWithOptions(input string, opts DecodeOptions) (*Value, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultDecodeOptions().MaxDepth
	}

	p := &parser{sc: newScanner(input), maxDepth: opts.MaxDepth}
	if err := p.advance(); err != nil {
		return nil, err
	}
	v, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}
	if p.tok.typ != tokenEOF {
		return nil, errAt(SyntaxError, p.tok.pos,
			"expected end of input, but found %s", p.tok.typ)
	}
	return v, nil
}

// parser drives the scanner with a single token of lookahead and
// builds one Value by recursive descent.
type parser struct {
	sc       *scanner
	tok      token
	maxDepth int
}

func (p *parser) advance() error {
	tok, err := p.sc.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// accept consumes the current token and returns v.
func (p *parser) accept(v *Value) (*Value, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	return v, nil
}

func (p *parser) parseValue(depth int) (*Value, error) {
	if depth > p.maxDepth {
		return nil, errAt(SyntaxError, p.tok.pos,
			"nesting deeper than %d levels", p.maxDepth)
	}

	tok := p.tok
	switch tok.typ {
	case tokenNull:
		return p.accept(Null())

	case tokenTrue:
		return p.accept(Bool(true))

	case tokenFalse:
		return p.accept(Bool(false))

	case tokenInt:
		n, ok := new(big.Int).SetString(tok.text, 10)
		if !ok {
			return nil, errAt(SemanticError, tok.pos,
				"the integer %q is not recognized", tok.text)
		}
		return p.accept(IntBig(n))

	case tokenDecimal:
		d, _, err := apd.NewFromString(tok.text)
		if err != nil {
			return nil, errAt(SemanticError, tok.pos,
				"the decimal %q is not recognized", tok.text)
		}
		return p.accept(Dec(d))

	case tokenString:
		return p.accept(Str(tok.text))

	case tokenBytes:
		raw, err := base64.StdEncoding.Strict().DecodeString(strings.TrimSpace(tok.text))
		if err != nil {
			return nil, errAt(SemanticError, tok.pos,
				"the bytes literal is not valid base64")
		}
		return p.accept(Bytes(raw))

	case tokenTimestamp:
		t, err := parseTimestamp(tok.text)
		if err != nil {
			return nil, errAt(SemanticError, tok.pos,
				"%q is not a valid timestamp", tok.text)
		}
		return p.accept(Time(t))

	case tokenLBracket:
		return p.parseList(depth)

	case tokenLBrace:
		return p.parseMap(depth)

	case tokenEOF:
		return nil, errAt(SyntaxError, tok.pos,
			"unexpected end of input: expected a value")

	default:
		return nil, errAt(SyntaxError, tok.pos,
			"expected a value, but found %s", tok.typ)
	}
}

func (p *parser) parseList(depth int) (*Value, error) {
	if err := p.advance(); err != nil { // consume [
		return nil, err
	}

	var elems []*Value
	for {
		if p.tok.typ == tokenRBracket {
			return p.accept(List(elems...))
		}

		elem, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)

		switch p.tok.typ {
		case tokenComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokenRBracket:
			return p.accept(List(elems...))
		case tokenEOF:
			return nil, errAt(SyntaxError, p.tok.pos,
				"unexpected end of input: expected ',' or ']'")
		default:
			return nil, errAt(SyntaxError, p.tok.pos,
				"expected ',' or ']', but found %s", p.tok.typ)
		}
	}
}

func (p *parser) parseMap(depth int) (*Value, error) {
	if err := p.advance(); err != nil { // consume {
		return nil, err
	}

	var entries []MapEntry
	for {
		if p.tok.typ == tokenRBrace {
			return p.accept(Map(entries...))
		}

		keyPos := p.tok.pos
		key, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		if !isKeyKind(key) {
			return nil, errAt(SemanticError, keyPos,
				"a %s is not allowed as a map key", key.Kind())
		}
		for _, e := range entries {
			if Equal(e.Key, key) {
				return nil, errAt(SemanticError, keyPos,
					"duplicate map key %s", canonScalar(key))
			}
		}

		if p.tok.typ != tokenColon {
			if p.tok.typ == tokenEOF {
				return nil, errAt(SyntaxError, p.tok.pos,
					"unexpected end of input: expected ':' after map key")
			}
			return nil, errAt(SyntaxError, p.tok.pos,
				"expected ':' after map key, but found %s", p.tok.typ)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}

		val, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, MapEntry{Key: key, Value: val})

		switch p.tok.typ {
		case tokenComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokenRBrace:
			return p.accept(Map(entries...))
		case tokenEOF:
			return nil, errAt(SyntaxError, p.tok.pos,
				"unexpected end of input: expected ',' or '}'")
		default:
			return nil, errAt(SyntaxError, p.tok.pos,
				"expected ',' or '}', but found %s", p.tok.typ)
		}
	}
}

// parseTimestamp validates a lexically timestamp-shaped token. The
// scanner guarantees the shape; calendar validity (month/day ranges,
// leap days) is checked here. A lowercase 'z' offset is accepted.
func parseTimestamp(text string) (time.Time, error) {
	if text[len(text)-1] == 'z' {
		text = text[:len(text)-1] + "Z"
	}
	return time.Parse(time.RFC3339, text)
}
