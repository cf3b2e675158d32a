package zish

import "fmt"

// ErrKind classifies codec failures.
type ErrKind uint8

const (
	// ScanError marks a malformed or unterminated lexical token.
	ScanError ErrKind = iota
	// SyntaxError marks a grammar violation: an unexpected token or
	// unexpected end of input.
	SyntaxError
	// SemanticError marks input that scans and parses but violates a
	// format rule: a forbidden key type, a duplicate key, or an invalid
	// literal value such as a bad calendar date or broken base64.
	SemanticError
	// EncodeError marks a value that cannot be represented in the
	// format. It carries no position since encoding has no source text.
	EncodeError
)

// String returns the kind name.
func (k ErrKind) String() string {
	switch k {
	case ScanError:
		return "scan error"
	case SyntaxError:
		return "syntax error"
	case SemanticError:
		return "semantic error"
	case EncodeError:
		return "encode error"
	default:
		return "unknown error"
	}
}

// Error is a structured codec diagnostic: a kind, a message, and the
// 1-based source position of the failure.
type Error struct {
	Kind    ErrKind
	Message string
	Pos     Position
}

func (e *Error) Error() string {
	if e.Kind == EncodeError {
		return fmt.Sprintf("zish: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("zish: %s: %s at %s", e.Kind, e.Message, e.Pos)
}

func errAt(kind ErrKind, pos Position, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

func encodeErrf(format string, args ...any) *Error {
	return &Error{
		Kind:    EncodeError,
		Message: fmt.Sprintf(format, args...),
	}
}

// errMessage extracts the bare message from a codec error so nested
// errors read as a single path-qualified diagnostic.
func errMessage(err error) string {
	if zerr, ok := err.(*Error); ok {
		return zerr.Message
	}
	return err.Error()
}
