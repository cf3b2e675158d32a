// Package zish implements the zish data-interchange format: a textual,
// JSON-like format with exact decimals, raw byte strings, and
// timestamps, plus strict canonicalization on output and strict
// validation on input.
//
// # Data Model
//
// Scalars: null, bool, integer (arbitrary precision), decimal (exact,
// never a binary float), string, bytes, timestamp.
// Containers: list (ordered), map (unique keys).
//
// Map keys may be any scalar except null; lists and maps are rejected
// as keys at parse time, as are duplicate keys. A decoded map keeps its
// textual entry order; an encoded map is always emitted in canonical
// key order, so decode order and encode order deliberately differ.
//
// # Syntax
//
//	{
//	  "name": "kshhgrl",           // strings are double-quoted
//	  "count": 42,
//	  "ratio": 7.99E-2,            // decimals carry a '.' or exponent
//	  "payload": 'a3NoaGdybA==',   // bytes are single-quoted base64
//	  "seen": 2023-01-15T10:30:00Z,
//	  "tags": ["a", "b",],         // trailing commas are permitted
//	}
//
// Line comments (//) are trivia. ASCII whitespace and the no-break
// space separate tokens.
//
// # Canonical Form
//
// Encode produces the unique canonical text for a value: map entries
// sorted by a fixed total order, one element per line, two-space
// indentation, a trailing comma after every element, reduced decimal
// coefficients with an uppercase exponent marker, and UTC timestamps
// rendered with Z. Encoding the same logical value always yields
// byte-identical text, however the value was constructed.
//
// # Errors
//
// Decode and Encode fail with a positioned *Error carrying a kind
// (ScanError, SyntaxError, SemanticError, EncodeError), a message, and
// a 1-based line/column. There are no partial results.
package zish
