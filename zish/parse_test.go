package zish

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func mustDecode(t *testing.T, input string) *Value {
	t.Helper()
	v, err := Decode(input)
	if err != nil {
		t.Fatalf("Decode(%q) failed: %v", input, err)
	}
	return v
}

func decodeErr(t *testing.T, input string) *Error {
	t.Helper()
	_, err := Decode(input)
	if err == nil {
		t.Fatalf("Decode(%q): expected an error", input)
	}
	var zerr *Error
	if !errors.As(err, &zerr) {
		t.Fatalf("Decode(%q): expected *Error, got %T", input, err)
	}
	return zerr
}

func TestDecode_Scalars(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"null", KindNull},
		{"true", KindBool},
		{"false", KindBool},
		{"42", KindInt},
		{"-42", KindInt},
		{"123456789012345678901234567890", KindInt},
		{"7.990", KindDecimal},
		{"1e6", KindDecimal},
		{`"hello"`, KindString},
		{"'aGk='", KindBytes},
		{"2023-01-15T10:30:00Z", KindTimestamp},
		{"2023-01-15T10:30:00z", KindTimestamp},
		{"[]", KindList},
		{"{}", KindMap},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := mustDecode(t, tt.input)
			if v.Kind() != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, v.Kind())
			}
		})
	}
}

func TestDecode_BigInteger(t *testing.T) {
	v := mustDecode(t, "123456789012345678901234567890")
	n, err := v.AsInt()
	if err != nil {
		t.Fatal(err)
	}
	if n.String() != "123456789012345678901234567890" {
		t.Errorf("magnitude not preserved: %s", n)
	}
}

func TestDecode_BytesPayload(t *testing.T) {
	v := mustDecode(t, "'a3NoaGdybA=='")
	b, err := v.AsBytes()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "kshhgrl" {
		t.Errorf("expected kshhgrl, got %q", b)
	}
}

func TestDecode_TimestampPayload(t *testing.T) {
	v := mustDecode(t, "2023-01-15T10:30:00.5+05:30")
	ts, err := v.AsTime()
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2023, 1, 15, 10, 30, 0, 500000000, time.FixedZone("", 5*3600+30*60))
	if !ts.Equal(want) {
		t.Errorf("expected %v, got %v", want, ts)
	}
	_, offset := ts.Zone()
	if offset != 5*3600+30*60 {
		t.Errorf("offset not preserved: %d", offset)
	}
}

func TestDecode_TrailingCommas(t *testing.T) {
	with := mustDecode(t, "[1, 2,]")
	without := mustDecode(t, "[1, 2]")
	if !Equal(with, without) {
		t.Error("trailing comma changed the decoded value")
	}

	m1 := mustDecode(t, `{"a": 1,}`)
	m2 := mustDecode(t, `{"a": 1}`)
	if !Equal(m1, m2) {
		t.Error("trailing comma changed the decoded map")
	}
}

func TestDecode_MapPreservesInsertionOrder(t *testing.T) {
	v := mustDecode(t, `{"b": 1, "a": 2}`)
	entries, err := v.AsMap()
	if err != nil {
		t.Fatal(err)
	}
	first, _ := entries[0].Key.AsString()
	second, _ := entries[1].Key.AsString()
	if first != "b" || second != "a" {
		t.Errorf("decode order not preserved: %q, %q", first, second)
	}
}

func TestDecode_NonStringKeys(t *testing.T) {
	v := mustDecode(t, `{true: 1, 3: 2, 2.5: 3, 'AA==': 4, 2020-01-01T00:00:00Z: 5}`)
	if v.Len() != 5 {
		t.Fatalf("expected 5 entries, got %d", v.Len())
	}
	if got := v.Get(Int(3)); got == nil || !Equal(got, Int(2)) {
		t.Error("integer key lookup failed")
	}
	if got := v.Get(Bool(true)); got == nil || !Equal(got, Int(1)) {
		t.Error("bool key lookup failed")
	}
}

func TestDecode_DuplicateKey(t *testing.T) {
	zerr := decodeErr(t, `{"a": 1, "a": 2}`)
	if zerr.Kind != SemanticError {
		t.Errorf("expected SemanticError, got %s", zerr.Kind)
	}
	if !strings.Contains(zerr.Message, `"a"`) {
		t.Errorf("message does not name the key: %q", zerr.Message)
	}
	if zerr.Pos.Line != 1 || zerr.Pos.Column != 10 {
		t.Errorf("expected position 1:10 (the duplicate), got %s", zerr.Pos)
	}
}

func TestDecode_DuplicateKeyNumericDecimal(t *testing.T) {
	// 7.99 and 7.990 are the same decimal value, so the second is a
	// duplicate even though the literal text differs.
	zerr := decodeErr(t, `{7.99: 1, 7.990: 2}`)
	if zerr.Kind != SemanticError {
		t.Errorf("expected SemanticError, got %s", zerr.Kind)
	}
}

func TestDecode_ForbiddenKeyKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  string
	}{
		{`{null: 1}`, "null"},
		{`{[1]: 1}`, "list"},
		{`{{}: 1}`, "map"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			zerr := decodeErr(t, tt.input)
			if zerr.Kind != SemanticError {
				t.Errorf("expected SemanticError, got %s", zerr.Kind)
			}
			if !strings.Contains(zerr.Message, tt.kind) {
				t.Errorf("message does not name the kind: %q", zerr.Message)
			}
			if zerr.Pos.Column != 2 {
				t.Errorf("expected the key's position (column 2), got %s", zerr.Pos)
			}
		})
	}
}

func TestDecode_SingleTopLevelValue(t *testing.T) {
	if v := mustDecode(t, "1"); !Equal(v, Int(1)) {
		t.Error("single value decode failed")
	}

	zerr := decodeErr(t, "1 2")
	if zerr.Kind != SyntaxError {
		t.Errorf("expected SyntaxError, got %s", zerr.Kind)
	}
	if zerr.Pos.Column != 3 {
		t.Errorf("expected position of the second value, got %s", zerr.Pos)
	}
}

func TestDecode_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"empty input", "", "unexpected end of input: expected a value"},
		{"missing close brace", `{"a": 1`, "unexpected end of input: expected ',' or '}'"},
		{"missing close bracket", "[1, 2", "unexpected end of input: expected ',' or ']'"},
		{"missing colon", `{"a" 1}`, "expected ':' after map key, but found an integer"},
		{"missing colon at EOF", `{"a"`, "unexpected end of input: expected ':' after map key"},
		{"value in wrong place", "[,]", "expected a value, but found ','"},
		{"colon as value", ":", "expected a value, but found ':'"},
		{"junk after value", "1 2", "expected end of input, but found an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zerr := decodeErr(t, tt.input)
			if zerr.Kind != SyntaxError {
				t.Errorf("expected SyntaxError, got %s", zerr.Kind)
			}
			if zerr.Message != tt.message {
				t.Errorf("message: expected %q, got %q", tt.message, zerr.Message)
			}
		})
	}
}

func TestDecode_ErrorAtEndOfInput(t *testing.T) {
	input := "{\"a\": {\"b\": [1, 2]"
	zerr := decodeErr(t, input)
	if zerr.Kind != SyntaxError {
		t.Errorf("expected SyntaxError, got %s", zerr.Kind)
	}
	if zerr.Pos.Offset != len(input) {
		t.Errorf("expected the error at end of input (offset %d), got offset %d",
			len(input), zerr.Pos.Offset)
	}
}

func TestDecode_SemanticLiteralErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid calendar date", "2023-02-30T00:00:00Z"},
		{"invalid month", "2023-13-01T00:00:00Z"},
		{"invalid base64", "'not base64!'"},
		{"non-canonical base64 tail", "'aGk'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zerr := decodeErr(t, tt.input)
			if zerr.Kind != SemanticError {
				t.Errorf("expected SemanticError, got %s", zerr.Kind)
			}
		})
	}
}

func TestDecode_NestingGuard(t *testing.T) {
	deep := strings.Repeat("[", 2000) + strings.Repeat("]", 2000)
	zerr := decodeErr(t, deep)
	if zerr.Kind != SyntaxError {
		t.Errorf("expected SyntaxError, got %s", zerr.Kind)
	}
	if !strings.Contains(zerr.Message, "nesting") {
		t.Errorf("unexpected message: %q", zerr.Message)
	}

	// Within the limit the same shape decodes fine.
	ok := strings.Repeat("[", 100) + strings.Repeat("]", 100)
	mustDecode(t, ok)

	// And the limit is configurable.
	_, err := DecodeWithOptions(ok, DecodeOptions{MaxDepth: 10})
	if err == nil {
		t.Error("expected a nesting error with MaxDepth 10")
	}
}

func TestDecode_CommentsAndWhitespace(t *testing.T) {
	input := "// config\n{\n  \"a\": 1, // trailing\n  \"b\": [2],\n}"
	v := mustDecode(t, input)
	if v.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", v.Len())
	}
}

func BenchmarkDecode(b *testing.B) {
	input := `{
  "name": "benchmark",
  "count": 12345678901234567890,
  "ratio": 0.315,
  "tags": ["a", "b", "c",],
  "payload": 'a3NoaGdybA==',
  "seen": 2023-01-15T10:30:00Z,
  "nested": {"x": [1, 2, 3], "y": {"z": null}},
}`
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(input); err != nil {
			b.Fatal(err)
		}
	}
}
