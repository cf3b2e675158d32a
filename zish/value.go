package zish

import (
	"fmt"
	"math/big"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Kind represents zish value kinds. The enum order is also the variant
// rank used by the canonical ordering (see Compare).
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDecimal
	KindString
	KindBytes
	KindTimestamp
	KindList
	KindMap
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindTimestamp:
		return "timestamp"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value represents a zish value: a closed discriminated union over the
// nine kinds. Values are constructed once (by the decoder or the
// constructors below) and read thereafter; callers must not modify
// slices returned by accessors.
type Value struct {
	kind Kind

	// Scalar payloads (only one valid based on kind)
	boolVal  bool
	intVal   *big.Int
	decVal   *apd.Decimal
	strVal   string
	bytesVal []byte
	timeVal  time.Time

	// Container payloads
	listVal []*Value
	mapVal  []MapEntry
}

// MapEntry represents one key/value pair in a map, in decoded
// insertion order.
type MapEntry struct {
	Key   *Value
	Value *Value
}

// Entry creates a MapEntry for use in Map construction.
func Entry(key, value *Value) MapEntry {
	return MapEntry{Key: key, Value: value}
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Int creates an integer value.
func Int(v int64) *Value {
	return &Value{kind: KindInt, intVal: big.NewInt(v)}
}

// IntBig creates an arbitrary-precision integer value.
func IntBig(v *big.Int) *Value {
	return &Value{kind: KindInt, intVal: v}
}

// Dec creates an exact decimal value.
func Dec(v *apd.Decimal) *Value {
	return &Value{kind: KindDecimal, decVal: v}
}

// DecString creates an exact decimal value from its text form, e.g.
// "7.99" or "1.2E-5".
func DecString(s string) (*Value, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("zish: invalid decimal %q: %w", s, err)
	}
	return Dec(d), nil
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// Bytes creates a bytes value.
func Bytes(v []byte) *Value {
	return &Value{kind: KindBytes, bytesVal: v}
}

// Time creates a timestamp value.
func Time(v time.Time) *Value {
	return &Value{kind: KindTimestamp, timeVal: v}
}

// List creates a list value.
func List(values ...*Value) *Value {
	return &Value{kind: KindList, listVal: values}
}

// Map creates a map value from key/value entries. Entries are kept in
// the given order; the encoder sorts canonically and rejects entries
// whose key kind the format forbids.
func Map(entries ...MapEntry) *Value {
	return &Value{kind: KindMap, mapVal: entries}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind. A nil value reads as null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean payload.
func (v *Value) AsBool() (bool, error) {
	if v.Kind() != KindBool {
		return false, fmt.Errorf("zish: expected bool, got %s", v.Kind())
	}
	return v.boolVal, nil
}

// AsInt returns the integer payload.
func (v *Value) AsInt() (*big.Int, error) {
	if v.Kind() != KindInt {
		return nil, fmt.Errorf("zish: expected integer, got %s", v.Kind())
	}
	return v.intVal, nil
}

// AsDecimal returns the decimal payload.
func (v *Value) AsDecimal() (*apd.Decimal, error) {
	if v.Kind() != KindDecimal {
		return nil, fmt.Errorf("zish: expected decimal, got %s", v.Kind())
	}
	return v.decVal, nil
}

// AsString returns the string payload.
func (v *Value) AsString() (string, error) {
	if v.Kind() != KindString {
		return "", fmt.Errorf("zish: expected string, got %s", v.Kind())
	}
	return v.strVal, nil
}

// AsBytes returns the bytes payload.
func (v *Value) AsBytes() ([]byte, error) {
	if v.Kind() != KindBytes {
		return nil, fmt.Errorf("zish: expected bytes, got %s", v.Kind())
	}
	return v.bytesVal, nil
}

// AsTime returns the timestamp payload.
func (v *Value) AsTime() (time.Time, error) {
	if v.Kind() != KindTimestamp {
		return time.Time{}, fmt.Errorf("zish: expected timestamp, got %s", v.Kind())
	}
	return v.timeVal, nil
}

// AsList returns the list elements.
func (v *Value) AsList() ([]*Value, error) {
	if v.Kind() != KindList {
		return nil, fmt.Errorf("zish: expected list, got %s", v.Kind())
	}
	return v.listVal, nil
}

// AsMap returns the map entries in decoded insertion order.
func (v *Value) AsMap() ([]MapEntry, error) {
	if v.Kind() != KindMap {
		return nil, fmt.Errorf("zish: expected map, got %s", v.Kind())
	}
	return v.mapVal, nil
}

// Len returns the length of a list or map, 0 for scalars.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindList:
		return len(v.listVal)
	case KindMap:
		return len(v.mapVal)
	default:
		return 0
	}
}

// Get returns the value for a map key equal to key, or nil.
func (v *Value) Get(key *Value) *Value {
	if v.Kind() != KindMap {
		return nil
	}
	for _, e := range v.mapVal {
		if Equal(e.Key, key) {
			return e.Value
		}
	}
	return nil
}

// GetString returns the value for a string key, or nil.
func (v *Value) GetString(key string) *Value {
	return v.Get(Str(key))
}

// Index returns the i-th element of a list.
func (v *Value) Index(i int) (*Value, error) {
	if v.Kind() != KindList {
		return nil, fmt.Errorf("zish: not a list")
	}
	if i < 0 || i >= len(v.listVal) {
		return nil, fmt.Errorf("zish: index %d out of bounds (len=%d)", i, len(v.listVal))
	}
	return v.listVal[i], nil
}

// isKeyKind reports whether the value's kind is allowed as a map key.
// Null, lists, and maps are forbidden.
func isKeyKind(v *Value) bool {
	switch v.Kind() {
	case KindBool, KindInt, KindDecimal, KindString, KindBytes, KindTimestamp:
		return true
	default:
		return false
	}
}
