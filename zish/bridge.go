package zish

import (
	"math"
	"math/big"
	"sort"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Host-type adapter: conversion between native Go values and the
// Value model. The codec itself operates only on Values; this is the
// thin layer that maps a host tree onto them.

// FromGo converts a native Go value into a Value. Unsupported types
// fail with an EncodeError naming the offending type; floats convert
// to exact decimals via their shortest round-trip representation, so
// NaN and infinities are rejected.
func FromGo(v any) (*Value, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case *Value:
		return val, nil
	case bool:
		return Bool(val), nil

	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return IntBig(new(big.Int).SetUint64(uint64(val))), nil
	case uint8:
		return Int(int64(val)), nil
	case uint16:
		return Int(int64(val)), nil
	case uint32:
		return Int(int64(val)), nil
	case uint64:
		return IntBig(new(big.Int).SetUint64(val)), nil
	case *big.Int:
		return IntBig(val), nil

	case *apd.Decimal:
		return Dec(val), nil
	case float32:
		return FromGo(float64(val))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, encodeErrf("float %v is not representable", val)
		}
		d, _, err := apd.NewFromString(strconv.FormatFloat(val, 'g', -1, 64))
		if err != nil {
			return nil, encodeErrf("float %v is not representable", val)
		}
		return Dec(d), nil

	case string:
		return Str(val), nil
	case []byte:
		return Bytes(val), nil
	case time.Time:
		return Time(val), nil

	case []any:
		elems := make([]*Value, 0, len(val))
		for i, item := range val {
			zv, err := FromGo(item)
			if err != nil {
				return nil, encodeErrf("list[%d]: %v", i, errMessage(err))
			}
			elems = append(elems, zv)
		}
		return List(elems...), nil
	case []*Value:
		return List(val...), nil

	case map[string]any:
		// Go map iteration order is random; sort keys so conversion
		// is deterministic.
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]MapEntry, 0, len(val))
		for _, k := range keys {
			zv, err := FromGo(val[k])
			if err != nil {
				return nil, encodeErrf("map[%q]: %v", k, errMessage(err))
			}
			entries = append(entries, MapEntry{Key: Str(k), Value: zv})
		}
		return Map(entries...), nil
	case []MapEntry:
		return Map(val...), nil

	default:
		return nil, encodeErrf("type %T is not representable", v)
	}
}

// ToGo converts a Value into native Go types: nil, bool, int64 (or
// *big.Int beyond its range), *apd.Decimal, string, []byte, time.Time,
// []any, and map[string]any. Map keys are rendered as their canonical
// text since Go map keys must be comparable, so non-string keys are
// lossy here; use AsMap for exact access.
func ToGo(v *Value) any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return v.boolVal
	case KindInt:
		if v.intVal.IsInt64() {
			return v.intVal.Int64()
		}
		return new(big.Int).Set(v.intVal)
	case KindDecimal:
		return v.decVal
	case KindString:
		return v.strVal
	case KindBytes:
		return v.bytesVal
	case KindTimestamp:
		return v.timeVal
	case KindList:
		out := make([]any, len(v.listVal))
		for i, elem := range v.listVal {
			out[i] = ToGo(elem)
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.mapVal))
		for _, e := range v.mapVal {
			key := e.Key
			k := ""
			if key.Kind() == KindString {
				k = key.strVal
			} else {
				k = canonScalar(key)
			}
			out[k] = ToGo(e.Value)
		}
		return out
	default:
		return nil
	}
}

// EncodeAny converts a native Go value with FromGo and encodes it
// canonically.
func EncodeAny(v any) (string, error) {
	zv, err := FromGo(v)
	if err != nil {
		return "", err
	}
	return Encode(zv)
}
