package zish

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"

	"github.com/cockroachdb/apd/v3"
)

// JSON bridge: lossless on the way in (numbers keep their exact
// value), lossy on the way out for the types JSON lacks (bytes,
// timestamps, non-string map keys become strings).

// FromJSON converts JSON text into a Value. Numbers are preserved
// exactly: integral literal forms become integers, everything else
// exact decimals. Object entries are sorted by key since JSON decoding
// into a Go map loses the textual order anyway.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("parse JSON: multiple top-level values")
	}
	return fromJSONValue(raw)
}

func fromJSONValue(v any) (*Value, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(val), nil

	case json.Number:
		s := val.String()
		if reInteger.MatchString(s) {
			n, ok := new(big.Int).SetString(s, 10)
			if !ok {
				return nil, fmt.Errorf("invalid JSON integer %q", s)
			}
			return IntBig(n), nil
		}
		d, _, err := apd.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid JSON number %q: %w", s, err)
		}
		return Dec(d), nil

	case string:
		return Str(val), nil

	case []any:
		elems := make([]*Value, 0, len(val))
		for i, item := range val {
			zv, err := fromJSONValue(item)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			elems = append(elems, zv)
		}
		return List(elems...), nil

	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]MapEntry, 0, len(val))
		for _, k := range keys {
			zv, err := fromJSONValue(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			entries = append(entries, MapEntry{Key: Str(k), Value: zv})
		}
		return Map(entries...), nil

	default:
		return nil, fmt.Errorf("unsupported JSON type: %T", v)
	}
}

// ToJSON renders a Value as indented JSON. Bytes become base64
// strings, timestamps RFC3339 strings, and non-string map keys their
// canonical zish text. Two distinct keys that stringify identically
// (the integer 1 and the string "1") are a conversion error rather
// than a silent overwrite.
func ToJSON(v *Value) ([]byte, error) {
	x, err := toJSONValue(v)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(x, "", "  ")
}

func toJSONValue(v *Value) (any, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.boolVal, nil
	case KindInt:
		return json.Number(v.intVal.String()), nil
	case KindDecimal:
		return json.Number(canonDecimal(v.decVal)), nil
	case KindString:
		return v.strVal, nil
	case KindBytes:
		return base64.StdEncoding.EncodeToString(v.bytesVal), nil
	case KindTimestamp:
		return canonTimestamp(v.timeVal), nil

	case KindList:
		out := make([]any, len(v.listVal))
		for i, elem := range v.listVal {
			jv, err := toJSONValue(elem)
			if err != nil {
				return nil, err
			}
			out[i] = jv
		}
		return out, nil

	case KindMap:
		out := make(map[string]any, len(v.mapVal))
		for _, e := range v.mapVal {
			key := e.Key
			var k string
			if key.Kind() == KindString {
				k = key.strVal
			} else {
				k = canonScalar(key)
			}
			if _, exists := out[k]; exists {
				return nil, fmt.Errorf("JSON object key collision on %q", k)
			}
			jv, err := toJSONValue(e.Value)
			if err != nil {
				return nil, err
			}
			out[k] = jv
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported kind: %s", v.Kind())
	}
}
