package zish

import (
	"bytes"
	"sort"
	"strings"
)

// Equal reports whether two values are equal: same kind and same
// logical payload. Decimals compare by numeric value, so 7.99 and
// 7.990 are equal regardless of how they were written; an integer and
// a decimal are different kinds and never equal. This is the relation
// duplicate-key detection uses.
func Equal(a, b *Value) bool {
	return Compare(a, b) == 0
}

// Compare defines the canonical total order over values: variant rank
// first (the Kind enum order), then the natural order of the payload —
// numeric for bool/integer/decimal, code-point order for strings,
// byte-wise for bytes, chronological for timestamps, element-wise for
// lists, and sorted-entry-wise for maps. The encoder sorts map entries
// with it; the parser never reorders anything.
func Compare(a, b *Value) int {
	ka, kb := a.Kind(), b.Kind()
	if ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}

	switch ka {
	case KindNull:
		return 0

	case KindBool:
		switch {
		case a.boolVal == b.boolVal:
			return 0
		case !a.boolVal:
			return -1
		default:
			return 1
		}

	case KindInt:
		return a.intVal.Cmp(b.intVal)

	case KindDecimal:
		return a.decVal.Cmp(b.decVal)

	case KindString:
		return strings.Compare(a.strVal, b.strVal)

	case KindBytes:
		return bytes.Compare(a.bytesVal, b.bytesVal)

	case KindTimestamp:
		return a.timeVal.Compare(b.timeVal)

	case KindList:
		return compareLists(a.listVal, b.listVal)

	case KindMap:
		// Order-insensitive: maps compare by their canonically sorted
		// entries, so {a:1, b:2} and {b:2, a:1} are equal.
		return compareEntries(sortedEntries(a.mapVal), sortedEntries(b.mapVal))

	default:
		return 0
	}
}

func compareLists(a, b []*Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func compareEntries(a, b []MapEntry) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i].Key, b[i].Key); c != 0 {
			return c
		}
		if c := Compare(a[i].Value, b[i].Value); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// sortedEntries returns a copy of entries in canonical key order.
func sortedEntries(entries []MapEntry) []MapEntry {
	if len(entries) <= 1 {
		return entries
	}
	sorted := make([]MapEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i].Key, sorted[j].Key) < 0
	})
	return sorted
}
