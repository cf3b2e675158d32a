package zish

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Canonical scalar encoding. Containers are handled by the emitter;
// everything here is also used to render map keys and diagnostics.

// canonScalar returns the canonical text of a scalar value.
func canonScalar(v *Value) string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case KindInt:
		// big.Int formatting: no leading zeros, '-' only when negative.
		return v.intVal.String()
	case KindDecimal:
		return canonDecimal(v.decVal)
	case KindString:
		return quoteString(v.strVal)
	case KindBytes:
		return "'" + base64.StdEncoding.EncodeToString(v.bytesVal) + "'"
	case KindTimestamp:
		return canonTimestamp(v.timeVal)
	default:
		return ""
	}
}

// canonDecimal renders an exact decimal canonically: the coefficient
// reduced (trailing zeros stripped), fixed-point notation while that
// stays short, scientific notation with an uppercase E otherwise. The
// text always contains a '.' or an exponent so it re-parses as a
// decimal, never as an integer. Reduction makes the text a function of
// the numeric value alone: 7.99 and 7.990 encode identically.
func canonDecimal(d *apd.Decimal) string {
	if d.IsZero() {
		return "0.0"
	}

	var reduced apd.Decimal
	reduced.Reduce(d)
	digits := reduced.Coeff.String()
	exp := int(reduced.Exponent)
	adj := exp + len(digits) - 1

	var sb strings.Builder
	if reduced.Negative {
		sb.WriteByte('-')
	}
	switch {
	case exp == 0:
		sb.WriteString(digits)
		sb.WriteString(".0")
	case exp < 0 && adj >= -6:
		if -exp >= len(digits) {
			sb.WriteString("0.")
			sb.WriteString(strings.Repeat("0", -exp-len(digits)))
			sb.WriteString(digits)
		} else {
			sb.WriteString(digits[:len(digits)+exp])
			sb.WriteByte('.')
			sb.WriteString(digits[len(digits)+exp:])
		}
	default:
		sb.WriteString(digits[:1])
		if len(digits) > 1 {
			sb.WriteByte('.')
			sb.WriteString(digits[1:])
		}
		sb.WriteByte('E')
		sb.WriteString(strconv.Itoa(adj))
	}
	return sb.String()
}

// canonTimestamp renders RFC3339 text: Z for a zero UTC offset, the
// explicit offset otherwise, fractional seconds only when non-zero.
func canonTimestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.999999999Z07:00")
}

// quoteString returns a double-quoted string with canonical escapes:
// '"' and '\' always, named escapes for tab/LF/CR, \xNN for the other
// control characters. Everything the escapes produce is accepted back
// by the scanner, guaranteeing round-trip.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				const hex = "0123456789abcdef"
				b.WriteString(`\x`)
				b.WriteByte(hex[r>>4])
				b.WriteByte(hex[r&0xf])
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
