package zish

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_DecimalsAreNumeric(t *testing.T) {
	a, err := DecString("7.99")
	require.NoError(t, err)
	b, err := DecString("7.990")
	require.NoError(t, err)

	assert.True(t, Equal(a, b), "7.99 and 7.990 are the same decimal")
	assert.Equal(t, 0, Compare(a, b))
}

func TestEqual_IntAndDecimalAreDistinct(t *testing.T) {
	d, err := DecString("1.0")
	require.NoError(t, err)

	assert.False(t, Equal(Int(1), d), "integers and decimals are separate kinds")
}

func TestEqual_TimestampsByInstant(t *testing.T) {
	utc := Time(time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC))
	ist := Time(time.Date(2023, 1, 15, 16, 0, 0, 0, time.FixedZone("", 5*3600+30*60)))

	assert.True(t, Equal(utc, ist), "same instant in different offsets")
}

func TestCompare_KindRank(t *testing.T) {
	d, err := DecString("2.5")
	require.NoError(t, err)

	// Ascending by kind regardless of payload.
	ranked := []*Value{
		Null(),
		Bool(true),
		Int(999),
		d,
		Str("a"),
		Bytes([]byte{0}),
		Time(time.Unix(0, 0).UTC()),
		List(),
		Map(),
	}
	for i := 0; i < len(ranked)-1; i++ {
		assert.Negative(t, Compare(ranked[i], ranked[i+1]),
			"%s should sort before %s", ranked[i].Kind(), ranked[i+1].Kind())
	}
}

func TestCompare_WithinKind(t *testing.T) {
	small, err := DecString("-0.5")
	require.NoError(t, err)
	big, err := DecString("1e10")
	require.NoError(t, err)

	tests := []struct {
		name string
		a, b *Value
	}{
		{"bool", Bool(false), Bool(true)},
		{"int", Int(-3), Int(7)},
		{"decimal", small, big},
		{"string", Str("abc"), Str("abd")},
		{"string prefix", Str("ab"), Str("abc")},
		{"bytes", Bytes([]byte{1, 2}), Bytes([]byte{1, 3})},
		{"timestamp", Time(time.Unix(100, 0)), Time(time.Unix(200, 0))},
		{"list elementwise", mustDecodeT(t, "[1, 2]"), mustDecodeT(t, "[1, 3]")},
		{"list prefix", mustDecodeT(t, "[1]"), mustDecodeT(t, "[1, 0]")},
		{"map by sorted entries", mustDecodeT(t, `{"a": 1}`), mustDecodeT(t, `{"a": 2}`)},
		{"map fewer entries", mustDecodeT(t, `{"a": 1}`), mustDecodeT(t, `{"a": 1, "b": 2}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Negative(t, Compare(tt.a, tt.b))
			assert.Positive(t, Compare(tt.b, tt.a))
			assert.Zero(t, Compare(tt.a, tt.a))
		})
	}
}

func TestCompare_MapOrderInsensitive(t *testing.T) {
	a := mustDecodeT(t, `{"x": 1, "y": 2}`)
	b := mustDecodeT(t, `{"y": 2, "x": 1}`)

	assert.True(t, Equal(a, b), "entry order does not affect map identity")
}

func TestEqual_NestedStructures(t *testing.T) {
	a := mustDecodeT(t, `[1, {"k": [true, null]}, 'aGk=']`)
	b := mustDecodeT(t, `[1, {"k": [true, null,],}, 'aGk=',]`)

	assert.True(t, Equal(a, b))
}

func mustDecodeT(t *testing.T, input string) *Value {
	t.Helper()
	v, err := Decode(input)
	require.NoError(t, err)
	return v
}
