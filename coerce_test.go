package kvparser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"123", 123},
		{"123.456", 123.456},
		{"-1.5", -1.5},
		{"+2", 2},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"1E-2", 0.01},
		{"  42\n", 42},
		{"\ufeff7", 7},
		{" \ufeff1", 1},
		{"\ufeff 2 \ufeff\t", 2},
		{"\u00a03\u2028", 3},
		{"", 0},
		{"   ", 0},
		{"0x1F", 31},
		{"0X1f", 31},
		{"0o17", 15},
		{"0b101", 5},
		{"007", 7},
		{"1e400", math.Inf(1)},
		{"Infinity", math.Inf(1)},
		{"+Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, toNumber(tc.in))
		})
	}
}

func TestToNumber_NaN(t *testing.T) {
	for _, in := range []string{"abc", "12abc", "inf", "NaN", "1_000", "-0x10", "0x", "0xZZ", "0b102", "1,5", "--1", "1e"} {
		t.Run(in, func(t *testing.T) {
			assert.True(t, math.IsNaN(toNumber(in)), "toNumber(%q) = %v", in, toNumber(in))
		})
	}
}

func TestCoerce(t *testing.T) {
	v, err := coerce("", "123", "k")
	require.NoError(t, err)
	assert.Equal(t, "123", v)

	v, err = coerce(TypeString, "str", "k")
	require.NoError(t, err)
	assert.Equal(t, "str", v)

	v, err = coerce(TypeNumber, "12", "k")
	require.NoError(t, err)
	assert.Equal(t, float64(12), v)

	v, err = coerce(TypeObject, `{"a":[1,"b"],"n":null}`, "k")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{float64(1), "b"}, "n": nil}, v)

	// object 也可以是任意 JSON
	v, err = coerce(TypeObject, `[1,2]`, "k")
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, v)

	v, err = coerce(TypeObject, `"s"`, "k")
	require.NoError(t, err)
	assert.Equal(t, "s", v)
}

func TestCoerce_Errors(t *testing.T) {
	_, err := coerce(TypeObject, "{bad", "prefix/k")
	require.ErrorIs(t, err, ErrMalformedObject)
	assert.Contains(t, err.Error(), "prefix/k")

	_, err = coerce(TypeObject, "", "k")
	assert.ErrorIs(t, err, ErrMalformedObject)

	_, err = coerce("bool", "true", "k")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
