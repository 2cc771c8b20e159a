package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSignParams_KeepsInsertionOrder(t *testing.T) {
	p, err := ParseSignParams(json.RawMessage(`{"z":"1","a":2,"m":true}`))
	require.NoError(t, err)
	assert.Equal(t, SignParams{{"z", "1"}, {"a", "2"}, {"m", "true"}}, p)
}

func TestParseSignParams_IndexKeysFirst(t *testing.T) {
	p, err := ParseSignParams(json.RawMessage(`{"z":1,"1":"b","y":[2,3],"0":"a","01":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, SignParams{{"0", "a"}, {"1", "b"}, {"z", "1"}, {"y", "2,3"}, {"01", "x"}}, p)
}

func TestParseSignParams_DuplicateKey(t *testing.T) {
	p, err := ParseSignParams(json.RawMessage(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)
	assert.Equal(t, SignParams{{"a", "3"}, {"b", "2"}}, p)
}

func TestParseSignParams_ValueRendering(t *testing.T) {
	p, err := ParseSignParams(json.RawMessage(`{"k":{"x":1},"n":null,"t":true,"f":1.50,"arr":[1,null,"x",[2,3]],"big":1e21,"e":1.0}`))
	require.NoError(t, err)
	assert.Equal(t, SignParams{
		{"k", "[object Object]"},
		{"n", "null"},
		{"t", "true"},
		{"f", "1.5"},
		{"arr", "1,,x,2,3"},
		{"big", "1e+21"},
		{"e", "1"},
	}, p)
}

func TestParseSignParams_NonObjects(t *testing.T) {
	p, err := ParseSignParams(json.RawMessage(`["a","b"]`))
	require.NoError(t, err)
	assert.Equal(t, SignParams{{"0", "a"}, {"1", "b"}}, p)

	p, err = ParseSignParams(json.RawMessage(`"hi"`))
	require.NoError(t, err)
	assert.Equal(t, SignParams{{"0", "h"}, {"1", "i"}}, p)

	p, err = ParseSignParams(json.RawMessage(`42`))
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = ParseSignParams(json.RawMessage(`null`))
	assert.ErrorIs(t, err, ErrSignParamsMissing)

	_, err = ParseSignParams(nil)
	assert.ErrorIs(t, err, ErrSignParamsMissing)
}

func TestParseSignParams_StringKeysByCodeUnit(t *testing.T) {
	p, err := ParseSignParams(json.RawMessage(`"é€"`))
	require.NoError(t, err)
	assert.Equal(t, SignParams{{"0", "é"}, {"1", "€"}}, p)

	_, err = ParseSignParams(json.RawMessage(`"a😀"`))
	assert.ErrorIs(t, err, ErrSurrogateParams)
}

func TestParseSignParams_EndToEndDigest(t *testing.T) {
	p, err := ParseSignParams(json.RawMessage(`{"z":1,"y":[2,3],"1":"b","0":"a"}`))
	require.NoError(t, err)
	ts, err := ParseTimestamp(json.RawMessage(`"0.5"`))
	require.NoError(t, err)
	assert.Equal(t, "1c3f6839045b88cfc0930f1f02d606f1", GenerateSign(p, "s", ts))
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`1700000000000`, 1700000000000},
		{`"1700000000"`, 1700000000},
		{`" 12.5 "`, 12.5},
		{`""`, 0},
		{`true`, 1},
		{`false`, 0},
		{`null`, 0},
	}
	for _, c := range cases {
		got, err := ParseTimestamp(json.RawMessage(c.raw))
		require.NoError(t, err, c.raw)
		assert.Equal(t, c.want, got, c.raw)
	}

	for _, bad := range []string{``, `"abc"`, `{}`, `[1]`, `"NaN"`, `"Inf"`} {
		_, err := ParseTimestamp(json.RawMessage(bad))
		assert.ErrorIs(t, err, ErrInvalidTimestamp, bad)
	}
}

func TestFormatJSNumber(t *testing.T) {
	cases := map[float64]string{
		0:             "0",
		1:             "1",
		-3:            "-3",
		1.5:           "1.5",
		1700000000000: "1700000000000",
		1e21:          "1e+21",
		1.5e-7:        "1.5e-7",
		0.000001:      "0.000001",
		123e20:        "1.23e+22",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatJSNumber(in))
	}
}
