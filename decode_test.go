package ijson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNumberInteger(t *testing.T) {
	v := decodeNumber("12345678901234567890")
	require.Equal(t, KindInteger, v.Kind)
	assert.Equal(t, "12345678901234567890", v.Integer.String())
}

func TestDecodeNumberDecimal(t *testing.T) {
	for _, text := range []string{"1.5", "1e10", "1.5e-3", "-0.0"} {
		v := decodeNumber(text)
		require.Equalf(t, KindDecimal, v.Kind, "text %q", text)
		assert.Equal(t, text, v.Decimal.Literal)
	}
}

func TestDecodeStringPlain(t *testing.T) {
	s, err := decodeString(`"hello"`, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestDecodeStringEscapes(t *testing.T) {
	s, err := decodeString(`"a\tb\nc\"d"`, 0)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\nc\"d", s)
}

func TestDecodeStringUnicodeEscape(t *testing.T) {
	s, err := decodeString("\"\\u0041\"", 0)
	require.NoError(t, err)
	assert.Equal(t, "A", s)
}

func TestDecodeStringSurrogatePair(t *testing.T) {
	// 💩 is the UTF-16 surrogate pair for U+1F4A9 PILE OF POO.
	s, err := decodeString("\"\\ud83d\\udca9\"", 0)
	require.NoError(t, err)
	assert.Equal(t, "💩", s)
}

func TestDecodeStringLoneHighSurrogateIsInvalid(t *testing.T) {
	_, err := decodeString(`"\ud83d"`, 0)
	var invalid *InvalidJSONError
	require.ErrorAs(t, err, &invalid)
}

func TestDecodeStringLoneLowSurrogateIsInvalid(t *testing.T) {
	_, err := decodeString(`"\udca9"`, 0)
	var invalid *InvalidJSONError
	require.ErrorAs(t, err, &invalid)
}

func TestDecodeStringInvalidEscapeChar(t *testing.T) {
	_, err := decodeString(`"\q"`, 0)
	var invalid *InvalidJSONError
	require.ErrorAs(t, err, &invalid)
}

func TestDecodeStringMalformedLexeme(t *testing.T) {
	_, err := decodeString(`abc`, 0)
	var invalid *InvalidJSONError
	require.ErrorAs(t, err, &invalid)
}
