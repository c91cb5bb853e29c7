package ijson

import (
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// decodeNumber turns a lexeme's raw number text into a Value. A number
// containing neither '.' nor an exponent decodes to an arbitrary-width
// integer; any other shape decodes to a Decimal that preserves the
// declared digits exactly, without pre-rounding through float64.
func decodeNumber(text string) Value {
	if strings.ContainsAny(text, ".eE") {
		return decimalValue(text)
	}
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		// the lexer only emits grammatically valid number text; this
		// would indicate a lexer bug, not bad input.
		panic("ijson: decodeNumber: lexer produced an invalid integer lexeme: " + text)
	}
	return integerValue(i)
}

// decodeString decodes a lexeme's raw quoted text (delimiters and
// escapes included) into its string value, combining UTF-16 surrogate
// pairs into the single non-BMP code point they represent. A lone
// high or low surrogate is rejected as invalid JSON.
func decodeString(text string, pos int64) (string, error) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", newInvalidJSONError(pos, "malformed string lexeme")
	}
	body := text[1 : len(text)-1]

	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var b strings.Builder
	b.Grow(len(body))

	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			r, size := utf8.DecodeRuneInString(body[i:])
			b.WriteRune(r)
			i += size
			continue
		}

		if i+1 >= len(body) {
			return "", newInvalidJSONError(pos, "truncated escape sequence")
		}
		esc := body[i+1]
		switch esc {
		case '"':
			b.WriteByte('"')
			i += 2
		case '\\':
			b.WriteByte('\\')
			i += 2
		case '/':
			b.WriteByte('/')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'u':
			r, n, err := decodeUnicodeEscape(body, i, pos)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i = n
		default:
			return "", newInvalidJSONError(pos, "invalid escape sequence '\\%c'", esc)
		}
	}

	return b.String(), nil
}

// decodeUnicodeEscape decodes a \uXXXX escape starting at body[i],
// combining it with an immediately following \uYYYY low surrogate
// when body[i:i+6] is a high surrogate. It returns the decoded rune
// and the index just past the consumed escape(s).
func decodeUnicodeEscape(body string, i int, pos int64) (rune, int, error) {
	r1, err := parseHex4(body, i+2, pos)
	if err != nil {
		return 0, 0, err
	}

	if utf16.IsSurrogate(rune(r1)) {
		// A surrogate (high or low) appearing alone is invalid; only a
		// high surrogate immediately followed by a low surrogate forms
		// a valid non-BMP code point.
		if i+12 > len(body) || body[i+6] != '\\' || body[i+7] != 'u' {
			return 0, 0, newInvalidJSONError(pos, "unpaired UTF-16 surrogate \\u%04x", r1)
		}
		r2, err := parseHex4(body, i+8, pos)
		if err != nil {
			return 0, 0, err
		}
		combined := utf16.DecodeRune(rune(r1), rune(r2))
		if combined == utf8.RuneError {
			return 0, 0, newInvalidJSONError(pos, "invalid UTF-16 surrogate pair \\u%04x\\u%04x", r1, r2)
		}
		return combined, i + 12, nil
	}

	return rune(r1), i + 6, nil
}

func parseHex4(body string, i int, pos int64) (uint32, error) {
	if i+4 > len(body) {
		return 0, newInvalidJSONError(pos, "truncated \\u escape")
	}
	n, err := strconv.ParseUint(body[i:i+4], 16, 32)
	if err != nil {
		return 0, newInvalidJSONError(pos, "invalid hex digits in \\u escape: %q", body[i:i+4])
	}
	return uint32(n), nil
}
