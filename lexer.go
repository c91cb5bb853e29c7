package ijson

import (
	"errors"
	"io"
	"log"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultBufSize is the read chunk size used when no WithBufSize
// option is given.
const DefaultBufSize = 64 * 1024

type lexerState byte

const (
	lexStateIdle lexerState = iota
	lexStateSkipping
	lexStateString
	lexStatePendingEscape
	lexStateUnicodeEscape
	lexStateNumber
	lexStateKeyword
)

type numState byte

const (
	numStart numState = iota
	numIntZero
	numIntDigits
	numFracStart
	numFracDigits
	numExpStart
	numExpSign
	numExpDigits
)

// Lexer tokenizes an arbitrary byte or text stream into JSON lexemes.
// It does its own buffering and tolerates lexemes split across read
// boundaries, including multi-byte UTF-8 sequences that straddle
// reads. A Lexer is a single-use, non-restartable, forward-only
// sequence: construct a new one per stream.
type Lexer struct {
	r      io.Reader
	isText bool

	bufSize int
	buf     []byte // validated, scannable text
	raw     []byte // scratch buffer for the latest chunk read from r
	pending []byte // unvalidated tail bytes carried from the previous read (byte-stream mode only)

	base       int64 // logical offset of buf[0] in the overall stream
	pos        int   // scan cursor into buf
	tokenStart int   // start of the in-progress lexeme within buf
	tokenKind  LexemeKind

	state   lexerState
	numSt   numState
	hexLeft int // remaining hex digits expected in a \uXXXX escape

	eof     bool
	warn    bool
	emitted bool // at least one lexeme has been returned

	utf8Validator transform.Transformer
}

// NewLexer creates a Lexer reading from a byte stream. Invalid
// encodings are rejected; a multi-byte sequence split across a read
// boundary is carried over and never raises an error on that account
// alone.
func NewLexer(r io.Reader, opts ...Option) *Lexer {
	l := newLexer(r, opts...)
	l.isText = false
	l.utf8Validator = unicode.UTF8Validator
	return l
}

// NewLexerFromTextReader creates a Lexer over a stream that is
// already guaranteed to yield valid UTF-8 text. Prefer NewLexer: this
// entry point skips encoding validation and logs a one-time
// deprecation warning.
func NewLexerFromTextReader(r io.Reader, opts ...Option) *Lexer {
	l := newLexer(r, opts...)
	l.isText = true
	return l
}

func newLexer(r io.Reader, opts ...Option) *Lexer {
	l := &Lexer{
		r:       r,
		bufSize: DefaultBufSize,
		state:   lexStateIdle,
	}
	for _, opt := range opts {
		opt.applyLexer(l)
	}
	return l
}

func (l *Lexer) warnTextStream() {
	if l.warn {
		return
	}
	l.warn = true
	log.Printf("ijson: lexer: consuming a text stream directly is deprecated, prefer a byte stream")
}

// Next returns the next lexeme, or io.EOF once the stream has ended
// cleanly after a complete lexeme. It fails with IncompleteInputError
// if the stream ends mid-lexeme or holds no lexeme at all, or
// InvalidJSONError on any lexical violation.
func (l *Lexer) Next() (Lexeme, error) {
	if l.state == lexStateIdle {
		if l.isText {
			l.warnTextStream()
		}
		l.state = lexStateSkipping
	}

	for {
		if l.pos >= len(l.buf) {
			if l.eof {
				lex, err, ok := l.finishAtEOF()
				if !ok {
					return Lexeme{}, err
				}
				l.state = lexStateSkipping
				l.emitted = true
				return lex, nil
			}
			if err := l.fetch(); err != nil {
				return Lexeme{}, err
			}
			continue
		}

		c := l.buf[l.pos]
		done, err := l.feed(c)
		if err != nil {
			return Lexeme{}, err
		}
		l.pos++

		if done {
			lex := Lexeme{
				Pos:  l.base + int64(l.tokenStart),
				Kind: l.tokenKind,
				Text: string(l.buf[l.tokenStart:l.pos]),
			}
			l.state = lexStateSkipping
			l.emitted = true
			return lex, nil
		}
	}
}

// finishAtEOF decides what end of input means for the lexer's
// current state. A clean EOF after at least one complete lexeme yields
// io.EOF (ok=false, err=io.EOF); EOF before any lexeme (empty or
// whitespace-only input) is an IncompleteInputError. EOF while a
// number sits in a state that is legally terminal closes out that
// number as a final lexeme (ok=true). Any other mid-lexeme EOF is an
// IncompleteInputError.
func (l *Lexer) finishAtEOF() (Lexeme, error, bool) {
	switch l.state {
	case lexStateSkipping, lexStateIdle:
		if !l.emitted {
			return Lexeme{}, newIncompleteInputError(l.base+int64(l.pos), "empty input"), false
		}
		return Lexeme{}, io.EOF, false
	case lexStateNumber:
		switch l.numSt {
		case numIntZero, numIntDigits, numFracDigits, numExpDigits:
			lex := Lexeme{
				Pos:  l.base + int64(l.tokenStart),
				Kind: l.tokenKind,
				Text: string(l.buf[l.tokenStart:l.pos]),
			}
			return lex, nil, true
		}
	}
	return Lexeme{}, newIncompleteInputError(l.base+int64(l.pos), "unexpected end of input inside a lexeme"), false
}

// fetch reads more input into buf, preserving any in-progress lexeme.
func (l *Lexer) fetch() error {
	if l.state != lexStateSkipping && l.state != lexStateIdle && l.tokenStart < l.pos {
		// shift the in-progress lexeme to the front of buf
		n := copy(l.buf, l.buf[l.tokenStart:l.pos])
		l.base += int64(l.tokenStart)
		l.pos = n
		l.buf = l.buf[:n]
		l.tokenStart = 0
	} else {
		l.base += int64(len(l.buf))
		l.buf = l.buf[:0]
		l.pos = 0
		l.tokenStart = 0
	}

	if cap(l.raw) < l.bufSize {
		l.raw = make([]byte, l.bufSize)
	}
	n, err := l.r.Read(l.raw[:l.bufSize])
	chunk := l.raw[:n]

	if l.isText {
		l.buf = append(l.buf, chunk...)
	} else if err2 := l.ingestBytes(chunk, err == io.EOF || err == io.ErrUnexpectedEOF); err2 != nil {
		return err2
	}

	if err == io.EOF || err == io.ErrUnexpectedEOF {
		l.eof = true
		if len(l.pending) > 0 {
			return newInvalidJSONError(l.base+int64(len(l.buf)), "invalid encoding: truncated multi-byte sequence at end of input")
		}
	} else if err != nil {
		return err
	}

	return nil
}

// ingestBytes validates raw as UTF-8, appending the valid prefix to
// buf and carrying over any trailing partial sequence in l.pending
// until more bytes arrive.
func (l *Lexer) ingestBytes(raw []byte, atEOF bool) error {
	src := raw
	if len(l.pending) > 0 {
		src = append(append([]byte(nil), l.pending...), raw...)
		l.pending = nil
	}

	dst := make([]byte, len(src))
	nDst, nSrc, err := l.utf8Validator.Transform(dst, src, atEOF)
	l.buf = append(l.buf, dst[:nDst]...)

	if nSrc < len(src) {
		l.pending = append(l.pending, src[nSrc:]...)
	}

	if err != nil && !errors.Is(err, transform.ErrShortSrc) {
		return wrapInvalidJSONError(l.base+int64(len(l.buf)), err, "invalid encoding: %v", err)
	}

	return nil
}

func (l *Lexer) startToken(kind LexemeKind) {
	l.tokenStart = l.pos
	l.tokenKind = kind
}

// feed advances the character-level state machine by one byte of
// already-validated text and reports whether the current lexeme is
// now complete.
func (l *Lexer) feed(c byte) (bool, error) {
	switch l.state {
	case lexStateSkipping:
		return l.feedSkipping(c)
	case lexStateString:
		return l.feedString(c)
	case lexStatePendingEscape:
		return l.feedPendingEscape(c)
	case lexStateUnicodeEscape:
		return l.feedUnicodeEscape(c)
	case lexStateNumber:
		return l.feedNumber(c)
	case lexStateKeyword:
		return l.feedKeyword(c)
	}
	panic("ijson: lexer: unreachable state")
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *Lexer) feedSkipping(c byte) (bool, error) {
	switch {
	case isWhitespace(c):
		return false, nil
	case c == '{' || c == '}' || c == '[' || c == ']' || c == ':' || c == ',':
		l.startToken(LexemePunct)
		return true, nil
	case c == '"':
		l.startToken(LexemeString)
		l.state = lexStateString
		return false, nil
	case c == '-' || isDigit(c):
		l.startToken(LexemeNumber)
		l.state = lexStateNumber
		if c == '-' {
			l.numSt = numStart
		} else if c == '0' {
			l.numSt = numIntZero
		} else {
			l.numSt = numIntDigits
		}
		return false, nil
	case c == 't' || c == 'f' || c == 'n':
		l.startToken(LexemeKeyword)
		l.state = lexStateKeyword
		return false, nil
	default:
		return false, newInvalidJSONError(l.base+int64(l.pos), "unexpected character %q", c)
	}
}

func (l *Lexer) feedString(c byte) (bool, error) {
	switch c {
	case '"':
		return true, nil
	case '\\':
		l.state = lexStatePendingEscape
		return false, nil
	default:
		return false, nil
	}
}

func (l *Lexer) feedPendingEscape(c byte) (bool, error) {
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		l.state = lexStateString
		return false, nil
	case 'u':
		l.state = lexStateUnicodeEscape
		l.hexLeft = 4
		return false, nil
	default:
		return false, newInvalidJSONError(l.base+int64(l.pos), "invalid escape sequence '\\%c'", c)
	}
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *Lexer) feedUnicodeEscape(c byte) (bool, error) {
	if !isHexDigit(c) {
		return false, newInvalidJSONError(l.base+int64(l.pos), "invalid hex digit %q in \\u escape", c)
	}
	l.hexLeft--
	if l.hexLeft == 0 {
		l.state = lexStateString
	}
	return false, nil
}

// feedNumber implements the JSON number grammar:
//
//	number = [ "-" ] int [ frac ] [ exp ]
//	int    = "0" / digit1-9 *digit
//	frac   = "." 1*digit
//	exp    = ("e" / "E") [ "+" / "-" ] 1*digit
func (l *Lexer) feedNumber(c byte) (bool, error) {
	switch l.numSt {
	case numStart:
		if c == '0' {
			l.numSt = numIntZero
			return false, nil
		}
		if isDigit(c) {
			l.numSt = numIntDigits
			return false, nil
		}
		return false, newInvalidJSONError(l.base+int64(l.pos), "invalid number: expected a digit after '-'")
	case numIntZero, numIntDigits:
		if isDigit(c) {
			if l.numSt == numIntZero {
				return false, newInvalidJSONError(l.base+int64(l.pos), "invalid number: leading zero")
			}
			return false, nil
		}
		return l.numberBoundary(c, '.')
	case numFracStart:
		if isDigit(c) {
			l.numSt = numFracDigits
			return false, nil
		}
		return false, newInvalidJSONError(l.base+int64(l.pos), "invalid number: expected a digit after '.'")
	case numFracDigits:
		if isDigit(c) {
			return false, nil
		}
		return l.numberBoundary(c, 0)
	case numExpStart:
		if c == '+' || c == '-' {
			l.numSt = numExpSign
			return false, nil
		}
		if isDigit(c) {
			l.numSt = numExpDigits
			return false, nil
		}
		return false, newInvalidJSONError(l.base+int64(l.pos), "invalid number: expected digits in exponent")
	case numExpSign:
		if isDigit(c) {
			l.numSt = numExpDigits
			return false, nil
		}
		return false, newInvalidJSONError(l.base+int64(l.pos), "invalid number: expected digits in exponent")
	case numExpDigits:
		if isDigit(c) {
			return false, nil
		}
		if c == 'e' || c == 'E' {
			return false, newInvalidJSONError(l.base+int64(l.pos), "invalid number: unexpected character %q", c)
		}
		return l.numberBoundary(c, 0)
	}
	panic("ijson: lexer: unreachable number state")
}

// numberBoundary is called with the first character after a terminal
// numeric state. If that character can extend the number (a '.'
// starting a fraction, when allowed, or an 'e'/'E' starting an
// exponent) the state machine continues; otherwise the number is
// complete and the character belongs to the next lexeme.
func (l *Lexer) numberBoundary(c byte, allowExtra byte) (bool, error) {
	if allowExtra == '.' && c == '.' {
		l.numSt = numFracStart
		return false, nil
	}
	if c == 'e' || c == 'E' {
		l.numSt = numExpStart
		return false, nil
	}
	if isWhitespace(c) || c == '{' || c == '}' || c == '[' || c == ']' || c == ':' || c == ',' {
		return l.reconsumeAsComplete()
	}
	return false, newInvalidJSONError(l.base+int64(l.pos), "invalid number: unexpected character %q", c)
}

// reconsumeAsComplete ends the current lexeme without consuming the
// character that was just examined; it must be seen again by
// feedSkipping.
func (l *Lexer) reconsumeAsComplete() (bool, error) {
	l.pos--
	l.state = lexStateSkipping
	return true, nil
}

var keywords = map[byte]string{'t': "true", 'f': "false", 'n': "null"}

func (l *Lexer) feedKeyword(c byte) (bool, error) {
	want := keywords[l.buf[l.tokenStart]]
	i := l.pos - l.tokenStart
	if i >= len(want) {
		return false, newInvalidJSONError(l.base+int64(l.pos), "unexpected character %q in keyword %q", c, want)
	}
	if c != want[i] {
		return false, newInvalidJSONError(l.base+int64(l.pos), "invalid literal: expected %q, got %q", want, want[:i]+string(c))
	}
	if i == len(want)-1 {
		return true, nil
	}
	return false, nil
}
