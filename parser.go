package ijson

import (
	"errors"
	"io"
)

var errEOF = io.EOF

func isEOF(err error) bool { return errors.Is(err, io.EOF) }

// parserConfig holds the basic parser's Option-configurable behavior.
type parserConfig struct {
	multipleValues bool
}

type frameKind byte

const (
	frameMap frameKind = iota
	frameArray
)

// pState is the basic parser's top-level state: expecting a value, a
// key, a colon, or a comma/closing bracket, plus the bookkeeping
// states needed to thread multiple top-level values and the
// empty-container special cases through a single Next() call.
type pState byte

const (
	stInitialValue     pState = iota // no value parsed yet; EOF here is IncompleteInput
	stValue                          // expect a nested value (after ':' or after ',' in an array)
	stArrayValueOrEnd                // right after '[': a value, or ']' for an empty array
	stKey                            // expect a string key, or '}' to close the map (possibly empty)
	stKeyAfterComma                  // expect a string key; '}' here would be a trailing comma
	stColon                          // expect ':'
	stCommaOrEnd                     // expect ',' or the current container's closer
	stNextTopValue                   // outer value just closed under multiple_values; EOF here is clean
	stTrailingCheck                  // outer value just closed, multiple_values=false; only EOF may follow
	stDone
)

// BasicParser consumes a Lexeme sequence and produces a flat Event
// sequence, validating JSON grammar as a pushdown automaton. It is a
// single-use, forward-only sequence.
type BasicParser struct {
	lex    *Lexer
	cfg    parserConfig
	stack  []frameKind
	state  pState
	failed bool
}

// BasicParse tokenizes r with a Lexer and parses the resulting lexeme
// sequence into an Event sequence. Options configure both the
// underlying Lexer (e.g. WithBufSize) and the parser itself (e.g.
// WithMultipleValues).
func BasicParse(r io.Reader, opts ...Option) *BasicParser {
	lex := NewLexer(r, opts...)
	return newBasicParserFromLexer(lex, opts...)
}

// newBasicParserFromLexer builds a BasicParser directly on top of an
// already-constructed Lexer, used internally by BasicParse.
func newBasicParserFromLexer(lex *Lexer, opts ...Option) *BasicParser {
	p := &BasicParser{lex: lex, state: stInitialValue}
	for _, opt := range opts {
		opt.applyParser(&p.cfg)
	}
	return p
}

func (p *BasicParser) top() frameKind {
	return p.stack[len(p.stack)-1]
}

func (p *BasicParser) push(k frameKind) { p.stack = append(p.stack, k) }

func (p *BasicParser) pop() { p.stack = p.stack[:len(p.stack)-1] }

// Next returns the next Event, or io.EOF once the document (or, under
// WithMultipleValues, the whole concatenated stream) has been fully
// and validly consumed. Once an error is returned the parser is
// exhausted: further calls return io.EOF.
func (p *BasicParser) Next() (Event, error) {
	if p.failed || p.state == stDone {
		return Event{}, errEOF
	}

	for {
		switch p.state {
		case stColon:
			lx, err := p.lex.Next()
			if err != nil {
				return p.fail(p.eofOr(err, "expected ':'"))
			}
			if lx.Kind != LexemePunct || lx.Text != ":" {
				return p.fail(newInvalidJSONError(lx.Pos, "expected ':', got %q", lx.Text))
			}
			p.state = stValue
			continue

		case stCommaOrEnd:
			lx, err := p.lex.Next()
			if err != nil {
				return p.fail(p.eofOr(err, "expected ',' or a closing bracket"))
			}
			switch {
			case lx.Kind == LexemePunct && lx.Text == ",":
				if p.top() == frameMap {
					p.state = stKeyAfterComma
				} else {
					p.state = stValue
				}
				continue
			case lx.Kind == LexemePunct && lx.Text == "}" && p.top() == frameMap:
				p.pop()
				return p.emitAfterValue(structuralEvent(EndMap))
			case lx.Kind == LexemePunct && lx.Text == "]" && p.top() == frameArray:
				p.pop()
				return p.emitAfterValue(structuralEvent(EndArray))
			default:
				return p.fail(newInvalidJSONError(lx.Pos, "unexpected lexeme %q", lx.Text))
			}

		case stKey, stKeyAfterComma:
			lx, err := p.lex.Next()
			if err != nil {
				return p.fail(p.eofOr(err, "expected a key or '}'"))
			}
			if lx.Kind == LexemePunct && lx.Text == "}" {
				if p.state == stKeyAfterComma {
					return p.fail(newInvalidJSONError(lx.Pos, "trailing comma before '}'"))
				}
				p.pop()
				return p.emitAfterValue(structuralEvent(EndMap))
			}
			if lx.Kind != LexemeString {
				return p.fail(newInvalidJSONError(lx.Pos, "expected a string key, got %q", lx.Text))
			}
			key, err := decodeString(lx.Text, lx.Pos)
			if err != nil {
				return p.fail(err)
			}
			p.state = stColon
			return scalarEvent(MapKey, stringValue(key)), nil

		case stTrailingCheck:
			lx, err := p.lex.Next()
			if err == nil {
				return p.fail(newInvalidJSONError(lx.Pos, "trailing data after top-level value"))
			}
			if !isEOF(err) {
				return p.fail(err)
			}
			p.state = stDone
			return Event{}, errEOF

		case stNextTopValue:
			lx, err := p.lex.Next()
			if err != nil {
				if isEOF(err) {
					p.state = stDone
					return Event{}, errEOF
				}
				return p.fail(err)
			}
			return p.handleValueLexeme(lx)

		case stInitialValue, stValue:
			lx, err := p.lex.Next()
			if err != nil {
				return p.fail(p.eofOr(err, "expected a value"))
			}
			return p.handleValueLexeme(lx)

		case stArrayValueOrEnd:
			lx, err := p.lex.Next()
			if err != nil {
				return p.fail(p.eofOr(err, "expected a value or ']'"))
			}
			if lx.Kind == LexemePunct && lx.Text == "]" {
				p.pop()
				return p.emitAfterValue(structuralEvent(EndArray))
			}
			return p.handleValueLexeme(lx)
		}
	}
}

// handleValueLexeme interprets a lexeme already known to start a
// value (the caller has ruled out an immediate container closer where
// relevant).
func (p *BasicParser) handleValueLexeme(lx Lexeme) (Event, error) {
	switch {
	case lx.Kind == LexemePunct && lx.Text == "{":
		p.push(frameMap)
		p.state = stKey
		return structuralEvent(StartMap), nil
	case lx.Kind == LexemePunct && lx.Text == "[":
		p.push(frameArray)
		p.state = stArrayValueOrEnd
		return structuralEvent(StartArray), nil
	case lx.Kind == LexemeString:
		s, err := decodeString(lx.Text, lx.Pos)
		if err != nil {
			return p.fail(err)
		}
		return p.emitAfterValue(scalarEvent(String, stringValue(s)))
	case lx.Kind == LexemeNumber:
		return p.emitAfterValue(scalarEvent(Number, decodeNumber(lx.Text)))
	case lx.Kind == LexemeKeyword:
		switch lx.Text {
		case "true":
			return p.emitAfterValue(scalarEvent(Boolean, boolValue(true)))
		case "false":
			return p.emitAfterValue(scalarEvent(Boolean, boolValue(false)))
		case "null":
			return p.emitAfterValue(scalarEvent(Null, nullValue()))
		}
	}
	return p.fail(newInvalidJSONError(lx.Pos, "unexpected lexeme %q", lx.Text))
}

// emitAfterValue computes the state to resume at once a value (scalar
// or a matched container close) has just completed, and returns the
// triggering event.
func (p *BasicParser) emitAfterValue(ev Event) (Event, error) {
	if len(p.stack) == 0 {
		if p.cfg.multipleValues {
			p.state = stNextTopValue
		} else {
			p.state = stTrailingCheck
		}
	} else {
		p.state = stCommaOrEnd
	}
	return ev, nil
}

func (p *BasicParser) fail(err error) (Event, error) {
	p.failed = true
	return Event{}, err
}

// eofOr turns a clean end-of-stream from the lexer into an
// IncompleteInputError (we were mid-grammar, not between top-level
// values), passing any other error through unchanged.
func (p *BasicParser) eofOr(err error, ctx string) error {
	if isEOF(err) {
		return newIncompleteInputError(-1, ctx)
	}
	return err
}
