package ijson

// LexemeKind classifies a lexeme without interpreting its text; the
// basic parser is responsible for turning the text into a typed
// event.
type LexemeKind byte

const (
	LexemePunct LexemeKind = iota
	LexemeKeyword
	LexemeString
	LexemeNumber
)

func (k LexemeKind) String() string {
	switch k {
	case LexemePunct:
		return "punct"
	case LexemeKeyword:
		return "keyword"
	case LexemeString:
		return "string"
	case LexemeNumber:
		return "number"
	}
	panic("ijson: unknown lexeme kind")
}

// Lexeme is a minimal syntactic token produced by the Lexer: a
// punctuator, a keyword (true/false/null), a fully-quoted string
// (delimiters and escapes included, verbatim), or a number in JSON
// syntax. Pos is the byte offset at which the lexeme begins in the
// logical input.
//
// Text is a copy of the input bytes and stays valid after later calls
// to (*Lexer).Next.
type Lexeme struct {
	Pos  int64
	Kind LexemeKind
	Text string
}
