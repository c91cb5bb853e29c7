package ijson

// Option configures a Lexer, BasicParser, or materializer (Items,
// KVItems). Options are applied left to right; later options
// override earlier ones for the same setting.
type Option interface {
	applyLexer(*Lexer)
	applyParser(*parserConfig)
	applyBuilder(*builderConfig)
}

type baseOption struct {
	lexer   func(*Lexer)
	parser  func(*parserConfig)
	builder func(*builderConfig)
}

func (o baseOption) applyLexer(l *Lexer) {
	if o.lexer != nil {
		o.lexer(l)
	}
}

func (o baseOption) applyParser(c *parserConfig) {
	if o.parser != nil {
		o.parser(c)
	}
}

func (o baseOption) applyBuilder(c *builderConfig) {
	if o.builder != nil {
		o.builder(c)
	}
}

// WithBufSize sets the lexer's read chunk size. The default is
// DefaultBufSize (64 KiB). Small values (even 1 byte) are accepted
// and are useful for exercising buffer-boundary behavior in tests.
func WithBufSize(n int) Option {
	return baseOption{lexer: func(l *Lexer) {
		if n > 0 {
			l.bufSize = n
		}
	}}
}

// WithMultipleValues allows a stream to contain several
// whitespace-separated top-level JSON values instead of exactly one.
func WithMultipleValues(enabled bool) Option {
	return baseOption{parser: func(c *parserConfig) {
		c.multipleValues = enabled
	}}
}

// WithMapType selects the mapping implementation the object builder
// constructs for start_map events. The default is an insertion-ordered
// mapping (NewOrderedMap).
func WithMapType(mt MapType) Option {
	return baseOption{builder: func(c *builderConfig) {
		c.mapType = mt
	}}
}
