// Package ijson is an incremental, event-driven JSON parser. It
// consumes JSON from a byte (or, with a deprecation warning, text)
// stream and emits a lazy sequence of parsing events without ever
// materializing the whole document, so callers can process documents
// larger than memory or extract selected fragments from deeply nested
// input.
//
// The pipeline has four stages, each consuming the lazy sequence
// produced by the one before:
//
//	Lexer        byte/text stream -> (position, lexeme)
//	BasicParser  lexemes          -> typed events (start_map, string, ...)
//	PrefixTagger events           -> (prefix, event, value) triples
//	Items/KVItems                 -> materialized values / key-value pairs
//
// Each stage is single-threaded, synchronous, and pull-driven: nothing
// runs ahead of what the consumer has asked for, and the only stage
// that can block is the Lexer's underlying Read call.
package ijson
