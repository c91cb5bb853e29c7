package ijson

import (
	"fmt"
	"math/big"
)

// ValueKind discriminates the payload carried by an Event or a
// materialized scalar.
type ValueKind byte

const (
	KindNull ValueKind = iota
	KindBool
	KindInteger
	KindDecimal
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	}
	panic("ijson: unknown value kind")
}

// Decimal preserves a JSON number's declared precision verbatim: a
// number written with a fractional part or an exponent is never
// rounded through float64 on the way in. Literal holds the exact
// source digits (sans surrounding whitespace); Float64 and Rat give
// lossy and exact numeric views respectively.
type Decimal struct {
	Literal string
}

// Float64 parses the literal as a float64. It is lossy for numbers
// that do not fit the IEEE-754 double format exactly.
func (d Decimal) Float64() (float64, error) {
	var f float64
	_, err := fmt.Sscanf(d.Literal, "%g", &f)
	if err != nil {
		return 0, fmt.Errorf("ijson: could not convert %q to float64: %w", d.Literal, err)
	}
	return f, nil
}

// Rat returns the decimal as an exact arbitrary-precision rational.
func (d Decimal) Rat() (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(d.Literal)
	if !ok {
		return nil, fmt.Errorf("ijson: could not convert %q to a rational number", d.Literal)
	}
	return r, nil
}

func (d Decimal) String() string {
	return d.Literal
}

// Value is a tagged variant carrying the payload of a scalar Event:
// Null | Bool(b) | Integer(i) | Decimal(d) | Str(s). Structural
// events (start_map, end_map, start_array, end_array) carry the zero
// Value.
type Value struct {
	Kind    ValueKind
	Bool    bool
	Integer *big.Int
	Decimal Decimal
	Str     string
}

func nullValue() Value { return Value{Kind: KindNull} }

func boolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func stringValue(s string) Value { return Value{Kind: KindString, Str: s} }

func integerValue(i *big.Int) Value { return Value{Kind: KindInteger, Integer: i} }

func decimalValue(lit string) Value { return Value{Kind: KindDecimal, Decimal: Decimal{Literal: lit}} }

// Interface returns the Go value a materializer would use for this
// scalar: nil, bool, *big.Int, Decimal or string.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindInteger:
		return v.Integer
	case KindDecimal:
		return v.Decimal
	case KindString:
		return v.Str
	}
	panic("ijson: unknown value kind")
}
