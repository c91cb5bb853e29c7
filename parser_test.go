package ijson

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainEvents(t *testing.T, p *BasicParser) ([]Event, error) {
	t.Helper()
	var out []Event
	for {
		ev, err := p.Next()
		if err != nil {
			return out, err
		}
		out = append(out, ev)
	}
}

func TestBasicParserSimpleObject(t *testing.T) {
	p := BasicParse(strings.NewReader(`{"a":1,"b":[true,null]}`))
	events, err := drainEvents(t, p)
	require.ErrorIs(t, err, io.EOF)

	want := []EventKind{
		StartMap, MapKey, Number, MapKey, StartArray, Boolean, Null, EndArray, EndMap,
	}
	got := make([]EventKind, len(events))
	for i, ev := range events {
		got[i] = ev.Kind
	}
	assert.Equal(t, want, got)
}

func TestBasicParserEmptyContainers(t *testing.T) {
	testcases := []string{`{}`, `[]`, `{"a":{},"b":[]}`}
	for _, input := range testcases {
		p := BasicParse(strings.NewReader(input))
		_, err := drainEvents(t, p)
		require.ErrorIsf(t, err, io.EOF, "input %q", input)
	}
}

func TestBasicParserTrailingCommaInObjectIsInvalid(t *testing.T) {
	p := BasicParse(strings.NewReader(`{"a":1,}`))
	_, err := drainEvents(t, p)
	var invalid *InvalidJSONError
	require.ErrorAs(t, err, &invalid)
}

func TestBasicParserTrailingCommaInArrayIsInvalid(t *testing.T) {
	p := BasicParse(strings.NewReader(`[1,]`))
	_, err := drainEvents(t, p)
	var invalid *InvalidJSONError
	require.ErrorAs(t, err, &invalid)
}

func TestBasicParserUnbalancedCloserIsInvalid(t *testing.T) {
	p := BasicParse(strings.NewReader(`{"a":1]`))
	_, err := drainEvents(t, p)
	var invalid *InvalidJSONError
	require.ErrorAs(t, err, &invalid)
}

func TestBasicParserTrailingDataIsInvalid(t *testing.T) {
	p := BasicParse(strings.NewReader(`1 2`))
	_, err := drainEvents(t, p)
	var invalid *InvalidJSONError
	require.ErrorAs(t, err, &invalid)
}

func TestBasicParserIncompleteInputIsIncomplete(t *testing.T) {
	p := BasicParse(strings.NewReader(`{"a":`))
	_, err := drainEvents(t, p)
	var incomplete *IncompleteInputError
	require.ErrorAs(t, err, &incomplete)
}

func TestBasicParserEmptyInputIsIncomplete(t *testing.T) {
	p := BasicParse(strings.NewReader(``))
	_, err := drainEvents(t, p)
	var incomplete *IncompleteInputError
	require.ErrorAs(t, err, &incomplete)
}

func TestBasicParserMultipleValues(t *testing.T) {
	p := BasicParse(strings.NewReader(`1 2 3`), WithMultipleValues(true))
	events, err := drainEvents(t, p)
	require.ErrorIs(t, err, io.EOF)
	require.Len(t, events, 3)
	for i, ev := range events {
		require.Equal(t, Number, ev.Kind)
		assert.Equal(t, int64(i+1), ev.Value.Integer.Int64())
	}
}

func TestBasicParserMultipleValuesOfMixedShape(t *testing.T) {
	p := BasicParse(strings.NewReader(`{"a":1} [1,2] "x"`), WithMultipleValues(true))
	events, err := drainEvents(t, p)
	require.ErrorIs(t, err, io.EOF)

	var kinds []EventKind
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []EventKind{
		StartMap, MapKey, Number, EndMap,
		StartArray, Number, Number, EndArray,
		String,
	}, kinds)
}

func TestBasicParserDecodesNumberKinds(t *testing.T) {
	p := BasicParse(strings.NewReader(`[1, 1.5, 1e10, -3]`))
	events, err := drainEvents(t, p)
	require.ErrorIs(t, err, io.EOF)

	nums := events[1:5]
	require.Equal(t, KindInteger, nums[0].Value.Kind)
	assert.Equal(t, "1", nums[0].Value.Integer.String())
	require.Equal(t, KindDecimal, nums[1].Value.Kind)
	assert.Equal(t, "1.5", nums[1].Value.Decimal.Literal)
	require.Equal(t, KindDecimal, nums[2].Value.Kind)
	assert.Equal(t, "1e10", nums[2].Value.Decimal.Literal)
	require.Equal(t, KindInteger, nums[3].Value.Kind)
	assert.Equal(t, "-3", nums[3].Value.Integer.String())
}

func TestBasicParserFailsStickily(t *testing.T) {
	p := BasicParse(strings.NewReader(`}`))
	_, err := p.Next()
	require.Error(t, err)

	_, err2 := p.Next()
	require.ErrorIs(t, err2, io.EOF)
}
