package ijson

import "io"

// PrefixedEvent is an Event tagged with the dotted JSON-path of its
// container. The path alphabet is object keys verbatim and the
// literal segment "item" for array elements; the root prefix is the
// empty string. map_key events carry the prefix of their container,
// not of the value they introduce; scalar events carry the prefix of
// the key (map values) or "<parent>.item" (array elements).
type PrefixedEvent struct {
	Prefix string
	Kind   EventKind
	Value  Value
}

type prefixFrame struct {
	kind         frameKind
	ownPrefix    string
	pendingLabel string
}

// PrefixTagger wraps an EventSource and maintains a prefix stack in
// lockstep with the underlying container stack.
type PrefixTagger struct {
	src   EventSource
	stack []prefixFrame
}

// Parse wraps a basic event sequence with path information. src may
// be an io.Reader (a byte stream, in which case Parse composes
// BasicParse internally) or an already-constructed EventSource.
// Options configure the composed lexer/parser when src is a byte
// stream; they are ignored when src is already an EventSource.
func Parse(src interface{}, opts ...Option) *PrefixTagger {
	switch s := src.(type) {
	case io.Reader:
		return &PrefixTagger{src: BasicParse(s, opts...)}
	case EventSource:
		return &PrefixTagger{src: s}
	default:
		panic("ijson: Parse: src must be an io.Reader or an EventSource")
	}
}

func joinPrefix(base, label string) string {
	if base == "" {
		return label
	}
	return base + "." + label
}

func (t *PrefixTagger) current() string {
	if len(t.stack) == 0 {
		return ""
	}
	return t.stack[len(t.stack)-1].ownPrefix
}

func (t *PrefixTagger) childPrefix() string {
	if len(t.stack) == 0 {
		return ""
	}
	top := &t.stack[len(t.stack)-1]
	label := "item"
	if top.kind == frameMap {
		label = top.pendingLabel
	}
	return joinPrefix(top.ownPrefix, label)
}

// Next returns the next PrefixedEvent, or io.EOF / an error exactly as
// the underlying source does.
func (t *PrefixTagger) Next() (PrefixedEvent, error) {
	ev, err := t.src.Next()
	if err != nil {
		return PrefixedEvent{}, err
	}

	switch ev.Kind {
	case StartMap, StartArray:
		prefix := t.childPrefix()
		kind := frameMap
		if ev.Kind == StartArray {
			kind = frameArray
		}
		t.stack = append(t.stack, prefixFrame{kind: kind, ownPrefix: prefix})
		return PrefixedEvent{Prefix: prefix, Kind: ev.Kind}, nil

	case EndMap, EndArray:
		prefix := t.current()
		t.stack = t.stack[:len(t.stack)-1]
		return PrefixedEvent{Prefix: prefix, Kind: ev.Kind}, nil

	case MapKey:
		prefix := t.current()
		t.stack[len(t.stack)-1].pendingLabel = ev.Value.Str
		return PrefixedEvent{Prefix: prefix, Kind: MapKey, Value: ev.Value}, nil

	default: // scalar
		return PrefixedEvent{Prefix: t.childPrefix(), Kind: ev.Kind, Value: ev.Value}, nil
	}
}
