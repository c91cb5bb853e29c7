package ijson

// KV is a single direct child of a matched map, as yielded by
// KVItems.
type KV struct {
	Key   string
	Value interface{}
}

// ItemIterator yields one materialized value per occurrence of a
// prefix in a prefixed-event stream.
type ItemIterator struct {
	tagger *PrefixTagger
	prefix string
	cfg    builderConfig
}

// Items wraps src (an io.Reader or an EventSource) in a PrefixTagger
// and yields one materialized value per occurrence of prefix. Nested
// occurrences of the same prefix inside an already-matched sub-tree
// do not re-enter: the whole sub-tree is consumed as a single value.
func Items(src interface{}, prefix string, opts ...Option) *ItemIterator {
	return &ItemIterator{
		tagger: Parse(src, opts...),
		prefix: prefix,
		cfg:    newBuilderConfig(opts),
	}
}

// Next returns the next matched value, or io.EOF once the stream is
// exhausted without further matches.
func (it *ItemIterator) Next() (interface{}, error) {
	for {
		pe, err := it.tagger.Next()
		if err != nil {
			return nil, err
		}
		if pe.Prefix != it.prefix {
			continue
		}
		val, err := materializeSubtree(it.tagger, pe, it.cfg)
		if err != nil {
			return nil, err
		}
		return val, nil
	}
}

// materializeSubtree folds first and, if first opens a container, the
// events up to and including its matching close, into a single value.
func materializeSubtree(tagger *PrefixTagger, first PrefixedEvent, cfg builderConfig) (interface{}, error) {
	b := newObjectBuilder(cfg)
	b.Feed(Event{Kind: first.Kind, Value: first.Value})
	for !b.Done() {
		pe, err := tagger.Next()
		if err != nil {
			return nil, err
		}
		b.Feed(Event{Kind: pe.Kind, Value: pe.Value})
	}
	return b.Value(), nil
}

// KVIterator yields one (key, value) pair per direct child of a
// matched map.
type KVIterator struct {
	tagger *PrefixTagger
	prefix string
	cfg    builderConfig
	inMap  bool // currently positioned inside a matched map
}

// KVItems wraps src in a PrefixTagger and yields one (key, value)
// pair per direct child of each map matching prefix. If an occurrence
// of prefix is not a map, it contributes no pairs.
func KVItems(src interface{}, prefix string, opts ...Option) *KVIterator {
	return &KVIterator{
		tagger: Parse(src, opts...),
		prefix: prefix,
		cfg:    newBuilderConfig(opts),
	}
}

// Next returns the next (key, value) pair, or io.EOF once the stream
// is exhausted without further pairs.
func (it *KVIterator) Next() (KV, error) {
	for {
		if !it.inMap {
			pe, err := it.tagger.Next()
			if err != nil {
				return KV{}, err
			}
			if pe.Prefix != it.prefix {
				continue
			}
			if pe.Kind != StartMap {
				// Not a map: consume and discard the whole occurrence,
				// then keep scanning for another match.
				if _, err := materializeSubtree(it.tagger, pe, it.cfg); err != nil {
					return KV{}, err
				}
				continue
			}
			it.inMap = true
			continue
		}

		pe, err := it.tagger.Next()
		if err != nil {
			return KV{}, err
		}
		switch {
		case pe.Kind == EndMap && pe.Prefix == it.prefix:
			it.inMap = false
			continue
		case pe.Kind == MapKey && pe.Prefix == it.prefix:
			key := pe.Value.Str
			val, err := materializeNextValue(it.tagger, it.cfg)
			if err != nil {
				return KV{}, err
			}
			return KV{Key: key, Value: val}, nil
		}
	}
}

// materializeNextValue folds the upcoming event (and, if it opens a
// container, everything up to its matching close) into a single
// value.
func materializeNextValue(tagger *PrefixTagger, cfg builderConfig) (interface{}, error) {
	pe, err := tagger.Next()
	if err != nil {
		return nil, err
	}
	return materializeSubtree(tagger, pe, cfg)
}
