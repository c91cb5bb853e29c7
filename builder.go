package ijson

// MutableMap is the interface a materialized JSON object satisfies.
// Implementations decide what "insertion order" or "no order" means;
// the object builder never inspects anything but this interface.
type MutableMap interface {
	Set(key string, value interface{})
	Get(key string) (interface{}, bool)
	Keys() []string
	Len() int
}

// MapType is a strategy parameter: a constructor for the concrete
// mapping type the object builder uses for every start_map event.
type MapType interface {
	New() MutableMap
}

type orderedMapType struct{}

func (orderedMapType) New() MutableMap { return NewOrderedMap() }

// DefaultMapType is an insertion-ordered mapping, the default map
// type the object builder constructs for start_map events.
var DefaultMapType MapType = orderedMapType{}

// OrderedMap is a MutableMap that preserves key insertion order. It
// is the default map type built by the object builder.
type OrderedMap struct {
	keys   []string
	values map[string]interface{}
}

// NewOrderedMap creates an empty insertion-ordered mapping.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]interface{})}
}

func (m *OrderedMap) Set(key string, value interface{}) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OrderedMap) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap) Keys() []string { return m.keys }

func (m *OrderedMap) Len() int { return len(m.keys) }

type unorderedMapType struct{}

func (unorderedMapType) New() MutableMap { return make(nativeMap) }

// UnorderedMapType builds a plain Go map with no defined key order,
// useful for exercising that the map-type strategy parameter is
// actually honored end-to-end rather than hard-coded to OrderedMap.
var UnorderedMapType MapType = unorderedMapType{}

type nativeMap map[string]interface{}

func (m nativeMap) Set(key string, value interface{}) { m[key] = value }

func (m nativeMap) Get(key string) (interface{}, bool) { v, ok := m[key]; return v, ok }

func (m nativeMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func (m nativeMap) Len() int { return len(m) }

// builderConfig holds the object builder's Option-configurable
// behavior.
type builderConfig struct {
	mapType MapType
}

func newBuilderConfig(opts []Option) builderConfig {
	cfg := builderConfig{mapType: DefaultMapType}
	for _, opt := range opts {
		opt.applyBuilder(&cfg)
	}
	return cfg
}

type builderFrame struct {
	isMap      bool
	m          MutableMap
	arr        []interface{}
	pendingKey string
}

// objectBuilder folds a flat event sequence into a single value. It
// never recurses over document structure: its stack is an explicit
// slice of partially constructed containers.
type objectBuilder struct {
	cfg       builderConfig
	stack     []builderFrame
	result    interface{}
	hasResult bool
}

func newObjectBuilder(cfg builderConfig) *objectBuilder {
	return &objectBuilder{cfg: cfg}
}

// Feed folds one more event into the builder. Done reports true once
// the value is complete; no further events should be fed after that.
func (b *objectBuilder) Feed(ev Event) {
	switch ev.Kind {
	case StartMap:
		b.stack = append(b.stack, builderFrame{isMap: true, m: b.cfg.mapType.New()})
	case StartArray:
		b.stack = append(b.stack, builderFrame{isMap: false, arr: []interface{}{}})
	case MapKey:
		b.stack[len(b.stack)-1].pendingKey = ev.Value.Str
	case EndMap:
		top := b.pop()
		b.assign(top.m)
	case EndArray:
		top := b.pop()
		b.assign(top.arr)
	default: // scalar: Null, Boolean, Number, String
		b.assign(ev.Value.Interface())
	}
}

func (b *objectBuilder) pop() builderFrame {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return top
}

func (b *objectBuilder) assign(val interface{}) {
	if len(b.stack) == 0 {
		b.result = val
		b.hasResult = true
		return
	}
	top := &b.stack[len(b.stack)-1]
	if top.isMap {
		top.m.Set(top.pendingKey, val)
	} else {
		top.arr = append(top.arr, val)
	}
}

// Done reports whether the builder has produced its final value.
func (b *objectBuilder) Done() bool { return b.hasResult }

// Value returns the completed value. Only valid once Done reports
// true.
func (b *objectBuilder) Value() interface{} { return b.result }
