package tag

import "github.com/ciscorn/tinymvt/vectortile"

// Encoder interns feature attributes into a layer's key and value
// dictionaries, assigning each distinct key and value the index of its
// first appearance. One Encoder serves all features of a layer.
type Encoder struct {
	keyIndex   map[string]uint32
	keys       []string
	valueIndex map[Value]uint32
	values     []Value
	tags       []uint32
}

func NewEncoder() *Encoder {
	return &Encoder{
		keyIndex:   make(map[string]uint32),
		valueIndex: make(map[Value]uint32),
	}
}

// Add appends one key/value pair to the current feature's tags. It panics
// on the zero Value; absent attributes should not be added at all.
func (e *Encoder) Add(key string, value Value) {
	if !value.IsValid() {
		panic("tinymvt: invalid tag value")
	}
	ki, ok := e.keyIndex[key]
	if !ok {
		ki = uint32(len(e.keys))
		e.keyIndex[key] = ki
		e.keys = append(e.keys, key)
	}
	vi, ok := e.valueIndex[value]
	if !ok {
		vi = uint32(len(e.values))
		e.valueIndex[value] = vi
		e.values = append(e.values, value)
	}
	e.tags = append(e.tags, ki, vi)
}

// TakeTags returns the index pairs accumulated since the previous call
// and resets the per-feature state. The dictionaries are kept.
func (e *Encoder) TakeTags() []uint32 {
	tags := e.tags
	e.tags = nil
	return tags
}

// KeysAndValues returns the interned dictionaries in first-appearance
// order, values in their protobuf form, ready for the layer's keys and
// values fields. Call it once after the layer's last feature; the
// encoder must not be used afterwards.
func (e *Encoder) KeysAndValues() ([]string, []*vectortile.Value) {
	values := make([]*vectortile.Value, len(e.values))
	for i, v := range e.values {
		values[i] = v.TileValue()
	}
	return e.keys, values
}
