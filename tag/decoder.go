package tag

import (
	"errors"
	"fmt"

	"github.com/ciscorn/tinymvt/vectortile"
)

var (
	ErrOddTags      = errors.New("tinymvt: tags array must have even length")
	ErrIndexRange   = errors.New("tinymvt: tag index out of bounds")
	ErrInvalidValue = errors.New("tinymvt: invalid tile value")
)

// Pair is one decoded attribute.
type Pair struct {
	Key   string
	Value Value
}

// Decoder resolves feature tag index pairs against one layer's key and
// value dictionaries. Construct one per layer and reuse it for all of the
// layer's features; it is read-only after construction.
type Decoder struct {
	keys   []string
	values []Value
}

// NewDecoder builds a decoder over a layer's dictionaries. Value entries
// with no field set convert to the invalid zero Value; referencing one
// from a tag pair fails at Decode time, unreferenced ones are harmless.
func NewDecoder(keys []string, values []*vectortile.Value) *Decoder {
	vals := make([]Value, len(values))
	for i, tv := range values {
		vals[i], _ = FromTileValue(tv)
	}
	return &Decoder{keys: keys, values: vals}
}

// Decode resolves a feature's tag index pairs, preserving order and
// duplicates.
func (d *Decoder) Decode(tags []uint32) ([]Pair, error) {
	if len(tags)%2 != 0 {
		return nil, ErrOddTags
	}
	pairs := make([]Pair, 0, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		ki, vi := tags[i], tags[i+1]
		if uint64(ki) >= uint64(len(d.keys)) {
			return nil, fmt.Errorf("%w: key index %d", ErrIndexRange, ki)
		}
		if uint64(vi) >= uint64(len(d.values)) {
			return nil, fmt.Errorf("%w: value index %d", ErrIndexRange, vi)
		}
		value := d.values[vi]
		if !value.IsValid() {
			return nil, fmt.Errorf("%w at index %d", ErrInvalidValue, vi)
		}
		pairs = append(pairs, Pair{Key: d.keys[ki], Value: value})
	}
	return pairs, nil
}
