// Package tag implements the attribute side of vector tile features:
// typed values, interning of keys and values into the layer dictionaries,
// and resolution of a feature's tag index pairs back to attributes.
package tag

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ciscorn/tinymvt/vectortile"
)

// Kind is the type of a Value, one per variant of the protobuf value
// message. The zero Kind marks the invalid zero Value.
type Kind uint8

const (
	kindInvalid Kind = iota
	KindString
	KindFloat
	KindDouble
	KindInt
	KindUint
	KindSInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindSInt:
		return "sint"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is one feature attribute value. Values are comparable and hash by
// exact bit pattern, so floats compare by representation rather than by
// numeric equality: NaNs with equal bits intern to one dictionary entry,
// and 0.0 and -0.0 stay distinct.
type Value struct {
	kind Kind
	num  uint64
	str  string
}

func String(s string) Value { return Value{kind: KindString, str: s} }

func Float(f float32) Value { return Value{kind: KindFloat, num: uint64(math.Float32bits(f))} }

func Double(f float64) Value { return Value{kind: KindDouble, num: math.Float64bits(f)} }

// Int constructs a plain int64 value. Prefer Signed for general integer
// conversion; the int variant exists for callers that need that exact
// wire type.
func Int(i int64) Value { return Value{kind: KindInt, num: uint64(i)} }

func Uint(u uint64) Value { return Value{kind: KindUint, num: u} }

func SInt(i int64) Value { return Value{kind: KindSInt, num: uint64(i)} }

func Bool(b bool) Value {
	var n uint64
	if b {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

// Signed converts a signed integer the way the dictionaries expect:
// non-negative values become Uint and negative ones SInt, so 10 and
// uint64(10) intern to the same entry regardless of the source type.
func Signed(i int64) Value {
	if i >= 0 {
		return Uint(uint64(i))
	}
	return SInt(i)
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsValid() bool { return v.kind != kindInvalid }

// String returns the value formatted as a string. Unlike the typed
// accessors it never panics; non-string kinds format their scalar.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindFloat:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(v.num))), 'g', -1, 32)
	case KindDouble:
		return strconv.FormatFloat(math.Float64frombits(v.num), 'g', -1, 64)
	case KindInt, KindSInt:
		return strconv.FormatInt(int64(v.num), 10)
	case KindUint:
		return strconv.FormatUint(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.num != 0)
	default:
		return "<invalid>"
	}
}

// Float32 returns the float value. It panics if the kind is not KindFloat.
func (v Value) Float32() float32 {
	v.mustBe(KindFloat)
	return math.Float32frombits(uint32(v.num))
}

// Float64 returns the double value. It panics if the kind is not KindDouble.
func (v Value) Float64() float64 {
	v.mustBe(KindDouble)
	return math.Float64frombits(v.num)
}

// Int64 returns the signed integer value of a KindInt or KindSInt value.
func (v Value) Int64() int64 {
	if v.kind != KindInt && v.kind != KindSInt {
		panic(fmt.Sprintf("tinymvt: value kind is %s, not int or sint", v.kind))
	}
	return int64(v.num)
}

// Uint64 returns the unsigned integer value. It panics if the kind is not
// KindUint.
func (v Value) Uint64() uint64 {
	v.mustBe(KindUint)
	return v.num
}

// Bool returns the boolean value. It panics if the kind is not KindBool.
func (v Value) Bool() bool {
	v.mustBe(KindBool)
	return v.num != 0
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("tinymvt: value kind is %s, not %s", v.kind, k))
	}
}

// TileValue converts the value to its protobuf form. The zero Value
// yields nil.
func (v Value) TileValue() *vectortile.Value {
	switch v.kind {
	case KindString:
		s := v.str
		return &vectortile.Value{StringValue: &s}
	case KindFloat:
		f := math.Float32frombits(uint32(v.num))
		return &vectortile.Value{FloatValue: &f}
	case KindDouble:
		f := math.Float64frombits(v.num)
		return &vectortile.Value{DoubleValue: &f}
	case KindInt:
		i := int64(v.num)
		return &vectortile.Value{IntValue: &i}
	case KindUint:
		u := v.num
		return &vectortile.Value{UintValue: &u}
	case KindSInt:
		i := int64(v.num)
		return &vectortile.Value{SintValue: &i}
	case KindBool:
		b := v.num != 0
		return &vectortile.Value{BoolValue: &b}
	default:
		return nil
	}
}

// FromTileValue converts a decoded protobuf value. When several fields
// are set the first one wins, checked in schema order; ok is false when
// none is set.
func FromTileValue(tv *vectortile.Value) (Value, bool) {
	switch {
	case tv == nil:
		return Value{}, false
	case tv.StringValue != nil:
		return String(*tv.StringValue), true
	case tv.FloatValue != nil:
		return Float(*tv.FloatValue), true
	case tv.DoubleValue != nil:
		return Double(*tv.DoubleValue), true
	case tv.IntValue != nil:
		return Int(*tv.IntValue), true
	case tv.UintValue != nil:
		return Uint(*tv.UintValue), true
	case tv.SintValue != nil:
		return SInt(*tv.SintValue), true
	case tv.BoolValue != nil:
		return Bool(*tv.BoolValue), true
	default:
		return Value{}, false
	}
}
