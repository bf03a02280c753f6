package tag_test

import (
	"math"
	"testing"

	"github.com/ciscorn/tinymvt/tag"
	"github.com/ciscorn/tinymvt/vectortile"
	"github.com/stretchr/testify/require"
)

func TestEncoder(t *testing.T) {
	t.Parallel()
	enc := tag.NewEncoder()

	// First feature: both dictionaries grow in first-appearance order.
	enc.Add("k0", tag.String("v0"))
	enc.Add("k0", tag.String("v0"))
	enc.Add("k1", tag.String("v0"))
	enc.Add("k1", tag.String("v1"))
	require.Equal(t, []uint32{0, 0, 0, 0, 1, 0, 1, 1}, enc.TakeTags())

	// Second feature: dictionaries persist across TakeTags.
	enc.Add("k0", tag.String("v0"))
	enc.Add("k0", tag.String("v2"))
	enc.Add("k1", tag.String("v2"))
	enc.Add("k2", tag.String("v0"))
	enc.Add("k1", tag.String("v1"))
	enc.Add("k1", tag.String("v1"))
	require.Equal(t, []uint32{0, 0, 0, 2, 1, 2, 2, 0, 1, 1, 1, 1}, enc.TakeTags())

	// Third feature: numeric values. Signed(10) and Uint(10) intern to
	// one entry, while Float, Double and Int values of equal magnitude
	// stay distinct.
	enc.Add("k1", tag.Signed(10))
	enc.Add("k2", tag.Double(10.5))
	enc.Add("k3", tag.Uint(10))
	enc.Add("k3", tag.Signed(-10))
	enc.Add("k3", tag.Bool(true))
	enc.Add("k3", tag.Signed(1))
	enc.Add("k2", tag.Float(10.5))
	enc.Add("k4", tag.Double(10.5))
	enc.Add("k3", tag.Signed(-10))
	enc.Add("k3", tag.Uint(10))
	enc.Add("k5", tag.Int(11))
	enc.Add("k5", tag.Signed(12))
	require.Equal(t, []uint32{1, 3, 2, 4, 3, 3, 3, 5, 3, 6, 3, 7, 2, 8, 4, 4, 3, 5, 3, 3, 5, 9, 5, 10}, enc.TakeTags())

	keys, values := enc.KeysAndValues()
	require.Equal(t, []string{"k0", "k1", "k2", "k3", "k4", "k5"}, keys)
	require.Equal(t, []*vectortile.Value{
		{StringValue: ptr("v0")},
		{StringValue: ptr("v1")},
		{StringValue: ptr("v2")},
		{UintValue: ptr(uint64(10))},
		{DoubleValue: ptr(10.5)},
		{SintValue: ptr(int64(-10))},
		{BoolValue: ptr(true)},
		{UintValue: ptr(uint64(1))},
		{FloatValue: ptr(float32(10.5))},
		{IntValue: ptr(int64(11))},
		{UintValue: ptr(uint64(12))},
	}, values)
}

func TestEncoderFloatIdentity(t *testing.T) {
	t.Parallel()
	enc := tag.NewEncoder()

	// Floats intern by bit pattern: equal-bits NaNs share one entry and
	// -0.0 is distinct from 0.0.
	nan := math.NaN()
	enc.Add("a", tag.Double(nan))
	enc.Add("b", tag.Double(nan))
	enc.Add("c", tag.Double(0))
	enc.Add("d", tag.Double(math.Copysign(0, -1)))
	require.Equal(t, []uint32{0, 0, 1, 0, 2, 1, 3, 2}, enc.TakeTags())

	_, values := enc.KeysAndValues()
	require.Len(t, values, 3)
}

func TestTakeTagsResets(t *testing.T) {
	t.Parallel()
	enc := tag.NewEncoder()
	enc.Add("k", tag.Bool(true))
	require.Equal(t, []uint32{0, 0}, enc.TakeTags())
	require.Empty(t, enc.TakeTags())
}

func TestEncoderInvalidValuePanics(t *testing.T) {
	t.Parallel()
	enc := tag.NewEncoder()
	require.Panics(t, func() { enc.Add("k", tag.Value{}) })
}
