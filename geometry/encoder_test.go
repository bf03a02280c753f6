package geometry_test

import (
	"math"
	"testing"

	"github.com/ciscorn/tinymvt/geometry"
	"github.com/google/go-cmp/cmp"
)

func TestZigZag(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		value   int32
		encoded uint32
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
		{4096, 8192},
		{-4096, 8191},
		{math.MaxInt32, math.MaxUint32 - 1},
		{math.MinInt32, math.MaxUint32},
	} {
		if got, want := geometry.EncodeZigZag(tc.value), tc.encoded; got != want {
			t.Errorf("EncodeZigZag(%d) = %d, want %d", tc.value, got, want)
		}
		if got, want := geometry.DecodeZigZag(tc.encoded), tc.value; got != want {
			t.Errorf("DecodeZigZag(%d) = %d, want %d", tc.encoded, got, want)
		}
	}
}

func TestZigZagRoundTrip(t *testing.T) {
	t.Parallel()
	for v := int32(-100_000); v <= 100_000; v += 17 {
		if got := geometry.DecodeZigZag(geometry.EncodeZigZag(v)); got != v {
			t.Fatalf("round trip of %d: got %d", v, got)
		}
	}
}

func TestEncodePoints(t *testing.T) {
	t.Parallel()
	enc := geometry.NewEncoder()
	enc.AddPoints([]geometry.Point{{10, 20}, {30, 40}, {50, 60}})

	// MoveTo with count 3, deltas relative to the previous point.
	want := []uint32{1 | 3<<3, 20, 40, 40, 40, 40, 40}
	if diff := cmp.Diff(want, enc.Geometry()); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodePointsSkipsDuplicates(t *testing.T) {
	t.Parallel()
	enc := geometry.NewEncoder()
	enc.AddPoints([]geometry.Point{{5, 5}, {5, 5}, {6, 5}})

	want := []uint32{1 | 2<<3, 10, 10, 2, 0}
	if diff := cmp.Diff(want, enc.Geometry()); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeLineString(t *testing.T) {
	t.Parallel()
	enc := geometry.NewEncoder()
	enc.AddLineString([]geometry.Point{{0, 0}, {10, 10}})

	want := []uint32{9, 0, 0, 2 | 1<<3, 20, 20}
	if diff := cmp.Diff(want, enc.Geometry()); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeLineStringCollapsed(t *testing.T) {
	t.Parallel()

	// All segments quantize to zero length; the LineTo run keeps one
	// explicit zero delta so the path stays well formed.
	enc := geometry.NewEncoder()
	enc.AddLineString([]geometry.Point{{5, 5}, {5, 5}, {5, 5}})

	want := []uint32{9, 10, 10, 2 | 1<<3, 0, 0}
	if diff := cmp.Diff(want, enc.Geometry()); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRing(t *testing.T) {
	t.Parallel()
	enc := geometry.NewEncoder()
	enc.AddRing([]geometry.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})

	want := []uint32{9, 0, 0, 2 | 3<<3, 20, 0, 0, 20, 19, 0, 15}
	if diff := cmp.Diff(want, enc.Geometry()); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestEncoderCursorPersists(t *testing.T) {
	t.Parallel()

	// The second linestring's MoveTo is relative to the last point of
	// the first one.
	enc := geometry.NewEncoder()
	enc.AddLineString([]geometry.Point{{10, 10}, {20, 20}})
	enc.AddLineString([]geometry.Point{{30, 30}, {40, 40}})

	want := []uint32{
		9, 20, 20, 2 | 1<<3, 20, 20,
		9, 20, 20, 2 | 1<<3, 20, 20,
	}
	if diff := cmp.Diff(want, enc.Geometry()); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeEmptyInputs(t *testing.T) {
	t.Parallel()
	enc := geometry.NewEncoder()
	enc.AddPoints(nil)
	enc.AddLineString(nil)
	enc.AddRing([]geometry.Point{})
	if got := enc.Geometry(); len(got) != 0 {
		t.Fatalf("empty inputs produced %d words", len(got))
	}

	// The cursor must still be at the origin.
	enc.AddLineString([]geometry.Point{{1, 1}, {2, 2}})
	want := []uint32{9, 2, 2, 2 | 1<<3, 2, 2}
	if diff := cmp.Diff(want, enc.Geometry()); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
}
