// Package geometry implements the Mapbox Vector Tile geometry codec:
// points, linestrings and polygon rings encoded as a command stream of
// uint32 words carrying zigzag-encoded coordinate deltas.
package geometry

import "google.golang.org/protobuf/encoding/protowire"

// Geometry command IDs as defined by the MVT specification.
const (
	commandMoveTo    uint32 = 1
	commandLineTo    uint32 = 2
	commandClosePath uint32 = 7
)

// A command word holds the command ID in its low 3 bits and the repeat
// count in the remaining bits. ClosePath is always emitted with count 1.
const (
	commandMoveToCount1    = commandMoveTo | 1<<3
	commandClosePathCount1 = commandClosePath | 1<<3
)

// Point is a coordinate pair in tile-local integer space, origin top-left.
type Point [2]int32

func (p Point) X() int32 { return p[0] }
func (p Point) Y() int32 { return p[1] }

// LineString is an ordered sequence of points forming a path.
type LineString []Point

// Ring is a closed path; the closing point is not repeated at the end.
type Ring []Point

// Polygon is one exterior ring followed by zero or more interior rings.
type Polygon []Ring

// EncodeZigZag maps a signed coordinate delta to its zigzag representation,
// keeping small magnitudes small: 0, -1, 1, -2, 2, ... -> 0, 1, 2, 3, 4, ...
func EncodeZigZag(v int32) uint32 {
	return uint32(protowire.EncodeZigZag(int64(v)))
}

// DecodeZigZag is the inverse of EncodeZigZag.
func DecodeZigZag(v uint32) int32 {
	return int32(protowire.DecodeZigZag(uint64(v)))
}
