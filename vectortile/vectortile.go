// Package vectortile models the Mapbox Vector Tile protobuf schema,
// version 2.1, and its wire serialization.
//
// The types mirror vector_tile.proto: a Tile holds named Layers,
// each carrying its features plus the deduplicated key and value tables
// that feature tag pairs index into.
package vectortile

// DefaultExtent is the extent assumed for layers that omit the field.
const DefaultExtent uint32 = 4096

// GeomType is the geometry type of a feature.
type GeomType uint32

const (
	GeomTypeUnknown    GeomType = 0
	GeomTypePoint      GeomType = 1
	GeomTypeLineString GeomType = 2
	GeomTypePolygon    GeomType = 3
)

func (g GeomType) String() string {
	switch g {
	case GeomTypePoint:
		return "point"
	case GeomTypeLineString:
		return "linestring"
	case GeomTypePolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Tile is the top-level message of a vector tile.
type Tile struct {
	Layers []*Layer
}

// Layer is a named collection of features sharing one coordinate extent
// and one pair of key/value dictionaries.
type Layer struct {
	Version  uint32
	Name     string
	Features []*Feature
	Keys     []string
	Values   []*Value
	Extent   uint32 // 0 means absent; treat as DefaultExtent
}

// Feature carries one geometry and its attribute tags: pairs of indices
// into the enclosing layer's Keys and Values tables.
type Feature struct {
	ID       uint64
	Tags     []uint32
	Type     GeomType
	Geometry []uint32
}

// Value is one entry of a layer's value table. Exactly one field is set
// in a well-formed tile; nil fields were absent on the wire.
type Value struct {
	StringValue *string
	FloatValue  *float32
	DoubleValue *float64
	IntValue    *int64
	UintValue   *uint64
	SintValue   *int64
	BoolValue   *bool
}
