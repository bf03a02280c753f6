package vectortile

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers from vector_tile.proto.
const (
	tileLayersField = 3

	layerNameField     = 1
	layerFeaturesField = 2
	layerKeysField     = 3
	layerValuesField   = 4
	layerExtentField   = 5
	layerVersionField  = 15

	featureIDField       = 1
	featureTagsField     = 2
	featureTypeField     = 3
	featureGeometryField = 4

	valueStringField = 1
	valueFloatField  = 2
	valueDoubleField = 3
	valueIntField    = 4
	valueUintField   = 5
	valueSintField   = 6
	valueBoolField   = 7
)

// Marshal serializes the tile to protobuf wire bytes.
func Marshal(t *Tile) []byte {
	var b []byte
	for _, layer := range t.Layers {
		b = protowire.AppendTag(b, tileLayersField, protowire.BytesType)
		b = protowire.AppendBytes(b, appendLayer(nil, layer))
	}
	return b
}

// MarshalGzipped serializes the tile and gzips the result, the
// conventional storage encoding for tiles in MBTiles archives.
func MarshalGzipped(t *Tile) ([]byte, error) {
	return Compress(Marshal(t), CompressionGzip)
}

func appendLayer(b []byte, l *Layer) []byte {
	b = protowire.AppendTag(b, layerNameField, protowire.BytesType)
	b = protowire.AppendString(b, l.Name)
	for _, f := range l.Features {
		b = protowire.AppendTag(b, layerFeaturesField, protowire.BytesType)
		b = protowire.AppendBytes(b, appendFeature(nil, f))
	}
	for _, k := range l.Keys {
		b = protowire.AppendTag(b, layerKeysField, protowire.BytesType)
		b = protowire.AppendString(b, k)
	}
	for _, v := range l.Values {
		b = protowire.AppendTag(b, layerValuesField, protowire.BytesType)
		b = protowire.AppendBytes(b, appendValue(nil, v))
	}
	if l.Extent != 0 {
		b = protowire.AppendTag(b, layerExtentField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(l.Extent))
	}
	b = protowire.AppendTag(b, layerVersionField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(l.Version))
	return b
}

func appendFeature(b []byte, f *Feature) []byte {
	if f.ID != 0 {
		b = protowire.AppendTag(b, featureIDField, protowire.VarintType)
		b = protowire.AppendVarint(b, f.ID)
	}
	if len(f.Tags) > 0 {
		b = protowire.AppendTag(b, featureTagsField, protowire.BytesType)
		b = protowire.AppendBytes(b, appendPackedUint32(nil, f.Tags))
	}
	if f.Type != GeomTypeUnknown {
		b = protowire.AppendTag(b, featureTypeField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(f.Type))
	}
	if len(f.Geometry) > 0 {
		b = protowire.AppendTag(b, featureGeometryField, protowire.BytesType)
		b = protowire.AppendBytes(b, appendPackedUint32(nil, f.Geometry))
	}
	return b
}

func appendValue(b []byte, v *Value) []byte {
	if v.StringValue != nil {
		b = protowire.AppendTag(b, valueStringField, protowire.BytesType)
		b = protowire.AppendString(b, *v.StringValue)
	}
	if v.FloatValue != nil {
		b = protowire.AppendTag(b, valueFloatField, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(*v.FloatValue))
	}
	if v.DoubleValue != nil {
		b = protowire.AppendTag(b, valueDoubleField, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(*v.DoubleValue))
	}
	if v.IntValue != nil {
		b = protowire.AppendTag(b, valueIntField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*v.IntValue))
	}
	if v.UintValue != nil {
		b = protowire.AppendTag(b, valueUintField, protowire.VarintType)
		b = protowire.AppendVarint(b, *v.UintValue)
	}
	if v.SintValue != nil {
		b = protowire.AppendTag(b, valueSintField, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(*v.SintValue))
	}
	if v.BoolValue != nil {
		b = protowire.AppendTag(b, valueBoolField, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(*v.BoolValue))
	}
	return b
}

func appendPackedUint32(b []byte, values []uint32) []byte {
	for _, v := range values {
		b = protowire.AppendVarint(b, uint64(v))
	}
	return b
}
