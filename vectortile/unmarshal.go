package vectortile

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrInvalidTile reports malformed protobuf wire data.
var ErrInvalidTile = errors.New("tinymvt: invalid tile data")

func parseErr(n int) error {
	return fmt.Errorf("%w: %w", ErrInvalidTile, protowire.ParseError(n))
}

// Unmarshal parses protobuf wire bytes into a Tile. Unknown fields are
// skipped, and repeated uint32 fields are accepted both packed and
// unpacked.
func Unmarshal(data []byte) (*Tile, error) {
	tile := &Tile{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, parseErr(n)
		}
		data = data[n:]

		if num == tileLayersField && typ == protowire.BytesType {
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			layer, err := unmarshalLayer(raw)
			if err != nil {
				return nil, err
			}
			tile.Layers = append(tile.Layers, layer)
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, data)
		if n < 0 {
			return nil, parseErr(n)
		}
		data = data[n:]
	}
	return tile, nil
}

// UnmarshalGzipped gunzips a stored tile and parses it.
func UnmarshalGzipped(data []byte) (*Tile, error) {
	raw, err := Decompress(data, CompressionGzip)
	if err != nil {
		return nil, err
	}
	return Unmarshal(raw)
}

func unmarshalLayer(data []byte) (*Layer, error) {
	layer := &Layer{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, parseErr(n)
		}
		data = data[n:]

		switch {
		case num == layerNameField && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			layer.Name = s
		case num == layerFeaturesField && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			feature, err := unmarshalFeature(raw)
			if err != nil {
				return nil, err
			}
			layer.Features = append(layer.Features, feature)
		case num == layerKeysField && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			layer.Keys = append(layer.Keys, s)
		case num == layerValuesField && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			value, err := unmarshalValue(raw)
			if err != nil {
				return nil, err
			}
			layer.Values = append(layer.Values, value)
		case num == layerExtentField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			layer.Extent = uint32(v)
		case num == layerVersionField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			layer.Version = uint32(v)
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
		}
	}
	return layer, nil
}

func unmarshalFeature(data []byte) (*Feature, error) {
	feature := &Feature{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, parseErr(n)
		}
		data = data[n:]

		switch {
		case num == featureIDField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			feature.ID = v
		case num == featureTagsField && (typ == protowire.BytesType || typ == protowire.VarintType):
			vals, n, err := consumeUint32s(feature.Tags, data, typ)
			if err != nil {
				return nil, err
			}
			data = data[n:]
			feature.Tags = vals
		case num == featureTypeField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			feature.Type = GeomType(v)
		case num == featureGeometryField && (typ == protowire.BytesType || typ == protowire.VarintType):
			vals, n, err := consumeUint32s(feature.Geometry, data, typ)
			if err != nil {
				return nil, err
			}
			data = data[n:]
			feature.Geometry = vals
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
		}
	}
	return feature, nil
}

func unmarshalValue(data []byte) (*Value, error) {
	value := &Value{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, parseErr(n)
		}
		data = data[n:]

		switch {
		case num == valueStringField && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			value.StringValue = &s
		case num == valueFloatField && typ == protowire.Fixed32Type:
			bits, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			f := math.Float32frombits(bits)
			value.FloatValue = &f
		case num == valueDoubleField && typ == protowire.Fixed64Type:
			bits, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			f := math.Float64frombits(bits)
			value.DoubleValue = &f
		case num == valueIntField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			i := int64(v)
			value.IntValue = &i
		case num == valueUintField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			value.UintValue = &v
		case num == valueSintField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			i := protowire.DecodeZigZag(v)
			value.SintValue = &i
		case num == valueBoolField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
			b := protowire.DecodeBool(v)
			value.BoolValue = &b
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, parseErr(n)
			}
			data = data[n:]
		}
	}
	return value, nil
}

// consumeUint32s consumes one wire occurrence of a repeated uint32 field,
// which may be packed (length-delimited) or a single unpacked varint.
func consumeUint32s(vals []uint32, data []byte, typ protowire.Type) ([]uint32, int, error) {
	if typ == protowire.VarintType {
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return nil, 0, parseErr(n)
		}
		return append(vals, uint32(v)), n, nil
	}
	raw, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return nil, 0, parseErr(n)
	}
	for len(raw) > 0 {
		v, m := protowire.ConsumeVarint(raw)
		if m < 0 {
			return nil, 0, parseErr(m)
		}
		raw = raw[m:]
		vals = append(vals, uint32(v))
	}
	return vals, n, nil
}
