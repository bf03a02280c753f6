package geometry

import (
	"errors"
	"fmt"
)

// Decode failure modes. Geometry buffers come from arbitrary tile bytes,
// so every structural violation is reported as an error.
var (
	ErrUnexpectedCommand = errors.New("tinymvt: unexpected geometry command")
	ErrBadCommandCount   = errors.New("tinymvt: invalid command count")
	ErrUnexpectedEnd     = errors.New("tinymvt: unexpected end of geometry")
)

// Decoder parses one feature's raw command stream. Construct a Decoder per
// geometry buffer and call the Decode method matching the feature type.
type Decoder struct {
	buf  []uint32
	pos  int
	curX int32
	curY int32
}

func NewDecoder(buf []uint32) *Decoder {
	return &Decoder{buf: buf}
}

// DecodePoints decodes a Point geometry: one or more MoveTo runs.
func (d *Decoder) DecodePoints() ([]Point, error) {
	var points []Point
	for d.pos < len(d.buf) {
		word := d.buf[d.pos]
		d.pos++
		if cmd := word & 0x7; cmd != commandMoveTo {
			return nil, fmt.Errorf("%w: command %d in point geometry", ErrUnexpectedCommand, cmd)
		}
		for range word >> 3 {
			p, err := d.readCoord()
			if err != nil {
				return nil, err
			}
			points = append(points, p)
		}
	}
	return points, nil
}

// DecodeLineStrings decodes a LineString geometry: for each linestring, a
// MoveTo with count 1 followed by one LineTo run.
func (d *Decoder) DecodeLineStrings() ([]LineString, error) {
	var linestrings []LineString
	for d.pos < len(d.buf) {
		path, err := d.readPath(false)
		if err != nil {
			return nil, err
		}
		linestrings = append(linestrings, LineString(path))
	}
	return linestrings, nil
}

// DecodePolygons decodes a Polygon geometry and regroups its rings: a
// positive-area ring (clockwise in y-down space) opens a new polygon, any
// other ring attaches to the polygon currently open. Containment of
// interior rings within their exterior is not verified.
func (d *Decoder) DecodePolygons() ([]Polygon, error) {
	var polygons []Polygon
	var current Polygon
	for d.pos < len(d.buf) {
		path, err := d.readPath(true)
		if err != nil {
			return nil, err
		}
		// Degenerate rings with fewer than 3 points have area 0 and
		// never start a new polygon.
		if signedArea(path) > 0 && len(current) > 0 {
			polygons = append(polygons, current)
			current = nil
		}
		current = append(current, Ring(path))
	}
	if len(current) > 0 {
		polygons = append(polygons, current)
	}
	return polygons, nil
}

// readPath reads one MoveTo(count 1) + LineTo run, plus the trailing
// ClosePath when decoding a ring. The count bits of ClosePath are ignored.
func (d *Decoder) readPath(closed bool) ([]Point, error) {
	word := d.buf[d.pos]
	d.pos++
	if cmd := word & 0x7; cmd != commandMoveTo {
		return nil, fmt.Errorf("%w: expected MoveTo, got command %d", ErrUnexpectedCommand, cmd)
	}
	if count := word >> 3; count != 1 {
		return nil, fmt.Errorf("%w: MoveTo count must be 1, got %d", ErrBadCommandCount, count)
	}
	start, err := d.readCoord()
	if err != nil {
		return nil, err
	}
	path := []Point{start}

	if d.pos >= len(d.buf) {
		return nil, fmt.Errorf("%w after MoveTo", ErrUnexpectedEnd)
	}
	word = d.buf[d.pos]
	d.pos++
	if cmd := word & 0x7; cmd != commandLineTo {
		return nil, fmt.Errorf("%w: expected LineTo, got command %d", ErrUnexpectedCommand, cmd)
	}
	for range word >> 3 {
		p, err := d.readCoord()
		if err != nil {
			return nil, err
		}
		path = append(path, p)
	}

	if closed {
		if d.pos >= len(d.buf) {
			return nil, fmt.Errorf("%w after LineTo", ErrUnexpectedEnd)
		}
		word = d.buf[d.pos]
		d.pos++
		if cmd := word & 0x7; cmd != commandClosePath {
			return nil, fmt.Errorf("%w: expected ClosePath, got command %d", ErrUnexpectedCommand, cmd)
		}
	}
	return path, nil
}

func (d *Decoder) readCoord() (Point, error) {
	if d.pos+2 > len(d.buf) {
		return Point{}, fmt.Errorf("%w while reading coordinates", ErrUnexpectedEnd)
	}
	d.curX += DecodeZigZag(d.buf[d.pos])
	d.curY += DecodeZigZag(d.buf[d.pos+1])
	d.pos += 2
	return Point{d.curX, d.curY}, nil
}

// signedArea computes the signed area of a ring by the shoelace formula.
// Positive means clockwise in the tile's y-down coordinate system.
func signedArea(ring []Point) float64 {
	if len(ring) < 3 {
		return 0
	}
	var sum int64
	for i := range ring {
		j := (i + 1) % len(ring)
		sum += int64(ring[i][0]) * int64(ring[j][1])
		sum -= int64(ring[j][0]) * int64(ring[i][1])
	}
	return float64(sum) / 2
}
