package geometry

// Encoder builds the command stream for a single feature's geometry.
//
// The coordinate cursor persists across calls, so every point set,
// linestring or ring added to the same encoder continues one delta chain,
// as the format requires for multi-part geometries.
type Encoder struct {
	buf   []uint32
	prevX int32
	prevY int32
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// AddPoints encodes a point set as a single MoveTo run. Consecutive
// duplicate points collapse into one; the command word's count is patched
// once the final count is known.
func (e *Encoder) AddPoints(points []Point) {
	if len(points) == 0 {
		return
	}
	dx := points[0][0] - e.prevX
	dy := points[0][1] - e.prevY
	e.prevX, e.prevY = points[0][0], points[0][1]

	cmdPos := len(e.buf)
	e.buf = append(e.buf, commandMoveToCount1, EncodeZigZag(dx), EncodeZigZag(dy))

	count := uint32(1)
	for _, p := range points[1:] {
		dx := p[0] - e.prevX
		dy := p[1] - e.prevY
		e.prevX, e.prevY = p[0], p[1]
		if dx != 0 || dy != 0 {
			e.buf = append(e.buf, EncodeZigZag(dx), EncodeZigZag(dy))
			count++
		}
	}
	e.buf[cmdPos] = commandMoveTo | count<<3
}

// AddLineString encodes one linestring as a MoveTo followed by a LineTo run.
func (e *Encoder) AddLineString(points []Point) {
	e.addPath(points, false)
}

// AddRing encodes one polygon ring: a linestring followed by ClosePath.
// Exterior rings must wind clockwise and interior rings counter-clockwise
// in the tile's y-down coordinate system; winding is not verified here.
func (e *Encoder) AddRing(points []Point) {
	e.addPath(points, true)
}

func (e *Encoder) addPath(points []Point, closed bool) {
	if len(points) == 0 {
		return
	}
	dx := points[0][0] - e.prevX
	dy := points[0][1] - e.prevY
	e.prevX, e.prevY = points[0][0], points[0][1]

	e.buf = append(e.buf, commandMoveToCount1, EncodeZigZag(dx), EncodeZigZag(dy))

	// The LineTo count is patched below, after zero-length segments
	// produced by coordinate quantization have been dropped.
	cmdPos := len(e.buf)
	e.buf = append(e.buf, commandLineTo)

	count := uint32(0)
	for _, p := range points[1:] {
		dx := p[0] - e.prevX
		dy := p[1] - e.prevY
		e.prevX, e.prevY = p[0], p[1]
		if dx != 0 || dy != 0 {
			e.buf = append(e.buf, EncodeZigZag(dx), EncodeZigZag(dy))
			count++
		}
	}
	// A path collapsed to a single point keeps one explicit zero-delta
	// segment; a LineTo run must not be empty.
	if count == 0 {
		e.buf = append(e.buf, 0, 0)
		count++
	}
	e.buf[cmdPos] = commandLineTo | count<<3

	if closed {
		e.buf = append(e.buf, commandClosePathCount1)
	}
}

// Geometry returns the encoded command stream for the feature's geometry
// field. The slice aliases the encoder's buffer.
func (e *Encoder) Geometry() []uint32 {
	return e.buf
}
