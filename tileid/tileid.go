// Package tileid maps tiles to their position on a zoom-ordered Hilbert
// curve, the tile numbering used by the PMTiles archive format: ids count
// all tiles of zoom levels below z, then follow the Hilbert curve within
// level z.
package tileid

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/ciscorn/tinymvt/tile"
	"github.com/google/hilbert"
)

var (
	ErrInvalidTile = errors.New("tinymvt: invalid tile coordinates")
	ErrInvalidID   = errors.New("tinymvt: invalid tile id")
)

// numTiles is the total tile count of zoom levels 0 through 31,
// (4^32 - 1) / 3; ids at or above it belong to no representable tile.
const numTiles = (1<<64 - 1) / 3

// Encode returns the tile's position on the curve.
func Encode(t tile.ID) (uint64, error) {
	if !t.Valid() {
		return 0, fmt.Errorf("%w: %d/%d/%d", ErrInvalidTile, t.Z, t.X, t.Y)
	}
	h, err := hilbert.NewHilbert(1 << t.Z)
	if err != nil {
		return 0, err
	}
	d, err := h.MapInverse(int(t.X), int(t.Y))
	if err != nil {
		return 0, err
	}
	return baseID(t.Z) + uint64(d), nil
}

// Decode is the inverse of Encode.
func Decode(id uint64) (tile.ID, error) {
	if id >= numTiles {
		return tile.ID{}, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	z := uint32(bits.Len64(3*id+1)-1) / 2
	h, err := hilbert.NewHilbert(1 << z)
	if err != nil {
		return tile.ID{}, err
	}
	x, y, err := h.Map(int(id - baseID(z)))
	if err != nil {
		return tile.ID{}, err
	}
	return tile.ID{X: uint32(x), Y: uint32(y), Z: z}, nil
}

// baseID is the id of tile z/0/0, the number of tiles on all zoom levels
// below z.
func baseID(z uint32) uint64 {
	return (uint64(1)<<(2*z) - 1) / 3
}
