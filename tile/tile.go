// Package tile defines tile addressing and the access interfaces shared by
// tileset storage backends.
package tile

// ID addresses a tile in the XYZ web map scheme: zoom level Z, column X and
// row Y, with Y growing southward.
type ID struct {
	X uint32
	Y uint32
	Z uint32
}

// Valid reports whether the coordinates fit inside the 2^Z by 2^Z grid of
// the tile's zoom level.
func (t ID) Valid() bool {
	return t.Z < 32 && t.X < (1<<t.Z) && t.Y < (1<<t.Z)
}

// Reader reads single tiles from a tileset.
type Reader interface {
	// ReadTile returns the stored bytes of one tile. A tile absent from the
	// tileset reads as an empty slice with no error.
	ReadTile(tileID ID) ([]byte, error)
}

// Writer adds tiles to a tileset.
type Writer interface {
	// WriteTile stores the bytes of one tile.
	WriteTile(tileID ID, tileData []byte) error

	// Finalize completes the tileset after the last WriteTile: it flushes
	// buffers and builds whatever indices the backend keeps. Call it before
	// closing the Writer.
	Finalize() error
}

// Visitor enumerates a tileset.
type Visitor interface {
	// VisitTiles calls the visitor once per stored tile and stops on the
	// first error, returning it. Visiting order and upfront cost are up to
	// the backend.
	VisitTiles(visitor func(ID, []byte) error) error
}
