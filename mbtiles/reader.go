// Package mbtiles reads and writes tilesets stored in MBTiles files,
// SQLite databases with a tiles table in TMS orientation and a metadata
// key-value table.
//
// The package talks to SQLite through database/sql and registers no driver
// itself; callers import one for the "sqlite3" name (for example
// github.com/mattn/go-sqlite3) before opening a Reader or Writer.
package mbtiles

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ciscorn/tinymvt/tile"
	"github.com/ciscorn/tinymvt/vectortile"
)

// Reader reads tiles and metadata from one MBTiles file. It satisfies
// tile.Reader and tile.Visitor.
type Reader struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// NewReader opens an MBTiles file read-only. Close the Reader to release
// the database handle.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("SELECT tile_data FROM tiles WHERE zoom_level = ? AND tile_column = ? AND tile_row = ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Reader{db: db, stmt: stmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

// ReadMetadata returns the whole metadata table as a map.
func (r *Reader) ReadMetadata() (map[string]string, error) {
	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := map[string]string{}
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}
	return metadata, rows.Err()
}

// ReadTile returns one tile's stored bytes; a tile not in the file reads
// as an empty slice with no error.
func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	x, y, z := tileID.X, tileID.Y, tileID.Z
	y = (1 << z) - 1 - y // XYZ -> TMS

	var data []byte
	if err := r.stmt.QueryRow(z, x, y).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []byte{}, nil
		}
		return nil, err
	}
	return data, nil
}

// ReadTileDecoded reads a tile and parses it as a vector tile, detecting
// and undoing its storage compression first. Missing tiles return
// (nil, nil), mirroring ReadTile's empty result.
func (r *Reader) ReadTileDecoded(tileID tile.ID) (*vectortile.Tile, error) {
	data, err := r.ReadTile(tileID)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	raw, err := vectortile.Decompress(data, vectortile.CompressionUnknown)
	if err != nil {
		return nil, err
	}
	return vectortile.Unmarshal(raw)
}

// VisitTiles scans the tiles table and hands every tile to the visitor in
// XYZ orientation.
func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	rows, err := r.db.Query("SELECT zoom_level, tile_column, tile_row, tile_data FROM tiles")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var x, y, z uint32
		var data []byte
		if err := rows.Scan(&z, &x, &y, &data); err != nil {
			return err
		}
		y = (1 << z) - 1 - y // TMS -> XYZ

		if err := visitor(tile.ID{X: x, Y: y, Z: z}, data); err != nil {
			return err
		}
	}
	return rows.Err()
}
