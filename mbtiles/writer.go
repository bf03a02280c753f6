package mbtiles

import (
	"database/sql"
	"errors"
	"log/slog"
	"maps"

	"github.com/ciscorn/tinymvt/tile"
	"github.com/ciscorn/tinymvt/vectortile"
)

// Writer builds a new MBTiles file. It satisfies tile.Writer; call
// Finalize after the last tile and then Close.
type Writer struct {
	db     *sql.DB
	stmt   *sql.Stmt
	logger *slog.Logger
	count  int64
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

// WriterOption configures NewWriter.
type WriterOption func(*writerConfig)

// WithMetadata sets entries for the metadata table.
func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

// WithLogger routes the writer's progress logging. Without it the writer
// is silent.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates the MBTiles file at filePath, laying down the schema
// and metadata so tiles can be written immediately.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	// The MBTiles spec requires a format entry; vector tilesets are "pbf".
	// Explicit metadata overrides the default.
	metadata := map[string]string{"format": "pbf"}
	maps.Copy(metadata, config.Metadata)

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE tiles (
			zoom_level INTEGER,
			tile_column INTEGER,
			tile_row INTEGER,
			tile_data BLOB
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	for k, v := range metadata {
		if _, err := db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v); err != nil {
			db.Close()
			return nil, err
		}
	}

	stmt, err := db.Prepare("INSERT INTO tiles (zoom_level, tile_column, tile_row, tile_data) VALUES (?, ?, ?, ?)")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Writer{db: db, stmt: stmt, logger: config.Logger}, nil
}

func (w *Writer) Close() error {
	return errors.Join(w.stmt.Close(), w.db.Close())
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	x, y, z := tileID.X, tileID.Y, tileID.Z
	y = (1 << z) - 1 - y // XYZ -> TMS

	if _, err := w.stmt.Exec(z, x, y, tileData); err != nil {
		return err
	}
	w.count++
	return nil
}

// WriteTileEncoded serializes the tile, gzips it and stores the result.
// Gzip is the conventional storage encoding for pbf tilesets.
func (w *Writer) WriteTileEncoded(tileID tile.ID, t *vectortile.Tile) error {
	data, err := vectortile.MarshalGzipped(t)
	if err != nil {
		return err
	}
	return w.WriteTile(tileID, data)
}

// Finalize builds the tile index. The index is deferred to here so bulk
// writes don't pay for incremental index maintenance.
func (w *Writer) Finalize() error {
	w.logger.Debug("tinymvt: creating tile index", "tiles", w.count)
	_, err := w.db.Exec("CREATE UNIQUE INDEX tile_index ON tiles (zoom_level, tile_column, tile_row)")

	// TODO(ciscorn): run VACUUM?
	// _, err = w.db.Exec("VACUUM")

	w.logger.Debug("tinymvt: done!")
	return err
}
