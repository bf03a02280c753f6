package xyz

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ciscorn/tinymvt/tile"
)

// Writer lays tiles out as files in a directory tree. It satisfies
// tile.Writer.
type Writer struct {
	filePattern string
	rootDir     string
	metadata    map[string]string
}

// WriterOption configures NewWriter.
type WriterOption func(*Writer)

// WithMetadata sets the tileset metadata written to metadata.json on Finalize.
func WithMetadata(metadata map[string]string) WriterOption {
	return func(w *Writer) {
		w.metadata = metadata
	}
}

// NewWriter prepares a writer over a file pattern such as
// "/data/tiles/{z}/{x}/{y}.mvt". Directories are created lazily as tiles
// are written.
func NewWriter(filePattern string, opts ...WriterOption) (*Writer, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}

	w := &Writer{filePattern: filePattern, rootDir: patternRoot(filePattern)}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// WriteTile stores one tile at its patterned path, creating intermediate
// directories as needed.
func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	filePath := formatPattern(w.filePattern, tileID)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(filePath, tileData, 0644)
}

// Finalize writes the metadata.json file if metadata was provided.
func (w *Writer) Finalize() error {
	if len(w.metadata) == 0 {
		return nil
	}

	data, err := json.Marshal(w.metadata)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(w.rootDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.rootDir, metadataFile), data, 0644)
}
