package xyz

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ciscorn/tinymvt/tile"
)

// Reader reads tiles from a directory tree. It satisfies tile.Reader and
// tile.Visitor.
type Reader struct {
	filePattern string
	rootDir     string
	pathRegexp  *regexp.Regexp
}

// NewReader opens a tile tree described by a file pattern such as
// "/data/tiles/{z}/{x}/{y}.mvt".
func NewReader(filePattern string) (*Reader, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}

	// QuoteMeta escapes the braces too, so the placeholders are replaced
	// in their escaped form.
	regexPattern := regexp.QuoteMeta(filePattern)
	regexPattern = strings.ReplaceAll(regexPattern, `\{x\}`, `(?P<x>\d+)`)
	regexPattern = strings.ReplaceAll(regexPattern, `\{y\}`, `(?P<y>\d+)`)
	regexPattern = strings.ReplaceAll(regexPattern, `\{z\}`, `(?P<z>\d+)`)
	pathRegexp, err := regexp.Compile("^" + regexPattern + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	return &Reader{filePattern, patternRoot(filePattern), pathRegexp}, nil
}

// ReadTile returns one tile file's bytes; a file that doesn't exist reads
// as an empty slice with no error.
func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	data, err := os.ReadFile(formatPattern(r.filePattern, tileID))
	if os.IsNotExist(err) {
		return []byte{}, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ReadMetadata loads the tileset's metadata.json. A tree without one
// yields empty metadata, not an error.
func (r *Reader) ReadMetadata() (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(r.rootDir, metadataFile))
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	metadata := make(map[string]string)
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, err
	}

	return metadata, nil
}

func (r *Reader) matchPath(filePath string) (tile.ID, bool) {
	matches := r.pathRegexp.FindStringSubmatch(filePath)
	if matches == nil {
		return tile.ID{}, false
	}

	x, errX := strconv.ParseUint(matches[r.pathRegexp.SubexpIndex("x")], 10, 32)
	y, errY := strconv.ParseUint(matches[r.pathRegexp.SubexpIndex("y")], 10, 32)
	z, errZ := strconv.ParseUint(matches[r.pathRegexp.SubexpIndex("z")], 10, 32)
	if errX != nil || errY != nil || errZ != nil {
		return tile.ID{}, false
	}

	return tile.ID{X: uint32(x), Y: uint32(y), Z: uint32(z)}, true
}

// VisitTiles walks the tree and hands every tile file to the visitor.
func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	return filepath.WalkDir(r.rootDir, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		// Files that don't match the pattern (metadata.json included)
		// are not tiles; skip them.
		tileID, ok := r.matchPath(filePath)
		if !ok {
			return nil
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}
		return visitor(tileID, data)
	})
}
