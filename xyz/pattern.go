// Package xyz stores a tileset as a directory tree, one file per tile at a
// path derived from a "{z}/{x}/{y}"-style pattern, with tileset metadata in
// a metadata.json file at the top of the tree.
package xyz

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ciscorn/tinymvt/tile"
)

// ErrInvalidPattern reports a file pattern with a missing placeholder or
// one that compiles to a broken path matcher.
var ErrInvalidPattern = errors.New("tinymvt: invalid file pattern")

const metadataFile = "metadata.json"

func validatePattern(pattern string) error {
	for _, p := range []string{"{x}", "{y}", "{z}"} {
		if !strings.Contains(pattern, p) {
			return fmt.Errorf("%w: placeholder %v not found", ErrInvalidPattern, p)
		}
	}
	return nil
}

func formatPattern(pattern string, tileID tile.ID) string {
	r := strings.NewReplacer(
		"{x}", strconv.FormatUint(uint64(tileID.X), 10),
		"{y}", strconv.FormatUint(uint64(tileID.Y), 10),
		"{z}", strconv.FormatUint(uint64(tileID.Z), 10),
	)
	return r.Replace(pattern)
}

// patternRoot returns the longest directory prefix shared by every path
// the pattern can produce.
func patternRoot(pattern string) string {
	path0 := formatPattern(pattern, tile.ID{X: 0, Y: 0, Z: 0})
	path1 := formatPattern(pattern, tile.ID{X: 1, Y: 1, Z: 1})
	for path0 != path1 {
		path0 = filepath.Dir(path0)
		path1 = filepath.Dir(path1)
	}
	return path0
}
