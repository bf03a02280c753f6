package xyz_test

import (
	"maps"
	"os"
	"path/filepath"
	"testing"

	"github.com/ciscorn/tinymvt/tile"
	"github.com/ciscorn/tinymvt/xyz"
	"github.com/google/go-cmp/cmp"
)

func TestWriterReader(t *testing.T) {
	rootDir := t.TempDir()
	pattern := filepath.Join(rootDir, "{z}", "{x}", "{y}.mvt")

	tiles := map[tile.ID][]byte{
		{X: 0, Y: 0, Z: 0}:   []byte("world"),
		{X: 1, Y: 0, Z: 1}:   []byte("east"),
		{X: 17, Y: 11, Z: 5}: []byte("atlantic"),
		{X: 31, Y: 31, Z: 5}: []byte("corner"),
	}

	writer, err := xyz.NewWriter(pattern, xyz.WithMetadata(map[string]string{"format": "pbf"}))
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	for tileID, tileData := range tiles {
		if err := writer.WriteTile(tileID, tileData); err != nil {
			t.Errorf("WriteTile(%v) failed: %v", tileID, err)
		}
	}
	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	reader, err := xyz.NewReader(pattern)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	metadata, err := reader.ReadMetadata()
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}
	if got, want := metadata["format"], "pbf"; got != want {
		t.Errorf("ReadMetadata format: got %v, want %v", got, want)
	}

	// metadata.json must not surface as a tile.
	if got, want := maps.Collect(tile.IterTiles(reader)), tiles; !cmp.Equal(got, want) {
		t.Errorf("IterTiles: got %v, want %v", got, want)
	}

	for tileID, want := range tiles {
		got, err := reader.ReadTile(tileID)
		if err != nil {
			t.Errorf("ReadTile(%v) failed: %v", tileID, err)
			continue
		}
		if !cmp.Equal(got, want) {
			t.Errorf("ReadTile(%v): got %q, want %q", tileID, got, want)
		}
	}

	missing, err := reader.ReadTile(tile.ID{X: 30, Y: 30, Z: 5})
	if err != nil {
		t.Errorf("ReadTile(missing tile) failed: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("ReadTile(missing tile): got %v bytes, want empty", len(missing))
	}
}

func TestVisitTilesSkipsStrayFiles(t *testing.T) {
	rootDir := t.TempDir()
	pattern := filepath.Join(rootDir, "{z}", "{x}", "{y}.mvt")

	writer, err := xyz.NewWriter(pattern)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.WriteTile(tile.ID{X: 2, Y: 3, Z: 4}, []byte("tile")); err != nil {
		t.Fatalf("WriteTile failed: %v", err)
	}

	strays := []string{
		filepath.Join(rootDir, "4", "2", "3.mvt.tmp"),
		filepath.Join(rootDir, "4", "2", "readme.txt"),
		filepath.Join(rootDir, "4", "2", "99999999999.mvt"), // out of uint32 range
	}
	for _, stray := range strays {
		if err := os.WriteFile(stray, []byte("junk"), 0644); err != nil {
			t.Fatalf("WriteFile(%v) failed: %v", stray, err)
		}
	}

	reader, err := xyz.NewReader(pattern)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	want := map[tile.ID][]byte{{X: 2, Y: 3, Z: 4}: []byte("tile")}
	if got := maps.Collect(tile.IterTiles(reader)); !cmp.Equal(got, want) {
		t.Errorf("VisitTiles: got %v, want %v", got, want)
	}
}

func TestPatternWithRegexpChars(t *testing.T) {
	rootDir := t.TempDir()
	pattern := filepath.Join(rootDir, "a+b", "{z}", "{x}", "{y}.mvt")

	writer, err := xyz.NewWriter(pattern)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.WriteTile(tile.ID{X: 1, Y: 2, Z: 3}, []byte("tile")); err != nil {
		t.Fatalf("WriteTile failed: %v", err)
	}

	reader, err := xyz.NewReader(pattern)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	want := map[tile.ID][]byte{{X: 1, Y: 2, Z: 3}: []byte("tile")}
	if got := maps.Collect(tile.IterTiles(reader)); !cmp.Equal(got, want) {
		t.Errorf("VisitTiles: got %v, want %v", got, want)
	}
}

func TestInvalidPattern(t *testing.T) {
	for _, pattern := range []string{
		"/tmp/tiles/{z}/{x}.mvt",
		"/tmp/tiles/{x}/{y}.mvt",
		"/tmp/tiles/plain.mvt",
	} {
		if _, err := xyz.NewWriter(pattern); err == nil {
			t.Errorf("NewWriter(%q) expected error", pattern)
		}
		if _, err := xyz.NewReader(pattern); err == nil {
			t.Errorf("NewReader(%q) expected error", pattern)
		}
	}
}
