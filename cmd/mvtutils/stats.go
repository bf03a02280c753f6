package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/ciscorn/tinymvt/mbtiles"
	"github.com/ciscorn/tinymvt/tile"
	"github.com/ciscorn/tinymvt/vectortile"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type statsCmd struct {
	inputPath string
}

func (c *statsCmd) Name() string     { return "stats" }
func (c *statsCmd) Synopsis() string { return "print aggregate statistics for a tileset" }
func (c *statsCmd) Usage() string {
	return "mvtutils stats -i <path>\n"
}
func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input MBTiles path")
}

type tileStats struct {
	tiles        int
	bytes        int64
	decodeErrors int
	compressions map[vectortile.Compression]int
	layerTiles   map[string]int
	features     map[vectortile.GeomType]int
}

func newTileStats() *tileStats {
	return &tileStats{
		compressions: make(map[vectortile.Compression]int),
		layerTiles:   make(map[string]int),
		features:     make(map[vectortile.GeomType]int),
	}
}

func (s *tileStats) add(data []byte) {
	s.tiles++
	s.bytes += int64(len(data))

	comp := vectortile.Detect(data)
	s.compressions[comp]++

	raw, err := vectortile.Decompress(data, comp)
	if err != nil {
		s.decodeErrors++
		return
	}
	decoded, err := vectortile.Unmarshal(raw)
	if err != nil {
		s.decodeErrors++
		return
	}

	for _, layer := range decoded.Layers {
		s.layerTiles[layer.Name]++
		for _, feature := range layer.Features {
			s.features[feature.Type]++
		}
	}
}

func (s *tileStats) print(w io.Writer) {
	fmt.Fprintf(w, "tiles=%d\n", s.tiles)
	fmt.Fprintf(w, "bytes=%d\n", s.bytes)
	fmt.Fprintf(w, "decode.errors=%d\n", s.decodeErrors)
	for _, comp := range slices.Sorted(maps.Keys(s.compressions)) {
		fmt.Fprintf(w, "compression.%s=%d\n", comp, s.compressions[comp])
	}
	for _, name := range slices.Sorted(maps.Keys(s.layerTiles)) {
		fmt.Fprintf(w, "layer.%s.tiles=%d\n", name, s.layerTiles[name])
	}
	for _, geom := range slices.Sorted(maps.Keys(s.features)) {
		fmt.Fprintf(w, "features.%s=%d\n", geom, s.features[geom])
	}
}

func (c *statsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	reader, err := mbtiles.NewReader(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer reader.Close()

	stats := newTileStats()

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = reader.VisitTiles(func(_ tile.ID, tileData []byte) error {
		stats.add(tileData)
		bar.Add(1)
		return nil
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	stats.print(os.Stdout)
	return subcommands.ExitSuccess
}
