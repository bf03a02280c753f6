package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/ciscorn/tinymvt/geometry"
	"github.com/ciscorn/tinymvt/mbtiles"
	"github.com/ciscorn/tinymvt/tag"
	"github.com/ciscorn/tinymvt/tile"
	"github.com/ciscorn/tinymvt/vectortile"
	"github.com/google/subcommands"
)

type dumpCmd struct {
	inputPath string
	z, x, y   uint
}

func (c *dumpCmd) Name() string     { return "dump" }
func (c *dumpCmd) Synopsis() string { return "print the decoded content of a vector tile" }
func (c *dumpCmd) Usage() string {
	return "mvtutils dump -i <path> [-z <zoom> -x <col> -y <row>]\n"
}
func (c *dumpCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path (.mvt/.pbf tile or .mbtiles archive)")
	f.UintVar(&c.z, "z", 0, "Tile zoom (mbtiles input)")
	f.UintVar(&c.x, "x", 0, "Tile column (mbtiles input)")
	f.UintVar(&c.y, "y", 0, "Tile row (mbtiles input)")
}

func (c *dumpCmd) loadTile() ([]byte, error) {
	if deduceFormat("", c.inputPath) == "mbtiles" {
		reader, err := mbtiles.NewReader(c.inputPath)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		return reader.ReadTile(tile.ID{X: uint32(c.x), Y: uint32(c.y), Z: uint32(c.z)})
	}
	return os.ReadFile(c.inputPath)
}

func (c *dumpCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	data, err := c.loadTile()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if len(data) == 0 {
		log.Printf("tile %d/%d/%d not found", c.z, c.x, c.y)
		return subcommands.ExitFailure
	}

	raw, err := vectortile.Decompress(data, vectortile.CompressionUnknown)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	decoded, err := vectortile.Unmarshal(raw)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	dumpTile(os.Stdout, decoded)
	return subcommands.ExitSuccess
}

func dumpTile(w io.Writer, t *vectortile.Tile) {
	fmt.Fprintf(w, "layers=%d\n", len(t.Layers))
	for _, layer := range t.Layers {
		extent := layer.Extent
		if extent == 0 {
			extent = vectortile.DefaultExtent
		}
		fmt.Fprintf(w, "layer.name=%s\n", layer.Name)
		fmt.Fprintf(w, "layer.version=%d\n", layer.Version)
		fmt.Fprintf(w, "layer.extent=%d\n", extent)
		fmt.Fprintf(w, "layer.features=%d\n", len(layer.Features))
		fmt.Fprintf(w, "layer.keys=%d\n", len(layer.Keys))
		fmt.Fprintf(w, "layer.values=%d\n", len(layer.Values))

		tags := tag.NewDecoder(layer.Keys, layer.Values)
		for _, feature := range layer.Features {
			dumpFeature(w, tags, feature)
		}
	}
}

// formatValue renders one tag value for dump output; string values are
// quoted so they stay unambiguous next to the key=value framing.
func formatValue(v tag.Value) string {
	if v.Kind() == tag.KindString {
		return strconv.Quote(v.String())
	}
	return v.String()
}

func dumpFeature(w io.Writer, tags *tag.Decoder, feature *vectortile.Feature) {
	if feature.ID != 0 {
		fmt.Fprintf(w, "feature.id=%d\n", feature.ID)
	}
	fmt.Fprintf(w, "feature.type=%s\n", feature.Type)

	pairs, err := tags.Decode(feature.Tags)
	if err != nil {
		fmt.Fprintf(w, "feature.tags.error=%v\n", err)
	}
	for _, pair := range pairs {
		fmt.Fprintf(w, "feature.tag.%s=%s\n", pair.Key, formatValue(pair.Value))
	}

	if len(feature.Geometry) == 0 {
		return
	}

	dec := geometry.NewDecoder(feature.Geometry)
	switch feature.Type {
	case vectortile.GeomTypePoint:
		points, err := dec.DecodePoints()
		if err != nil {
			fmt.Fprintf(w, "feature.geometry.error=%v\n", err)
			return
		}
		for _, p := range points {
			fmt.Fprintf(w, "feature.point=%d,%d\n", p.X(), p.Y())
		}
	case vectortile.GeomTypeLineString:
		linestrings, err := dec.DecodeLineStrings()
		if err != nil {
			fmt.Fprintf(w, "feature.geometry.error=%v\n", err)
			return
		}
		for _, linestring := range linestrings {
			for _, p := range linestring {
				fmt.Fprintf(w, "feature.linestring.vertex=%d,%d\n", p.X(), p.Y())
			}
		}
	case vectortile.GeomTypePolygon:
		polygons, err := dec.DecodePolygons()
		if err != nil {
			fmt.Fprintf(w, "feature.geometry.error=%v\n", err)
			return
		}
		for _, polygon := range polygons {
			for i, ring := range polygon {
				role := "interior"
				if i == 0 {
					role = "exterior"
				}
				for _, p := range ring {
					fmt.Fprintf(w, "feature.polygon.%s.vertex=%d,%d\n", role, p.X(), p.Y())
				}
			}
		}
	default:
		fmt.Fprintf(w, "feature.geometry.raw=%d\n", len(feature.Geometry))
	}
}
