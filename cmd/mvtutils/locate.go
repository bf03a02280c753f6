package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/ciscorn/tinymvt/tileid"
	"github.com/ciscorn/tinymvt/webmercator"
	"github.com/google/subcommands"
)

type locateCmd struct {
	zoom uint
	lng  float64
	lat  float64
	id   int64
}

func (c *locateCmd) Name() string     { return "locate" }
func (c *locateCmd) Synopsis() string { return "map coordinates to tiles and tile ids" }
func (c *locateCmd) Usage() string {
	return "mvtutils locate [-z <zoom> -lng <deg> -lat <deg> | -id <tileid>]\n"
}
func (c *locateCmd) SetFlags(f *flag.FlagSet) {
	f.UintVar(&c.zoom, "z", 0, "Zoom level")
	f.Float64Var(&c.lng, "lng", 0, "Longitude in degrees")
	f.Float64Var(&c.lat, "lat", 0, "Latitude in degrees")
	f.Int64Var(&c.id, "id", -1, "Tile id to decode instead")
}

func (c *locateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.id >= 0 {
		decoded, err := tileid.Decode(uint64(c.id))
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}

		n := float64(uint64(1) << decoded.Z)
		lng, lat := webmercator.ToLngLat((float64(decoded.X)+0.5)/n, (float64(decoded.Y)+0.5)/n)

		fmt.Printf("tile=%d/%d/%d\n", decoded.Z, decoded.X, decoded.Y)
		fmt.Printf("center=%.7f,%.7f\n", lng, lat)
		return subcommands.ExitSuccess
	}

	id := webmercator.TileFromLngLat(uint32(c.zoom), c.lng, c.lat)
	code, err := tileid.Encode(id)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	mx, my := webmercator.MetersFromLngLat(c.lng, c.lat)

	fmt.Printf("tile=%d/%d/%d\n", id.Z, id.X, id.Y)
	fmt.Printf("tileid=%d\n", code)
	fmt.Printf("mercator=%.3f,%.3f\n", mx, my)
	return subcommands.ExitSuccess
}
