package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ciscorn/tinymvt/geometry"
	"github.com/ciscorn/tinymvt/tag"
	"github.com/ciscorn/tinymvt/vectortile"
	"github.com/google/go-cmp/cmp"
)

func TestDumpTile(t *testing.T) {
	enc := geometry.NewEncoder()
	enc.AddPoints([]geometry.Point{{25, 17}})
	pointGeom := enc.Geometry()

	enc = geometry.NewEncoder()
	enc.AddRing([]geometry.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	enc.AddRing([]geometry.Point{{2, 2}, {2, 6}, {6, 6}, {6, 2}})
	polygonGeom := enc.Geometry()

	src := &vectortile.Tile{Layers: []*vectortile.Layer{{
		Version: 2,
		Name:    "poi",
		Keys:    []string{"name", "rank"},
		Values: []*vectortile.Value{
			tag.String("Cafe Roma").TileValue(),
			tag.Signed(3).TileValue(),
		},
		Features: []*vectortile.Feature{
			{ID: 7, Type: vectortile.GeomTypePoint, Tags: []uint32{0, 0, 1, 1}, Geometry: pointGeom},
			{Type: vectortile.GeomTypePolygon, Geometry: polygonGeom},
			{Type: vectortile.GeomTypeUnknown},
		},
	}}}

	var buf bytes.Buffer
	dumpTile(&buf, src)

	want := strings.Join([]string{
		"layers=1",
		"layer.name=poi",
		"layer.version=2",
		"layer.extent=4096",
		"layer.features=3",
		"layer.keys=2",
		"layer.values=2",
		"feature.id=7",
		"feature.type=point",
		`feature.tag.name="Cafe Roma"`,
		"feature.tag.rank=3",
		"feature.point=25,17",
		"feature.type=polygon",
		"feature.polygon.exterior.vertex=0,0",
		"feature.polygon.exterior.vertex=10,0",
		"feature.polygon.exterior.vertex=10,10",
		"feature.polygon.exterior.vertex=0,10",
		"feature.polygon.interior.vertex=2,2",
		"feature.polygon.interior.vertex=2,6",
		"feature.polygon.interior.vertex=6,6",
		"feature.polygon.interior.vertex=6,2",
		"feature.type=unknown",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("dump output mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpFeatureRawGeometry(t *testing.T) {
	var buf bytes.Buffer
	tags := tag.NewDecoder(nil, nil)
	dumpFeature(&buf, tags, &vectortile.Feature{
		Type:     vectortile.GeomTypeUnknown,
		Geometry: []uint32{9, 2, 2},
	})

	want := "feature.type=unknown\nfeature.geometry.raw=3\n"
	if got := buf.String(); got != want {
		t.Errorf("dump output: got %q, want %q", got, want)
	}
}
