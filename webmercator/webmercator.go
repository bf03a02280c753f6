// Package webmercator converts between WGS84 longitude/latitude and Web
// Mercator coordinates, both normalized to the unit square and in meters.
package webmercator

import (
	"math"

	"github.com/ciscorn/tinymvt/tile"
)

// Earth radius of the spherical mercator model, in meters.
const earthRadius = 6378137.0

// FromLngLat projects a WGS84 coordinate onto the unit square, x growing
// east from the antimeridian and y growing south from the north pole.
func FromLngLat(lng, lat float64) (mx, my float64) {
	mx = (lng + 180) / 360
	my = (180 - degrees(math.Log(math.Tan(math.Pi/4+radians(lat)/2)))) / 360
	return mx, my
}

// ToLngLat is the inverse of FromLngLat.
func ToLngLat(mx, my float64) (lng, lat float64) {
	lng = mx*360 - 180
	lat = degrees(2*math.Atan(math.Exp(math.Pi*(1-2*my))) - math.Pi/2)
	return lng, lat
}

// MetersFromLngLat projects a WGS84 coordinate to mercator meters, origin
// at lng 0, lat 0, y growing north.
func MetersFromLngLat(lng, lat float64) (x, y float64) {
	x = earthRadius * radians(lng)
	y = earthRadius * math.Log(math.Tan(math.Pi/4+radians(lat)/2))
	return x, y
}

// MetersToLngLat is the inverse of MetersFromLngLat.
func MetersToLngLat(x, y float64) (lng, lat float64) {
	lng = degrees(x / earthRadius)
	lat = degrees(2*math.Atan(math.Exp(y/earthRadius)) - math.Pi/2)
	return lng, lat
}

// ToTile returns the tile at zoom z containing the normalized mercator
// coordinate. Coordinates outside the unit square clamp into the
// outermost row or column.
func ToTile(z uint32, mx, my float64) tile.ID {
	return tile.ID{X: tileCoord(mx, z), Y: tileCoord(my, z), Z: z}
}

// TileFromLngLat returns the tile containing the coordinate at zoom z.
// Coordinates on or beyond the antimeridian and the mercator latitude
// limit clamp into the outermost row or column.
func TileFromLngLat(z uint32, lng, lat float64) tile.ID {
	mx, my := FromLngLat(lng, lat)
	return ToTile(z, mx, my)
}

func tileCoord(m float64, z uint32) uint32 {
	n := uint64(1) << z
	f := m * float64(n)
	// Compare before converting: the poles project to infinity, and
	// float-to-int conversion of out-of-range values is unspecified.
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= float64(n) {
		return uint32(n - 1)
	}
	return uint32(f)
}

func radians(d float64) float64 { return d * math.Pi / 180 }

func degrees(r float64) float64 { return r * 180 / math.Pi }
