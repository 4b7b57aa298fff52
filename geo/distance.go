package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Distance returns the haversine distance between a and b in meters.
func Distance(a, b Point) float64 {
	return orbgeo.DistanceHaversine(a.Orb(), b.Orb())
}

// Length returns the cumulative haversine length of pts in meters.
func Length(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	return orbgeo.LengthHaversine(LineString(pts))
}

// LineString converts pts to an orb line string.
func LineString(pts []Point) orb.LineString {
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = p.Orb()
	}
	return ls
}

// FromLineString converts an orb line string back to points.
func FromLineString(ls orb.LineString) []Point {
	pts := make([]Point, len(ls))
	for i, p := range ls {
		pts[i] = Point{Latitude: p.Lat(), Longitude: p.Lon()}
	}
	return pts
}
