package geo

import (
	"math"

	"github.com/tidwall/geodesic"
)

// Interpolate returns a new sequence in which no two consecutive points are
// more than maxMeters apart. The input points are kept, in order, and the
// inserted points lie on the WGS84 geodesic between their neighbours.
//
// The spacing test uses the spherical haversine distance while the inserted
// points come from the ellipsoidal geodesic, so the two models can disagree
// by a fraction of a percent near multiples of maxMeters.
func Interpolate(pts []Point, maxMeters float64) []Point {
	if len(pts) == 0 {
		return []Point{}
	}
	out := make([]Point, 0, len(pts))
	out = append(out, pts[0])
	if maxMeters <= 0 {
		return append(out, pts[1:]...)
	}
	for _, p := range pts[1:] {
		prev := out[len(out)-1]
		if d := Distance(prev, p); d >= maxMeters {
			n := int(math.Ceil(d/maxMeters)) - 1
			out = append(out, geodesicPoints(prev, p, n)...)
		}
		out = append(out, p)
	}
	return out
}

// geodesicPoints returns n points evenly spaced along the geodesic from
// `from` to `to`, excluding both ends.
func geodesicPoints(from, to Point, n int) []Point {
	if n <= 0 {
		return nil
	}
	var s12, azi1 float64
	geodesic.WGS84.Inverse(from.Latitude, from.Longitude, to.Latitude, to.Longitude, &s12, &azi1, nil)
	step := s12 / float64(n+1)
	out := make([]Point, 0, n)
	for i := 1; i <= n; i++ {
		var lat, lon float64
		geodesic.WGS84.Direct(from.Latitude, from.Longitude, azi1, step*float64(i), &lat, &lon, nil)
		out = append(out, Point{Latitude: lat, Longitude: lon})
	}
	return out
}
