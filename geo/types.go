package geo

import "github.com/paulmach/orb"

// Point represents a geographical coordinate
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Orb returns the point in orb's lon/lat order.
func (p Point) Orb() orb.Point { return orb.Point{p.Longitude, p.Latitude} }

// Segment is an ordered run of points in travel order.
type Segment struct {
	Points []Point
}

// Length returns the cumulative haversine length of the segment in meters.
func (s Segment) Length() float64 { return Length(s.Points) }

// LineString converts the segment to an orb line string.
func (s Segment) LineString() orb.LineString { return LineString(s.Points) }

// Track is an ordered list of segments.
type Track struct {
	Name     string
	Segments []Segment
}

// Points returns the concatenation of the track's segment points.
func (t Track) Points() []Point {
	n := 0
	for _, s := range t.Segments {
		n += len(s.Points)
	}
	out := make([]Point, 0, n)
	for _, s := range t.Segments {
		out = append(out, s.Points...)
	}
	return out
}

// Trail is an ordered list of tracks, as read from one trail file.
type Trail struct {
	Name   string
	Tracks []Track
}

// Points returns every point of every track in order.
func (t Trail) Points() []Point {
	var out []Point
	for _, tr := range t.Tracks {
		out = append(out, tr.Points()...)
	}
	return out
}

// PointCount returns the number of points across all tracks.
func (t Trail) PointCount() int {
	n := 0
	for _, tr := range t.Tracks {
		for _, s := range tr.Segments {
			n += len(s.Points)
		}
	}
	return n
}

// Segments returns every segment of every track in order.
func (t Trail) Segments() []Segment {
	var out []Segment
	for _, tr := range t.Tracks {
		out = append(out, tr.Segments...)
	}
	return out
}
