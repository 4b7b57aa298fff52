package conflate

import "github.com/theoremus-urban-solutions/trailmerge/geo"

// Coverage is the part of the coverage index the differ reads and extends.
type Coverage interface {
	Contains(p geo.Point) bool
	Add(s geo.Segment)
}

// run is a point buffer that tracks its own cumulative length.
type run struct {
	points []geo.Point
	meters float64
}

func (r *run) push(p geo.Point) {
	if n := len(r.points); n > 0 {
		r.meters += geo.Distance(r.points[n-1], p)
	}
	r.points = append(r.points, p)
}

func (r *run) extend(o run) {
	for _, p := range o.points {
		r.push(p)
	}
}

func (r *run) reset() {
	r.points = nil
	r.meters = 0
}

// Differ splits point sequences into covered and uncovered runs.
type Differ struct {
	coverage  Coverage
	minMeters float64
}

// NewDiffer creates a differ that keeps uncovered segments of at least
// minMeters and ignores covered interruptions shorter than minMeters.
func NewDiffer(c Coverage, minMeters float64) *Differ {
	return &Differ{coverage: c, minMeters: minMeters}
}

// Diff returns the uncovered segments of pts in travel order. Each accepted
// segment is registered with the coverage before the walk continues.
func (d *Differ) Diff(pts []geo.Point) []geo.Segment {
	var out []geo.Segment
	var current, pending run

	for _, p := range pts {
		if d.coverage.Contains(p) {
			pending.push(p)
			continue
		}
		if pending.meters < d.minMeters {
			current.extend(pending)
		} else {
			if seg, ok := d.accept(current); ok {
				out = append(out, seg)
			}
			current.reset()
		}
		current.push(p)
		pending.reset()
	}

	// a short covered tail still belongs to the last segment
	if pending.meters < d.minMeters {
		current.extend(pending)
	}
	if seg, ok := d.accept(current); ok {
		out = append(out, seg)
	}
	return out
}

func (d *Differ) accept(r run) (geo.Segment, bool) {
	if len(r.points) == 0 || r.meters < d.minMeters {
		return geo.Segment{}, false
	}
	seg := geo.Segment{Points: append([]geo.Point(nil), r.points...)}
	d.coverage.Add(seg)
	return seg, true
}
