package conflate

import (
	"github.com/theoremus-urban-solutions/trailmerge/coverage"
	"github.com/theoremus-urban-solutions/trailmerge/geo"
)

// Batch diffs the tracks of one merge run in order against a single
// coverage index.
type Batch struct {
	index    *coverage.Index
	differ   *Differ
	segments []geo.Segment
	tracks   int
}

// NewBatch takes ownership of ix for the lifetime of the batch.
func NewBatch(ix *coverage.Index, minMeters float64) *Batch {
	return &Batch{index: ix, differ: NewDiffer(ix, minMeters)}
}

// AddTrack diffs the concatenated points of t and records the accepted
// segments. Tracks without points are no-ops.
func (b *Batch) AddTrack(t geo.Track) []geo.Segment {
	b.tracks++
	segs := b.differ.Diff(t.Points())
	b.segments = append(b.segments, segs...)
	return segs
}

// Segments returns every accepted segment so far, in batch order.
func (b *Batch) Segments() []geo.Segment { return b.segments }

// Tracks returns the number of tracks diffed.
func (b *Batch) Tracks() int { return b.tracks }

// Coverage returns a read-only view of the batch's index.
func (b *Batch) Coverage() coverage.Reader { return b.index }

// Diff returns the accepted segments as a single-track trail.
func (b *Batch) Diff() geo.Trail {
	if len(b.segments) == 0 {
		return geo.Trail{Name: "diff"}
	}
	return geo.Trail{Name: "diff", Tracks: []geo.Track{{Name: "diff", Segments: b.segments}}}
}

// MergeInto appends the accepted segments to master.
func (b *Batch) MergeInto(master *geo.Trail) int {
	return Merge(master, b.segments)
}
