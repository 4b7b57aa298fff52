package debugviz

import (
	"github.com/paulmach/orb/simplify"

	"github.com/theoremus-urban-solutions/trailmerge/geo"
)

// Layer names, in drawing order.
const (
	LayerMaster = "master"
	LayerNew    = "new"
	LayerDiff   = "diff"
)

// Layers holds the segments of each rendering layer.
type Layers struct {
	Master []geo.Segment
	New    []geo.Segment
	Diff   []geo.Segment
}

type layer struct {
	Name     string
	Var      string
	Segments []geo.Segment
}

func (l Layers) ordered() []layer {
	return []layer{
		{Name: LayerMaster, Var: "masterPaths", Segments: l.Master},
		{Name: LayerNew, Var: "newPaths", Segments: l.New},
		{Name: LayerDiff, Var: "diffPaths", Segments: l.Diff},
	}
}

// Simplify returns a copy of l with every segment reduced by Douglas-Peucker
// at the given tolerance in degrees. A tolerance <= 0 returns l unchanged.
func (l Layers) Simplify(tolerance float64) Layers {
	if tolerance <= 0 {
		return l
	}
	dp := simplify.DouglasPeucker(tolerance)
	reduce := func(segs []geo.Segment) []geo.Segment {
		out := make([]geo.Segment, 0, len(segs))
		for _, s := range segs {
			ls := dp.LineString(s.LineString().Clone())
			out = append(out, geo.Segment{Points: geo.FromLineString(ls)})
		}
		return out
	}
	return Layers{Master: reduce(l.Master), New: reduce(l.New), Diff: reduce(l.Diff)}
}
