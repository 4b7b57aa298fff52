package snap

import (
	"context"
	"fmt"

	"github.com/theoremus-urban-solutions/trailmerge/geo"
)

// Options configures the windowing of an Orchestrator.
type Options struct {
	// WindowSize is the maximum number of points per request (W).
	WindowSize int
	// GuidingPoints is how many already-snapped points lead each request
	// after the first (G). Must be smaller than WindowSize.
	GuidingPoints int
	// Interpolate is passed through to the service.
	Interpolate bool
	// KeepGuidingPoints appends whole responses, guiding context included,
	// instead of trimming the part aligned to the guiding points.
	KeepGuidingPoints bool
}

// DefaultOptions matches the snapToRoads limit of 100 points per request.
func DefaultOptions() Options {
	return Options{WindowSize: 100, GuidingPoints: 10}
}

// Orchestrator snaps arbitrarily long point sequences window by window.
type Orchestrator struct {
	snapper Snapper
	opts    Options
}

// NewOrchestrator validates opts and returns an orchestrator using s.
func NewOrchestrator(s Snapper, opts Options) (*Orchestrator, error) {
	if opts.WindowSize < 2 || opts.GuidingPoints < 0 || opts.GuidingPoints >= opts.WindowSize {
		return nil, fmt.Errorf("%w: window %d, guiding points %d", ErrInvalidWindow, opts.WindowSize, opts.GuidingPoints)
	}
	return &Orchestrator{snapper: s, opts: opts}, nil
}

// Snap splits pts into chunks of W-G points and sends each chunk preceded by
// the last G snapped points. The first failing window aborts the whole
// sequence; a partial result is never returned.
func (o *Orchestrator) Snap(ctx context.Context, pts []geo.Point) ([]geo.Point, error) {
	if len(pts) == 0 {
		return []geo.Point{}, nil
	}
	chunk := o.opts.WindowSize - o.opts.GuidingPoints
	acc := make([]geo.Point, 0, len(pts))

	for w, start := 0, 0; start < len(pts); w, start = w+1, start+chunk {
		end := min(start+chunk, len(pts))
		guide := acc[max(0, len(acc)-o.opts.GuidingPoints):]

		path := make([]geo.Point, 0, len(guide)+end-start)
		path = append(path, guide...)
		path = append(path, pts[start:end]...)
		req := Request{Path: path, Interpolate: o.opts.Interpolate}

		resp, err := o.snapper.Snap(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("window %d (points %d-%d): %w", w, start, end-1, err)
		}
		if err := Validate(req, resp); err != nil {
			return nil, fmt.Errorf("window %d (points %d-%d): %w", w, start, end-1, err)
		}
		acc = append(acc, o.stitch(resp, len(guide))...)
	}
	return acc, nil
}

// stitch drops the response prefix that answers the guiding context: every
// point up to and including the last one aligned to a guiding index.
// Points the service inserted after it connect the previous window to this
// one and are kept.
func (o *Orchestrator) stitch(resp []SnappedPoint, guides int) []geo.Point {
	from := 0
	if !o.opts.KeepGuidingPoints {
		for i, sp := range resp {
			if sp.OriginalIndex != Inserted && sp.OriginalIndex < guides {
				from = i + 1
			}
		}
	}
	out := make([]geo.Point, 0, len(resp)-from)
	for _, sp := range resp[from:] {
		out = append(out, sp.Point)
	}
	return out
}

// Segment interpolates seg to maxMeters spacing and snaps the result.
func (o *Orchestrator) Segment(ctx context.Context, seg geo.Segment, maxMeters float64) (geo.Segment, error) {
	snapped, err := o.Snap(ctx, geo.Interpolate(seg.Points, maxMeters))
	if err != nil {
		return geo.Segment{}, err
	}
	return geo.Segment{Points: snapped}, nil
}

// Track snaps every segment of t and returns a new track; t is not modified.
func (o *Orchestrator) Track(ctx context.Context, t geo.Track, maxMeters float64) (geo.Track, error) {
	out := geo.Track{Name: t.Name, Segments: make([]geo.Segment, 0, len(t.Segments))}
	for i, seg := range t.Segments {
		s, err := o.Segment(ctx, seg, maxMeters)
		if err != nil {
			return geo.Track{}, fmt.Errorf("segment %d: %w", i, err)
		}
		out.Segments = append(out.Segments, s)
	}
	return out, nil
}

// Trail snaps every track of t and returns a new trail.
func (o *Orchestrator) Trail(ctx context.Context, t geo.Trail, maxMeters float64) (geo.Trail, error) {
	out := geo.Trail{Name: t.Name, Tracks: make([]geo.Track, 0, len(t.Tracks))}
	for i, tr := range t.Tracks {
		s, err := o.Track(ctx, tr, maxMeters)
		if err != nil {
			return geo.Trail{}, fmt.Errorf("track %d: %w", i, err)
		}
		out.Tracks = append(out.Tracks, s)
	}
	return out, nil
}
