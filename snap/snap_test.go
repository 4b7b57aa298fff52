package snap

import (
	"context"
	"sync"

	"github.com/theoremus-urban-solutions/trailmerge/geo"
)

// shift is what the fake service does to every point it "snaps".
const shift = 1e-5

func snapped(p geo.Point) geo.Point {
	return geo.Point{Latitude: p.Latitude + shift, Longitude: p.Longitude}
}

func walk(n int) []geo.Point {
	out := make([]geo.Point, n)
	for i := range out {
		out[i] = geo.Point{Latitude: 40 + float64(i)*1e-4, Longitude: -3.7}
	}
	return out
}

// fakeService answers 1:1, optionally inserting a midpoint after every
// request point but the last, and records every request it sees.
type fakeService struct {
	mu       sync.Mutex
	requests []Request
	insert   bool
	failAt   int // 1-based request number that fails; 0 never
	err      error
}

func (f *fakeService) Snap(_ context.Context, req Request) ([]SnappedPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, Request{Path: append([]geo.Point(nil), req.Path...), Interpolate: req.Interpolate})
	if f.failAt == len(f.requests) {
		return nil, f.err
	}
	var out []SnappedPoint
	for i, p := range req.Path {
		out = append(out, SnappedPoint{Point: snapped(p), OriginalIndex: i})
		if f.insert && i < len(req.Path)-1 {
			out = append(out, SnappedPoint{Point: midpoint(snapped(p), snapped(req.Path[i+1])), OriginalIndex: Inserted})
		}
	}
	return out, nil
}

func (f *fakeService) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func midpoint(a, b geo.Point) geo.Point {
	return geo.Point{Latitude: (a.Latitude + b.Latitude) / 2, Longitude: (a.Longitude + b.Longitude) / 2}
}
