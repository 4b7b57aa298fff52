package snap

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/trailmerge/geo"
)

func newOrchestrator(t *testing.T, s Snapper, opts Options) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(s, opts)
	require.NoError(t, err)
	return o
}

func TestNewOrchestrator_InvalidWindow(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "window too small", opts: Options{WindowSize: 1, GuidingPoints: 0}},
		{name: "overlap equals window", opts: Options{WindowSize: 10, GuidingPoints: 10}},
		{name: "negative overlap", opts: Options{WindowSize: 10, GuidingPoints: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrchestrator(&fakeService{}, tt.opts)
			assert.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}

func TestOrchestrator_EmptyInput(t *testing.T) {
	svc := &fakeService{}
	out, err := newOrchestrator(t, svc, DefaultOptions()).Snap(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, svc.calls())
}

func TestOrchestrator_Windows(t *testing.T) {
	svc := &fakeService{}
	in := walk(250)

	out, err := newOrchestrator(t, svc, DefaultOptions()).Snap(context.Background(), in)
	require.NoError(t, err)

	// chunks of W-G = 90 points: 90, 90, 70
	require.Equal(t, 3, svc.calls())
	assert.Len(t, svc.requests[0].Path, 90)
	assert.Len(t, svc.requests[1].Path, 100)
	assert.Len(t, svc.requests[2].Path, 80)

	// every later window is led by the last 10 snapped points
	assert.Equal(t, out[80:90], svc.requests[1].Path[:10])
	assert.Equal(t, in[90:180], svc.requests[1].Path[10:])
	assert.Equal(t, out[170:180], svc.requests[2].Path[:10])

	require.Len(t, out, len(in))
	for i, p := range in {
		assert.Equal(t, snapped(p), out[i], "point %d", i)
	}
}

func TestOrchestrator_KeepGuidingPoints(t *testing.T) {
	svc := &fakeService{}
	opts := DefaultOptions()
	opts.KeepGuidingPoints = true

	out, err := newOrchestrator(t, svc, opts).Snap(context.Background(), walk(250))
	require.NoError(t, err)
	assert.Len(t, out, 250+2*10)
}

func TestOrchestrator_ServiceInsertedPoints(t *testing.T) {
	svc := &fakeService{insert: true}
	in := walk(6)
	opts := Options{WindowSize: 5, GuidingPoints: 2, Interpolate: true}

	out, err := newOrchestrator(t, svc, opts).Snap(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, 2, svc.calls())
	assert.True(t, svc.requests[0].Interpolate)

	s := make([]geo.Point, len(in))
	for i, p := range in {
		s[i] = snapped(p)
	}
	expected := []geo.Point{
		s[0], midpoint(s[0], s[1]), s[1], midpoint(s[1], s[2]), s[2],
		// second window is guided by [mid(1,2), s2]; what follows the
		// last guide point is kept, including the inserted bridge point
		midpoint(snapped(s[2]), snapped(in[3])), s[3], midpoint(s[3], s[4]), s[4], midpoint(s[4], s[5]), s[5],
	}
	require.Len(t, out, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i].Latitude, out[i].Latitude, 1e-12, "point %d", i)
		assert.InDelta(t, expected[i].Longitude, out[i].Longitude, 1e-12, "point %d", i)
	}
}

func TestOrchestrator_FailureAbortsSequence(t *testing.T) {
	boom := errors.New("boom")
	svc := &fakeService{failAt: 2, err: boom}

	out, err := newOrchestrator(t, svc, DefaultOptions()).Snap(context.Background(), walk(250))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "window 1")
	assert.Nil(t, out)
	assert.Equal(t, 2, svc.calls())
}

func TestOrchestrator_MalformedResponse(t *testing.T) {
	bad := SnapperFunc(func(_ context.Context, req Request) ([]SnappedPoint, error) {
		return []SnappedPoint{{Point: req.Path[0], OriginalIndex: len(req.Path)}}, nil
	})
	_, err := newOrchestrator(t, bad, DefaultOptions()).Snap(context.Background(), walk(3))
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestOrchestrator_TrackInterpolatesFirst(t *testing.T) {
	svc := &fakeService{}
	a := geo.Point{Latitude: 40, Longitude: -3.7}
	b := geo.Point{Latitude: 40 + 600/(6378137.0*math.Pi/180), Longitude: -3.7}
	track := geo.Track{Name: "t", Segments: []geo.Segment{{Points: []geo.Point{a, b}}, {}}}

	out, err := newOrchestrator(t, svc, DefaultOptions()).Track(context.Background(), track, 290)
	require.NoError(t, err)

	require.Equal(t, 1, svc.calls(), "empty segments are not sent")
	assert.Len(t, svc.requests[0].Path, 4)
	require.Len(t, out.Segments, 2)
	assert.Len(t, out.Segments[0].Points, 4)
	assert.Empty(t, out.Segments[1].Points)
	assert.Equal(t, "t", out.Name)
	// the input track is untouched
	assert.Len(t, track.Segments[0].Points, 2)
}

func TestValidate(t *testing.T) {
	req := Request{Path: walk(3)}
	tests := []struct {
		name    string
		req     Request
		resp    []SnappedPoint
		wantErr bool
	}{
		{name: "one to one", req: req, resp: []SnappedPoint{{OriginalIndex: 0}, {OriginalIndex: 1}, {OriginalIndex: 2}}},
		{name: "skipped point", req: req, resp: []SnappedPoint{{OriginalIndex: 0}, {OriginalIndex: 2}}},
		{name: "empty", req: req, resp: nil, wantErr: true},
		{name: "out of range", req: req, resp: []SnappedPoint{{OriginalIndex: 3}}, wantErr: true},
		{name: "reordered", req: req, resp: []SnappedPoint{{OriginalIndex: 1}, {OriginalIndex: 0}}, wantErr: true},
		{name: "inserted without interpolation", req: req, resp: []SnappedPoint{{OriginalIndex: 0}, {OriginalIndex: Inserted}}, wantErr: true},
		{name: "inserted with interpolation", req: Request{Path: walk(2), Interpolate: true}, resp: []SnappedPoint{{OriginalIndex: 0}, {OriginalIndex: Inserted}, {OriginalIndex: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req, tt.resp)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
