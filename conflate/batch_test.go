package conflate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/trailmerge/coverage"
	"github.com/theoremus-urban-solutions/trailmerge/geo"
)

func line(from, to, step float64) []geo.Point {
	var out []geo.Point
	for m := from; m <= to; m += step {
		out = append(out, at(m))
	}
	return out
}

func trackOf(points ...[]geo.Point) geo.Track {
	var tr geo.Track
	for _, p := range points {
		tr.Segments = append(tr.Segments, geo.Segment{Points: p})
	}
	return tr
}

func TestBatch_ExampleScenario(t *testing.T) {
	// cells A, B, C already in the master; D and E are new
	a, b, c, d, e := at(0), at(150), at(300), at(450), at(500)
	master := geo.Trail{Tracks: []geo.Track{trackOf([]geo.Point{a, b, c})}}
	ix, err := coverage.FromTrail(master, coverage.DefaultResolution)
	require.NoError(t, err)

	batch := NewBatch(ix, 30)
	got := batch.AddTrack(trackOf([]geo.Point{a, b, c, d, e}))

	require.Len(t, got, 1)
	assert.Equal(t, []geo.Point{d, e}, got[0].Points)
}

func TestBatch_LaterTracksSeeEarlierCoverage(t *testing.T) {
	ix, err := coverage.NewIndex(coverage.DefaultResolution)
	require.NoError(t, err)
	batch := NewBatch(ix, 50)

	road := line(0, 2000, 20)
	first := batch.AddTrack(trackOf(road))
	second := batch.AddTrack(trackOf(road))

	require.Len(t, first, 1)
	assert.Empty(t, second)
	assert.Equal(t, 2, batch.Tracks())
	assert.Len(t, batch.Segments(), 1)
	assert.Equal(t, ix.Len(), batch.Coverage().Len())
}

func TestBatch_CoverageNeverShrinks(t *testing.T) {
	ix, err := coverage.NewIndex(coverage.DefaultResolution)
	require.NoError(t, err)
	batch := NewBatch(ix, 50)

	prev := ix.Len()
	for i := 0; i < 5; i++ {
		start := float64(i) * 700
		batch.AddTrack(trackOf(line(start, start+1000, 25)))
		require.GreaterOrEqual(t, ix.Len(), prev)
		prev = ix.Len()
	}
}

func TestBatch_Idempotent(t *testing.T) {
	master := geo.Trail{Tracks: []geo.Track{trackOf(line(0, 1000, 20))}}
	newTracks := []geo.Track{
		trackOf(line(500, 3000, 20)),
		trackOf(line(2500, 4000, 20), line(6000, 6500, 20)),
	}

	run := func(master *geo.Trail) geo.Trail {
		ix, err := coverage.FromTrail(*master, coverage.DefaultResolution)
		require.NoError(t, err)
		batch := NewBatch(ix, 50)
		for _, tr := range newTracks {
			batch.AddTrack(tr)
		}
		batch.MergeInto(master)
		return batch.Diff()
	}

	firstDiff := run(&master)
	require.NotEmpty(t, firstDiff.Tracks)
	assert.NotZero(t, firstDiff.PointCount())

	secondDiff := run(&master)
	assert.Empty(t, secondDiff.Tracks)
	assert.Zero(t, secondDiff.PointCount())
}

func TestBatch_EmptyTrack(t *testing.T) {
	ix, err := coverage.NewIndex(coverage.DefaultResolution)
	require.NoError(t, err)
	batch := NewBatch(ix, 50)
	assert.Empty(t, batch.AddTrack(geo.Track{}))
	assert.Empty(t, batch.AddTrack(trackOf(nil)))
	assert.Empty(t, batch.Diff().Tracks)
}
