package trailmerge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/trailmerge/trailfile"
)

const withExtras = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <wpt lat="45.1" lon="7.6"><name>hut</name></wpt>
  <rte><rtept lat="45.2" lon="7.7"></rtept></rte>
  <trk><trkseg>
    <trkpt lat="45.07" lon="7.68"></trkpt>
    <trkpt lat="45.08" lon="7.68"></trkpt>
  </trkseg></trk>
</gpx>`

func inputDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "rides")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.gpx"), []byte(withExtras), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	return dir
}

func TestStrip(t *testing.T) {
	dir := inputDir(t)
	stale := dir + StrippedSuffix
	require.NoError(t, os.Mkdir(stale, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stale, "old.gpx"), nil, 0o644))

	out, err := newRunner(t, testConfig(), nil).Strip(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, stale, out)

	files, err := trailfile.List(out, "")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "one.gpx")}, files, "output is recreated and holds only trail files")

	g, err := trailfile.Read(files[0])
	require.NoError(t, err)
	assert.Empty(t, g.Waypoints)
	assert.Empty(t, g.Routes)
	assert.Equal(t, 2, trailfile.ToTrail(g, "").PointCount())
}

func TestSnapDir(t *testing.T) {
	dir := inputDir(t)
	svc := &identity{}

	out, err := newRunner(t, testConfig(), svc).SnapDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, dir+SnappedSuffix, out)

	g, err := trailfile.Read(filepath.Join(out, "one.gpx"))
	require.NoError(t, err)
	// 0.01 degrees of latitude is about 1113 m: three points are inserted
	assert.Equal(t, 5, trailfile.ToTrail(g, "").PointCount())
	assert.Len(t, g.Waypoints, 1, "snapping keeps the rest of the document")
	assert.Equal(t, int32(1), svc.calls.Load())
}

func TestSnapDir_RequiresSnapper(t *testing.T) {
	_, err := newRunner(t, testConfig(), nil).SnapDir(context.Background(), inputDir(t))
	assert.ErrorIs(t, err, ErrNoSnapper)
}

func TestStripAndSnap(t *testing.T) {
	dir := inputDir(t)

	out, err := newRunner(t, testConfig(), &identity{}).StripAndSnap(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, dir+SnappedSuffix, out)
	assert.DirExists(t, dir+StrippedSuffix)

	g, err := trailfile.Read(filepath.Join(out, "one.gpx"))
	require.NoError(t, err)
	assert.Empty(t, g.Waypoints)
	assert.Greater(t, trailfile.ToTrail(g, "").PointCount(), 2)
}
