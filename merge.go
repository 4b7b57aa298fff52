package trailmerge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/trailmerge/conflate"
	"github.com/theoremus-urban-solutions/trailmerge/coverage"
	"github.com/theoremus-urban-solutions/trailmerge/debugviz"
	"github.com/theoremus-urban-solutions/trailmerge/geo"
	"github.com/theoremus-urban-solutions/trailmerge/trailfile"
)

// Merge conflates every trail file in inputDir into the master at
// masterPath. Input files are prepared concurrently but diffed one at a time
// in file name order, so each sees the coverage added by the ones before it.
// The master is rewritten only after every file was prepared and diffed;
// any error leaves it untouched. Accepted segments are appended to the
// master document in place, so waypoints, routes and point attributes it
// already carries are kept.
func (r *Runner) Merge(ctx context.Context, masterPath, inputDir string) (RunStats, error) {
	stats := RunStats{RunID: r.RunID, StartedAt: time.Now()}

	doc, exists, err := trailfile.ReadMaster(masterPath)
	if err != nil {
		return stats, fmt.Errorf("master: %w", err)
	}
	master := trailfile.ToTrail(doc, "master")
	if !exists {
		logf("master %s not found, starting an empty one", masterPath)
	}
	stats.MasterCreated = !exists

	ix, err := coverage.FromTrail(master, r.Cfg.Coverage.Resolution)
	if err != nil {
		return stats, fmt.Errorf("coverage: %w", err)
	}
	stats.CellsBefore = ix.Len()
	before := master.Segments()

	files, err := trailfile.List(inputDir, r.Cfg.Merge.InputExtension)
	if err != nil {
		return stats, err
	}
	stats.Files = len(files)
	logf("%d master segments over %d cells; %d input files", len(before), ix.Len(), len(files))

	raws, trails, err := r.prepare(ctx, files)
	if err != nil {
		return stats, err
	}

	batch := conflate.NewBatch(ix, r.Cfg.Diff.MinSegmentMeters)
	var raw []geo.Segment
	for i, t := range trails {
		n := 0
		for _, tr := range t.Tracks {
			n += len(batch.AddTrack(tr))
		}
		stats.InputPoints += t.PointCount()
		raw = append(raw, raws[i].Segments()...)
		logf("%s: %d tracks, %d points, %d new segments", files[i], len(t.Tracks), t.PointCount(), n)
	}
	stats.Tracks = batch.Tracks()
	for _, s := range batch.Segments() {
		stats.SegmentMeters = append(stats.SegmentMeters, s.Length())
	}

	if err := r.writeDebug(debugviz.Layers{Master: before, New: raw, Diff: batch.Segments()}); err != nil {
		return stats, err
	}

	batch.MergeInto(&master)
	trailfile.AppendSegments(doc, batch.Segments())
	if err := trailfile.Write(masterPath, doc); err != nil {
		return stats, fmt.Errorf("master: %w", err)
	}
	stats.MasterPoints = master.PointCount()
	stats.CellsAfter = ix.Len()

	if err := r.writeSnapshot(ix); err != nil {
		return stats, err
	}

	stats.Duration = time.Since(stats.StartedAt)
	logf("%s", stats)
	return stats, nil
}

// prepare reads every file and, when snapping is enabled, densifies and
// snaps its tracks. It returns the trails as read and as prepared, both in
// the order of files.
func (r *Runner) prepare(ctx context.Context, files []string) (raws, trails []geo.Trail, err error) {
	raws = make([]geo.Trail, len(files))
	trails = make([]geo.Trail, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for i, path := range files {
		g.Go(func() error {
			t, err := trailfile.ReadTrail(path)
			if err != nil {
				return err
			}
			raws[i] = t
			if r.snapping() {
				t, err = r.Snapper.Trail(ctx, t, r.Cfg.Interpolation.MaxDistanceMeters)
				if err != nil {
					return fmt.Errorf("snap %s: %w", path, err)
				}
			}
			trails[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return raws, trails, nil
}

func (r *Runner) writeDebug(l debugviz.Layers) error {
	d := r.Cfg.Debug
	if d.ScriptPath == "" && d.GeoJSONPath == "" && d.PlotPath == "" {
		return nil
	}
	l = l.Simplify(d.SimplifyTolerance)
	if d.ScriptPath != "" {
		if err := debugviz.WriteScriptFile(d.ScriptPath, l); err != nil {
			return err
		}
	}
	if d.GeoJSONPath != "" {
		if err := debugviz.WriteGeoJSON(d.GeoJSONPath, l); err != nil {
			return err
		}
	}
	if d.PlotPath != "" {
		if err := debugviz.WritePlot(d.PlotPath, l); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) writeSnapshot(ix *coverage.Index) error {
	path := r.Cfg.Coverage.SnapshotPath
	if path == "" {
		return nil
	}
	if prev, err := coverage.ReadSnapshot(path); err == nil && prev.Resolution() != ix.Resolution() {
		logf("coverage resolution changed from %d to %d since the last snapshot", prev.Resolution(), ix.Resolution())
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logf("previous coverage snapshot unreadable: %v", err)
	}
	return coverage.WriteSnapshot(path, ix)
}
