package trailmerge

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/tkrajina/gpxgo/gpx"
	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/trailmerge/trailfile"
)

// Output directory suffixes of the preparation modes.
const (
	StrippedSuffix = "_stripped"
	SnappedSuffix  = "_snapped"
)

// Strip copies every trail file of dir into dir+"_stripped" without
// waypoints and routes. It returns the output directory.
func (r *Runner) Strip(ctx context.Context, dir string) (string, error) {
	out := filepath.Clean(dir) + StrippedSuffix
	err := r.processDir(ctx, dir, out, func(_ context.Context, _ string, g *gpx.GPX) error {
		trailfile.Strip(g)
		return nil
	})
	return out, err
}

// SnapDir densifies and snaps every track of every trail file of dir into
// dir+"_snapped". It returns the output directory.
func (r *Runner) SnapDir(ctx context.Context, dir string) (string, error) {
	return r.snapInto(ctx, dir, filepath.Clean(dir)+SnappedSuffix)
}

// StripAndSnap strips dir and snaps the stripped copy. The snapped output
// is still named after dir.
func (r *Runner) StripAndSnap(ctx context.Context, dir string) (string, error) {
	stripped, err := r.Strip(ctx, dir)
	if err != nil {
		return "", err
	}
	return r.snapInto(ctx, stripped, filepath.Clean(dir)+SnappedSuffix)
}

func (r *Runner) snapInto(ctx context.Context, in, out string) (string, error) {
	if r.Snapper == nil {
		return "", ErrNoSnapper
	}
	err := r.processDir(ctx, in, out, func(ctx context.Context, path string, g *gpx.GPX) error {
		t, err := r.Snapper.Trail(ctx, trailfile.ToTrail(g, ""), r.Cfg.Interpolation.MaxDistanceMeters)
		if err != nil {
			return fmt.Errorf("snap %s: %w", path, err)
		}
		trailfile.ReplaceTracks(g, t)
		return nil
	})
	return out, err
}

// processDir recreates out and writes fn's edit of every trail file of in
// under the same name. Files are processed concurrently.
func (r *Runner) processDir(ctx context.Context, in, out string, fn func(context.Context, string, *gpx.GPX) error) error {
	files, err := trailfile.List(in, r.Cfg.Merge.InputExtension)
	if err != nil {
		return err
	}
	if err := trailfile.ResetDir(out); err != nil {
		return err
	}
	logf("%s -> %s: %d files", in, out, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for _, path := range files {
		g.Go(func() error {
			doc, err := trailfile.Read(path)
			if err != nil {
				return err
			}
			if err := fn(ctx, path, doc); err != nil {
				return err
			}
			return trailfile.Write(filepath.Join(out, filepath.Base(path)), doc)
		})
	}
	return g.Wait()
}
