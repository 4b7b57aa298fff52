// Package trailmerge conflates new GPS trails into a master trail.
//
// A Runner ties the pieces together for one CLI invocation. Merge reads the
// master, builds its coverage index, prepares every input file (densify and
// snap to roads, concurrently), diffs the prepared tracks one by one in file
// order and appends the uncovered segments to the master, which is written
// back only when everything else succeeded. Strip, SnapDir and StripAndSnap
// prepare a directory of trail files without merging.
//
//	cfg, _ := config.Load("")
//	r, _ := trailmerge.NewRunner(cfg, snap.NewRoadsClient(cfg.Snapping.Endpoint, cfg.Snapping.APIKey))
//	stats, err := r.Merge(ctx, "master.gpx", "new")
package trailmerge
