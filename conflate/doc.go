/*
Package conflate finds the parts of new tracks that the master trail does not
cover yet and appends them to the master.

# Differ

Differ walks a track's points once, keeping two buffers: the uncovered
segment being built and the run of covered points seen since it was last
extended. A covered run shorter than the minimum segment length is folded
back into the uncovered segment when the next uncovered point arrives, so
brief overlaps with known road do not split one new traversal into pieces.
A covered run at least that long ends the segment; the segment is kept only
if it is itself long enough.

Accepted segments are added to the coverage index immediately, so the rest
of the same track and every later track in the batch see them as covered.

# Batch

Batch owns the coverage index for one merge run and diffs tracks strictly in
the order they are added. Later tracks must observe the coverage produced by
earlier ones, so a batch must never be fed from more than one goroutine.

	ix, _ := coverage.FromTrail(master, coverage.DefaultResolution)
	b := conflate.NewBatch(ix, 50)
	for _, tr := range newTracks {
	    b.AddTrack(tr)
	}
	b.MergeInto(&master)
*/
package conflate
