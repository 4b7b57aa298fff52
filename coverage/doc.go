// Package coverage tracks the ground already present in the master trail.
//
// An Index is a set of H3 hex cells at one fixed resolution. A point is
// covered when its cell is in the set. Cells are only ever added, so the
// index grows monotonically over a merge run.
//
// The index is not safe for concurrent use. During a merge exactly one
// conflate.Batch owns it and is its only writer; other stages receive the
// read-only Reader view.
//
// Resolution 11 (average hexagon edge about 25 m) is the default. Indexes
// built at different resolutions are not comparable, which is why the
// resolution is carried in every snapshot.
package coverage
