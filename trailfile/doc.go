// Package trailfile reads and writes trail files (GPX 1.1) and converts
// them to and from geo.Trail.
//
// Only track geometry crosses the conversion: elevations, timestamps and
// extensions of the source file are not carried into geo.Trail. Functions
// that edit a file in place (Strip, ReplaceTracks) work on the parsed GPX
// document so everything else in it survives a rewrite.
//
// Writes are all-or-nothing: the document is written to a temporary file in
// the destination directory and renamed over the target.
package trailfile
