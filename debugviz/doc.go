// Package debugviz renders a merge run for inspection: the master before the
// merge, the new raw tracks and the computed diff.
//
// Three renderings are available. WriteScript emits a JavaScript file that
// defines masterPaths, newPaths and diffPaths as arrays of {lat, lng}
// literal arrays, ready to be dropped into a map page. WriteGeoJSON emits a
// FeatureCollection with one LineString per segment and a "layer" property.
// WritePlot draws a PNG overview with one colour per layer.
//
// Output is write-only; nothing in the merge reads it back.
package debugviz
