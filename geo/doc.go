// Package geo holds the trail data model and the geometry helpers shared by
// the snapping and conflation stages.
//
// It contains:
//   - Point, Segment, Track and Trail, the in-memory form of a trail file
//   - Haversine distance and cumulative length (spherical model)
//   - Interpolate, which densifies a point sequence along WGS84 geodesics
//
// Distances are always meters and coordinates are decimal degrees.
package geo
