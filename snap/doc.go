// Package snap snaps densified point sequences to roads through an external
// road-snapping service.
//
// It contains:
//   - Snapper, the boundary to the service, and the request/response types
//   - RoadsClient, an HTTP Snapper speaking the Google Roads snapToRoads
//     JSON format, with exponential backoff on transient failures
//   - Orchestrator, which splits a sequence into overlapping windows and
//     stitches the responses back into one continuous sequence
//   - Cache, a Snapper decorator that persists responses in SQLite
//
// Windows are snapped one after another: each request carries the last
// snapped points of the previous window as guiding context, so a window
// cannot be sent before its predecessor has been answered.
package snap
