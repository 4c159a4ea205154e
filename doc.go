// Package wavefront is a small grid planner: it spreads a distance wave out
// from a goal cell and tells an agent which of its four neighbors to step to.
//
// What is in the module?
//
//	wavefront/     Grid, Cell and Direction types, Propagate, ScanNeighbors, CastFromCell
//	reach/         4-connected regions, BFS distance, NO_PATH diagnosis
//	render/        ASCII frames for terminals and logs
//	scenario/      YAML/JSON scenario documents validated by an embedded JSON Schema
//	trace/         SQLite recorder of propagation frames (zstd blobs)
//	stream/        WebSocket hub broadcasting frames to live viewers
//	cmd/wavefront  command line host
//
// Quick ASCII example (R agent, G goal, W wall):
//
//	 R  .  W  .
//	 .  .  .  G
//
// Propagate numbers the open cells from G outward and stops at the first
// sweep that reaches R. Both neighbors of R end up four steps from G, so the
// scan order breaks the tie and the result is DOWN.
//
// The core package allocates nothing while planning and never returns an
// error at runtime; every I/O concern lives in the subpackages and talks to
// the planner only through the wavefront.Observer interface.
//
//	go get github.com/katalvlaran/wavefront/wavefront
package wavefront
