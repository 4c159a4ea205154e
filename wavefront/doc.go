// Package wavefront plans a single next step for an agent on a small
// discrete grid by propagating a distance wave outward from a goal cell.
//
// What:
//
//   - Grid owns a fixed W×H buffer of 8-bit cells. Reserved values mark
//     Empty, Goal, Agent and Wall; 2..249 are wave distances.
//   - Propagate relaxes distances sweep by sweep, at most MaxSweeps times,
//     and returns the Direction of the agent's best neighbor, or NoPath.
//   - ScanNeighbors exposes the per-cell scan with its fixed tie-break order
//     +x, −x, +y, −y (Down, Up, Right, Left).
//   - CastFromCell converts a range-sensor reading (bearing, distance) taken
//     from a cell into the grid cell it hits.
//
// Why:
//
//   - Embedded control loops: no allocation during planning, bounded and
//     predictable latency proportional to W×H×MaxSweeps.
//   - Deterministic output: identical inputs always yield the same move.
//
// Axis convention:
//
//	x indexes rows, y indexes columns.
//
//	          Up (x-1)
//	Left (y-1)  [x,y]  Right (y+1)
//	         Down (x+1)
//
// Errors:
//
//   - ErrBadDimensions: width or height outside 1..MaxDimension.
//   - ErrBadCellSize:   non-positive or non-finite real-world cell size.
//
// Runtime operations never fail: out-of-range writes are dropped, reads
// return Empty, and Propagate always returns one of the five Direction codes.
//
// Observers:
//
// An Observer passed to Propagate is called once before the first sweep,
// once after each completed sweep, and once on the sweep that reaches the
// agent. It receives a read-only View and must not mutate the grid.
package wavefront
