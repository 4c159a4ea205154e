// Package reach answers connectivity questions about a wavefront grid
// without running propagation.
//
// What:
//
//   - Regions: 4-connected components of non-wall cells.
//   - Connected / Distance: BFS reachability and exact step count between
//     two cells.
//   - Explain: why Propagate returned NoPath (missing markers, goal walled
//     off, or a path longer than the sweep budget can cover).
//
// Why:
//
//   - Propagate reports only a direction. Host controllers need to tell a
//     permanently blocked goal from one that is merely far away.
//
// Complexity:
//
//   - Regions:  O(W×H), Memory: O(W×H).
//   - Distance: O(W×H), Memory: O(W×H).
//   - Explain:  O(W×H), Memory: O(W×H).
//
// Errors:
//
//   - ErrOffGrid: an endpoint lies outside the grid.
//   - ErrNoPath:  no open path joins the endpoints.
package reach
