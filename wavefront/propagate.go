package wavefront

// MaxSweeps bounds Propagate. A fully walled-off goal exhausts it and
// yields NoPath.
const MaxSweeps = 50

// Propagate expands the wave outward from the Goal cell and returns the
// direction the Agent should move next.
//
// Behavior:
//  1. ResetKeepingObstacles clears stale distances.
//  2. obs (if non-nil) sees the grid before the first sweep.
//  3. Up to MaxSweeps sweeps visit every cell, x outer and y inner. Wall and
//     Goal cells are skipped. Each other cell is scanned with ScanNeighbors:
//     - on the Agent cell, a hit ends propagation: obs sees the grid and
//     the hit's direction is returned;
//     - elsewhere, a hit of value v stores v+1 in place, so later cells in
//     the same sweep already see it.
//     obs sees the grid after every completed sweep.
//  4. If the budget runs out, NoPath is returned.
//
// Distances saturate below Unset: a cell whose best neighbor already holds
// the largest distance (249) is left untouched.
//
// Propagate allocates nothing; obs runs on the caller's stack and must not
// mutate the grid.
// Complexity: O(W×H×MaxSweeps) time, O(1) extra memory.
func (g *Grid) Propagate(obs Observer) Direction {
	g.ResetKeepingObstacles()
	if obs != nil {
		obs.Wave(g)
	}

	for sweep := 0; sweep < MaxSweeps; sweep++ {
		for x := 0; x < g.width; x++ {
			for y := 0; y < g.height; y++ {
				i := g.index(x, y)
				cur := g.cells[i]
				if cur == Wall || cur == Goal {
					continue
				}

				hit := g.ScanNeighbors(x, y)
				if !hit.DirectionSet() {
					continue
				}
				if cur == Agent {
					if obs != nil {
						obs.Wave(g)
					}
					return hit.Direction
				}
				if next := hit.Value + 1; next < Unset {
					g.cells[i] = next
				}
			}
		}
		if obs != nil {
			obs.Wave(g)
		}
	}

	return NoPath
}
