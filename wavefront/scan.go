package wavefront

// neighbor is one entry of the fixed scan order.
type neighbor struct {
	dx, dy int
	dir    Direction
}

// scanOrder is the tie-break priority: the first qualifying neighbor wins
// ties because later entries must be strictly smaller to replace it.
var scanOrder = [4]neighbor{
	{dx: 1, dy: 0, dir: Down},
	{dx: -1, dy: 0, dir: Up},
	{dx: 0, dy: 1, dir: Right},
	{dx: 0, dy: -1, dir: Left},
}

// ScanNeighbors returns the smallest non-empty neighbor of (x,y) that is
// below Unset, scanning +x, −x, +y, −y in that order.
// An out-of-range (x,y) or a cell with no qualifying neighbor yields
// Value == Unset with DirectionSet() == false.
// Complexity: O(1).
func (g *Grid) ScanNeighbors(x, y int) ScanResult {
	best := ScanResult{Value: Unset, Direction: NoPath}
	if !g.InRange(x, y) {
		return best
	}
	for _, n := range scanOrder {
		nx, ny := x+n.dx, y+n.dy
		if g.lessThan(nx, ny, best.Value) {
			best.Value = g.cells[g.index(nx, ny)]
			best.Direction = n.dir
			best.set = true
		}
	}
	return best
}

// lessThan reports whether (x,y) is in range, non-empty and strictly
// below limit.
func (g *Grid) lessThan(x, y int, limit Cell) bool {
	if !g.InRange(x, y) {
		return false
	}
	c := g.cells[g.index(x, y)]
	return c != Empty && c < limit
}
