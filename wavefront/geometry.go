package wavefront

import "math"

// CastFromCell projects a ray from the centre of cell (x,y) and returns the
// cell containing its end point.
//
// angleDeg follows the trigonometric convention: 0° points along +x and
// angles grow counter-clockwise toward +y. radius is in the same real-world
// units as the cell size. The end point is rounded to the nearest cell
// centre. An axis that lands below zero, above MaxDimension or on a
// non-finite value comes back as OffGrid; callers must check Valid or
// OnGrid before using the result.
//
// Typical use: turn "range sensor saw something N units away at bearing θ"
// into a cell to mark as Wall.
func (g *Grid) CastFromCell(x, y int, angleDeg, radius float64) GridPoint {
	halfW, halfH := g.cellWidth/2, g.cellHeight/2
	originX := float64(x)*g.cellWidth + halfW
	originY := float64(y)*g.cellHeight + halfH

	rad := angleDeg * math.Pi / 180
	targetX := originX + radius*math.Cos(rad)
	targetY := originY + radius*math.Sin(rad)

	return GridPoint{
		X: toAxis((targetX - halfW) / g.cellWidth),
		Y: toAxis((targetY - halfH) / g.cellHeight),
	}
}

// toAxis rounds half away from zero and clamps to the OffGrid sentinel.
func toAxis(v float64) uint8 {
	r := math.Round(v)
	if math.IsNaN(r) || r < 0 || r > MaxDimension {
		return OffGrid
	}
	return uint8(r)
}
