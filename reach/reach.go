package reach

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/wavefront/wavefront"
)

// Sentinel errors for reach queries.
var (
	// ErrOffGrid indicates an endpoint outside the grid.
	ErrOffGrid = errors.New("reach: point is off the grid")
	// ErrNoPath indicates no open path between two cells.
	ErrNoPath = errors.New("reach: no path between points")
)

// offsets lists the four orthogonal steps in propagation scan order.
var offsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// open reports whether a wave can pass through (x,y).
func open(v wavefront.View, x, y int) bool {
	return v.InRange(x, y) && v.Read(x, y) != wavefront.Wall
}

// Regions finds all 4-connected components of non-wall cells.
// Each component lists its cells in BFS order from its first cell in
// sweep order (x outer, y inner).
// Time: O(W·H). Memory: O(W·H).
func Regions(v wavefront.View) [][]wavefront.GridPoint {
	w, h := v.Size()
	seen := make([]bool, w*h)
	var comps [][]wavefront.GridPoint

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if !open(v, x, y) || seen[x*h+y] {
				continue
			}
			seen[x*h+y] = true
			queue := [][2]int{{x, y}}
			var comp []wavefront.GridPoint

			for qi := 0; qi < len(queue); qi++ {
				ux, uy := queue[qi][0], queue[qi][1]
				comp = append(comp, point(ux, uy))
				for _, d := range offsets {
					vx, vy := ux+d[0], uy+d[1]
					if !open(v, vx, vy) || seen[vx*h+vy] {
						continue
					}
					seen[vx*h+vy] = true
					queue = append(queue, [2]int{vx, vy})
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}

// Distance returns the number of orthogonal steps on the shortest path
// from one cell to another, moving only through non-wall cells. The
// endpoints themselves may be any value except Wall.
// Returns ErrOffGrid for an endpoint outside v and ErrNoPath when the
// endpoints are not connected.
// Time: O(W·H). Memory: O(W·H).
func Distance(v wavefront.View, from, to wavefront.GridPoint) (int, error) {
	w, h := v.Size()
	if !from.OnGrid(w, h) {
		return 0, fmt.Errorf("%w: from %s", ErrOffGrid, from)
	}
	if !to.OnGrid(w, h) {
		return 0, fmt.Errorf("%w: to %s", ErrOffGrid, to)
	}
	fx, fy := int(from.X), int(from.Y)
	tx, ty := int(to.X), int(to.Y)
	if !open(v, fx, fy) || !open(v, tx, ty) {
		return 0, ErrNoPath
	}

	dist := make([]int, w*h)
	for i := range dist {
		dist[i] = -1
	}
	dist[fx*h+fy] = 0
	queue := [][2]int{{fx, fy}}
	for qi := 0; qi < len(queue); qi++ {
		ux, uy := queue[qi][0], queue[qi][1]
		if ux == tx && uy == ty {
			return dist[ux*h+uy], nil
		}
		for _, d := range offsets {
			vx, vy := ux+d[0], uy+d[1]
			if !open(v, vx, vy) || dist[vx*h+vy] >= 0 {
				continue
			}
			dist[vx*h+vy] = dist[ux*h+uy] + 1
			queue = append(queue, [2]int{vx, vy})
		}
	}
	return 0, ErrNoPath
}

// Connected reports whether a and b share a region.
func Connected(v wavefront.View, a, b wavefront.GridPoint) bool {
	_, err := Distance(v, a, b)
	return err == nil
}

func point(x, y int) wavefront.GridPoint {
	return wavefront.GridPoint{X: uint8(x), Y: uint8(y)}
}

// locate scans v in sweep order for the first cell equal to c.
func locate(v wavefront.View, c wavefront.Cell) (wavefront.GridPoint, bool) {
	w, h := v.Size()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if v.Read(x, y) == c {
				return point(x, y), true
			}
		}
	}
	return wavefront.GridPoint{X: wavefront.OffGrid, Y: wavefront.OffGrid}, false
}
