package wavefront

import (
	"fmt"
	"math"
)

const (
	// MaxDimension is the largest allowed width or height. 255 is OffGrid.
	MaxDimension = 254
	// DefaultWidth and DefaultHeight size NewDefaultGrid.
	DefaultWidth  = 10
	DefaultHeight = 10
	// DefaultCellWidth and DefaultCellHeight are the real-world cell size
	// used when WithCellSize is not given.
	DefaultCellWidth  = 33.0
	DefaultCellHeight = 33.0
)

// Grid owns a fixed width×height buffer of cells plus the real-world size
// of one cell. The buffer is allocated once in NewGrid and never resized.
//
// A Grid is not safe for concurrent use.
type Grid struct {
	width, height         int
	cellWidth, cellHeight float64
	cells                 []Cell // index: x*height + y
}

// NewGrid constructs an empty width×height grid.
// Returns ErrBadDimensions if either dimension is outside 1..MaxDimension and
// ErrBadCellSize if WithCellSize supplied a non-positive or non-finite value.
// Complexity: O(W×H) time and memory.
func NewGrid(width, height int, opts ...Option) (*Grid, error) {
	if width < 1 || width > MaxDimension || height < 1 || height > MaxDimension {
		return nil, fmt.Errorf("%w: got %d×%d", ErrBadDimensions, width, height)
	}
	o := options{cellWidth: DefaultCellWidth, cellHeight: DefaultCellHeight}
	for _, opt := range opts {
		opt(&o)
	}
	if !positiveFinite(o.cellWidth) || !positiveFinite(o.cellHeight) {
		return nil, fmt.Errorf("%w: got %g×%g", ErrBadCellSize, o.cellWidth, o.cellHeight)
	}

	return &Grid{
		width:      width,
		height:     height,
		cellWidth:  o.cellWidth,
		cellHeight: o.cellHeight,
		cells:      make([]Cell, width*height),
	}, nil
}

// NewDefaultGrid returns a DefaultWidth×DefaultHeight grid with the default
// cell size.
func NewDefaultGrid() *Grid {
	g, _ := NewGrid(DefaultWidth, DefaultHeight)
	return g
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Size returns the grid width and height fixed at construction.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// CellSize returns the real-world width and height of one cell.
func (g *Grid) CellSize() (width, height float64) {
	return g.cellWidth, g.cellHeight
}

// InRange reports whether (x,y) lies within [0,width)×[0,height).
// Every other accessor checks bounds through this method.
// Complexity: O(1).
func (g *Grid) InRange(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Read returns the value at (x,y), or Empty if (x,y) is out of range.
func (g *Grid) Read(x, y int) Cell {
	if !g.InRange(x, y) {
		return Empty
	}
	return g.cells[g.index(x, y)]
}

// Write stores v at (x,y). Out-of-range coordinates are silently ignored.
func (g *Grid) Write(x, y int, v Cell) {
	if !g.InRange(x, y) {
		return
	}
	g.cells[g.index(x, y)] = v
}

// ResetKeepingMarkers clears every cell except Agent and Goal. Walls are
// dropped too, so a full obstacle re-scan is expected afterwards.
// Complexity: O(W×H).
func (g *Grid) ResetKeepingMarkers() {
	for i, c := range g.cells {
		if c != Agent && c != Goal {
			g.cells[i] = Empty
		}
	}
}

// ResetKeepingObstacles clears computed distances, keeping Agent, Goal and
// Wall cells. Propagate calls it before the first sweep.
// Complexity: O(W×H).
func (g *Grid) ResetKeepingObstacles() {
	for i, c := range g.cells {
		if c != Agent && c != Goal && c != Wall {
			g.cells[i] = Empty
		}
	}
}

// Locate returns the first cell holding c in sweep order.
func (g *Grid) Locate(c Cell) (GridPoint, bool) {
	for i, v := range g.cells {
		if v == c {
			x, y := g.coordinate(i)
			return GridPoint{X: uint8(x), Y: uint8(y)}, true
		}
	}
	return GridPoint{X: OffGrid, Y: OffGrid}, false
}

// index maps (x,y) to the buffer offset. Callers must check InRange first.
func (g *Grid) index(x, y int) int {
	return x*g.height + y
}

// coordinate is the inverse of index.
func (g *Grid) coordinate(i int) (x, y int) {
	return i / g.height, i % g.height
}

// Snapshot copies every cell of v in sweep order (x outer, y inner).
// Observers that keep frames beyond the callback use it.
func Snapshot(v View) []Cell {
	w, h := v.Size()
	out := make([]Cell, 0, w*h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			out = append(out, v.Read(x, y))
		}
	}
	return out
}
