package wavefront

import (
	"fmt"
	"strconv"
)

// Cell is the 8-bit value stored in every grid cell.
// Values 2..249 are wave distances; the rest are reserved markers.
type Cell uint8

const (
	// Empty marks a cell with no marker and no computed distance yet.
	Empty Cell = 0
	// Goal marks the propagation source.
	Goal Cell = 1
	// Unset is the "nothing found" scan value. Propagation never stores it.
	Unset Cell = 250
	// Agent marks the current agent position.
	Agent Cell = 254
	// Wall marks a static obstacle.
	Wall Cell = 255
)

// IsDistance reports whether c holds a computed wave distance.
func (c Cell) IsDistance() bool {
	return c > Goal && c < Unset
}

// String returns a short human-readable name for c.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Goal:
		return "goal"
	case Unset:
		return "unset"
	case Agent:
		return "agent"
	case Wall:
		return "wall"
	}
	if c.IsDistance() {
		return strconv.Itoa(int(c))
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

// Direction is the next-step move returned by Propagate.
//
// The grid's own axis convention applies: x indexes rows and y indexes
// columns, so +x is Down, −x is Up, +y is Right and −y is Left.
type Direction uint8

const (
	// NoPath means the agent cell was not reached within the sweep budget.
	NoPath Direction = iota
	// Up moves to (x-1, y).
	Up
	// Right moves to (x, y+1).
	Right
	// Down moves to (x+1, y).
	Down
	// Left moves to (x, y-1).
	Left
)

// String returns the upper-case direction name.
func (d Direction) String() string {
	switch d {
	case NoPath:
		return "NO_PATH"
	case Up:
		return "UP"
	case Right:
		return "RIGHT"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Delta returns the (dx, dy) step for d. NoPath and unknown values yield (0, 0).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return -1, 0
	case Right:
		return 0, 1
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	}
	return 0, 0
}

// OffGrid is the coordinate sentinel meaning "out of range".
// No grid dimension may be large enough to make it a valid location.
const OffGrid uint8 = 0xFF

// GridPoint identifies a cell. Either coordinate may be OffGrid.
type GridPoint struct {
	X, Y uint8
}

// Valid reports whether neither coordinate is the OffGrid sentinel.
func (p GridPoint) Valid() bool {
	return p.X != OffGrid && p.Y != OffGrid
}

// OnGrid reports whether p lies inside a width×height grid.
func (p GridPoint) OnGrid(width, height int) bool {
	return p.Valid() && int(p.X) < width && int(p.Y) < height
}

// String formats p as "(x,y)", printing "-" for OffGrid axes.
func (p GridPoint) String() string {
	axis := func(v uint8) string {
		if v == OffGrid {
			return "-"
		}
		return strconv.Itoa(int(v))
	}
	return "(" + axis(p.X) + "," + axis(p.Y) + ")"
}

// ScanResult is the best neighbor found by ScanNeighbors.
// Value is Unset and DirectionSet is false when nothing qualified.
type ScanResult struct {
	Value     Cell
	Direction Direction
	set       bool
}

// DirectionSet reports whether a qualifying neighbor was found.
func (r ScanResult) DirectionSet() bool {
	return r.set
}

// View is read access to a grid. Observers receive a View and must not
// mutate the grid behind it.
type View interface {
	Size() (width, height int)
	InRange(x, y int) bool
	Read(x, y int) Cell
}

// Observer is notified synchronously during Propagate: once before the
// first sweep, once after each completed sweep, and once more on the sweep
// that reaches the agent.
type Observer interface {
	Wave(v View)
}

// ObserverFunc adapts an ordinary function to the Observer interface.
type ObserverFunc func(v View)

// Wave calls f(v).
func (f ObserverFunc) Wave(v View) { f(v) }

// Option configures a Grid at construction time.
type Option func(*options)

type options struct {
	cellWidth  float64
	cellHeight float64
}

// WithCellSize sets the real-world width and height of one cell.
// Only CastFromCell uses these values.
func WithCellSize(width, height float64) Option {
	return func(o *options) {
		o.cellWidth = width
		o.cellHeight = height
	}
}
