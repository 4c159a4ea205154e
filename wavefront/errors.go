package wavefront

import "errors"

// Sentinel errors for grid construction.
var (
	// ErrBadDimensions indicates a width or height outside 1..MaxDimension.
	ErrBadDimensions = errors.New("wavefront: grid dimensions must be in 1..254")
	// ErrBadCellSize indicates a non-positive or non-finite cell size.
	ErrBadCellSize = errors.New("wavefront: cell size must be positive and finite")
)
