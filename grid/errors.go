package grid

import (
	"fmt"

	"github.com/hupe1980/quadgrid/geom"
)

// ErrInvalidResolution indicates a grid resolution below one cell on an axis.
//
// It matches geom.ErrInvalidArgument via errors.Is.
type ErrInvalidResolution struct {
	X int
	Y int
}

func (e *ErrInvalidResolution) Error() string {
	return fmt.Sprintf("invalid grid resolution: %dx%d (must be >= 1 on both axes)", e.X, e.Y)
}

func (e *ErrInvalidResolution) Unwrap() error { return geom.ErrInvalidArgument }
