package quadgrid

import (
	"errors"
	"fmt"

	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/grid"
	"github.com/hupe1980/quadgrid/quadtree"
)

var (
	// ErrInvalidArgument is returned for malformed construction parameters.
	ErrInvalidArgument = geom.ErrInvalidArgument

	// ErrOutOfBounds is returned when a coordinate lies outside an index.
	ErrOutOfBounds = geom.ErrOutOfBounds

	// ErrMemoryLimit is returned when a build exceeds the memory budget of the
	// configured resource.Controller.
	ErrMemoryLimit = quadtree.ErrMemoryLimit
)

// ErrInvalidCapacity indicates a quadtree leaf capacity below one.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrInvalidCapacity struct {
	Capacity int
	cause    error
}

func (e *ErrInvalidCapacity) Error() string {
	return fmt.Sprintf("invalid leaf capacity: %d", e.Capacity)
}

func (e *ErrInvalidCapacity) Unwrap() error { return e.cause }

// ErrInvalidResolution indicates a grid resolution below one.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrInvalidResolution struct {
	X     int
	Y     int
	cause error
}

func (e *ErrInvalidResolution) Error() string {
	return fmt.Sprintf("invalid grid resolution: %dx%d", e.X, e.Y)
}

func (e *ErrInvalidResolution) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ce *quadtree.ErrInvalidCapacity
	if errors.As(err, &ce) {
		return &ErrInvalidCapacity{Capacity: ce.Capacity, cause: err}
	}
	var re *grid.ErrInvalidResolution
	if errors.As(err, &re) {
		return &ErrInvalidResolution{X: re.X, Y: re.Y, cause: err}
	}

	return err
}
