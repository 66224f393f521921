package quadtree

import (
	"fmt"

	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/internal/arena"
)

// ErrMemoryLimit is returned by New when node storage exceeds the configured
// memory budget.
var ErrMemoryLimit = arena.ErrMemoryLimit

// ErrInvalidCapacity indicates a leaf capacity below one.
//
// It matches geom.ErrInvalidArgument via errors.Is.
type ErrInvalidCapacity struct {
	Capacity int
}

func (e *ErrInvalidCapacity) Error() string {
	return fmt.Sprintf("invalid leaf capacity: %d (must be >= 1)", e.Capacity)
}

func (e *ErrInvalidCapacity) Unwrap() error { return geom.ErrInvalidArgument }
