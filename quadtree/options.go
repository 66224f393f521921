package quadtree

import (
	"github.com/hupe1980/quadgrid/geom"
)

// DefaultMaxDepth bounds the recursion of the build.
const DefaultMaxDepth = 32

// MemoryAcquirer reserves memory for node storage. *resource.Controller
// implements it.
type MemoryAcquirer interface {
	TryAcquireMemory(bytes int64) bool
	ReleaseMemory(bytes int64)
}

type options struct {
	bounds    geom.Rectangle
	hasBounds bool
	maxDepth  int
	acquirer  MemoryAcquirer
}

// Option configures New.
type Option func(*options)

// WithBoundingBox uses r as the root region instead of the smallest rectangle
// enclosing all element positions. Every element must lie inside r.
func WithBoundingBox(r geom.Rectangle) Option {
	return func(o *options) {
		o.bounds = r
		o.hasBounds = true
	}
}

// WithMaxDepth caps the depth of the tree. Nodes at this depth become leaves
// regardless of their size. Values below one are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithMemoryAcquirer accounts node storage against acq. The build fails with
// ErrMemoryLimit when acq refuses a reservation.
func WithMemoryAcquirer(acq MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = acq
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxDepth: DefaultMaxDepth,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
