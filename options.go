package quadgrid

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/grid"
	"github.com/hupe1980/quadgrid/quadtree"
	"github.com/hupe1980/quadgrid/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	controller       *resource.Controller
	concurrency      int
	maxDepth         int
	bounds           geom.Rectangle
	hasBounds        bool
	resolutionX      int
	resolutionY      int
}

// Option configures NewQuadTree and NewCollisionIndex.
//
// Options that only concern one index kind are ignored by the other.
type Option func(*options)

// WithMetricsCollector configures metrics collection for builds and queries.
// If nil is passed, metrics collection is disabled (NoopMetricsCollector).
//
// Example:
//
//	metrics := &quadgrid.BasicMetricsCollector{}
//	tree, _ := quadgrid.NewQuadTree(items, 8, quadgrid.WithMetricsCollector(metrics))
//	// ... use tree ...
//	stats := metrics.GetStats()
//	fmt.Printf("Queries: %d, Avg latency: %dns\n", stats.QueryCount, stats.QueryAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := quadgrid.NewJSONLogger(slog.LevelInfo)
//	idx, _ := quadgrid.NewCollisionIndex(walls, quadgrid.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController shares query admission and the node memory budget
// with other indexes using the same controller.
//
// Every query of a batch acquires a query slot (and a rate token, if the
// controller is rate limited) before it runs. Quadtree node storage is
// reserved against the controller's memory limit; builds exceeding it fail
// with ErrMemoryLimit.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithConcurrency bounds the number of goroutines a batch query uses.
// Values below one select runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithMaxDepth caps the depth of a quadtree (default quadtree.DefaultMaxDepth).
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithBoundingBox fixes the root region of a quadtree instead of deriving it
// from the element positions.
func WithBoundingBox(r geom.Rectangle) Option {
	return func(o *options) {
		o.bounds = r
		o.hasBounds = true
	}
}

// WithResolution sets the number of grid columns and rows of a collision
// index (default grid.DefaultResolutionX by grid.DefaultResolutionY).
func WithResolution(x, y int) Option {
	return func(o *options) {
		o.resolutionX = x
		o.resolutionY = y
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		maxDepth:         quadtree.DefaultMaxDepth,
		resolutionX:      grid.DefaultResolutionX,
		resolutionY:      grid.DefaultResolutionY,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.concurrency < 1 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}

func (o *options) quadtreeOptions() []quadtree.Option {
	opts := []quadtree.Option{quadtree.WithMaxDepth(o.maxDepth)}
	if o.hasBounds {
		opts = append(opts, quadtree.WithBoundingBox(o.bounds))
	}
	if o.controller != nil {
		opts = append(opts, quadtree.WithMemoryAcquirer(o.controller))
	}
	return opts
}

func (o *options) gridOptions() []grid.Option {
	return []grid.Option{grid.WithResolution(o.resolutionX, o.resolutionY)}
}
