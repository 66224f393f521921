package quadgrid

import (
	"context"
	"time"

	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/grid"
)

// CollisionIndex is an instrumented, batch-capable wrapper around
// grid.CollisionIndex.
//
// CollisionIndex is safe for concurrent use by multiple goroutines once built.
type CollisionIndex struct {
	index  *grid.CollisionIndex
	opts   options
	logger *Logger
}

// NewCollisionIndex buckets rects into a uniform grid spanning their bounding
// box. See grid.New for the build rules.
func NewCollisionIndex(rects []geom.Rectangle, optFns ...Option) (*CollisionIndex, error) {
	o := applyOptions(optFns)
	logger := o.logger.WithKind(KindGrid)

	start := time.Now()
	index, err := grid.New(rects, o.gridOptions()...)
	err = translateError(err)
	elapsed := time.Since(start)

	o.metricsCollector.RecordBuild(KindGrid, len(rects), elapsed, err)
	logger.LogBuild(context.Background(), len(rects), elapsed, err)
	if err != nil {
		return nil, err
	}

	return &CollisionIndex{index: index, opts: o, logger: logger}, nil
}

// Collides reports whether query intersects any indexed rectangle.
func (c *CollisionIndex) Collides(query geom.Rectangle) bool {
	start := time.Now()
	hit := c.index.Collides(query)
	elapsed := time.Since(start)

	results := 0
	if hit {
		results = 1
	}
	c.opts.metricsCollector.RecordQuery(KindGrid, results, elapsed)
	c.logger.LogQuery(context.Background(), results, elapsed)
	return hit
}

// Candidates returns every rectangle sharing a grid cell with query. Equal
// input rectangles are reported once.
func (c *CollisionIndex) Candidates(query geom.Rectangle) []geom.Rectangle {
	start := time.Now()
	out := c.index.Candidates(query)
	elapsed := time.Since(start)

	c.opts.metricsCollector.RecordQuery(KindGrid, len(out), elapsed)
	c.logger.LogQuery(context.Background(), len(out), elapsed)
	return out
}

// Colliding returns every indexed rectangle that intersects query.
func (c *CollisionIndex) Colliding(query geom.Rectangle) []geom.Rectangle {
	start := time.Now()
	out := c.index.Colliding(query)
	elapsed := time.Since(start)

	c.opts.metricsCollector.RecordQuery(KindGrid, len(out), elapsed)
	c.logger.LogQuery(context.Background(), len(out), elapsed)
	return out
}

// CollidesBatch runs Collides for every query concurrently. hits[i] reports
// whether queries[i] collides.
//
// If ctx is cancelled or the resource controller refuses admission, the
// error is returned and the partial results are discarded.
func (c *CollisionIndex) CollidesBatch(ctx context.Context, queries []geom.Rectangle) ([]bool, error) {
	start := time.Now()
	hits := make([]bool, len(queries))
	err := c.opts.runBatch(ctx, len(queries), func(i int) {
		hits[i] = c.Collides(queries[i])
	})
	elapsed := time.Since(start)

	c.opts.metricsCollector.RecordBatch(KindGrid, len(queries), elapsed, err)
	c.logger.LogBatch(ctx, len(queries), elapsed, err)
	if err != nil {
		return nil, err
	}
	return hits, nil
}

// Transform maps a world coordinate to continuous grid space.
func (c *CollisionIndex) Transform(x, y float64) (float64, float64, error) {
	return c.index.Transform(x, y)
}

// Len returns the number of distinct indexed rectangles.
func (c *CollisionIndex) Len() int {
	return c.index.Len()
}

// Bounds returns the region covered by the grid.
func (c *CollisionIndex) Bounds() geom.Rectangle {
	return c.index.Bounds()
}

// Stats returns cell occupancy figures.
func (c *CollisionIndex) Stats() grid.Stats {
	return c.index.Stats()
}

// Index returns the underlying grid.
func (c *CollisionIndex) Index() *grid.CollisionIndex {
	return c.index
}
