package quadgrid

import (
	"context"
	"time"

	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/quadtree"
)

// QuadTree is an instrumented, batch-capable wrapper around quadtree.Tree.
//
// QuadTree is safe for concurrent use by multiple goroutines once built.
type QuadTree[T quadtree.Element] struct {
	tree   *quadtree.Tree[T]
	opts   options
	logger *Logger
}

// NewQuadTree builds a quadtree over elements whose leaves hold at most
// maxLeafElements elements. See quadtree.New for the build rules.
func NewQuadTree[T quadtree.Element](elements []T, maxLeafElements int, optFns ...Option) (*QuadTree[T], error) {
	o := applyOptions(optFns)
	logger := o.logger.WithKind(KindQuadTree)

	start := time.Now()
	tree, err := quadtree.New(elements, maxLeafElements, o.quadtreeOptions()...)
	err = translateError(err)
	elapsed := time.Since(start)

	o.metricsCollector.RecordBuild(KindQuadTree, len(elements), elapsed, err)
	logger.LogBuild(context.Background(), len(elements), elapsed, err)
	if err != nil {
		return nil, err
	}

	return &QuadTree[T]{tree: tree, opts: o, logger: logger}, nil
}

// RangeQuery appends every element positioned inside area to dst and returns
// the extended slice. See quadtree.Tree.RangeQuery.
func (q *QuadTree[T]) RangeQuery(dst []T, area geom.Rectangle) []T {
	start := time.Now()
	before := len(dst)
	dst = q.tree.RangeQuery(dst, area)
	elapsed := time.Since(start)

	q.opts.metricsCollector.RecordQuery(KindQuadTree, len(dst)-before, elapsed)
	q.logger.LogQuery(context.Background(), len(dst)-before, elapsed)
	return dst
}

// Count returns the number of elements positioned inside area.
func (q *QuadTree[T]) Count(area geom.Rectangle) int {
	return q.tree.Count(area)
}

// RangeQueryBatch runs one range query per area concurrently. results[i]
// holds the elements inside areas[i].
//
// If ctx is cancelled or the resource controller refuses admission, the
// error is returned and the partial results are discarded.
func (q *QuadTree[T]) RangeQueryBatch(ctx context.Context, areas []geom.Rectangle) ([][]T, error) {
	start := time.Now()
	results := make([][]T, len(areas))
	err := q.opts.runBatch(ctx, len(areas), func(i int) {
		results[i] = q.RangeQuery(nil, areas[i])
	})
	elapsed := time.Since(start)

	q.opts.metricsCollector.RecordBatch(KindQuadTree, len(areas), elapsed, err)
	q.logger.LogBatch(ctx, len(areas), elapsed, err)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Len returns the number of indexed elements.
func (q *QuadTree[T]) Len() int {
	return q.tree.Len()
}

// Bounds returns the root region.
func (q *QuadTree[T]) Bounds() geom.Rectangle {
	return q.tree.Bounds()
}

// Stats returns the shape of the tree.
func (q *QuadTree[T]) Stats() quadtree.Stats {
	return q.tree.Stats()
}

// Tree returns the underlying quadtree.
func (q *QuadTree[T]) Tree() *quadtree.Tree[T] {
	return q.tree
}

// Close releases the node memory reserved against the resource controller.
// The tree must not be queried afterwards.
func (q *QuadTree[T]) Close() error {
	return q.tree.Close()
}
