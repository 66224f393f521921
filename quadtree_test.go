package quadgrid_test

import (
	"context"
	"testing"

	"github.com/hupe1980/quadgrid"
	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/resource"
	"github.com/hupe1980/quadgrid/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var world = geom.MustRectangle(0, 0, 1000, 1000)

func TestNewQuadTree(t *testing.T) {
	t.Run("InvalidCapacity", func(t *testing.T) {
		items := testutil.Items([]geom.Point{geom.NewPoint(1, 1)})
		_, err := quadgrid.NewQuadTree(items, 0)
		require.Error(t, err)

		var ce *quadgrid.ErrInvalidCapacity
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, 0, ce.Capacity)
		assert.ErrorIs(t, err, quadgrid.ErrInvalidArgument)
	})

	t.Run("NilElements", func(t *testing.T) {
		_, err := quadgrid.NewQuadTree[*testutil.Item](nil, 4)
		assert.ErrorIs(t, err, quadgrid.ErrInvalidArgument)
	})

	t.Run("OutsideBoundingBox", func(t *testing.T) {
		items := testutil.Items([]geom.Point{geom.NewPoint(5, 5)})
		_, err := quadgrid.NewQuadTree(items, 4,
			quadgrid.WithBoundingBox(geom.MustRectangle(0, 0, 1, 1)))
		assert.ErrorIs(t, err, quadgrid.ErrInvalidArgument)
	})

	t.Run("BoundingBox", func(t *testing.T) {
		items := testutil.Items([]geom.Point{geom.NewPoint(5, 5)})
		tree, err := quadgrid.NewQuadTree(items, 4, quadgrid.WithBoundingBox(world))
		require.NoError(t, err)
		assert.Equal(t, world, tree.Bounds())
		assert.Equal(t, 1, tree.Len())
	})

	t.Run("MaxDepth", func(t *testing.T) {
		rng := testutil.NewRNG(1)
		items := testutil.Items(rng.Points(500, world))
		tree, err := quadgrid.NewQuadTree(items, 1, quadgrid.WithMaxDepth(2))
		require.NoError(t, err)
		assert.LessOrEqual(t, tree.Stats().Depth, 2)
	})
}

func TestQuadTreeRangeQuery(t *testing.T) {
	rng := testutil.NewRNG(42)
	items := testutil.Items(rng.Points(2000, world))

	metrics := &quadgrid.BasicMetricsCollector{}
	tree, err := quadgrid.NewQuadTree(items, 8, quadgrid.WithMetricsCollector(metrics))
	require.NoError(t, err)

	for range 50 {
		area := rng.Rectangle(world, 300)
		got := tree.RangeQuery(nil, area)
		want := testutil.ExactRange(items, area)
		assert.ElementsMatch(t, testutil.IDs(want), testutil.IDs(got))
		assert.Equal(t, len(want), tree.Count(area))
	}

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(0), stats.BuildErrors)
	assert.Equal(t, int64(2000), stats.BuildElements)
	assert.Equal(t, int64(50), stats.QueryCount)
}

func TestQuadTreeRangeQueryAccumulates(t *testing.T) {
	a := &testutil.Item{Name: "a", Pos: geom.NewPoint(1, 1)}
	b := &testutil.Item{Name: "b", Pos: geom.NewPoint(9, 9)}
	tree, err := quadgrid.NewQuadTree([]*testutil.Item{a, b}, 1)
	require.NoError(t, err)

	dst := tree.RangeQuery(nil, geom.MustRectangle(0, 0, 5, 5))
	require.Equal(t, []*testutil.Item{a}, dst)

	dst = tree.RangeQuery(dst, geom.MustRectangle(0, 0, 10, 10))
	assert.Len(t, dst, 2)
	assert.ElementsMatch(t, []*testutil.Item{a, b}, dst)
}

func TestQuadTreeRangeQueryBatch(t *testing.T) {
	rng := testutil.NewRNG(7)
	items := testutil.Items(rng.Points(1000, world))

	metrics := &quadgrid.BasicMetricsCollector{}
	ctrl := resource.NewController(resource.Config{MaxConcurrentQueries: 2})
	tree, err := quadgrid.NewQuadTree(items, 4,
		quadgrid.WithMetricsCollector(metrics),
		quadgrid.WithResourceController(ctrl),
		quadgrid.WithConcurrency(4),
	)
	require.NoError(t, err)

	areas := rng.Rectangles(64, world, 200)
	results, err := tree.RangeQueryBatch(context.Background(), areas)
	require.NoError(t, err)
	require.Len(t, results, len(areas))

	for i, area := range areas {
		want := testutil.ExactRange(items, area)
		assert.ElementsMatch(t, testutil.IDs(want), testutil.IDs(results[i]))
	}
	assert.Equal(t, int64(0), ctrl.ActiveQueries())

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BatchCount)
	assert.Equal(t, int64(64), stats.BatchQueries)
	assert.Equal(t, int64(64), stats.QueryCount)
}

func TestQuadTreeRangeQueryBatchCancelled(t *testing.T) {
	rng := testutil.NewRNG(7)
	items := testutil.Items(rng.Points(100, world))

	metrics := &quadgrid.BasicMetricsCollector{}
	tree, err := quadgrid.NewQuadTree(items, 4, quadgrid.WithMetricsCollector(metrics))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := tree.RangeQueryBatch(ctx, rng.Rectangles(16, world, 100))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
	assert.Equal(t, int64(1), metrics.GetStats().BatchErrors)
}

func TestQuadTreeMemoryLimit(t *testing.T) {
	rng := testutil.NewRNG(3)
	items := testutil.Items(rng.Points(100, world))

	t.Run("Exceeded", func(t *testing.T) {
		ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 1})
		_, err := quadgrid.NewQuadTree(items, 4, quadgrid.WithResourceController(ctrl))
		assert.ErrorIs(t, err, quadgrid.ErrMemoryLimit)
		assert.Equal(t, int64(0), ctrl.MemoryUsage())
	})

	t.Run("Released", func(t *testing.T) {
		ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 30})
		tree, err := quadgrid.NewQuadTree(items, 4, quadgrid.WithResourceController(ctrl))
		require.NoError(t, err)
		assert.Positive(t, ctrl.MemoryUsage())

		require.NoError(t, tree.Close())
		assert.Equal(t, int64(0), ctrl.MemoryUsage())
	})
}
