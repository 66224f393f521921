package quadgrid_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/hupe1980/quadgrid"
	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/resource"
	"github.com/hupe1980/quadgrid/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollisionIndex(t *testing.T) {
	t.Run("InvalidResolution", func(t *testing.T) {
		_, err := quadgrid.NewCollisionIndex(
			[]geom.Rectangle{geom.MustRectangle(0, 0, 1, 1)},
			quadgrid.WithResolution(0, 10),
		)
		var re *quadgrid.ErrInvalidResolution
		require.ErrorAs(t, err, &re)
		assert.Equal(t, 0, re.X)
		assert.Equal(t, 10, re.Y)
		assert.ErrorIs(t, err, quadgrid.ErrInvalidArgument)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := quadgrid.NewCollisionIndex([]geom.Rectangle{})
		assert.ErrorIs(t, err, quadgrid.ErrInvalidArgument)
	})

	t.Run("BuildErrorRecorded", func(t *testing.T) {
		metrics := &quadgrid.BasicMetricsCollector{}
		_, err := quadgrid.NewCollisionIndex(nil, quadgrid.WithMetricsCollector(metrics))
		require.Error(t, err)
		assert.Equal(t, int64(1), metrics.GetStats().BuildErrors)
	})
}

func TestCollisionIndexQueries(t *testing.T) {
	rng := testutil.NewRNG(11)
	rects := rng.Rectangles(300, world, 50)

	metrics := &quadgrid.BasicMetricsCollector{}
	idx, err := quadgrid.NewCollisionIndex(rects,
		quadgrid.WithResolution(32, 32),
		quadgrid.WithMetricsCollector(metrics),
	)
	require.NoError(t, err)

	for range 100 {
		q := rng.Rectangle(world, 80)
		want := testutil.ExactColliding(rects, q)

		assert.Equal(t, len(want) > 0, idx.Collides(q))
		assert.ElementsMatch(t, want, idx.Colliding(q))

		candidates := idx.Candidates(q)
		for _, r := range want {
			assert.Contains(t, candidates, r)
		}
	}

	assert.Equal(t, int64(300), metrics.GetStats().QueryCount)
}

func TestCollisionIndexTouching(t *testing.T) {
	a := geom.MustRectangle(0, 0, 10, 10)
	b := geom.MustRectangle(20, 20, 10, 10)
	idx, err := quadgrid.NewCollisionIndex([]geom.Rectangle{a, b}, quadgrid.WithResolution(3, 3))
	require.NoError(t, err)

	assert.True(t, idx.Collides(geom.MustRectangle(10, 10, 5, 5)))
	assert.False(t, idx.Collides(geom.MustRectangle(11, 11, 5, 5)))
	assert.False(t, idx.Collides(geom.MustRectangle(100, 100, 5, 5)))
}

func TestCollisionIndexTransform(t *testing.T) {
	idx, err := quadgrid.NewCollisionIndex(
		[]geom.Rectangle{geom.MustRectangle(0, 0, 100, 50)},
		quadgrid.WithResolution(10, 5),
	)
	require.NoError(t, err)

	x, y, err := idx.Transform(50, 25)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, 2.5, y, 1e-9)

	_, _, err = idx.Transform(101, 0)
	assert.ErrorIs(t, err, quadgrid.ErrOutOfBounds)
}

func TestCollisionIndexCollidesBatch(t *testing.T) {
	rng := testutil.NewRNG(5)
	rects := rng.Rectangles(200, world, 40)

	ctrl := resource.NewController(resource.Config{
		MaxConcurrentQueries: 4,
		QueriesPerSecond:     10000,
		QueryBurst:           100,
	})
	idx, err := quadgrid.NewCollisionIndex(rects,
		quadgrid.WithResourceController(ctrl),
		quadgrid.WithConcurrency(8),
	)
	require.NoError(t, err)

	queries := rng.Rectangles(100, world, 60)
	hits, err := idx.CollidesBatch(context.Background(), queries)
	require.NoError(t, err)
	require.Len(t, hits, len(queries))

	for i, q := range queries {
		assert.Equal(t, testutil.ExactCollides(rects, q), hits[i])
	}
	assert.Equal(t, int64(0), ctrl.ActiveQueries())
}

func TestCollisionIndexCollidesBatchDeadline(t *testing.T) {
	rects := []geom.Rectangle{geom.MustRectangle(0, 0, 10, 10)}

	// One token, refilled once per hour: the second query cannot be admitted.
	ctrl := resource.NewController(resource.Config{QueriesPerSecond: 1.0 / 3600, QueryBurst: 1})
	idx, err := quadgrid.NewCollisionIndex(rects, quadgrid.WithResourceController(ctrl))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	queries := []geom.Rectangle{rects[0], rects[0], rects[0]}
	hits, err := idx.CollidesBatch(ctx, queries)
	assert.Error(t, err)
	assert.Nil(t, hits)
}

func TestCollisionIndexLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := quadgrid.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	idx, err := quadgrid.NewCollisionIndex(
		[]geom.Rectangle{geom.MustRectangle(0, 0, 1, 1)},
		quadgrid.WithLogger(logger),
	)
	require.NoError(t, err)
	idx.Collides(geom.MustRectangle(0, 0, 1, 1))

	out := buf.String()
	assert.Contains(t, out, `"msg":"build completed"`)
	assert.Contains(t, out, `"kind":"grid"`)
	assert.Contains(t, out, `"msg":"query completed"`)
}
