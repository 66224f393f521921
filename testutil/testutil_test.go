package testutil

import (
	"testing"

	"github.com/hupe1980/quadgrid/geom"
	"github.com/stretchr/testify/assert"
)

func TestPoints(t *testing.T) {
	rng := NewRNG(4711)
	bounds := geom.MustRectangle(-10, 5, 20, 3)

	points := rng.Points(100, bounds)

	assert.Len(t, points, 100)
	for _, p := range points {
		assert.True(t, bounds.ContainsPoint(p))
		assert.True(t, p.IsValid())
	}
}

func TestRectangles(t *testing.T) {
	rng := NewRNG(4711)
	bounds := geom.MustRectangle(0, 0, 100, 100)

	rects := rng.Rectangles(200, bounds, 10)

	assert.Len(t, rects, 200)
	for _, r := range rects {
		assert.GreaterOrEqual(t, r.X(), 0.0)
		assert.GreaterOrEqual(t, r.Y(), 0.0)
		assert.LessOrEqual(t, r.MaxX(), 100+1e-9)
		assert.LessOrEqual(t, r.MaxY(), 100+1e-9)
		assert.LessOrEqual(t, r.Width(), 10.0)
		assert.LessOrEqual(t, r.Height(), 10.0)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(7)
	a := rng.Float64()
	rng.Reset()
	assert.Equal(t, a, rng.Float64())
	assert.Equal(t, int64(7), rng.Seed())
}

func TestExactRange(t *testing.T) {
	items := Items([]geom.Point{geom.NewPoint(0, 0), geom.NewPoint(5, 5), geom.NewPoint(9, 9)})

	got := ExactRange(items, geom.MustRectangle(0, 0, 5, 5))

	assert.Equal(t, []*Item{items[0], items[1]}, got)
}
