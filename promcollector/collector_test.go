package promcollector

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/quadgrid"
	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.RecordBuild(quadgrid.KindQuadTree, 10, time.Millisecond, nil)
	c.RecordBuild(quadgrid.KindQuadTree, 3, time.Millisecond, errors.New("boom"))
	c.RecordQuery(quadgrid.KindGrid, 4, time.Microsecond)
	c.RecordBatch(quadgrid.KindGrid, 16, time.Millisecond, nil)

	assert.InDelta(t, 1, promtest.ToFloat64(c.builds.WithLabelValues(quadgrid.KindQuadTree, "success")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(c.builds.WithLabelValues(quadgrid.KindQuadTree, "error")), 0)
	assert.InDelta(t, 10, promtest.ToFloat64(c.buildSize.WithLabelValues(quadgrid.KindQuadTree)), 0)
	assert.InDelta(t, 16, promtest.ToFloat64(c.batches.WithLabelValues(quadgrid.KindGrid)), 0)

	expected := `
# HELP quadgrid_batch_queries_total Total queries submitted in batches
# TYPE quadgrid_batch_queries_total counter
quadgrid_batch_queries_total{kind="grid"} 16
`
	require.NoError(t, promtest.GatherAndCompare(reg, strings.NewReader(expected), "quadgrid_batch_queries_total"))
}

func TestCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestCollectorWithIndexes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	rng := testutil.NewRNG(9)
	world := geom.MustRectangle(0, 0, 100, 100)

	tree, err := quadgrid.NewQuadTree(testutil.Items(rng.Points(200, world)), 4,
		quadgrid.WithMetricsCollector(c))
	require.NoError(t, err)
	tree.RangeQuery(nil, geom.MustRectangle(10, 10, 20, 20))

	idx, err := quadgrid.NewCollisionIndex(rng.Rectangles(50, world, 10),
		quadgrid.WithMetricsCollector(c))
	require.NoError(t, err)
	idx.Collides(geom.MustRectangle(0, 0, 5, 5))

	assert.InDelta(t, 200, promtest.ToFloat64(c.buildSize.WithLabelValues(quadgrid.KindQuadTree)), 0)
	assert.InDelta(t, 50, promtest.ToFloat64(c.buildSize.WithLabelValues(quadgrid.KindGrid)), 0)

	// build latency, builds, sizes and query histograms for both kinds
	assert.Equal(t, 10, promtest.CollectAndCount(c))
}
