// Package quadgrid provides static two-dimensional spatial indexes for Go.
//
// Two structures are offered, both built once from a fixed input and queried
// read-only afterwards:
//
//   - QuadTree: a point quadtree over any element exposing a geom.Point,
//     answering axis-aligned range queries.
//   - CollisionIndex: a uniform-grid broad phase over axis-aligned rectangles,
//     answering candidate and exact collision queries.
//
// # Quick Start
//
// Range queries:
//
//	tree, _ := quadgrid.NewQuadTree(cities, 8)
//	found := tree.RangeQuery(nil, geom.MustRectangle(0, 0, 100, 50))
//
// Collision queries:
//
//	idx, _ := quadgrid.NewCollisionIndex(walls, quadgrid.WithResolution(64, 64))
//	if idx.Collides(player) {
//	    // ...
//	}
//
// # Batch Queries
//
// Both indexes are safe for concurrent reads. The batch methods fan queries
// out over a bounded worker group and honor context cancellation:
//
//	results, err := tree.RangeQueryBatch(ctx, areas)
//	hits, err := idx.CollidesBatch(ctx, players)
//
// Admission can be shared across indexes with a resource.Controller
// (WithResourceController), which also budgets quadtree node memory.
//
// # Observability
//
// Builds and queries are reported to a MetricsCollector (WithMetricsCollector)
// and a structured Logger (WithLogger). The promcollector package exports the
// metrics to Prometheus.
//
// The lower-level packages geom, quadtree and grid can be used directly when
// none of this is needed.
package quadgrid
