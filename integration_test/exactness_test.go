package integration_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/quadgrid"
	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/quadtree"
	"github.com/hupe1980/quadgrid/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var world = geom.MustRectangle(-500, -500, 1000, 1000)

// TestQuadTreeExactness compares range queries against a linear scan across
// capacities and point distributions, including points on split lines.
func TestQuadTreeExactness(t *testing.T) {
	distributions := map[string]func(rng *testutil.RNG) []geom.Point{
		"uniform": func(rng *testutil.RNG) []geom.Point { return rng.Points(3000, world) },
		"lattice": func(rng *testutil.RNG) []geom.Point { return rng.GridPoints(3000, world) },
	}

	for name, gen := range distributions {
		for _, capacity := range []int{1, 4, 32} {
			t.Run(fmt.Sprintf("%s/cap=%d", name, capacity), func(t *testing.T) {
				rng := testutil.NewRNG(2024)
				items := testutil.Items(gen(rng))

				tree, err := quadgrid.NewQuadTree(items, capacity)
				require.NoError(t, err)
				defer tree.Close()

				seen := make(map[uint64]int)
				tree.Tree().Walk(func(info quadtree.NodeInfo[*testutil.Item]) bool {
					for _, e := range info.Elements {
						seen[e.Position().ID()]++
					}
					return true
				})
				require.Len(t, seen, len(items), "every element is stored in exactly one leaf")
				for _, n := range seen {
					require.Equal(t, 1, n)
				}

				for range 100 {
					area := rng.Rectangle(world, 250)
					want := testutil.ExactRange(items, area)
					got := tree.RangeQuery(nil, area)
					assert.ElementsMatch(t, testutil.IDs(want), testutil.IDs(got))
				}

				got := tree.RangeQuery(nil, tree.Bounds())
				assert.Len(t, got, len(items))
			})
		}
	}
}

// TestCollisionIndexExactness compares collision queries against a linear
// scan across resolutions.
func TestCollisionIndexExactness(t *testing.T) {
	for _, res := range []int{1, 7, 64} {
		t.Run(fmt.Sprintf("res=%d", res), func(t *testing.T) {
			rng := testutil.NewRNG(77)
			rects := rng.Rectangles(500, world, 60)

			idx, err := quadgrid.NewCollisionIndex(rects, quadgrid.WithResolution(res, res))
			require.NoError(t, err)

			queries := rng.Rectangles(200, world, 80)
			hits, err := idx.CollidesBatch(context.Background(), queries)
			require.NoError(t, err)

			for i, q := range queries {
				want := testutil.ExactColliding(rects, q)
				assert.Equal(t, len(want) > 0, hits[i])
				assert.ElementsMatch(t, want, idx.Colliding(q))
			}
		})
	}
}
