// Package testutil provides testing utilities for quadgrid.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random generator for points and rectangles, a simple
// element type, and brute-force oracles to check index results against.
//
// # Random Geometry
//
//	rng := testutil.NewRNG(seed)
//	world := geom.MustRectangle(0, 0, 1000, 1000)
//	points := rng.Points(10_000, world)
//	rects := rng.Rectangles(500, world, 25)
//
// # Ground Truth
//
//	want := testutil.ExactRange(items, area)
//	hit := testutil.ExactCollides(rects, query)
package testutil
