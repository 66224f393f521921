// Package grid implements a uniform-grid broad-phase collision index over
// axis-aligned rectangles.
//
// The index covers the bounding box of its input with resolutionX x
// resolutionY equally sized cells. Each cell stores, as a roaring bitmap of
// rectangle indices, every rectangle that overlaps it; touching a cell edge
// counts as overlap.
//
// Queries run in two phases. Candidates returns the union of the cells a
// query covers, which may include rectangles that do not intersect the query.
// Collides and Colliding then apply the exact geom.Rectangle.Intersects test.
//
// A CollisionIndex is immutable after New returns and is safe for concurrent
// queries.
package grid
