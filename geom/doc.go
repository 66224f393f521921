// Package geom provides the immutable two-dimensional value types shared by the
// quadtree and grid indexes.
//
// Coordinates follow the usual computer graphics convention: y grows from top
// to bottom, and a Rectangle is anchored at its upper-left corner.
//
// # Identity
//
// Every Point carries an identity token drawn when it is constructed. Copies of
// a Point share the token, so Equal behaves like reference equality: two points
// created with the same coordinates are still different points. The indexes use
// this token to deduplicate results.
//
// # Boundaries
//
// Containment and intersection are inclusive. A point on an edge is inside the
// rectangle, and two rectangles that only share an edge intersect.
package geom
