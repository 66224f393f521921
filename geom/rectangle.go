package geom

import (
	"fmt"
	"math"
)

// DegenerateExtent is the extent BoundsOfPoints assigns to an axis on which
// all points share the same coordinate.
const DegenerateExtent = 1.0

// Rectangle is an immutable axis-aligned box anchored at its upper-left corner.
//
// The zero value is the empty rectangle: it contains no point and intersects
// nothing. Every rectangle returned by NewRectangle has a positive width and
// height.
type Rectangle struct {
	x      float64
	y      float64
	width  float64
	height float64
}

// NewRectangle creates a rectangle from its upper-left corner and its size.
// It returns an error wrapping ErrInvalidArgument if width or height is not
// positive.
func NewRectangle(x, y, width, height float64) (Rectangle, error) {
	if !(width > 0) || !(height > 0) {
		return Rectangle{}, fmt.Errorf("%w: width %g and height %g must be positive", ErrInvalidArgument, width, height)
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Rectangle{}, fmt.Errorf("%w: rectangle (%g, %g, %g, %g) is not finite", ErrInvalidArgument, x, y, width, height)
	}
	return Rectangle{x: x, y: y, width: width, height: height}, nil
}

// MustRectangle is like NewRectangle but panics on invalid dimensions.
func MustRectangle(x, y, width, height float64) Rectangle {
	r, err := NewRectangle(x, y, width, height)
	if err != nil {
		panic(err)
	}
	return r
}

// X returns the left edge.
func (r Rectangle) X() float64 { return r.x }

// Y returns the upper edge.
func (r Rectangle) Y() float64 { return r.y }

// Width returns the horizontal extent.
func (r Rectangle) Width() float64 { return r.width }

// Height returns the vertical extent.
func (r Rectangle) Height() float64 { return r.height }

// MaxX returns the right edge.
func (r Rectangle) MaxX() float64 { return r.x + r.width }

// MaxY returns the lower edge.
func (r Rectangle) MaxY() float64 { return r.y + r.height }

// Center returns the coordinates of the midpoint.
func (r Rectangle) Center() (float64, float64) {
	return r.x + r.width/2, r.y + r.height/2
}

// Area returns width times height.
func (r Rectangle) Area() float64 { return r.width * r.height }

// IsEmpty reports whether r is the empty rectangle.
func (r Rectangle) IsEmpty() bool {
	return !(r.width > 0) || !(r.height > 0)
}

// ContainsPoint reports whether p lies inside r or on its boundary.
func (r Rectangle) ContainsPoint(p Point) bool {
	return r.containsXY(p.x, p.y)
}

func (r Rectangle) containsXY(x, y float64) bool {
	if r.IsEmpty() {
		return false
	}
	return x >= r.x && x <= r.x+r.width && y >= r.y && y <= r.y+r.height
}

// Contains reports whether o lies completely inside r.
func (r Rectangle) Contains(o Rectangle) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.x >= r.x && o.x+o.width <= r.x+r.width &&
		o.y >= r.y && o.y+o.height <= r.y+r.height
}

// Intersects reports whether r and o share at least one point. Rectangles
// that only touch along an edge or at a corner intersect.
func (r Rectangle) Intersects(o Rectangle) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return overlaps(r.x, r.x+r.width, o.x, o.x+o.width) &&
		overlaps(r.y, r.y+r.height, o.y, o.y+o.height)
}

// overlaps tests two closed intervals.
func overlaps(aMin, aMax, bMin, bMax float64) bool {
	return aMin <= bMax && bMin <= aMax
}

// Quadrants splits r into four equally sized rectangles in the order
// top-left, top-right, bottom-left, bottom-right.
func (r Rectangle) Quadrants() [4]Rectangle {
	hw := r.width / 2
	hh := r.height / 2
	midX := r.x + hw
	midY := r.y + hh
	return [4]Rectangle{
		{x: r.x, y: r.y, width: hw, height: hh},
		{x: midX, y: r.y, width: extent(midX, r.x+r.width), height: hh},
		{x: r.x, y: midY, width: hw, height: extent(midY, r.y+r.height)},
		{x: midX, y: midY, width: extent(midX, r.x+r.width), height: extent(midY, r.y+r.height)},
	}
}

// extent returns the smallest w >= hi-lo with lo+w >= hi in floating point,
// so a rectangle starting at lo reaches hi.
func extent(lo, hi float64) float64 {
	w := hi - lo
	for lo+w < hi {
		w = math.Nextafter(w, math.Inf(1))
	}
	return w
}

// ExcludePoints returns a copy of r, shrunk from its right and bottom edges so
// that the points are excluded one at a time in slice order. The upper-left
// corner never moves.
//
// For each point still inside the current rectangle, the width is reduced by
// px-x+1 if that leaves a positive width; otherwise the height is reduced by
// py-y+1 if that leaves a positive height. If neither axis can absorb the
// point, the result is the empty rectangle and the remaining points are
// ignored.
func (r Rectangle) ExcludePoints(points []Point) (Rectangle, error) {
	if points == nil {
		return Rectangle{}, fmt.Errorf("%w: points is nil", ErrInvalidArgument)
	}
	for i, p := range points {
		if p.id == 0 {
			return Rectangle{}, fmt.Errorf("%w: point %d is missing", ErrInvalidArgument, i)
		}
	}

	cur := r
	for _, p := range points {
		if !cur.ContainsPoint(p) {
			continue
		}
		cur = cur.excludePoint(p)
	}
	return cur, nil
}

func (r Rectangle) excludePoint(p Point) Rectangle {
	if dx := p.x - r.x + 1; r.width > dx {
		return Rectangle{x: r.x, y: r.y, width: r.width - dx, height: r.height}
	}
	if dy := p.y - r.y + 1; r.height > dy {
		return Rectangle{x: r.x, y: r.y, width: r.width, height: r.height - dy}
	}
	return Rectangle{}
}

func (r Rectangle) String() string {
	if r.IsEmpty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%g,%g %gx%g]", r.x, r.y, r.width, r.height)
}

// BoundingBox returns the smallest rectangle enclosing every rectangle in
// rects. It returns an error wrapping ErrInvalidArgument if rects is nil,
// empty, or contains the empty rectangle.
func BoundingBox(rects []Rectangle) (Rectangle, error) {
	if len(rects) == 0 {
		return Rectangle{}, fmt.Errorf("%w: no rectangles to enclose", ErrInvalidArgument)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, r := range rects {
		if r.IsEmpty() {
			return Rectangle{}, fmt.Errorf("%w: rectangle %d is empty", ErrInvalidArgument, i)
		}
		minX = min(minX, r.x)
		minY = min(minY, r.y)
		maxX = max(maxX, r.x+r.width)
		maxY = max(maxY, r.y+r.height)
	}
	return NewRectangle(minX, minY, extent(minX, maxX), extent(minY, maxY))
}

// BoundsOfPoints returns the smallest rectangle enclosing every point. An axis
// without spread gets an extent of DegenerateExtent starting at the shared
// coordinate, so a single point yields a unit square anchored at it.
func BoundsOfPoints(points []Point) (Rectangle, error) {
	if len(points) == 0 {
		return Rectangle{}, fmt.Errorf("%w: no points to enclose", ErrInvalidArgument)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range points {
		if !p.IsValid() {
			return Rectangle{}, fmt.Errorf("%w: point %d is missing or not finite", ErrInvalidArgument, i)
		}
		minX = min(minX, p.x)
		minY = min(minY, p.y)
		maxX = max(maxX, p.x)
		maxY = max(maxY, p.y)
	}

	w := extent(minX, maxX)
	if !(w > 0) {
		w = DegenerateExtent
	}
	h := extent(minY, maxY)
	if !(h > 0) {
		h = DegenerateExtent
	}
	return NewRectangle(minX, minY, w, h)
}
