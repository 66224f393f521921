package geom

import (
	"math"
	"strconv"
	"sync/atomic"
)

var pointCounter atomic.Uint64

// Point is an immutable two-dimensional coordinate with an identity token.
//
// The zero value has identity 0, which is never handed out by NewPoint.
type Point struct {
	x  float64
	y  float64
	id uint64
}

// NewPoint creates a point with a fresh identity.
func NewPoint(x, y float64) Point {
	return Point{
		x:  x,
		y:  y,
		id: pointCounter.Add(1),
	}
}

// X returns the horizontal coordinate.
func (p Point) X() float64 { return p.x }

// Y returns the vertical coordinate.
func (p Point) Y() float64 { return p.y }

// ID returns the identity token.
func (p Point) ID() uint64 { return p.id }

// Equal reports whether p and o were created by the same NewPoint call.
func (p Point) Equal(o Point) bool {
	return p.id == o.id
}

// SameLocation reports whether p and o have identical coordinates.
func (p Point) SameLocation(o Point) bool {
	return p.x == o.x && p.y == o.y
}

// IsValid reports whether p was created by NewPoint and has finite coordinates.
func (p Point) IsValid() bool {
	return p.id != 0 && !math.IsNaN(p.x) && !math.IsNaN(p.y) && !math.IsInf(p.x, 0) && !math.IsInf(p.y, 0)
}

func (p Point) String() string {
	return strconv.FormatUint(p.id, 10)
}
