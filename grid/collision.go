package grid

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/internal/conv"
	"github.com/hupe1980/quadgrid/internal/pool"
)

// CollisionIndex buckets rectangles into a uniform grid.
type CollisionIndex struct {
	bounds geom.Rectangle
	resX   int
	resY   int
	rects  []geom.Rectangle
	cells  []*roaring.Bitmap // row-major, resY rows of resX columns; nil if empty
}

// New builds a collision index over rects. Duplicate rectangles are stored
// once.
//
// New returns an error matching geom.ErrInvalidArgument if rects is nil or
// empty, contains the empty rectangle, or the resolution is below one
// (*ErrInvalidResolution).
func New(rects []geom.Rectangle, optFns ...Option) (*CollisionIndex, error) {
	if rects == nil {
		return nil, fmt.Errorf("%w: rectangles is nil", geom.ErrInvalidArgument)
	}

	o := applyOptions(optFns)
	if o.resolutionX < 1 || o.resolutionY < 1 {
		return nil, &ErrInvalidResolution{X: o.resolutionX, Y: o.resolutionY}
	}
	if _, err := conv.IntToUint32(len(rects)); err != nil {
		return nil, fmt.Errorf("%w: %w", geom.ErrInvalidArgument, err)
	}

	bounds, err := geom.BoundingBox(rects)
	if err != nil {
		return nil, err
	}

	c := &CollisionIndex{
		bounds: bounds,
		resX:   o.resolutionX,
		resY:   o.resolutionY,
		rects:  dedup(rects),
		cells:  make([]*roaring.Bitmap, o.resolutionX*o.resolutionY),
	}
	c.fill()

	return c, nil
}

func dedup(rects []geom.Rectangle) []geom.Rectangle {
	seen := make(map[geom.Rectangle]struct{}, len(rects))
	out := make([]geom.Rectangle, 0, len(rects))
	for _, r := range rects {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// fill inserts every rectangle into each cell it overlaps. Spans are clamped
// to the grid, so rounding at the outer boundary never fails.
func (c *CollisionIndex) fill() {
	for i, r := range c.rects {
		x0, x1, y0, y1 := c.span(r)
		for y := y0; y <= y1; y++ {
			row := y * c.resX
			for x := x0; x <= x1; x++ {
				bm := c.cells[row+x]
				if bm == nil {
					bm = roaring.New()
					c.cells[row+x] = bm
				}
				bm.Add(uint32(i))
			}
		}
	}
	for _, bm := range c.cells {
		if bm != nil {
			bm.RunOptimize()
		}
	}
}

// Transform maps a world coordinate to continuous grid space, where cell
// (i, j) covers [i, i+1] x [j, j+1]. It returns an error wrapping
// geom.ErrOutOfBounds if the coordinate lies outside Bounds.
func (c *CollisionIndex) Transform(x, y float64) (float64, float64, error) {
	if x < c.bounds.X() || x > c.bounds.MaxX() || math.IsNaN(x) {
		return 0, 0, fmt.Errorf("%w: x coordinate %g is outside [%g, %g]", geom.ErrOutOfBounds, x, c.bounds.X(), c.bounds.MaxX())
	}
	if y < c.bounds.Y() || y > c.bounds.MaxY() || math.IsNaN(y) {
		return 0, 0, fmt.Errorf("%w: y coordinate %g is outside [%g, %g]", geom.ErrOutOfBounds, y, c.bounds.Y(), c.bounds.MaxY())
	}
	return c.transformX(x), c.transformY(y), nil
}

func (c *CollisionIndex) transformX(x float64) float64 {
	return (x - c.bounds.X()) / c.bounds.Width() * float64(c.resX)
}

func (c *CollisionIndex) transformY(y float64) float64 {
	return (y - c.bounds.Y()) / c.bounds.Height() * float64(c.resY)
}

// span returns the inclusive cell ranges r touches, clamped to the grid.
// A lower edge lying exactly on a cell boundary also touches the cell before
// it.
func (c *CollisionIndex) span(r geom.Rectangle) (x0, x1, y0, y1 int) {
	x0 = cell(math.Ceil(c.transformX(r.X()))-1, c.resX)
	x1 = cell(math.Floor(c.transformX(r.MaxX())), c.resX)
	y0 = cell(math.Ceil(c.transformY(r.Y()))-1, c.resY)
	y1 = cell(math.Floor(c.transformY(r.MaxY())), c.resY)
	return x0, x1, y0, y1
}

// cell converts a grid coordinate to a cell index in [0, res-1], clamping in
// float space.
func cell(v float64, res int) int {
	if !(v > 0) {
		return 0
	}
	if v >= float64(res-1) {
		return res - 1
	}
	return int(v)
}

// candidates returns the union of every cell query covers, or nil if query
// misses the grid.
func (c *CollisionIndex) candidates(query geom.Rectangle) *roaring.Bitmap {
	if !c.bounds.Intersects(query) {
		return nil
	}

	x0, x1, y0, y1 := c.span(query)
	scratch := pool.GetCells()
	defer pool.PutCells(scratch)

	bms := *scratch
	for y := y0; y <= y1; y++ {
		row := y * c.resX
		for x := x0; x <= x1; x++ {
			if bm := c.cells[row+x]; bm != nil {
				bms = append(bms, bm)
			}
		}
	}
	*scratch = bms

	switch len(bms) {
	case 0:
		return nil
	case 1:
		return bms[0]
	default:
		return roaring.FastOr(bms...)
	}
}

// Candidates returns every rectangle sharing a cell with query, each once and
// in input order. The result is a superset of the rectangles intersecting
// query. A query outside Bounds has no candidates.
//
// Rectangles are compared by value: equal rectangles passed to New are
// indexed, and reported, once.
func (c *CollisionIndex) Candidates(query geom.Rectangle) []geom.Rectangle {
	bm := c.candidates(query)
	if bm == nil {
		return nil
	}

	out := make([]geom.Rectangle, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, c.rects[it.Next()])
	}
	return out
}

// Collides reports whether query intersects any indexed rectangle. Touching
// edges count as a collision.
func (c *CollisionIndex) Collides(query geom.Rectangle) bool {
	bm := c.candidates(query)
	if bm == nil {
		return false
	}

	it := bm.Iterator()
	for it.HasNext() {
		if c.rects[it.Next()].Intersects(query) {
			return true
		}
	}
	return false
}

// Colliding returns every indexed rectangle that intersects query, in input
// order. Like Candidates, equal input rectangles are reported once.
func (c *CollisionIndex) Colliding(query geom.Rectangle) []geom.Rectangle {
	bm := c.candidates(query)
	if bm == nil {
		return nil
	}

	var out []geom.Rectangle
	it := bm.Iterator()
	for it.HasNext() {
		if r := c.rects[it.Next()]; r.Intersects(query) {
			out = append(out, r)
		}
	}
	return out
}

// Bounds returns the region covered by the grid.
func (c *CollisionIndex) Bounds() geom.Rectangle {
	return c.bounds
}

// Resolution returns the number of columns and rows.
func (c *CollisionIndex) Resolution() (int, int) {
	return c.resX, c.resY
}

// Len returns the number of distinct indexed rectangles.
func (c *CollisionIndex) Len() int {
	return len(c.rects)
}

// Rectangles returns a copy of the indexed rectangles in input order.
func (c *CollisionIndex) Rectangles() []geom.Rectangle {
	out := make([]geom.Rectangle, len(c.rects))
	copy(out, c.rects)
	return out
}

// CellLen returns the number of rectangles in cell (x, y), or 0 for cells
// outside the grid.
func (c *CollisionIndex) CellLen(x, y int) int {
	if x < 0 || x >= c.resX || y < 0 || y >= c.resY {
		return 0
	}
	bm := c.cells[y*c.resX+x]
	if bm == nil {
		return 0
	}
	return int(bm.GetCardinality())
}

// CellBounds returns the world region of cell (x, y).
func (c *CollisionIndex) CellBounds(x, y int) (geom.Rectangle, error) {
	if x < 0 || x >= c.resX || y < 0 || y >= c.resY {
		return geom.Rectangle{}, fmt.Errorf("%w: cell (%d, %d) outside %dx%d grid", geom.ErrOutOfBounds, x, y, c.resX, c.resY)
	}
	w := c.bounds.Width() / float64(c.resX)
	h := c.bounds.Height() / float64(c.resY)
	return geom.NewRectangle(c.bounds.X()+float64(x)*w, c.bounds.Y()+float64(y)*h, w, h)
}

// Stats summarizes cell occupancy.
type Stats struct {
	Cells         int
	OccupiedCells int
	Entries       int // rectangle references summed over all cells
	MaxCellLen    int
	BitmapBytes   uint64
}

// Stats returns cell occupancy figures.
func (c *CollisionIndex) Stats() Stats {
	s := Stats{Cells: len(c.cells)}
	for _, bm := range c.cells {
		if bm == nil {
			continue
		}
		n := int(bm.GetCardinality())
		s.OccupiedCells++
		s.Entries += n
		s.MaxCellLen = max(s.MaxCellLen, n)
		s.BitmapBytes += bm.GetSizeInBytes()
	}
	return s
}
