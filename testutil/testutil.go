package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/quadgrid/geom"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Point returns a new point uniformly distributed inside bounds.
func (r *RNG) Point(bounds geom.Rectangle) geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.point(bounds)
}

func (r *RNG) point(bounds geom.Rectangle) geom.Point {
	return geom.NewPoint(
		bounds.X()+r.rand.Float64()*bounds.Width(),
		bounds.Y()+r.rand.Float64()*bounds.Height(),
	)
}

// Points returns n new points uniformly distributed inside bounds.
// Locks only once per call.
func (r *RNG) Points(n int, bounds geom.Rectangle) []geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]geom.Point, n)
	for i := range points {
		points[i] = r.point(bounds)
	}
	return points
}

// GridPoints returns n new points whose coordinates are integers inside
// bounds, which makes coincident points and split-line hits likely.
func (r *RNG) GridPoints(n int, bounds geom.Rectangle) []geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := max(int(bounds.Width()), 1)
	h := max(int(bounds.Height()), 1)
	points := make([]geom.Point, n)
	for i := range points {
		points[i] = geom.NewPoint(
			bounds.X()+float64(r.rand.Intn(w+1)),
			bounds.Y()+float64(r.rand.Intn(h+1)),
		)
	}
	return points
}

// Rectangle returns a rectangle inside bounds whose sides do not exceed
// maxSize.
func (r *RNG) Rectangle(bounds geom.Rectangle, maxSize float64) geom.Rectangle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rectangle(bounds, maxSize)
}

func (r *RNG) rectangle(bounds geom.Rectangle, maxSize float64) geom.Rectangle {
	w := min(maxSize, bounds.Width()) * (1 - r.rand.Float64()) // (0, maxSize]
	h := min(maxSize, bounds.Height()) * (1 - r.rand.Float64())
	x := bounds.X() + r.rand.Float64()*(bounds.Width()-w)
	y := bounds.Y() + r.rand.Float64()*(bounds.Height()-h)
	return geom.MustRectangle(x, y, w, h)
}

// Rectangles returns n rectangles inside bounds.
func (r *RNG) Rectangles(n int, bounds geom.Rectangle, maxSize float64) []geom.Rectangle {
	r.mu.Lock()
	defer r.mu.Unlock()

	rects := make([]geom.Rectangle, n)
	for i := range rects {
		rects[i] = r.rectangle(bounds, maxSize)
	}
	return rects
}

// Item is a minimal positioned element.
type Item struct {
	Name string
	Pos  geom.Point
}

// Position implements quadtree.Element.
func (i *Item) Position() geom.Point { return i.Pos }

// Items wraps every point in an Item.
func Items(points []geom.Point) []*Item {
	items := make([]*Item, len(points))
	for i, p := range points {
		items[i] = &Item{Pos: p}
	}
	return items
}

// ExactRange returns, in input order, every element whose position lies
// inside area.
func ExactRange[T interface{ Position() geom.Point }](elements []T, area geom.Rectangle) []T {
	var out []T
	for _, e := range elements {
		if area.ContainsPoint(e.Position()) {
			out = append(out, e)
		}
	}
	return out
}

// ExactColliding returns every rectangle in rects that intersects query.
func ExactColliding(rects []geom.Rectangle, query geom.Rectangle) []geom.Rectangle {
	var out []geom.Rectangle
	for _, r := range rects {
		if r.Intersects(query) {
			out = append(out, r)
		}
	}
	return out
}

// ExactCollides reports whether any rectangle in rects intersects query.
func ExactCollides(rects []geom.Rectangle, query geom.Rectangle) bool {
	for _, r := range rects {
		if r.Intersects(query) {
			return true
		}
	}
	return false
}

// IDs returns the position identities of elements.
func IDs[T interface{ Position() geom.Point }](elements []T) []uint64 {
	ids := make([]uint64, len(elements))
	for i, e := range elements {
		ids[i] = e.Position().ID()
	}
	return ids
}
