package quadtree

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/internal/arena"
	"github.com/hupe1980/quadgrid/internal/pool"
)

// RangeQuery appends every element whose position lies inside area (edges
// included) to dst and returns the extended slice.
//
// dst is never cleared: repeated calls accumulate. An element is appended only
// if no entry with the same position identity is already present, so elements
// indexed more than once are returned once. Subtrees whose bounds do not
// intersect area are skipped.
func (t *Tree[T]) RangeQuery(dst []T, area geom.Rectangle) []T {
	q := rangeQuery[T]{tree: t, area: area, dst: dst}
	if len(dst) > 0 || t.repeated {
		q.seen = pool.GetSeen()
		defer pool.PutSeen(q.seen)
		for _, e := range dst {
			if !isMissing(e) {
				q.seen.Add(e.Position().ID())
			}
		}
	}
	q.visit(t.root)
	return q.dst
}

// Count returns the number of distinct elements inside area, the length
// RangeQuery(nil, area) would have. Unless an element was indexed more than
// once, the elements are not materialized.
func (t *Tree[T]) Count(area geom.Rectangle) int {
	if t.repeated {
		return len(t.RangeQuery(nil, area))
	}
	return t.count(t.root, area)
}

func (t *Tree[T]) count(ref arena.Ref, area geom.Rectangle) int {
	n := t.nodes.Get(ref)
	if n == nil || n.count == 0 || !n.bounds.Intersects(area) {
		return 0
	}
	if area.Contains(n.bounds) {
		return int(n.count)
	}
	if n.leaf {
		c := 0
		for _, e := range t.elems[n.start : n.start+n.count] {
			if area.ContainsPoint(e.Position()) {
				c++
			}
		}
		return c
	}
	c := 0
	for _, child := range n.children {
		c += t.count(child, area)
	}
	return c
}

type rangeQuery[T Element] struct {
	tree *Tree[T]
	area geom.Rectangle
	dst  []T
	seen *roaring64.Bitmap // positions in dst; nil if dst started empty and no position repeats
}

func (q *rangeQuery[T]) visit(ref arena.Ref) {
	n := q.tree.nodes.Get(ref)
	if n == nil || n.count == 0 || !n.bounds.Intersects(q.area) {
		return
	}

	elems := q.tree.elems[n.start : n.start+n.count]
	if q.area.Contains(n.bounds) {
		for _, e := range elems {
			q.add(e)
		}
		return
	}

	if n.leaf {
		for _, e := range elems {
			if q.area.ContainsPoint(e.Position()) {
				q.add(e)
			}
		}
		return
	}

	for _, child := range n.children {
		q.visit(child)
	}
}

func (q *rangeQuery[T]) add(e T) {
	if q.seen != nil && !q.seen.CheckedAdd(e.Position().ID()) {
		return
	}
	q.dst = append(q.dst, e)
}
