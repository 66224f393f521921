package quadtree

import (
	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/internal/arena"
)

// NodeInfo describes a node passed to a WalkFunc.
type NodeInfo[T Element] struct {
	Bounds   geom.Rectangle
	Depth    int
	Leaf     bool
	Elements []T // leaf elements; nil for internal nodes. Must not be modified.
}

// WalkFunc is called for every node in depth-first order, children in
// quadrant order. Returning false skips the node's children.
type WalkFunc[T Element] func(info NodeInfo[T]) bool

// Walk visits the tree depth-first starting at the root.
func (t *Tree[T]) Walk(fn WalkFunc[T]) {
	t.walk(t.root, fn)
}

func (t *Tree[T]) walk(ref arena.Ref, fn WalkFunc[T]) {
	n := t.nodes.Get(ref)
	if n == nil {
		return
	}

	info := NodeInfo[T]{
		Bounds: n.bounds,
		Depth:  int(n.depth),
		Leaf:   n.leaf,
	}
	if n.leaf {
		info.Elements = t.elems[n.start : n.start+n.count : n.start+n.count]
	}
	if !fn(info) || n.leaf {
		return
	}
	for _, child := range n.children {
		t.walk(child, fn)
	}
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes           int
	Leaves          int
	EmptyLeaves     int
	OversizedLeaves int // leaves above capacity due to coincident points or the depth cap
	Depth           int
	Elements        int
	BytesReserved   int64
}

// Stats walks the tree and returns its shape.
func (t *Tree[T]) Stats() Stats {
	s := Stats{
		Elements:      len(t.elems),
		BytesReserved: t.nodes.Stats().BytesReserved,
	}
	t.Walk(func(info NodeInfo[T]) bool {
		s.Nodes++
		s.Depth = max(s.Depth, info.Depth)
		if info.Leaf {
			s.Leaves++
			switch {
			case len(info.Elements) == 0:
				s.EmptyLeaves++
			case len(info.Elements) > t.maxLeafElements:
				s.OversizedLeaves++
			}
		}
		return true
	})
	return s
}

// Equal reports whether t and o have the same shape and hold the same
// elements, compared by position identity, in the same leaves and order.
func (t *Tree[T]) Equal(o *Tree[T]) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	return t.equalNode(t.root, o, o.root)
}

func (t *Tree[T]) equalNode(ref arena.Ref, o *Tree[T], oref arena.Ref) bool {
	a, b := t.nodes.Get(ref), o.nodes.Get(oref)
	if a == nil || b == nil {
		return a == b
	}
	if a.leaf != b.leaf || a.count != b.count {
		return false
	}
	if a.leaf {
		ae := t.elems[a.start : a.start+a.count]
		be := o.elems[b.start : b.start+b.count]
		for i := range ae {
			if !ae[i].Position().Equal(be[i].Position()) {
				return false
			}
		}
		return true
	}
	for q := range a.children {
		if !t.equalNode(a.children[q], o, b.children[q]) {
			return false
		}
	}
	return true
}
