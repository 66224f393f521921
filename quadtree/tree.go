package quadtree

import (
	"fmt"
	"reflect"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/quadgrid/geom"
	"github.com/hupe1980/quadgrid/internal/arena"
	"github.com/hupe1980/quadgrid/internal/conv"
)

// Element is anything the tree can index: it exposes a 2D anchor point.
//
// Elements are stored by value in the tree, so pointer types are stored by
// reference and never copied or modified.
type Element interface {
	Position() geom.Point
}

// Quadrant indexes the children of an internal node.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return fmt.Sprintf("Quadrant(%d)", int(q))
	}
}

// node is either a leaf (children all null) or an internal node with four
// non-null children. start and count delimit the subtree's elements in
// Tree.elems.
type node struct {
	bounds   geom.Rectangle
	children [4]arena.Ref
	start    uint32
	count    uint32
	depth    uint16
	leaf     bool
}

// Tree is a static quadtree over elements of type T.
type Tree[T Element] struct {
	nodes           *arena.Slab[node]
	root            arena.Ref
	elems           []T
	maxLeafElements int
	maxDepth        int
	repeated        bool // some position identity occurs more than once
}

// New builds a tree from elements. Leaves hold at most maxLeafElements
// elements unless the termination rules of the package apply.
//
// Without WithBoundingBox the root region is the smallest rectangle enclosing
// all element positions (see geom.BoundsOfPoints), which requires at least one
// element. New returns an error matching geom.ErrInvalidArgument if elements
// is nil, an element or its position is missing, maxLeafElements is below one,
// or an element lies outside a supplied bounding box.
//
// The elements slice is copied; the caller may reuse it.
func New[T Element](elements []T, maxLeafElements int, optFns ...Option) (*Tree[T], error) {
	if elements == nil {
		return nil, fmt.Errorf("%w: elements is nil", geom.ErrInvalidArgument)
	}
	if maxLeafElements < 1 {
		return nil, &ErrInvalidCapacity{Capacity: maxLeafElements}
	}
	n, err := conv.IntToUint32(len(elements))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", geom.ErrInvalidArgument, err)
	}

	o := applyOptions(optFns)

	positions := make([]geom.Point, len(elements))
	ids := roaring64.New()
	repeated := false
	for i, e := range elements {
		if isMissing(e) {
			return nil, fmt.Errorf("%w: element %d is nil", geom.ErrInvalidArgument, i)
		}
		p := e.Position()
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: element %d has no valid position", geom.ErrInvalidArgument, i)
		}
		positions[i] = p
		if !ids.CheckedAdd(p.ID()) {
			repeated = true
		}
	}

	bounds := o.bounds
	if o.hasBounds {
		if bounds.IsEmpty() {
			return nil, fmt.Errorf("%w: bounding box is empty", geom.ErrInvalidArgument)
		}
		for i, p := range positions {
			if !bounds.ContainsPoint(p) {
				return nil, fmt.Errorf("%w: element %d at (%g, %g) lies outside bounding box %v",
					geom.ErrInvalidArgument, i, p.X(), p.Y(), bounds)
			}
		}
	} else {
		if bounds, err = geom.BoundsOfPoints(positions); err != nil {
			return nil, err
		}
	}

	t := &Tree[T]{
		nodes:           arena.New[node](arena.WithMemoryAcquirer(o.acquirer)),
		elems:           make([]T, len(elements)),
		maxLeafElements: maxLeafElements,
		maxDepth:        o.maxDepth,
		repeated:        repeated,
	}
	copy(t.elems, elements)

	b := builder[T]{
		tree:    t,
		scratch: make([]T, len(elements)),
	}
	root, err := b.build(0, n, bounds, 0)
	if err != nil {
		t.nodes.Free()
		return nil, err
	}
	t.root = root

	return t, nil
}

// isMissing reports whether e is a nil interface or a nil pointer-like value.
func isMissing[T Element](e T) bool {
	v := reflect.ValueOf(e)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

type builder[T Element] struct {
	tree    *Tree[T]
	scratch []T
}

// build creates the node for elems[lo:hi] inside bounds and returns its ref.
func (b *builder[T]) build(lo, hi uint32, bounds geom.Rectangle, depth int) (arena.Ref, error) {
	ref, n, err := b.tree.nodes.Alloc()
	if err != nil {
		return 0, err
	}
	n.bounds = bounds
	n.start = lo
	n.count = hi - lo
	n.depth = uint16(depth)

	if int(hi-lo) <= b.tree.maxLeafElements || depth >= b.tree.maxDepth ||
		!splittable(bounds) || b.coincident(lo, hi) {
		n.leaf = true
		return ref, nil
	}

	quads := bounds.Quadrants()
	offsets := b.partition(lo, hi, quads[TopRight].X(), quads[BottomLeft].Y())

	var children [4]arena.Ref
	for q := range quads {
		child, err := b.build(offsets[q], offsets[q+1], quads[q], depth+1)
		if err != nil {
			return 0, err
		}
		children[q] = child
	}
	// n stays valid across the recursive allocations: slab chunks never move.
	n.children = children

	return ref, nil
}

// partition stably reorders elems[lo:hi] by quadrant and returns the five
// boundaries of the four groups.
func (b *builder[T]) partition(lo, hi uint32, midX, midY float64) [5]uint32 {
	elems := b.tree.elems[lo:hi]

	var counts [4]uint32
	for _, e := range elems {
		counts[quadrantOf(e.Position(), midX, midY)]++
	}

	var offsets [5]uint32
	offsets[0] = lo
	for q := range 4 {
		offsets[q+1] = offsets[q] + counts[q]
	}

	next := [4]uint32{0, counts[0], counts[0] + counts[1], counts[0] + counts[1] + counts[2]}
	scratch := b.scratch[:len(elems)]
	for _, e := range elems {
		q := quadrantOf(e.Position(), midX, midY)
		scratch[next[q]] = e
		next[q]++
	}
	copy(elems, scratch)

	return offsets
}

// quadrantOf applies the half-open boundary rule.
func quadrantOf(p geom.Point, midX, midY float64) Quadrant {
	q := TopLeft
	if p.X() >= midX {
		q |= TopRight
	}
	if p.Y() >= midY {
		q |= BottomLeft
	}
	return q
}

// splittable reports whether halving bounds still yields four non-degenerate
// quadrants.
func splittable(bounds geom.Rectangle) bool {
	midX, midY := bounds.Center()
	return midX > bounds.X() && midX < bounds.MaxX() &&
		midY > bounds.Y() && midY < bounds.MaxY()
}

func (b *builder[T]) coincident(lo, hi uint32) bool {
	if hi-lo < 2 {
		return true
	}
	first := b.tree.elems[lo].Position()
	for _, e := range b.tree.elems[lo+1 : hi] {
		if !e.Position().SameLocation(first) {
			return false
		}
	}
	return true
}

// Len returns the number of indexed elements.
func (t *Tree[T]) Len() int {
	return len(t.elems)
}

// Bounds returns the root region, or the empty rectangle after Close.
func (t *Tree[T]) Bounds() geom.Rectangle {
	n := t.nodes.Get(t.root)
	if n == nil {
		return geom.Rectangle{}
	}
	return n.bounds
}

// MaxLeafElements returns the leaf capacity the tree was built with.
func (t *Tree[T]) MaxLeafElements() int {
	return t.maxLeafElements
}

// Close releases node storage reserved against a MemoryAcquirer. The tree
// must not be queried afterwards.
func (t *Tree[T]) Close() error {
	t.nodes.Free()
	t.root = 0
	t.elems = nil
	return nil
}
