// Package pool provides object pools for low-allocation query operations.
// Uses sync.Pool for automatic memory reuse of per-query scratch state.
package pool

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// DefaultCellCapacity is the initial capacity of pooled cell slices.
const DefaultCellCapacity = 64

// maxPooledCells bounds the capacity of slices returned to the pool so a single
// huge query does not pin memory.
const maxPooledCells = DefaultCellCapacity * 64

var seenPool = sync.Pool{
	New: func() any {
		return roaring64.New()
	},
}

var cellPool = sync.Pool{
	New: func() any {
		s := make([]*roaring.Bitmap, 0, DefaultCellCapacity)
		return &s
	},
}

// GetSeen retrieves an empty identity set from the pool.
func GetSeen() *roaring64.Bitmap {
	bm := seenPool.Get().(*roaring64.Bitmap)
	bm.Clear()
	return bm
}

// PutSeen returns an identity set to the pool for reuse.
func PutSeen(bm *roaring64.Bitmap) {
	if bm == nil {
		return
	}
	seenPool.Put(bm)
}

// GetCells retrieves an empty cell slice from the pool.
func GetCells() *[]*roaring.Bitmap {
	s := cellPool.Get().(*[]*roaring.Bitmap)
	*s = (*s)[:0]
	return s
}

// PutCells returns a cell slice to the pool. References to the bitmaps are
// dropped.
func PutCells(s *[]*roaring.Bitmap) {
	if s == nil || cap(*s) > maxPooledCells {
		return
	}
	clear((*s)[:cap(*s)])
	*s = (*s)[:0]
	cellPool.Put(s)
}
