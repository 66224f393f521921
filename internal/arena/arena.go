package arena

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"unsafe"
)

var (
	// ErrMaxChunksExceeded is returned when the slab runs out of addressable refs.
	ErrMaxChunksExceeded = errors.New("arena: max chunks exceeded")
	// ErrMemoryLimit is returned when the MemoryAcquirer refuses a chunk.
	ErrMemoryLimit = errors.New("arena: memory limit exceeded")
)

const (
	// DefaultChunkSize is the default number of values per chunk.
	DefaultChunkSize = 1024
)

// MemoryAcquirer reserves and releases memory on behalf of the slab.
type MemoryAcquirer interface {
	TryAcquireMemory(bytes int64) bool
	ReleaseMemory(bytes int64)
}

// Ref addresses a value in a Slab. The zero Ref is null.
type Ref uint32

// IsNull reports whether r is the null reference.
func (r Ref) IsNull() bool { return r == 0 }

// Stats tracks slab usage.
type Stats struct {
	Chunks        int
	Values        int   // allocated values, excluding the reserved null slot
	BytesReserved int64 // chunk memory, including unused slots
}

// Slab is a chunked allocator for values of type T.
type Slab[T any] struct {
	chunkBits uint
	chunkMask uint32
	maxChunks int
	chunks    [][]T
	next      uint32
	acquirer  MemoryAcquirer
	reserved  int64
}

// Option configures a Slab.
type Option func(*options)

type options struct {
	chunkSize int
	acquirer  MemoryAcquirer
}

// WithChunkSize sets the number of values per chunk. It is rounded up to the
// next power of two.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithMemoryAcquirer accounts chunk memory against acq.
func WithMemoryAcquirer(acq MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = acq
	}
}

// New creates an empty slab.
func New[T any](optFns ...Option) *Slab[T] {
	o := options{chunkSize: DefaultChunkSize}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	chunkBits := uint(bits.Len(uint(o.chunkSize - 1)))
	if chunkBits > 31 {
		chunkBits = 31
	}

	return &Slab[T]{
		chunkBits: chunkBits,
		chunkMask: uint32(1)<<chunkBits - 1,
		maxChunks: int((uint64(math.MaxUint32) + 1) >> chunkBits),
		acquirer:  o.acquirer,
		next:      1, // reserve Ref 0 as null
	}
}

// Alloc returns a reference to a new zero value and a pointer to it. The
// pointer stays valid for the lifetime of the slab.
func (s *Slab[T]) Alloc() (Ref, *T, error) {
	if s.next == math.MaxUint32 {
		return 0, nil, ErrMaxChunksExceeded
	}

	ci := int(s.next >> s.chunkBits)
	if ci >= len(s.chunks) {
		if err := s.grow(); err != nil {
			return 0, nil, err
		}
	}

	ref := Ref(s.next)
	s.next++
	return ref, &s.chunks[ci][uint32(ref)&s.chunkMask], nil
}

func (s *Slab[T]) grow() error {
	if len(s.chunks) >= s.maxChunks {
		return ErrMaxChunksExceeded
	}

	size := 1 << s.chunkBits
	var zero T
	bytes := int64(size) * int64(unsafe.Sizeof(zero))
	if s.acquirer != nil && !s.acquirer.TryAcquireMemory(bytes) {
		return fmt.Errorf("%w: chunk of %d bytes", ErrMemoryLimit, bytes)
	}
	s.reserved += bytes
	s.chunks = append(s.chunks, make([]T, size))
	return nil
}

// Get returns the value at ref, or nil for the null ref and refs that were
// never allocated.
func (s *Slab[T]) Get(ref Ref) *T {
	if ref == 0 || uint32(ref) >= s.next {
		return nil
	}
	return &s.chunks[uint32(ref)>>s.chunkBits][uint32(ref)&s.chunkMask]
}

// Len returns the number of allocated values.
func (s *Slab[T]) Len() int {
	return int(s.next) - 1
}

// Stats returns a snapshot of slab usage.
func (s *Slab[T]) Stats() Stats {
	return Stats{
		Chunks:        len(s.chunks),
		Values:        s.Len(),
		BytesReserved: s.reserved,
	}
}

// Free drops every chunk and returns reserved memory to the acquirer. The
// slab must not be used afterwards.
func (s *Slab[T]) Free() {
	if s.acquirer != nil && s.reserved > 0 {
		s.acquirer.ReleaseMemory(s.reserved)
	}
	s.reserved = 0
	s.chunks = nil
	s.next = 1
}
