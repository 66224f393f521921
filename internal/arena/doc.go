// Package arena provides a typed slab allocator for index nodes.
//
// Values live in fixed-size chunks and are addressed by 32-bit references
// instead of pointers. Reference 0 is reserved as null, so a zero Ref can be
// used as "no child" in node structs.
//
// # Concurrency Model
//
// Alloc is not safe for concurrent use. Once construction is finished, Get may
// be called from any number of goroutines.
//
// # Memory Accounting
//
// When a MemoryAcquirer is configured, every new chunk is reserved against it
// before allocation and Free returns the reservation.
package arena
