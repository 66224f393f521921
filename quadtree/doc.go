// Package quadtree implements a static point quadtree over a generic set of
// positioned elements.
//
// The tree is built once from a fixed element list and answers axis-aligned
// range queries afterwards. Leaves hold at most MaxLeafElements elements;
// internal nodes always have exactly four children (top-left, top-right,
// bottom-left, bottom-right), some of which may be empty leaves.
//
// # Boundary Rule
//
// Quadrants share their split lines. An element lying exactly on a split line
// is assigned by the half-open rule: it belongs to the left half iff x < midX
// and to the top half iff y < midY. Every element therefore ends up in exactly
// one child.
//
// # Termination
//
// A node whose elements all share the same coordinates, or whose bounds can no
// longer be halved in floating point, becomes a leaf even if it exceeds the
// leaf capacity. Recursion is also capped by the maximum depth (see
// WithMaxDepth).
//
// # Storage
//
// Nodes are allocated from a slab and reference their children by 32-bit
// refs. Elements are kept in one backing slice partitioned so that every
// subtree covers a contiguous range, which lets a query copy a fully covered
// subtree without testing each element.
//
// # Concurrency
//
// A Tree is immutable after New returns and is safe for concurrent queries.
package quadtree
