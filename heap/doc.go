// Package heap implements a single-mutator, first-fit, boundary-tag-free
// dynamic memory allocator over one contiguous, growable heap region.
//
// Blocks are laid out end-to-end in address order as a header immediately
// followed by a payload. Free blocks additionally sit on a doubly-linked,
// intrusive free list threaded through their own headers; allocation is
// first-fit over that list, oversized blocks are split, and release
// immediately coalesces with physically adjacent free neighbours.
//
// There is no thread safety, no per-size-class pooling, and no explicit
// teardown: a Heap only ever grows, and it grows by committing more of a
// virtual reservation obtained from the OS rather than by moving existing
// bytes, so a payload slice returned by Alloc stays valid until its matching
// Free.
package heap
