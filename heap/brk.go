package heap

// breakSource is an sbrk/brk-style program-break abstraction: an opaque
// capability to reserve a range of address space once and commit a growing
// prefix of it, never relocating bytes already committed. It stands in for
// sbrk/brk: a real brk only ever moves forward over an address range the
// kernel already owns for the process, which is exactly "reserve once,
// commit more" from this package's point of view.
//
// Platform-specific realizations live in brk_unix.go (Linux/Darwin, via
// Mmap+Mprotect) and brk_generic.go (everywhere else, via a single
// preallocated slice). newPlatformBreakSource picks the right one.
type breakSource interface {
	// reserve carves out reserveSize bytes of address space and returns a
	// slice spanning all of it. Only the first committedSize bytes (0
	// initially) are backed by readable/writable memory; touching the rest
	// before committing it is undefined.
	reserve(reserveSize uintptr) ([]byte, error)

	// commit extends the safely-touchable prefix of arena (as returned by
	// reserve) from oldSize to newSize bytes. newSize must not exceed
	// len(arena).
	commit(arena []byte, oldSize, newSize uintptr) error
}
