package heap

import "unsafe"

// Layout constants shared by every block.
const (
	// alignment is the byte boundary every payload size and payload address
	// must satisfy.
	alignment = 8

	// minPayload is the smallest payload size an allocated or non-residual
	// free block may carry.
	minPayload = 16

	// defaultGrowth is the default for Config.InitialSize and
	// Config.GrowthSize, the latter being the minimum number of bytes
	// committed by a single grow step, amortizing the cost of extending the
	// break.
	defaultGrowth = 4096
)

// Magic tags. Two distinct 32-bit sentinels double as a probabilistic
// corruption / double-free detector: a block's magic must always agree with
// its isFree flag.
const (
	freeMagic  uint32 = 0xDEADBEEF
	allocMagic uint32 = 0xFEEDFACE
)

// noOffset marks the absence of a link (free-list head/tail, or "not yet
// linked") the way a nil pointer would in a pointer-based list. It can never
// collide with a real offset: no reservation is ever that large.
const noOffset = ^uintptr(0)

// blockHeader is the fixed-size record prepended to every payload. Its
// layout is internal to this package; nothing outside relies on field
// order or size.
type blockHeader struct {
	payloadSize uintptr
	next        uintptr // offset of the next free block, or noOffset
	prev        uintptr // offset of the previous free block, or noOffset
	isFree      uint32
	magic       uint32
}

// headerSize is the fixed size of a blockHeader. On a 64-bit target it is
// 32 bytes: three uintptr-sized fields plus two uint32-sized ones, which is
// already a multiple of alignment, so payload addresses inherit 8-byte
// alignment from an 8-byte-aligned arena start without any further padding.
const headerSize = unsafe.Sizeof(blockHeader{})

// alignUp rounds n up to the next multiple of a, which must be a power of
// two. Used for both requested payload sizes and growth amounts.
func alignUp(n, a uintptr) uintptr {
	return (n + a - 1) &^ (a - 1)
}

// blockAt returns the header at byte offset off into the arena starting at
// base. Callers are responsible for off being a valid block boundary.
func blockAt(base unsafe.Pointer, off uintptr) *blockHeader {
	return (*blockHeader)(unsafe.Add(base, off))
}

// payloadAt returns a pointer to the payload bytes immediately following
// the header at offset off.
func payloadAt(base unsafe.Pointer, off uintptr) unsafe.Pointer {
	return unsafe.Add(base, off+headerSize)
}

// markFree sets a block's free-side tag. It does not touch the free-list
// links; see freelist.go for that.
func (b *blockHeader) markFree() {
	b.isFree = 1
	b.magic = freeMagic
}

// markAllocated sets a block's allocated-side tag.
func (b *blockHeader) markAllocated() {
	b.isFree = 0
	b.magic = allocMagic
}

// free reports whether the block currently carries the free tag.
func (b *blockHeader) free() bool {
	return b.isFree != 0
}

// taggedConsistently reports whether magic agrees with isFree.
func (b *blockHeader) taggedConsistently() bool {
	if b.isFree != 0 {
		return b.magic == freeMagic
	}
	return b.magic == allocMagic
}

// blockEnd returns the offset immediately following the block h at off, i.e. the offset
// of its physical successor in address order.
func blockEnd(off uintptr, h *blockHeader) uintptr {
	return off + headerSize + h.payloadSize
}
