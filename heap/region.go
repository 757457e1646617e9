package heap

import "unsafe"

// Heap is an explicit allocator handle over one contiguous, growable
// region: arenaStart/committed track where that region currently lives and
// how much of it is backed by real memory, and freeListHead threads the
// doubly-linked list of free blocks. Package-level Initialize/Alloc/
// Free/Validate/Dump wrap a default Heap, whose region is set up on first
// use, for callers happy with one shared instance.
//
// A Heap is not safe for concurrent use: the caller must serialize
// Alloc/Free/Validate/Dump calls against each other and against Initialize.
type Heap struct {
	cfg *Config

	arena      []byte         // full reservation; only [:committed] is touchable
	arenaStart unsafe.Pointer // cached &arena[0]; nil until Initialize succeeds
	committed  uintptr        // heap_end - heap_start
	freeListHead uintptr      // offset of the free-list head, or noOffset
}

// New constructs a Heap. It performs no OS interaction until the first
// Alloc or explicit Initialize call, so an invalid Config (see
// ErrInvalidConfig) is only reported once one of those is attempted.
func New(opts ...Option) *Heap {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Heap{cfg: cfg, freeListHead: noOffset}
}

// Initialize installs the heap's first region. If the heap is already
// initialized it returns the existing base unchanged. It fails with
// ErrInvalidConfig if the Heap's Config is unusable — a nil break source
// (only reachable through the unexported withBreakSource) or a zero
// GrowthSize (for example from WithGrowthSize(0)).
func (h *Heap) Initialize(initialSize uintptr) (unsafe.Pointer, error) {
	if h.arenaStart != nil {
		return h.arenaStart, nil
	}
	if h.cfg.breakSource == nil || h.cfg.GrowthSize == 0 {
		return nil, ErrInvalidConfig
	}

	if initialSize < headerSize+minPayload {
		initialSize = h.cfg.GrowthSize
	}
	initialSize = alignUp(initialSize, alignment)

	reserveSize := h.cfg.reserveSize
	if reserveSize < initialSize {
		reserveSize = initialSize
	}

	arena, err := h.cfg.breakSource.reserve(reserveSize)
	if err != nil {
		return nil, err
	}
	if err := h.cfg.breakSource.commit(arena, 0, initialSize); err != nil {
		return nil, err
	}

	base := unsafe.Pointer(&arena[0])
	if uintptr(base)%alignment != 0 {
		return nil, ErrMisalignedBase
	}

	h.arena = arena
	h.arenaStart = base
	h.committed = initialSize
	h.freeListHead = noOffset

	root := blockAt(base, 0)
	root.payloadSize = initialSize - headerSize
	h.flPush(0)

	return base, nil
}

// grow extends the committed region by needBytes rounded up to alignment,
// or by cfg.GrowthSize if that is larger, and returns the offset of a free block
// covering (at least) the new space — either a freshly pushed block, or an
// existing trailing free block whose payloadSize absorbed the growth.
func (h *Heap) grow(needBytes uintptr) (uintptr, error) {
	expand := alignUp(needBytes, alignment)
	if expand < h.cfg.GrowthSize {
		expand = h.cfg.GrowthSize
	}

	oldEnd := h.committed
	newEnd := oldEnd + expand
	if newEnd > uintptr(len(h.arena)) {
		return noOffset, ErrBreakFailed
	}
	if err := h.cfg.breakSource.commit(h.arena, oldEnd, newEnd); err != nil {
		return noOffset, err
	}
	h.committed = newEnd

	if lastOff, lastBlk := h.lastBlockEndingAt(oldEnd); lastBlk != nil && lastBlk.free() {
		lastBlk.payloadSize += expand
		return lastOff, nil
	}

	blk := blockAt(h.arenaStart, oldEnd)
	blk.payloadSize = expand - headerSize
	h.flPush(oldEnd)

	return oldEnd, nil
}

// lastBlockEndingAt walks the heap in address order from heapStart and
// returns the offset and header of the block whose physical end is exactly
// end, or (0, nil) if none (an empty heap, or end == 0). Used both to find
// grow's trailing block and, in coalesce.go, a block's physical
// predecessor, via the same address-order walk.
func (h *Heap) lastBlockEndingAt(end uintptr) (uintptr, *blockHeader) {
	if end == 0 || h.arenaStart == nil {
		return 0, nil
	}

	off := uintptr(0)
	var blk *blockHeader
	for off < end {
		blk = blockAt(h.arenaStart, off)
		next := blockEnd(off, blk)
		if next >= end {
			break
		}
		off = next
	}

	return off, blk
}
