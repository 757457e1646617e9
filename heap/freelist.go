package heap

// flPush inserts the block at offset off at the head of the free list and
// marks it free. Callers must not call flPush on a block already linked
// into the list.
func (h *Heap) flPush(off uintptr) {
	blk := blockAt(h.arenaStart, off)
	blk.markFree()
	blk.prev = noOffset
	blk.next = h.freeListHead

	if h.freeListHead != noOffset {
		head := blockAt(h.arenaStart, h.freeListHead)
		head.prev = off
	}
	h.freeListHead = off
}

// flUnlink removes the block at offset off from the free list without
// touching its tag — callers that are about to hand the block out call
// markAllocated themselves; callers merging it into a neighbour leave the
// tag alone entirely.
func (h *Heap) flUnlink(off uintptr) {
	blk := blockAt(h.arenaStart, off)

	if blk.prev != noOffset {
		blockAt(h.arenaStart, blk.prev).next = blk.next
	} else {
		h.freeListHead = blk.next
	}

	if blk.next != noOffset {
		blockAt(h.arenaStart, blk.next).prev = blk.prev
	}

	blk.next = noOffset
	blk.prev = noOffset
}
