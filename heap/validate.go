package heap

import (
	"fmt"
	"io"

	"github.com/bytedance/gopkg/lang/mcache"
	"github.com/vodnokasanie/heapalloc/bufiox"
)

// Validate walks the entire heap in address order and checks these
// structural invariants: contiguity (each block's physical end is the next
// block's offset, up to committed), every header's magic agrees with its
// isFree tag, every free-list member is actually tagged free (and the list
// is not cyclic), and no two free blocks are ever physically adjacent. It
// does not check that every free block is reachable from the free list, nor
// the list's prev links. It logs the first violation found and returns
// false, or returns true (an uninitialized heap is vacuously sound).
func (h *Heap) Validate() bool {
	if h.arenaStart == nil {
		return true
	}

	prevFree := false
	off := uintptr(0)
	for off < h.committed {
		blk := blockAt(h.arenaStart, off)
		if !blk.taggedConsistently() {
			h.cfg.logf("heap: validate: inconsistent tag at offset %d", off)
			return false
		}
		if blk.free() && prevFree {
			h.cfg.logf("heap: validate: adjacent free blocks ending at offset %d", off)
			return false
		}
		prevFree = blk.free()

		next := blockEnd(off, blk)
		if next > h.committed {
			h.cfg.logf("heap: validate: block at offset %d overruns committed heap", off)
			return false
		}
		off = next
	}

	maxBlocks := int(h.committed/(headerSize+minPayload)) + 1
	seen := 0
	for off := h.freeListHead; off != noOffset; {
		blk := blockAt(h.arenaStart, off)
		if !blk.free() {
			h.cfg.logf("heap: validate: free list contains allocated block at offset %d", off)
			return false
		}
		seen++
		if seen > maxBlocks {
			h.cfg.logf("heap: validate: free list appears cyclic")
			return false
		}
		off = blk.next
	}

	return true
}

// Dump writes a human-readable snapshot of the heap's block layout and free
// list to w. Output is assembled through a DefaultWriter (bufiox) so a
// caller writing to, say, a net.Conn gets batched-writev treatment instead
// of a syscall per line, and each line is formatted into an mcache-backed
// scratch buffer rather than a fresh allocation per line.
func (h *Heap) Dump(w io.Writer) error {
	bw := bufiox.NewDefaultWriter(w)
	scratch := mcache.Malloc(0, 256)
	defer mcache.Free(scratch)

	line := func(format string, args ...interface{}) error {
		scratch = fmt.Appendf(scratch[:0], format, args...)
		_, err := bw.WriteBinary(scratch)
		return err
	}

	if h.arenaStart == nil {
		if err := line("heap: uninitialized\n"); err != nil {
			return err
		}
		return bw.Flush()
	}

	if err := line("heap: base=%p committed=%d bytes\n", h.arenaStart, h.committed); err != nil {
		return err
	}

	if err := line("blocks:\n"); err != nil {
		return err
	}
	idx := 0
	for off := uintptr(0); off < h.committed; idx++ {
		blk := blockAt(h.arenaStart, off)
		state := "allocated"
		if blk.free() {
			state = "free"
		}
		if err := line("  [%d] offset=%d size=%d state=%s\n", idx, off, blk.payloadSize, state); err != nil {
			return err
		}
		off = blockEnd(off, blk)
	}

	if err := line("free list:\n"); err != nil {
		return err
	}
	idx = 0
	for off := h.freeListHead; off != noOffset; idx++ {
		blk := blockAt(h.arenaStart, off)
		if err := line("  [%d] offset=%d size=%d\n", idx, off, blk.payloadSize); err != nil {
			return err
		}
		off = blk.next
	}

	return bw.Flush()
}

// Validate checks the default heap's invariants.
func Validate() bool {
	return defaultHeap.Validate()
}

// Dump writes a snapshot of the default heap to w.
func Dump(w io.Writer) error {
	return defaultHeap.Dump(w)
}
