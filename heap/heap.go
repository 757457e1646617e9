package heap

import "unsafe"

// Alloc returns a byte slice of exactly size bytes backed by a freshly
// carved-out or reused block, or nil if size is 0 or the heap could not be
// grown to satisfy the request.
//
// The returned slice's capacity is the block's whole payload, which can
// exceed size; an append past that capacity moves the data to ordinary Go
// memory, which Free rejects as outside the heap. Pass it to Free,
// unmodified in its Data pointer, exactly once when done.
func (h *Heap) Alloc(size int) []byte {
	if size <= 0 {
		return nil
	}

	need := alignUp(uintptr(size), alignment)
	if need < minPayload {
		need = minPayload
	}

	if h.arenaStart == nil {
		if _, err := h.Initialize(h.cfg.InitialSize); err != nil {
			h.cfg.logf("heap: initialize failed: %v", err)
			return nil
		}
	}

	off, ok := h.findFit(need)
	if !ok {
		var err error
		off, err = h.grow(need + headerSize)
		if err != nil {
			h.cfg.logf("heap: grow failed: %v", err)
			return nil
		}
	}

	h.flUnlink(off)
	h.split(off, need)

	blk := blockAt(h.arenaStart, off)
	blk.markAllocated()

	ptr := payloadAt(h.arenaStart, off)
	return unsafe.Slice((*byte)(ptr), int(blk.payloadSize))[:size]
}

// Free returns a block previously obtained from Alloc to the heap,
// coalescing it with any free physical neighbours. A nil or empty slice is
// a silent no-op. A slice whose header tag does not read as
// currently-allocated — a double free, a release of a pointer this heap
// never handed out, or memory corruption — is logged through cfg.Logger and
// otherwise ignored: these are treated as diagnostic, not fatal.
func (h *Heap) Free(block []byte) {
	if len(block) == 0 || h.arenaStart == nil {
		return
	}

	ptr := unsafe.Pointer(unsafe.SliceData(block))
	base := uintptr(h.arenaStart)
	addr := uintptr(ptr)
	if addr < base+headerSize || addr >= base+h.committed {
		h.cfg.logf("heap: free: pointer %p is outside the heap, ignoring", ptr)
		return
	}

	off := addr - base - headerSize
	if off >= h.committed {
		h.cfg.logf("heap: free: pointer %p does not point at a block payload, ignoring", ptr)
		return
	}

	blk := blockAt(h.arenaStart, off)
	if !blk.taggedConsistently() {
		h.cfg.logf("heap: free: corrupted block header at offset %d, ignoring", off)
		return
	}
	if blk.free() {
		h.cfg.logf("heap: free: double free detected at offset %d, ignoring", off)
		return
	}

	blk.markFree()
	h.coalesce(off)
}

// defaultHeap is the process-wide singleton the package-level
// Initialize/Alloc/Free/Validate/Dump functions operate on. Constructing it
// performs no OS interaction; that is deferred to the first Initialize/Alloc
// call.
var defaultHeap = New()

// Initialize installs the default heap's first region, or returns its
// existing base unchanged if already initialized.
func Initialize(initialSize uintptr) (unsafe.Pointer, error) {
	return defaultHeap.Initialize(initialSize)
}

// Alloc allocates size bytes from the default heap.
func Alloc(size int) []byte {
	return defaultHeap.Alloc(size)
}

// Free returns block to the default heap.
func Free(block []byte) {
	defaultHeap.Free(block)
}
