package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalesceForwardAndBackward(t *testing.T) {
	h := newTestHeap(t)
	_, err := h.Initialize(4096)
	require.NoError(t, err)

	// Carve the single root block into three fixed-size blocks: A, B, C,
	// followed by whatever free space Initialize left at the tail.
	h.flUnlink(0)
	a := blockAt(h.arenaStart, 0)
	a.payloadSize = 64
	a.markAllocated()

	offB := headerSize + 64
	b := blockAt(h.arenaStart, offB)
	b.payloadSize = 64
	b.markAllocated()

	offC := offB + headerSize + 64
	c := blockAt(h.arenaStart, offC)
	c.payloadSize = 64
	c.markAllocated()

	offTail := offC + headerSize + 64
	tail := blockAt(h.arenaStart, offTail)
	tailSize := h.committed - offTail - headerSize
	tail.payloadSize = tailSize
	h.flPush(offTail)

	// Free B: neither physical neighbour (A, C) is free yet, so B just
	// joins the free list on its own.
	b.markFree()
	h.coalesce(offB)
	assert.True(t, blockAt(h.arenaStart, offB).free())
	assert.Equal(t, offB, h.freeListHead)

	// Free C: forward neighbour is the trailing free region (merges into
	// C), backward neighbour is B, already free (merges C into B). The
	// surviving block lives at offB.
	c.markFree()
	h.coalesce(offC)
	mergedB := blockAt(h.arenaStart, offB)
	assert.True(t, mergedB.free())
	assert.Equal(t, uintptr(64)+headerSize+64+headerSize+tailSize, mergedB.payloadSize)
	assert.Equal(t, offB, h.freeListHead)

	// Free A: its only physical neighbour is B, now merged with C and the
	// tail; one coalesce call folds everything into a single free block
	// spanning the whole committed heap.
	a.markFree()
	h.coalesce(0)
	mergedA := blockAt(h.arenaStart, 0)
	assert.True(t, mergedA.free())
	assert.Equal(t, h.committed-headerSize, mergedA.payloadSize)
	assert.True(t, h.Validate())
}
