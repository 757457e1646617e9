package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeListPushAndUnlink(t *testing.T) {
	h := newTestHeap(t)
	_, err := h.Initialize(4096)
	require.NoError(t, err)

	// Initialize already pushed one block at offset 0; unlink it and carve
	// it into two free blocks by hand to exercise multi-element list
	// operations.
	root := blockAt(h.arenaStart, 0)
	h.flUnlink(0)
	root.payloadSize = 200

	offA := uintptr(0)
	offB := headerSize + 200
	blockAt(h.arenaStart, offB).payloadSize = 64

	h.flPush(offA)
	h.flPush(offB)

	// head should be the most recently pushed.
	assert.Equal(t, offB, h.freeListHead)
	assert.True(t, blockAt(h.arenaStart, offA).free())
	assert.True(t, blockAt(h.arenaStart, offB).free())

	h.flUnlink(offB)
	assert.Equal(t, offA, h.freeListHead)
	assert.Equal(t, noOffset, blockAt(h.arenaStart, offA).prev)

	h.flUnlink(offA)
	assert.Equal(t, noOffset, h.freeListHead)
}

func TestFindFitFirstFit(t *testing.T) {
	h := newTestHeap(t)
	_, err := h.Initialize(4096)
	require.NoError(t, err)

	root := blockAt(h.arenaStart, 0)
	h.flUnlink(0)
	root.payloadSize = 4064

	smallOff := uintptr(0)
	root.payloadSize = 32
	bigOff := headerSize + 32
	blockAt(h.arenaStart, bigOff).payloadSize = 4000

	h.flPush(bigOff)
	h.flPush(smallOff) // head is now the small block

	off, ok := h.findFit(16)
	require.True(t, ok)
	assert.Equal(t, smallOff, off, "first-fit should return the head-most adequate block")

	off, ok = h.findFit(100)
	require.True(t, ok)
	assert.Equal(t, bigOff, off, "too-small head block must be skipped")

	_, ok = h.findFit(1 << 20)
	assert.False(t, ok)
}
