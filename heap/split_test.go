package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLeavesUsableResidual(t *testing.T) {
	h := newTestHeap(t)
	_, err := h.Initialize(4096)
	require.NoError(t, err)

	h.flUnlink(0)
	blk := blockAt(h.arenaStart, 0)
	blk.payloadSize = 4064

	h.split(0, 64)

	assert.Equal(t, uintptr(64), blk.payloadSize)

	residualOff := headerSize + 64
	residual := blockAt(h.arenaStart, residualOff)
	assert.True(t, residual.free())
	assert.Equal(t, h.freeListHead, residualOff)
	assert.Equal(t, uintptr(4064-64-headerSize), residual.payloadSize)
}

func TestSplitSkippedWhenResidualTooSmall(t *testing.T) {
	h := newTestHeap(t)
	_, err := h.Initialize(4096)
	require.NoError(t, err)

	h.flUnlink(0)
	blk := blockAt(h.arenaStart, 0)
	blk.payloadSize = 64 + headerSize + minPayload - 8 // not quite enough room for a residual

	original := blk.payloadSize
	h.split(0, 64)

	assert.Equal(t, original, blk.payloadSize, "split must leave the block untouched")
}
