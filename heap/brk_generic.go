//go:build !linux && !darwin

package heap

import "github.com/bytedance/gopkg/lang/dirtmake"

// genericBreakSource is the portable fallback breakSource for platforms
// without the Mmap/Mprotect pair unixBreakSource relies on. It reserves the
// full requested range as one real, physically-backed slice up front rather
// than a PROT_NONE virtual one, so — unlike unixBreakSource — reserve()
// here actually costs reserveSize bytes of memory immediately. commit is
// then a pure bookkeeping no-op: the memory is already there.
//
// dirtmake.Bytes is used instead of make([]byte, n) because every byte of
// this slice is either still unreserved (never read) or about to be
// overwritten by a block header before any allocator code reads it, so
// zeroing it first would be wasted work.
type genericBreakSource struct{}

func newPlatformBreakSource() breakSource {
	return genericBreakSource{}
}

func (genericBreakSource) reserve(reserveSize uintptr) ([]byte, error) {
	return dirtmake.Bytes(int(reserveSize), int(reserveSize)), nil
}

func (genericBreakSource) commit(arena []byte, oldSize, newSize uintptr) error {
	if newSize > uintptr(len(arena)) {
		return ErrBreakFailed
	}
	return nil
}
