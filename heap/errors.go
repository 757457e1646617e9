package heap

import "errors"

// Sentinel errors. Zero-size allocation and nil-pointer release are not
// errors — both are silent no-ops — so there is no ErrZeroSize/ErrNilPointer
// here.
var (
	// ErrBreakFailed is returned when the OS break source could not reserve
	// or commit the requested range.
	ErrBreakFailed = errors.New("heap: OS break extension failed")

	// ErrMisalignedBase is returned by Initialize if the base address handed
	// back by the break source is not alignment-aligned.
	ErrMisalignedBase = errors.New("heap: break source returned a misaligned base address")

	// ErrInvalidConfig is returned by Initialize when the Heap's Config is
	// unusable — a nil break source or a zero GrowthSize.
	ErrInvalidConfig = errors.New("heap: invalid configuration")
)
