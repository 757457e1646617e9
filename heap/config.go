package heap

import (
	"log"
	"os"
)

// Config carries the tunables for a Heap. Construct one with DefaultConfig
// and layer Option values on top.
type Config struct {
	// InitialSize is the size passed to the first Initialize call made by
	// an Alloc that finds no heap yet. Rounded up to a multiple of
	// alignment; substituted with GrowthSize if too small to hold one
	// minimal block.
	InitialSize uintptr

	// GrowthSize is the default minimum amount committed by a single grow
	// step.
	GrowthSize uintptr

	// Logger receives diagnostics for detected misuse and corruption —
	// double frees, bad magic tags, and the like. Defaults to a logger
	// writing to os.Stderr with the standard log package's usual
	// date/time prefix.
	Logger *log.Logger

	// reserveSize bounds how much virtual address space a break source may
	// reserve up front, set through WithReserveSize. The default is 1GiB;
	// a too-small value makes grow() fail long before the heap is actually
	// full.
	reserveSize uintptr

	// breakSource backs Initialize/grow. Overridable only for tests, via
	// withBreakSource; not part of the public Option surface because a real
	// caller has exactly one sane choice, selected per-platform at init
	// time (see brk_unix.go / brk_generic.go).
	breakSource breakSource
}

// Option mutates a Config. Functional options, applied in order.
type Option func(*Config)

// DefaultConfig returns the configuration New starts from before applying
// its options.
func DefaultConfig() *Config {
	return &Config{
		InitialSize: defaultGrowth,
		GrowthSize:  defaultGrowth,
		Logger:      log.New(os.Stderr, "", log.LstdFlags),
		reserveSize: 1 << 30, // 1GiB of reserved virtual address space.
		breakSource: newPlatformBreakSource(),
	}
}

// WithInitialSize sets the size of the first heap region created on demand.
func WithInitialSize(size uintptr) Option {
	return func(c *Config) { c.InitialSize = size }
}

// WithGrowthSize sets the minimum amount committed by each grow step.
func WithGrowthSize(size uintptr) Option {
	return func(c *Config) { c.GrowthSize = size }
}

// WithLogger overrides the diagnostic logger. Passing nil discards
// diagnostics entirely.
func WithLogger(l *log.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithReserveSize overrides how much virtual address space a break source
// reserves up front. Only the generic, slice-backed break source
// (brk_generic.go) actually commits this amount of real memory; the
// mmap-backed source (brk_unix.go) reserves it as PROT_NONE address space,
// which costs no physical memory until grown into.
func WithReserveSize(size uintptr) Option {
	return func(c *Config) { c.reserveSize = size }
}

// withBreakSource overrides the break source. Unexported: real callers get
// the platform default; tests substitute a fake to exercise failure paths
// without touching the OS.
func withBreakSource(b breakSource) Option {
	return func(c *Config) { c.breakSource = b }
}

func (c *Config) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
