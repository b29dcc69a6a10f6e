//go:build !amd64 && !arm64

package volatile

import "unsafe"

// Fallback for architectures without an assembly backend. The noinline
// directive keeps each access behind a call boundary so the compiler
// cannot elide, merge or reorder it. Architectures where a plain
// natural-width access is not a valid device memory transaction need an
// assembly backend like the arm64 one.

// Load8 performs a single 8-bit load from addr.
//
//go:noinline
func Load8(addr unsafe.Pointer) uint8 { return *(*uint8)(addr) }

// Load16 performs a single 16-bit load from addr.
//
//go:noinline
func Load16(addr unsafe.Pointer) uint16 { return *(*uint16)(addr) }

// Load32 performs a single 32-bit load from addr.
//
//go:noinline
func Load32(addr unsafe.Pointer) uint32 { return *(*uint32)(addr) }

// Load64 performs a single 64-bit load from addr.
//
//go:noinline
func Load64(addr unsafe.Pointer) uint64 { return *(*uint64)(addr) }

// Store8 performs a single 8-bit store to addr.
//
//go:noinline
func Store8(addr unsafe.Pointer, v uint8) { *(*uint8)(addr) = v }

// Store16 performs a single 16-bit store to addr.
//
//go:noinline
func Store16(addr unsafe.Pointer, v uint16) { *(*uint16)(addr) = v }

// Store32 performs a single 32-bit store to addr.
//
//go:noinline
func Store32(addr unsafe.Pointer, v uint32) { *(*uint32)(addr) = v }

// Store64 performs a single 64-bit store to addr.
//
//go:noinline
func Store64(addr unsafe.Pointer, v uint64) { *(*uint64)(addr) = v }
