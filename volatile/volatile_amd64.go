//go:build amd64

package volatile

import "unsafe"

// Load8 performs a single 8-bit load from addr.
func Load8(addr unsafe.Pointer) uint8

// Load16 performs a single 16-bit load from addr.
func Load16(addr unsafe.Pointer) uint16

// Load32 performs a single 32-bit load from addr.
func Load32(addr unsafe.Pointer) uint32

// Load64 performs a single 64-bit load from addr.
func Load64(addr unsafe.Pointer) uint64

// Store8 performs a single 8-bit store to addr.
func Store8(addr unsafe.Pointer, v uint8)

// Store16 performs a single 16-bit store to addr.
func Store16(addr unsafe.Pointer, v uint16)

// Store32 performs a single 32-bit store to addr.
func Store32(addr unsafe.Pointer, v uint32)

// Store64 performs a single 64-bit store to addr.
func Store64(addr unsafe.Pointer, v uint64)
