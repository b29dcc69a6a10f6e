// Package mmio provides typed, ownership-checked pointers to memory-mapped
// device registers.
//
// Device registers must be accessed with exact bus transaction widths and
// without the compiler merging, reordering or eliding accesses. Plain Go
// pointer dereference guarantees none of that. This package never forms an
// ordinary access to device memory: it only does address arithmetic on raw
// pointers and hands the final address to the volatile backend package,
// which issues exactly one correctly-sized transaction per Load or Store.
//
// Access is organized around two handle types. A [Unique] pointer is the
// only live handle to its region and licenses all operations its register's
// capability marker allows. A [Shared] pointer may coexist with any number
// of other Shared pointers and licenses only side-effect-free reads. Which
// operations a register supports is declared in the device's register
// layout struct using the marker cell types ([ReadOnly], [WriteOnly],
// [ReadWrite], [ReadPure], [ReadPureWrite]).
//
// Go has no borrow checker, so the aliasing rules are enforced at runtime
// instead of compile time: handle construction registers the region and
// panics when a second exclusive handle over overlapping memory is issued,
// and consuming operations (Downgrade, Release) revoke the handle so stale
// use fails fast. These panics always signal a caller bug, never a
// recoverable condition.
package mmio

import (
	"sync/atomic"
	"unsafe"

	"github.com/devmmio/mmio/debug"
)

// Width is the set of types a register cell can hold. Each corresponds to
// one supported bus transaction width.
type Width interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// ctl is shared between a handle, all its copies and all handles projected
// from it. Revoking it invalidates the whole family at once.
type ctl struct {
	revoked atomic.Bool
	region  *region
}

func (c *ctl) mustLive() {
	if c.revoked.Load() {
		panic("mmio: use of revoked pointer")
	}
}

// Unique is an exclusive pointer to the registers of some MMIO device. It
// owns no memory; it is a capability token proving that the address is
// valid device memory and that no other live handle aliases it.
//
// A Unique pointer may be sent to another goroutine. Go cannot prevent
// copying the value itself, so all copies and all children projected from
// it share one revocation state: consuming any copy via [Unique.Downgrade]
// or [Unique.Release] invalidates every other copy and child.
type Unique[T any] struct {
	regs *T
	ctl  *ctl
}

// New creates a Unique pointer over the registers at addr.
//
// The caller must guarantee that addr is properly aligned for T, points to
// real device memory mapped for volatile read/write from any goroutine, and
// stays mapped until the handle is released. Aliasing against other live
// handles is checked at issuance: New panics if the region overlaps one.
// Everything else is the caller's contract; violations are undefined
// behavior.
func New[T any](addr unsafe.Pointer) Unique[T] {
	debug.Assert(uintptr(addr)%unsafe.Alignof(*new(T)) == 0, "misaligned register block")
	r := register(addr, unsafe.Sizeof(*new(T)), false)
	return Unique[T]{regs: (*T)(addr), ctl: &ctl{region: r}}
}

// FromPtr creates a Unique pointer backed by ordinary memory. Intended for
// tests and simulated devices only; real MMIO address space must never be
// reachable through a native Go pointer.
func FromPtr[T any](p *T) Unique[T] {
	return New[T](unsafe.Pointer(p))
}

// Ptr returns the raw pointer to the registers. The library itself never
// dereferences it outside the volatile backend, and neither should the
// caller.
func (p Unique[T]) Ptr() *T {
	p.ctl.mustLive()
	return p.regs
}

// Addr returns the address of the registers.
func (p Unique[T]) Addr() uintptr {
	return uintptr(unsafe.Pointer(p.regs))
}

// Downgrade consumes the Unique pointer and returns a Shared pointer to the
// same region. The Unique pointer, all copies of it and all children
// projected from it are revoked; the region permanently admits shared
// handles afterwards.
func (p Unique[T]) Downgrade() Shared[T] {
	p.ctl.mustLive()
	p.ctl.revoked.Store(true)
	if p.ctl.region != nil {
		share(p.ctl.region)
	}
	return Shared[T]{regs: p.regs}
}

// Release consumes the Unique pointer and unregisters its region, allowing
// a new handle to be issued over the same memory. All copies and children
// are revoked.
//
// Unlike every other operation, Release may be called on an already
// consumed handle: cleanup paths (unmapping the region) must work no matter
// whether the caller downgraded the pointer first. It then only ends the
// region's registration, including any sharing a Downgrade produced.
func (p Unique[T]) Release() {
	p.ctl.revoked.Store(true)
	if p.ctl.region != nil {
		unregister(p.ctl.region)
	}
}
