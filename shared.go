package mmio

import "unsafe"

// Shared is a pointer to MMIO registers that may coexist with any number of
// other Shared pointers to the same region, but never with a Unique pointer
// to overlapping memory. It licenses only operations that are safe under
// concurrent holders, which means side-effect-free reads: leaf access goes
// through the [Pure] view and there is no write path at all.
//
// Shared is a plain value; copies are equal exactly when they point to the
// same address.
type Shared[T any] struct {
	regs *T
}

// SharedFromPtr creates a Shared pointer backed by ordinary memory.
// Intended for tests and simulated devices only.
//
// Panics if T is a marker cell whose read has side effects, or if the
// region overlaps a live exclusive region.
func SharedFromPtr[T any](p *T) Shared[T] {
	if !sharedReadable[T]() {
		panic("mmio: register is not side-effect free readable through a Shared pointer")
	}
	register(unsafe.Pointer(p), unsafe.Sizeof(*new(T)), true)
	return Shared[T]{regs: p}
}

// Ptr returns the raw pointer to the registers. Panics if T is a marker
// cell that must not be accessed from shared holders; project to the
// register's [Pure] view instead.
func (p Shared[T]) Ptr() *T {
	if !sharedReadable[T]() {
		panic("mmio: register is not side-effect free readable through a Shared pointer")
	}
	return p.regs
}

// Addr returns the address of the registers.
func (p Shared[T]) Addr() uintptr {
	return uintptr(unsafe.Pointer(p.regs))
}
