package mmio

import (
	"fmt"
	"unsafe"

	"github.com/devmmio/mmio/debug"
)

// Projection narrows a pointer to a struct field or array element by pure
// address arithmetic on the parent's raw pointer. No native reference to
// the member is ever formed. The offset is computed by the caller from the
// register layout struct, typically with unsafe.Offsetof:
//
//	dr := mmio.Field[mmio.ReadWrite[uint32]](uart, unsafe.Offsetof(regs{}.dr))
//
// The child inherits the parent's ownership class and revocation state.

// Field returns a Unique pointer to the member of type U at byte offset off
// inside the parent's region. Panics if the member would exceed the
// parent's bounds; the caller is responsible for off actually naming a
// member of type U, which cannot be checked.
func Field[U any, T any](p Unique[T], off uintptr) Unique[U] {
	p.ctl.mustLive()
	checkBounds[U, T](off, 1)
	regs := (*U)(unsafe.Add(unsafe.Pointer(p.regs), off))
	return Unique[U]{regs: regs, ctl: p.ctl}
}

// SharedField is the [Field] equivalent for Shared pointers. The member
// type U must be safe for shared holders: an aggregate, or a cell whose
// read is side-effect free. For [ReadPure] and [ReadPureWrite] fields,
// project to their [Pure] view.
func SharedField[U any, T any](p Shared[T], off uintptr) Shared[U] {
	checkBounds[U, T](off, 1)
	if !sharedReadable[U]() {
		panic("mmio: register is not side-effect free readable through a Shared pointer")
	}
	regs := (*U)(unsafe.Add(unsafe.Pointer(p.regs), off))
	return Shared[U]{regs: regs}
}

// SliceField returns a Unique sequence pointer to n consecutive members of
// type U starting at byte offset off inside the parent's region. Used to
// project array fields of the register layout. Panics if the sequence would
// exceed the parent's bounds.
func SliceField[U any, T any](p Unique[T], off uintptr, n int) UniqueSlice[U] {
	p.ctl.mustLive()
	checkBounds[U, T](off, n)
	regs := (*U)(unsafe.Add(unsafe.Pointer(p.regs), off))
	return UniqueSlice[U]{regs: regs, n: n, ctl: p.ctl}
}

// SharedSliceField is the [SliceField] equivalent for Shared pointers.
func SharedSliceField[U any, T any](p Shared[T], off uintptr, n int) SharedSlice[U] {
	checkBounds[U, T](off, n)
	if !sharedReadable[U]() {
		panic("mmio: register is not side-effect free readable through a Shared pointer")
	}
	regs := (*U)(unsafe.Add(unsafe.Pointer(p.regs), off))
	return SharedSlice[U]{regs: regs, n: n}
}

func checkBounds[U any, T any](off uintptr, n int) {
	size := unsafe.Sizeof(*new(U)) * uintptr(n)
	if n < 0 || off+size > unsafe.Sizeof(*new(T)) {
		panic(fmt.Sprintf("mmio: projection [%#x, %#x) exceeds parent size %#x",
			off, off+size, unsafe.Sizeof(*new(T))))
	}
	debug.Assert(off%unsafe.Alignof(*new(U)) == 0, "misaligned projection")
}
