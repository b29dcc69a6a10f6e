package mmio

import "unsafe"

// PhysicalInstance holds the physical base address of the register block of
// a device with layout T. It is the hand-off token between whatever
// enumerates physical devices and whatever maps them into virtual memory;
// the mapper consumes it and constructs the first [Unique] pointer over the
// mapped range, transferring the capability into the pointer model.
//
// At most one PhysicalInstance per physical device may exist in the
// process. Physical address space is global, so this cannot be checked by
// the type system; it is a documented invariant the creator must uphold.
type PhysicalInstance[T any] struct {
	pa uintptr
}

// NewPhysical creates the ownership token for the device register block of
// layout T at physical address pa. See the type invariant above.
func NewPhysical[T any](pa uintptr) PhysicalInstance[T] {
	return PhysicalInstance[T]{pa: pa}
}

// PA returns the physical base address of the register block.
func (p PhysicalInstance[T]) PA() uintptr { return p.pa }

// Size returns the size of the register block in bytes.
func (p PhysicalInstance[T]) Size() uintptr { return unsafe.Sizeof(*new(T)) }
