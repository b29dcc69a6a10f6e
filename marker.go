package mmio

import (
	"unsafe"

	"github.com/devmmio/mmio/volatile"
)

// Capability markers wrap a register field in the device's layout struct
// and declare, by their method set, which operations are sound for it:
//
//	ReadOnly       Load            read has side effects, exclusive only
//	WriteOnly      Store
//	ReadWrite      Load, Store     read has side effects, exclusive only
//	ReadPure       Load            read is side-effect free
//	ReadPureWrite  Load, Store     read is side-effect free, write exclusive
//
// Shared pointers read exclusively through the [Pure] view, which only the
// pure-readable markers provide. Fields without a marker are reachable only
// through [ReadUnsafe] and [WriteUnsafe].

type access uint8

const (
	accessRead  access = 1 << iota // read with possible side effects
	accessWrite                    // exclusive write
	accessPure                     // side effect free read
)

// cell is implemented by every marker type and reports its access class,
// used for the runtime half of the capability checks on Shared handles.
type cell interface {
	cellAccess() access
}

// ReadOnly is a register that can only be read, and whose read may have
// side effects. Readable from a Unique pointer only.
type ReadOnly[T Width] struct{ v T }

// Load performs one bus read of the register.
func (r *ReadOnly[T]) Load() T { return load[T](unsafe.Pointer(r)) }

// Addr returns the register's address.
func (r *ReadOnly[T]) Addr() uintptr { return uintptr(unsafe.Pointer(r)) }

func (r *ReadOnly[T]) cellAccess() access { return accessRead }

// WriteOnly is a register that can only be written.
type WriteOnly[T Width] struct{ v T }

// Store performs one bus write of the register.
func (r *WriteOnly[T]) Store(v T) { store(unsafe.Pointer(r), v) }

// Addr returns the register's address.
func (r *WriteOnly[T]) Addr() uintptr { return uintptr(unsafe.Pointer(r)) }

func (r *WriteOnly[T]) cellAccess() access { return accessWrite }

// ReadWrite is a register that can be read and written, where reading may
// have side effects. Both operations require a Unique pointer.
type ReadWrite[T Width] struct{ v T }

// Load performs one bus read of the register.
func (r *ReadWrite[T]) Load() T { return load[T](unsafe.Pointer(r)) }

// Store performs one bus write of the register.
func (r *ReadWrite[T]) Store(v T) { store(unsafe.Pointer(r), v) }

// Addr returns the register's address.
func (r *ReadWrite[T]) Addr() uintptr { return uintptr(unsafe.Pointer(r)) }

func (r *ReadWrite[T]) cellAccess() access { return accessRead | accessWrite }

// Pure is the side-effect-free read view of a register. It is the only cell
// type reachable through a Shared pointer; [ReadPure] and [ReadPureWrite]
// embed it.
type Pure[T Width] struct{ v T }

// Load performs one bus read of the register. The read has no side effects,
// so any number of concurrent holders may call it.
func (r *Pure[T]) Load() T { return load[T](unsafe.Pointer(r)) }

// Addr returns the register's address.
func (r *Pure[T]) Addr() uintptr { return uintptr(unsafe.Pointer(r)) }

func (r *Pure[T]) cellAccess() access { return accessPure }

// ReadPure is a register whose read is provably side-effect free and which
// cannot be written.
type ReadPure[T Width] struct{ Pure[T] }

// ReadPureWrite is a register whose read is side-effect free and which can
// additionally be written through a Unique pointer. Shared pointers must
// project to its [Pure] view, which carries no Store.
type ReadPureWrite[T Width] struct{ Pure[T] }

// Store performs one bus write of the register.
func (r *ReadPureWrite[T]) Store(v T) { store(unsafe.Pointer(r), v) }

func (r *ReadPureWrite[T]) cellAccess() access { return accessPure | accessWrite }

// sharedReadable reports whether a Shared pointer may expose *T. Aggregates
// pass (they are projected further, not accessed); marker cells pass only
// if their read is side-effect free and they expose no Store.
func sharedReadable[T any]() bool {
	c, ok := any(new(T)).(cell)
	if !ok {
		return true
	}
	return c.cellAccess() == accessPure
}

func load[T Width](addr unsafe.Pointer) T {
	switch unsafe.Sizeof(*new(T)) {
	case 1:
		return T(volatile.Load8(addr))
	case 2:
		return T(volatile.Load16(addr))
	case 4:
		return T(volatile.Load32(addr))
	default:
		return T(volatile.Load64(addr))
	}
}

func store[T Width](addr unsafe.Pointer, v T) {
	switch unsafe.Sizeof(v) {
	case 1:
		volatile.Store8(addr, uint8(v))
	case 2:
		volatile.Store16(addr, uint16(v))
	case 4:
		volatile.Store32(addr, uint32(v))
	default:
		volatile.Store64(addr, uint64(v))
	}
}
