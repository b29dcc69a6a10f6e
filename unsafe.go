package mmio

import "unsafe"

// ReadUnsafe performs one bus read of an unmarked register field. Without a
// capability marker nothing is known about the register's semantics; the
// soundness of the access is entirely the caller's contract.
func ReadUnsafe[T Width](p Unique[T]) T {
	return load[T](unsafe.Pointer(p.Ptr()))
}

// WriteUnsafe performs one bus write of an unmarked register field. See
// [ReadUnsafe] for the contract.
func WriteUnsafe[T Width](p Unique[T], v T) {
	store(unsafe.Pointer(p.Ptr()), v)
}
