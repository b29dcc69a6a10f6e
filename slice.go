package mmio

import "unsafe"

// UniqueSlice is a Unique pointer to a sequence of registers of type T,
// carrying the sequence length alongside the address. It is produced by
// [SliceField] or, for host memory in tests, by [FromSlice].
type UniqueSlice[T any] struct {
	regs *T
	n    int
	ctl  *ctl
}

// FromSlice creates a UniqueSlice backed by ordinary memory. Intended for
// tests and simulated devices only.
func FromSlice[T any](s []T) UniqueSlice[T] {
	regs := unsafe.SliceData(s)
	r := register(unsafe.Pointer(regs), unsafe.Sizeof(*new(T))*uintptr(len(s)), false)
	return UniqueSlice[T]{regs: regs, n: len(s), ctl: &ctl{region: r}}
}

// Len returns the number of elements.
func (p UniqueSlice[T]) Len() int { return p.n }

// Get returns a Unique pointer to element i, or a false result if i is out
// of bounds. The bound is checked on every call.
func (p UniqueSlice[T]) Get(i int) (Unique[T], bool) {
	p.ctl.mustLive()
	if i < 0 || i >= p.n {
		return Unique[T]{}, false
	}
	return Unique[T]{regs: p.elem(i), ctl: p.ctl}, true
}

// Split partitions the sequence into one Unique pointer per element. The
// children are pairwise non-overlapping and stride-consecutive; there is no
// failure path.
func (p UniqueSlice[T]) Split() []Unique[T] {
	p.ctl.mustLive()
	parts := make([]Unique[T], p.n)
	for i := range parts {
		parts[i] = Unique[T]{regs: p.elem(i), ctl: p.ctl}
	}
	return parts
}

// Addr returns the address of the first element.
func (p UniqueSlice[T]) Addr() uintptr {
	return uintptr(unsafe.Pointer(p.regs))
}

// Downgrade consumes the handle and returns its Shared counterpart, see
// [Unique.Downgrade].
func (p UniqueSlice[T]) Downgrade() SharedSlice[T] {
	p.ctl.mustLive()
	p.ctl.revoked.Store(true)
	if p.ctl.region != nil {
		share(p.ctl.region)
	}
	return SharedSlice[T]{regs: p.regs, n: p.n}
}

// Release consumes the handle, see [Unique.Release].
func (p UniqueSlice[T]) Release() {
	p.ctl.revoked.Store(true)
	if p.ctl.region != nil {
		unregister(p.ctl.region)
	}
}

func (p UniqueSlice[T]) elem(i int) *T {
	return (*T)(unsafe.Add(unsafe.Pointer(p.regs), unsafe.Sizeof(*new(T))*uintptr(i)))
}

// SharedSlice mirrors [UniqueSlice] for the shared ownership class: its
// children are Shared pointers and only side-effect-free reads are licensed
// through them.
type SharedSlice[T any] struct {
	regs *T
	n    int
}

// SharedFromSlice creates a SharedSlice backed by ordinary memory. Intended
// for tests and simulated devices only.
func SharedFromSlice[T any](s []T) SharedSlice[T] {
	if !sharedReadable[T]() {
		panic("mmio: register is not side-effect free readable through a Shared pointer")
	}
	regs := unsafe.SliceData(s)
	register(unsafe.Pointer(regs), unsafe.Sizeof(*new(T))*uintptr(len(s)), true)
	return SharedSlice[T]{regs: regs, n: len(s)}
}

// Len returns the number of elements.
func (p SharedSlice[T]) Len() int { return p.n }

// Get returns a Shared pointer to element i, or a false result if i is out
// of bounds.
func (p SharedSlice[T]) Get(i int) (Shared[T], bool) {
	if i < 0 || i >= p.n {
		return Shared[T]{}, false
	}
	return Shared[T]{regs: p.elem(i)}, true
}

// Split partitions the sequence into one Shared pointer per element.
func (p SharedSlice[T]) Split() []Shared[T] {
	parts := make([]Shared[T], p.n)
	for i := range parts {
		parts[i] = Shared[T]{regs: p.elem(i)}
	}
	return parts
}

// Addr returns the address of the first element.
func (p SharedSlice[T]) Addr() uintptr {
	return uintptr(unsafe.Pointer(p.regs))
}

func (p SharedSlice[T]) elem(i int) *T {
	return (*T)(unsafe.Add(unsafe.Pointer(p.regs), unsafe.Sizeof(*new(T))*uintptr(i)))
}
