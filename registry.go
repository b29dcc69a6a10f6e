package mmio

import (
	"fmt"
	"sync"
	"unsafe"
)

// The registry holds one entry per root handle and enforces the aliasing
// rules at issuance time: an exclusive region must not overlap any other
// live region, shared regions may overlap each other. Projected children
// are not registered, they are bounded by their parent's entry.
//
// Keeping the raw pointer pins host-backed regions (FromPtr and friends)
// for as long as they are registered, so the garbage collector cannot hand
// the address range to an unrelated allocation. For real device memory the
// pointer is meaningless to the collector and pins nothing.
type region struct {
	ptr    unsafe.Pointer
	base   uintptr
	size   uintptr
	shared bool
}

var registry struct {
	sync.Mutex
	regions []*region
}

func (r *region) overlaps(base, size uintptr) bool {
	return base < r.base+r.size && r.base < base+size
}

func register(ptr unsafe.Pointer, size uintptr, shared bool) *region {
	registry.Lock()
	defer registry.Unlock()

	base := uintptr(ptr)
	for _, r := range registry.regions {
		if !r.overlaps(base, size) {
			continue
		}
		if !shared || !r.shared {
			panic(fmt.Sprintf("mmio: region [%#x, %#x) overlaps live region [%#x, %#x)",
				base, base+size, r.base, r.base+r.size))
		}
	}
	r := &region{ptr: ptr, base: base, size: size, shared: shared}
	registry.regions = append(registry.regions, r)
	return r
}

func share(r *region) {
	registry.Lock()
	defer registry.Unlock()
	r.shared = true
}

func unregister(r *region) {
	registry.Lock()
	defer registry.Unlock()
	for i, v := range registry.regions {
		if v == r {
			last := len(registry.regions) - 1
			registry.regions[i] = registry.regions[last]
			registry.regions = registry.regions[:last]
			return
		}
	}
}
