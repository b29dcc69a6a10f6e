// Package devmem maps a device's physical register block into the process
// and hands the result over to the mmio pointer model. It is the mapping
// collaborator sitting between device enumeration (which produces a
// [mmio.PhysicalInstance]) and driver code (which consumes the first
// [mmio.Unique] pointer over the mapped range).
package devmem

// mmap needs page granularity while register blocks rarely start or end on
// a page boundary. span computes the page-aligned window covering
// [pa, pa+size) and the offset of pa inside it.
func span(pa, size, pagesize uintptr) (base, off uintptr, length int) {
	base = pa &^ (pagesize - 1)
	off = pa - base
	length = int((off + size + pagesize - 1) &^ (pagesize - 1))
	return
}
