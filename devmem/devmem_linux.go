//go:build linux

package devmem

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/devmmio/mmio"
)

// Mapping is a device register block mapped into the process. It owns the
// memory mapping and the root Unique pointer over it.
type Mapping[T any] struct {
	mem []byte
	ptr mmio.Unique[T]
	f   *os.File // owned by the mapping if opened by Map
}

// Map consumes the PhysicalInstance token and maps the device's register
// block from /dev/mem. Requires a kernel without CONFIG_STRICT_DEVMEM
// restrictions on the range and the privileges to open /dev/mem.
func Map[T any](inst mmio.PhysicalInstance[T]) (*Mapping[T], error) {
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("devmem: %w", err)
	}
	m, err := MapFile(f, inst)
	if err != nil {
		f.Close()
		return nil, err
	}
	m.f = f
	return m, nil
}

// MapFile is like [Map] but maps from an already-open memory device, such
// as a UIO node. The file stays owned by the caller.
func MapFile[T any](f *os.File, inst mmio.PhysicalInstance[T]) (*Mapping[T], error) {
	base, off, length := span(inst.PA(), inst.Size(), uintptr(unix.Getpagesize()))
	mem, err := unix.Mmap(int(f.Fd()), int64(base), length,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("devmem: mmap %#x+%#x: %w", base, length, err)
	}
	return &Mapping[T]{
		mem: mem,
		ptr: mmio.New[T](unsafe.Pointer(&mem[off])),
	}, nil
}

// Pointer returns the Unique pointer over the mapped register block. It
// stays valid until Close.
func (m *Mapping[T]) Pointer() *mmio.Unique[T] {
	return &m.ptr
}

// Close releases the pointer, unmaps the register block and, for mappings
// created by [Map], closes the memory device.
func (m *Mapping[T]) Close() error {
	m.ptr.Release()
	err := unix.Munmap(m.mem)
	if m.f != nil {
		if cerr := m.f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
