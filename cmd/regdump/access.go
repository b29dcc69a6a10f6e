//go:build linux

package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/devmmio/mmio"
	"github.com/devmmio/mmio/devmem"
)

// block is the window the register map's base address is mapped through.
// Registers are projected out of it at their configured offsets; access
// goes through the unmarked escape hatch since the tool's gating comes from
// the register map, not from layout types.
type block [blockSize]byte

func mapBlock() (*devmem.Mapping[block], error) {
	inst := mmio.NewPhysical[block](uintptr(regmap.Base))
	if devPath == "/dev/mem" {
		return devmem.Map(inst)
	}
	f, err := os.OpenFile(devPath, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	m, err := devmem.MapFile(f, inst)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return m, err
}

func readReg(p mmio.Unique[block], r *Register) (uint64, error) {
	if !r.readable() {
		return 0, fmt.Errorf("register %q is not readable (access %q)", r.Name, r.Access)
	}
	off := uintptr(r.Offset)
	var v uint64
	switch r.Width {
	case 8:
		v = uint64(mmio.ReadUnsafe(mmio.Field[uint8](p, off)))
	case 16:
		v = uint64(mmio.ReadUnsafe(mmio.Field[uint16](p, off)))
	case 32:
		v = uint64(mmio.ReadUnsafe(mmio.Field[uint32](p, off)))
	case 64:
		v = mmio.ReadUnsafe(mmio.Field[uint64](p, off))
	}
	zap.L().Debug("read", zap.String("register", r.Name), zap.Uint64("value", v))
	return v, nil
}

func writeReg(p mmio.Unique[block], r *Register, v uint64) error {
	if !r.writable() {
		return fmt.Errorf("register %q is not writable (access %q)", r.Name, r.Access)
	}
	if r.Width < 64 && v>>r.Width != 0 {
		return fmt.Errorf("value %#x does not fit a %d-bit register", v, r.Width)
	}
	off := uintptr(r.Offset)
	switch r.Width {
	case 8:
		mmio.WriteUnsafe(mmio.Field[uint8](p, off), uint8(v))
	case 16:
		mmio.WriteUnsafe(mmio.Field[uint16](p, off), uint16(v))
	case 32:
		mmio.WriteUnsafe(mmio.Field[uint32](p, off), uint32(v))
	case 64:
		mmio.WriteUnsafe(mmio.Field[uint64](p, off), v)
	}
	zap.L().Debug("write", zap.String("register", r.Name), zap.Uint64("value", v))
	return nil
}
