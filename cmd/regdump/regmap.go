package main

import (
	"fmt"
	"strconv"
	"strings"
)

// RegMap describes a device's register block, loaded from the config file.
// It is the register-layout description the tool projects pointers from:
//
//	device: pl011
//	base: 0xfe201000
//	size: 0x90
//	registers:
//	  - { name: dr, offset: 0x00, width: 32, access: rw }
//	  - { name: fr, offset: 0x18, width: 32, access: rp }
type RegMap struct {
	Device    string     `mapstructure:"device"`
	Base      uint64     `mapstructure:"base"`
	Size      uint64     `mapstructure:"size"`
	Registers []Register `mapstructure:"registers"`
}

// The tool maps one page and projects registers out of it.
const blockSize = 4096

type Register struct {
	Name   string `mapstructure:"name"`
	Offset uint64 `mapstructure:"offset"`
	Width  int    `mapstructure:"width"`
	Access string `mapstructure:"access"`
}

// Access classes, matching the library's capability markers.
const (
	accessRO  = "ro"  // read only, read may have side effects
	accessWO  = "wo"  // write only
	accessRW  = "rw"  // read/write, read may have side effects
	accessRP  = "rp"  // read only, side-effect free
	accessRPW = "rpw" // read/write, side-effect free read
)

func (r *Register) readable() bool {
	switch r.Access {
	case accessRO, accessRW, accessRP, accessRPW:
		return true
	}
	return false
}

func (r *Register) writable() bool {
	switch r.Access {
	case accessWO, accessRW, accessRPW:
		return true
	}
	return false
}

func (m *RegMap) validate() error {
	if m.Size == 0 {
		return fmt.Errorf("regmap %s: size must be set", m.Device)
	}
	if m.Size > blockSize {
		return fmt.Errorf("regmap %s: register blocks larger than %#x are not supported", m.Device, blockSize)
	}
	seen := make(map[string]bool)
	for i := range m.Registers {
		r := &m.Registers[i]
		if r.Name == "" {
			return fmt.Errorf("regmap %s: register %d has no name", m.Device, i)
		}
		if seen[r.Name] {
			return fmt.Errorf("regmap %s: duplicate register %q", m.Device, r.Name)
		}
		seen[r.Name] = true
		switch r.Width {
		case 8, 16, 32, 64:
		default:
			return fmt.Errorf("regmap %s: register %q has invalid width %d", m.Device, r.Name, r.Width)
		}
		if r.Offset%uint64(r.Width/8) != 0 {
			return fmt.Errorf("regmap %s: register %q is misaligned", m.Device, r.Name)
		}
		if r.Offset+uint64(r.Width/8) > m.Size {
			return fmt.Errorf("regmap %s: register %q exceeds block size %#x", m.Device, r.Name, m.Size)
		}
		if !r.readable() && !r.writable() {
			return fmt.Errorf("regmap %s: register %q has invalid access %q", m.Device, r.Name, r.Access)
		}
	}
	return nil
}

// lookup resolves a command line argument to a register, either by name or
// as a raw offset. Raw offsets get a synthetic 32-bit rw register, the
// caller is on their own regarding semantics.
func (m *RegMap) lookup(arg string) (*Register, error) {
	for i := range m.Registers {
		if m.Registers[i].Name == arg {
			return &m.Registers[i], nil
		}
	}
	if strings.HasPrefix(arg, "0x") || strings.HasPrefix(arg, "0X") {
		off, err := strconv.ParseUint(arg[2:], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("regmap %s: %q is neither a register name nor an offset", m.Device, arg)
		}
		if off%4 != 0 || off+4 > m.Size {
			return nil, fmt.Errorf("regmap %s: offset %#x out of range", m.Device, off)
		}
		return &Register{Name: arg, Offset: off, Width: 32, Access: accessRW}, nil
	}
	return nil, fmt.Errorf("regmap %s: unknown register %q", m.Device, arg)
}
