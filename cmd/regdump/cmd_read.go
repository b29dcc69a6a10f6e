//go:build linux

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <register|0xOFFSET>",
	Short: "Read a single register",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := regmap.lookup(args[0])
		if err != nil {
			return err
		}
		m, err := mapBlock()
		if err != nil {
			return err
		}
		defer m.Close()

		v, err := readReg(*m.Pointer(), reg)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %#0*x\n", reg.Name, reg.Width/4, v)
		return nil
	},
}

var writeCmd = &cobra.Command{
	Use:   "write <register|0xOFFSET> <value>",
	Short: "Write a single register",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := regmap.lookup(args[0])
		if err != nil {
			return err
		}
		v, err := strconv.ParseUint(args[1], 0, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[1], err)
		}
		m, err := mapBlock()
		if err != nil {
			return err
		}
		defer m.Close()

		return writeReg(*m.Pointer(), reg, v)
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Read all readable registers of the register map",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := mapBlock()
		if err != nil {
			return err
		}
		defer m.Close()

		for i := range regmap.Registers {
			reg := &regmap.Registers[i]
			if !reg.readable() {
				fmt.Printf("%#04x %-16s (%s)\n", reg.Offset, reg.Name, reg.Access)
				continue
			}
			v, err := readReg(*m.Pointer(), reg)
			if err != nil {
				return err
			}
			fmt.Printf("%#04x %-16s %#0*x\n", reg.Offset, reg.Name, reg.Width/4, v)
		}
		return nil
	},
}
