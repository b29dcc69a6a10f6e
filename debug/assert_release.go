//go:build !debug

// Package debug provides assertions that are compiled in with the debug
// build tag and compile to no-ops otherwise.
//
// The mmio package uses these for cheap double-checks of caller contracts
// that cannot be verified at reasonable cost in release builds, such as
// alignment of projected addresses. Ownership violations are not asserted
// here; those panic unconditionally.
package debug

// Enabled reports whether assertions are compiled in. Guard assertions that
// do work of their own (formatting, address arithmetic) with `if
// debug.Enabled {...}` so release builds can drop them entirely.
const Enabled = false

// Assert panics if b is false.
func Assert(b bool, message string) {}

// AssertErrNil panics if err is not nil.
func AssertErrNil(err error) {}
