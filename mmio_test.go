package mmio

import (
	"testing"
	"unsafe"
)

// Register layout used as the device stand-in for all tests, backed by
// ordinary host memory.
type testRegs struct {
	a    ReadWrite[uint32]
	b    ReadWrite[uint32]
	stat ReadPure[uint32]
	cmd  WriteOnly[uint32]
	ctrl ReadPureWrite[uint32]
	raw   uint32
	fifo  [3]ReadWrite[uint32]
	stats [2]ReadPure[uint32]
}

func mustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	fn()
}

func TestFieldProjection(t *testing.T) {
	regs := testRegs{}
	regs.a.v = 1
	regs.b.v = 2

	p := FromPtr(&regs)
	defer p.Release()

	a := Field[ReadWrite[uint32]](p, unsafe.Offsetof(testRegs{}.a))
	if got := a.Ptr().Load(); got != 1 {
		t.Errorf("field a = %d, want 1", got)
	}
	b := Field[ReadWrite[uint32]](p, unsafe.Offsetof(testRegs{}.b))
	if got := b.Ptr().Load(); got != 2 {
		t.Errorf("field b = %d, want 2", got)
	}
	if a.Addr() != p.Addr() || b.Addr() != p.Addr()+4 {
		t.Errorf("field addresses %#x, %#x, want %#x, %#x",
			a.Addr(), b.Addr(), p.Addr(), p.Addr()+4)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	regs := testRegs{}
	p := FromPtr(&regs)
	defer p.Release()

	rw := Field[ReadWrite[uint32]](p, unsafe.Offsetof(testRegs{}.a))
	rw.Ptr().Store(42)
	if got := rw.Ptr().Load(); got != 42 {
		t.Errorf("ReadWrite roundtrip = %d, want 42", got)
	}

	ctrl := Field[ReadPureWrite[uint32]](p, unsafe.Offsetof(testRegs{}.ctrl))
	ctrl.Ptr().Store(7)
	if got := ctrl.Ptr().Load(); got != 7 {
		t.Errorf("ReadPureWrite roundtrip = %d, want 7", got)
	}

	cmd := Field[WriteOnly[uint32]](p, unsafe.Offsetof(testRegs{}.cmd))
	cmd.Ptr().Store(0xdead)
	if regs.cmd.v != 0xdead {
		t.Errorf("WriteOnly backing memory = %#x, want 0xdead", regs.cmd.v)
	}
}

func TestUnsafeAccess(t *testing.T) {
	regs := testRegs{}
	p := FromPtr(&regs)
	defer p.Release()

	raw := Field[uint32](p, unsafe.Offsetof(testRegs{}.raw))
	WriteUnsafe(raw, 0xabcd)
	if got := ReadUnsafe(raw); got != 0xabcd {
		t.Errorf("unsafe roundtrip = %#x, want 0xabcd", got)
	}
}

func TestSliceGet(t *testing.T) {
	regs := testRegs{}
	p := FromPtr(&regs)
	defer p.Release()

	fifo := SliceField[ReadWrite[uint32]](p, unsafe.Offsetof(testRegs{}.fifo), 3)
	if fifo.Len() != 3 {
		t.Fatalf("len = %d, want 3", fifo.Len())
	}
	for i := 0; i < 3; i++ {
		e, ok := fifo.Get(i)
		if !ok {
			t.Fatalf("get(%d) absent, want present", i)
		}
		e.Ptr().Store(uint32(i + 10))
	}
	for i := 0; i < 3; i++ {
		if got := regs.fifo[i].v; got != uint32(i+10) {
			t.Errorf("fifo[%d] backing memory = %d, want %d", i, got, i+10)
		}
	}
	if _, ok := fifo.Get(3); ok {
		t.Error("get(3) present, want absent")
	}
	if _, ok := fifo.Get(-1); ok {
		t.Error("get(-1) present, want absent")
	}
}

func TestSplit(t *testing.T) {
	elems := make([]ReadWrite[uint32], 3)
	s := FromSlice(elems)
	defer s.Release()

	parts := s.Split()
	if len(parts) != 3 {
		t.Fatalf("split into %d parts, want 3", len(parts))
	}
	const stride = unsafe.Sizeof(ReadWrite[uint32]{})
	for i, part := range parts {
		if want := s.Addr() + stride*uintptr(i); part.Addr() != want {
			t.Errorf("part %d at %#x, want %#x", i, part.Addr(), want)
		}
		part.Ptr().Store(uint32(i + 1))
	}
	for i := range elems {
		if got := elems[i].v; got != uint32(i+1) {
			t.Errorf("elems[%d] = %d, want %d", i, got, i+1)
		}
	}
}

// Downgrading leaves a permanently shared region behind, so these tests use
// package-level backing memory whose address is never reused.
var (
	downgradeRegs  testRegs
	impureRegs     testRegs
	downgradeElems [3]ReadPure[uint32]
	sharedCell     Pure[uint32]
)

func TestDowngrade(t *testing.T) {
	downgradeRegs.stat.v = 0x1234

	u := FromPtr(&downgradeRegs)
	t.Cleanup(u.Release) // Release also drops the shared region left by Downgrade

	stat := Field[ReadPure[uint32]](u, unsafe.Offsetof(testRegs{}.stat))
	before := stat.Ptr().Load()

	s := u.Downgrade()
	after := SharedField[Pure[uint32]](s, unsafe.Offsetof(testRegs{}.stat)).Ptr().Load()
	if before != after {
		t.Errorf("value drifted across downgrade: %#x != %#x", before, after)
	}

	// The Unique handle and everything projected from it is consumed.
	mustPanic(t, func() { u.Ptr() })
	mustPanic(t, func() { stat.Ptr() })
	mustPanic(t, func() { Field[ReadWrite[uint32]](u, unsafe.Offsetof(testRegs{}.a)) })
}

func TestSharedImpureRead(t *testing.T) {
	u := FromPtr(&impureRegs)
	t.Cleanup(u.Release)
	s := u.Downgrade()

	// Aggregate projection is fine, leaf access to markers with
	// side-effecting reads is not.
	mustPanic(t, func() { SharedField[ReadWrite[uint32]](s, unsafe.Offsetof(testRegs{}.a)).Ptr() })
	mustPanic(t, func() { SharedField[ReadPureWrite[uint32]](s, unsafe.Offsetof(testRegs{}.ctrl)).Ptr() })
	mustPanic(t, func() { SharedField[WriteOnly[uint32]](s, unsafe.Offsetof(testRegs{}.cmd)).Ptr() })

	// The pure view of the same registers is allowed.
	SharedField[Pure[uint32]](s, unsafe.Offsetof(testRegs{}.ctrl)).Ptr().Load()
	SharedField[ReadPure[uint32]](s, unsafe.Offsetof(testRegs{}.stat)).Ptr().Load()
}

func TestSharedSlice(t *testing.T) {
	for i := range downgradeElems {
		downgradeElems[i].v = uint32(i + 100)
	}
	s := SharedFromSlice(downgradeElems[:])

	parts := s.Split()
	if len(parts) != 3 {
		t.Fatalf("split into %d parts, want 3", len(parts))
	}
	for i, part := range parts {
		if got := part.Ptr().Load(); got != uint32(i+100) {
			t.Errorf("elem %d = %d, want %d", i, got, i+100)
		}
	}
	if _, ok := s.Get(3); ok {
		t.Error("get(3) present, want absent")
	}
	e, ok := s.Get(1)
	if !ok || e.Addr() != s.Addr()+4 {
		t.Errorf("get(1) = %#x, %t, want %#x, true", e.Addr(), ok, s.Addr()+4)
	}
}

var sliceRegs testRegs

func TestSharedSliceField(t *testing.T) {
	sliceRegs.stats[0].v = 5
	sliceRegs.stats[1].v = 6

	u := FromPtr(&sliceRegs)
	t.Cleanup(u.Release)
	s := u.Downgrade()

	stats := SharedSliceField[ReadPure[uint32]](s, unsafe.Offsetof(testRegs{}.stats), 2)
	for i, part := range stats.Split() {
		if got := part.Ptr().Load(); got != uint32(i+5) {
			t.Errorf("stats[%d] = %d, want %d", i, got, i+5)
		}
	}

	// The impure fifo registers must not be projectable as a shared
	// sequence.
	mustPanic(t, func() { SharedSliceField[ReadWrite[uint32]](s, unsafe.Offsetof(testRegs{}.fifo), 3) })
}

func TestSharedAliasing(t *testing.T) {
	s1 := SharedFromPtr(&sharedCell)
	s2 := SharedFromPtr(&sharedCell) // shared handles may overlap
	if s1 != s2 {
		t.Error("shared pointers to the same address compare unequal")
	}
	// ...but an exclusive handle over the same memory may not be issued.
	mustPanic(t, func() { FromPtr(&sharedCell) })

	mustPanic(t, func() { SharedFromPtr(&downgradeRegs.a) }) // impure leaf
}

func TestExclusiveAliasing(t *testing.T) {
	regs := testRegs{}
	p := FromPtr(&regs)
	mustPanic(t, func() { FromPtr(&regs) })
	mustPanic(t, func() { FromPtr(&regs.b) }) // partial overlap counts

	p.Release()
	mustPanic(t, func() { p.Ptr() }) // released handles fail fast

	q := FromPtr(&regs) // region is free again
	q.Release()
}

func TestProjectionBounds(t *testing.T) {
	regs := testRegs{}
	p := FromPtr(&regs)
	defer p.Release()

	end := unsafe.Sizeof(testRegs{})
	mustPanic(t, func() { Field[ReadWrite[uint32]](p, end) })
	mustPanic(t, func() { Field[ReadWrite[uint32]](p, end-2) })
	mustPanic(t, func() { SliceField[ReadWrite[uint32]](p, unsafe.Offsetof(testRegs{}.fifo), 6) })
}

func TestPhysicalInstance(t *testing.T) {
	inst := NewPhysical[testRegs](0xfe20_0000)
	if inst.PA() != 0xfe20_0000 {
		t.Errorf("pa = %#x, want 0xfe200000", inst.PA())
	}
	if inst.Size() != unsafe.Sizeof(testRegs{}) {
		t.Errorf("size = %d, want %d", inst.Size(), unsafe.Sizeof(testRegs{}))
	}
}
