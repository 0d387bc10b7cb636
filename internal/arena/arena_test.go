package arena

import (
	"errors"
	"testing"
)

func TestArenaBasic(t *testing.T) {
	a := New(1024)

	h1, err := Alloc(a, uint32(42))
	if err != nil {
		t.Fatalf("alloc u32: %s", err)
	}
	h2, err := Alloc(a, float32(3.14))
	if err != nil {
		t.Fatalf("alloc f32: %s", err)
	}

	v1, err := Get(a, h1)
	if err != nil || *v1 != 42 {
		t.Errorf("get h1 = %v, %v; want 42, nil", v1, err)
	}
	v2, err := Get(a, h2)
	if err != nil || *v2 != 3.14 {
		t.Errorf("get h2 = %v, %v; want 3.14, nil", v2, err)
	}

	if got := a.Used(); got != 8 {
		t.Errorf("Used() = %d, want 8", got)
	}
}

func TestArenaGenerationSafety(t *testing.T) {
	a := New(64)

	h, err := Alloc(a, uint32(1))
	if err != nil {
		t.Fatalf("alloc: %s", err)
	}

	a.Clear()

	h2, err := Alloc(a, uint32(2))
	if err != nil {
		t.Fatalf("alloc after clear: %s", err)
	}

	if _, err := Get(a, h); !errors.Is(err, &InvalidGenerationError{}) {
		t.Errorf("get stale handle err = %v, want InvalidGenerationError", err)
	}

	v2, err := Get(a, h2)
	if err != nil || *v2 != 2 {
		t.Errorf("get fresh handle = %v, %v; want 2, nil", v2, err)
	}
}

func TestArenaCrossArena(t *testing.T) {
	a1 := New(64)
	a2 := New(64)

	h, err := Alloc(a1, uint32(7))
	if err != nil {
		t.Fatalf("alloc: %s", err)
	}

	if _, err := Get(a2, h); !errors.Is(err, &CrossArenaError{}) {
		t.Errorf("cross-arena get err = %v, want CrossArenaError", err)
	}

	if a1.ID() == a2.ID() {
		t.Errorf("distinct arenas share id %d", a1.ID())
	}
}

func TestArenaOutOfSpace(t *testing.T) {
	a := New(4)

	if _, err := Alloc(a, uint64(1)); err == nil {
		t.Fatal("expected OutOfSpace for 8 bytes in a 4 byte arena")
	} else {
		var oos *OutOfSpaceError
		if !errors.As(err, &oos) {
			t.Errorf("err = %v, want *OutOfSpaceError", err)
		}
	}
}

func TestArenaUsedPlusRemaining(t *testing.T) {
	a := New(256)
	for i := 0; i < 10; i++ {
		if _, err := Alloc(a, uint32(i)); err != nil {
			t.Fatalf("alloc %d: %s", i, err)
		}
	}
	if got := a.Used() + a.Remaining(); got != a.Capacity() {
		t.Errorf("used+remaining = %d, want capacity %d", got, a.Capacity())
	}
}

func TestArenaRestoreTo(t *testing.T) {
	a := New(256)
	if _, err := Alloc(a, uint32(1)); err != nil {
		t.Fatalf("alloc: %s", err)
	}
	mark := a.Used()
	h, err := Alloc(a, uint32(2))
	if err != nil {
		t.Fatalf("alloc: %s", err)
	}

	a.RestoreTo(mark)
	if a.Used() != mark {
		t.Errorf("Used() after RestoreTo = %d, want %d", a.Used(), mark)
	}
	if _, err := Get(a, h); err == nil {
		t.Error("expected error resolving handle allocated after restored mark")
	}
}

func TestArenaPop(t *testing.T) {
	a := New(256)
	if _, err := Alloc(a, uint32(1)); err != nil {
		t.Fatalf("alloc: %s", err)
	}
	before := a.Used()

	if _, err := Alloc(a, uint32(2)); err != nil {
		t.Fatalf("alloc: %s", err)
	}

	v, err := Pop[uint32](a)
	if err != nil || v != 2 {
		t.Fatalf("pop = %v, %v; want 2, nil", v, err)
	}
	if a.Used() != before {
		t.Errorf("Used() after pop = %d, want %d", a.Used(), before)
	}

	if _, err := Pop[uint32](a); err == nil {
		t.Error("expected InvalidBounds popping an empty stack")
	}
}

func TestAllocSliceZeroLength(t *testing.T) {
	a := New(256)
	before := a.Used()

	s, err := AllocSliceFromFn(a, 0, func(uint32) int { return 1 })
	if err != nil {
		t.Fatalf("alloc zero-len slice: %s", err)
	}
	if !s.IsEmpty() {
		t.Error("expected empty slice")
	}
	if a.Used() != before {
		t.Errorf("zero-length alloc touched the arena: used went from %d to %d", before, a.Used())
	}
}

func TestAlignment(t *testing.T) {
	a := New(1024)

	if _, err := Alloc(a, byte(1)); err != nil {
		t.Fatalf("alloc byte: %s", err)
	}

	h, err := Alloc(a, uint64(0xdeadbeef))
	if err != nil {
		t.Fatalf("alloc u64: %s", err)
	}
	if h.offset%8 != 0 {
		t.Errorf("u64 handle offset %d not 8-byte aligned", h.offset)
	}
}

func TestTailScratchRoundTrip(t *testing.T) {
	a := New(256)
	remainingBefore := a.Remaining()

	txt, err := TextFormatDisplay(a, "pi: {:.2}", []any{3.14159}, "!")
	if err != nil {
		t.Fatalf("format: %s", err)
	}

	s, err := txt.AsStr(a)
	if err != nil {
		t.Fatalf("as str: %s", err)
	}
	if s != "pi: 3.14!" {
		t.Errorf("formatted = %q, want %q", s, "pi: 3.14!")
	}

	used := a.Capacity() - a.Remaining()
	if used != uint32(len("pi: 3.14!")) {
		t.Errorf("persistent bytes used = %d, want exactly the formatted length", used)
	}
	_ = remainingBefore
}
