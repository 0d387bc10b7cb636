package arena

import "testing"

func TestBufferPushPop(t *testing.T) {
	a := New(256)

	buf, err := NewBuffer[int32](a, 3)
	if err != nil {
		t.Fatalf("new buffer: %s", err)
	}

	if err := buf.Push(a, 10); err != nil {
		t.Fatalf("push 10: %s", err)
	}
	if err := buf.Push(a, 20); err != nil {
		t.Fatalf("push 20: %s", err)
	}

	items, err := buf.Items(a)
	if err != nil {
		t.Fatalf("items: %s", err)
	}
	if len(items) != 2 || items[0] != 10 || items[1] != 20 {
		t.Errorf("items = %v, want [10 20]", items)
	}

	if v, ok, err := buf.Pop(a); err != nil || !ok || v != 20 {
		t.Errorf("pop = %v, %v, %v; want 20, true, nil", v, ok, err)
	}
	if v, ok, err := buf.Pop(a); err != nil || !ok || v != 10 {
		t.Errorf("pop = %v, %v, %v; want 10, true, nil", v, ok, err)
	}
	if _, ok, err := buf.Pop(a); err != nil || ok {
		t.Errorf("pop on empty buffer should report ok=false")
	}

	if err := buf.Push(a, 99); err != nil {
		t.Fatalf("push 99: %s", err)
	}
	items, err = buf.Items(a)
	if err != nil || len(items) != 1 || items[0] != 99 {
		t.Errorf("items after re-push = %v, %v; want [99]", items, err)
	}
}

func TestBufferFull(t *testing.T) {
	a := New(256)
	buf, err := NewBuffer[int32](a, 2)
	if err != nil {
		t.Fatalf("new buffer: %s", err)
	}

	if err := buf.Push(a, 1); err != nil {
		t.Fatalf("push: %s", err)
	}
	if err := buf.Push(a, 2); err != nil {
		t.Fatalf("push: %s", err)
	}

	lenBefore := buf.Len()
	if err := buf.Push(a, 3); err != ErrBufferFull {
		t.Errorf("push past capacity err = %v, want ErrBufferFull", err)
	}
	if buf.Len() != lenBefore {
		t.Errorf("failed push mutated length: %d != %d", buf.Len(), lenBefore)
	}
}

func TestBufferResizeGrowDoesNotReclaim(t *testing.T) {
	a := New(4096)
	buf, err := NewBuffer[int32](a, 2)
	if err != nil {
		t.Fatalf("new buffer: %s", err)
	}
	buf.Push(a, 1)
	buf.Push(a, 2)

	usedBefore := a.Used()

	if err := buf.Resize(a, 8); err != nil {
		t.Fatalf("resize: %s", err)
	}

	items, err := buf.Items(a)
	if err != nil || len(items) != 2 || items[0] != 1 || items[1] != 2 {
		t.Errorf("items after grow = %v, %v; want [1 2]", items, err)
	}

	if a.Used() <= usedBefore {
		t.Errorf("Used() after growing resize = %d, want strictly greater than %d (old region not reclaimed)", a.Used(), usedBefore)
	}
}

func TestHandleRawRoundTrip(t *testing.T) {
	a := New(256)
	h, err := Alloc(a, uint32(123))
	if err != nil {
		t.Fatalf("alloc: %s", err)
	}

	raw := h.Raw()
	back := AsHandle[uint32](raw)

	if back != h {
		t.Errorf("round-tripped handle %+v != original %+v", back, h)
	}
}

func TestHandleRawSizeMismatchPanics(t *testing.T) {
	a := New(256)
	h, err := Alloc(a, uint32(123))
	if err != nil {
		t.Fatalf("alloc: %s", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic converting a raw handle to a mismatched-size type")
		}
	}()
	_ = AsHandle[uint64](h.Raw())
}
