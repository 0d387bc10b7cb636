package tilemap

import (
	"bytes"
	"testing"
)

func TestWriteThenLoadRoundTrip(t *testing.T) {
	tm := New(3, 2)
	tm.Set(1, 1, Cell{TileID: 9, SubPaletteID: 2, Flags: FlagFlipX})

	var buf bytes.Buffer
	if _, err := tm.WriteTo(&buf); err != nil {
		t.Fatalf("write: %s", err)
	}

	loaded, err := LoadFile(&buf)
	if err != nil {
		t.Fatalf("load: %s", err)
	}

	if loaded.Columns != 3 || loaded.Rows != 2 {
		t.Errorf("dims = %dx%d, want 3x2", loaded.Columns, loaded.Rows)
	}
	if c := loaded.At(1, 1); c.TileID != 9 || !c.FlipX() {
		t.Errorf("At(1,1) = %+v, want tile 9 flip_x", c)
	}
}

func TestLoadFileRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("nope, not a tilemap file")
	if _, err := LoadFile(buf); err == nil {
		t.Error("expected an error loading a non-tilemap file")
	}
}
