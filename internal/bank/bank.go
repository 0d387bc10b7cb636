package bank

import "errors"

const (
	PaletteCapacity    = 16
	SubPaletteCapacity = 32
	TileCapacity       = 256
)

var (
	ErrPaletteFull    = errors.New("bank: palette capacity reached")
	ErrSubPaletteFull = errors.New("bank: sub-palette capacity reached")
	ErrTileFull       = errors.New("bank: tile capacity reached")
)

// MemoryBank is the palette + sub-palette + packed-tile storage consumed
// by the pixel pipeline, usable either as build-time constant data or as
// a runtime-mutable instance; both expose the same accessors.
type MemoryBank struct {
	Palette     [PaletteCapacity]Color
	SubPalettes [SubPaletteCapacity]SubPalette
	Tiles       [TileCapacity]Tile

	paletteHead    uint8
	subPaletteHead uint8
	tileHead       uint8
}

// New returns a MemoryBank preloaded with the default 16-color palette
// and an identity sub-palette at index 0.
func New() *MemoryBank {
	b := &MemoryBank{}
	b.Reset()
	return b
}

// Reset zeros every counter and reloads the default palette, matching the
// engine's own built-in default colors rather than leaving the bank
// blank.
func (b *MemoryBank) Reset() {
	b.tileHead = 0
	b.Palette = DefaultPalette
	b.paletteHead = PaletteCapacity
	b.SubPalettes = [SubPaletteCapacity]SubPalette{}
	b.SubPalettes[0] = SubPalette{0, 1, 2, 3}
	b.subPaletteHead = 1
}

// PaletteCount, SubPaletteCount, TileCount report the live prefixes.
func (b *MemoryBank) PaletteCount() uint8    { return b.paletteHead }
func (b *MemoryBank) SubPaletteCount() uint8 { return b.subPaletteHead }
func (b *MemoryBank) TileCount() uint8       { return b.tileHead }

// PushColor appends color to the palette.
func (b *MemoryBank) PushColor(color Color) (ColorID, error) {
	if b.paletteHead >= PaletteCapacity {
		return 0, ErrPaletteFull
	}
	id := ColorID(b.paletteHead)
	b.Palette[b.paletteHead] = color
	b.paletteHead++
	return id, nil
}

// PushSubPalette appends a 4-entry color mapping.
func (b *MemoryBank) PushSubPalette(entries SubPalette) (SubPaletteID, error) {
	if b.subPaletteHead >= SubPaletteCapacity {
		return 0, ErrSubPaletteFull
	}
	id := SubPaletteID(b.subPaletteHead)
	b.SubPalettes[b.subPaletteHead] = entries
	b.subPaletteHead++
	return id, nil
}

// PushTile appends a packed tile.
func (b *MemoryBank) PushTile(tile Tile) (TileID, error) {
	if b.tileHead >= TileCapacity {
		return 0, ErrTileFull
	}
	id := TileID(b.tileHead)
	b.Tiles[b.tileHead] = tile
	b.tileHead++
	return id, nil
}

// PaletteCycle rotates a contiguous range [start, end] (inclusive) of
// subPalette's entries by delta positions, wrapping at the range
// boundary: the entry at index i moves to index i+delta. Used for
// color-cycle animation.
func (b *MemoryBank) PaletteCycle(subPalette SubPaletteID, start, end uint8, delta int8) {
	original := b.SubPalettes[subPalette]
	n := int(end) - int(start) + 1
	for i := int(start); i <= int(end); i++ {
		src := (i - int(start) - int(delta)) % n
		if src < 0 {
			src += n
		}
		b.SubPalettes[subPalette][i] = original[int(start)+src]
	}
}

// paletteRemap maps a source bank's ColorID to this bank's ColorID after
// a dedup-or-append pass.
type paletteRemap [PaletteCapacity]ColorID

// appendColors adds src's unique colors (by value equality) to b,
// returning the remap table from src color index to b color index.
func (b *MemoryBank) appendColors(src []Color) (paletteRemap, error) {
	var remap paletteRemap
	for i, c := range src {
		found := -1
		for j := 0; j < int(b.paletteHead); j++ {
			if b.Palette[j] == c {
				found = j
				break
			}
		}
		if found >= 0 {
			remap[i] = ColorID(found)
			continue
		}
		if b.paletteHead >= PaletteCapacity {
			return remap, ErrPaletteFull
		}
		remap[i] = ColorID(b.paletteHead)
		b.Palette[b.paletteHead] = c
		b.paletteHead++
	}
	return remap, nil
}

// appendTiles copies source's tiles into b, remapping each pixel's color
// index via remap, and copies (deduplicating) source's non-identity
// sub-palettes remapped the same way. Returns the tile offset where
// source's tiles begin in b.
func (b *MemoryBank) appendTiles(source *MemoryBank, remap paletteRemap) (uint8, error) {
	tileOffset := b.tileHead
	srcTileCount := source.tileHead

	if int(b.tileHead)+int(srcTileCount) > TileCapacity {
		return 0, ErrTileFull
	}

	for i := 0; i < int(srcTileCount); i++ {
		tile := source.Tiles[i]
		for y := uint8(0); y < 8; y++ {
			for x := uint8(0); x < 8; x++ {
				old := tile.GetPixel(x, y)
				tile.SetPixel(x, y, uint8(remap[old]))
			}
		}
		b.Tiles[int(b.tileHead)+i] = tile
	}
	b.tileHead += srcTileCount

	for i := 1; i < int(source.subPaletteHead); i++ {
		src := source.SubPalettes[i]
		var remapped SubPalette
		for j := 0; j < 4; j++ {
			if int(src[j]) < int(source.paletteHead) {
				remapped[j] = remap[src[j]]
			} else {
				remapped[j] = ColorID(j)
			}
		}

		exists := false
		for j := 0; j < int(b.subPaletteHead); j++ {
			if b.SubPalettes[j] == remapped {
				exists = true
				break
			}
		}
		if !exists {
			if b.subPaletteHead >= SubPaletteCapacity {
				return 0, ErrSubPaletteFull
			}
			b.SubPalettes[b.subPaletteHead] = remapped
			b.subPaletteHead++
		}
	}

	return tileOffset, nil
}

// Append merges source's colors, tiles and sub-palettes into b,
// deduplicating colors by value and remapping tile pixel indices and
// sub-palette entries accordingly. Returns the tile offset where
// source's tiles now begin in b.
func (b *MemoryBank) Append(source *MemoryBank) (uint8, error) {
	if int(b.tileHead)+int(source.tileHead) > TileCapacity {
		return 0, ErrTileFull
	}
	remap, err := b.appendColors(source.Palette[:source.paletteHead])
	if err != nil {
		return 0, err
	}
	return b.appendTiles(source, remap)
}
