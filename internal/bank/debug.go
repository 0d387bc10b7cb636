package bank

import "golang.org/x/exp/slices"

// UsedTileIDs returns the ids of every pushed tile, 0..TileCount()-1 in
// ascending order, for pattern-table dump tooling.
func (b *MemoryBank) UsedTileIDs() []TileID {
	ids := make([]TileID, 0, b.TileCount())
	for i := uint8(0); i < b.TileCount(); i++ {
		ids = append(ids, TileID(i))
	}
	return ids
}

// UniqueColors returns the bank's palette colors with exact-value duplicates
// removed, preserving first-seen order. It applies the same value-equality
// rule Append uses when merging palettes, for debug tooling that wants to
// report how much of a bank's palette budget is actually distinct.
func UniqueColors(colors []Color) []Color {
	out := make([]Color, 0, len(colors))
	for _, c := range colors {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
