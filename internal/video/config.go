package video

import "github.com/flga/tilechip/internal/bank"

// Config holds the external, user-facing VideoChip options. The scroll,
// background color and bank index fields are also mutable at runtime (via
// IRQ) through the PixelIterator itself.
type Config struct {
	Width, Height int

	ScrollX, ScrollY int
	BgColor          bank.Color
	WrapBG           bool

	ViewLeft, ViewRight, ViewTop, ViewBottom int

	BGTileBank, FGTileBank int
	BGMapBank               int
}

// IRQFunc is invoked before each scanline is pre-rendered, with a
// mutable view of the iterator's per-line state. It is the only hook for
// mid-frame effects: split scrolling, palette swaps, parallax.
type IRQFunc func(it *PixelIterator, line int)
