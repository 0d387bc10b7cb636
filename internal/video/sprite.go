// Package video implements the tile-based pixel generation pipeline: a
// sprite bucketing pass per scanline and a PixelIterator that composites
// a scrolling background plane against the sprite overlay, scanline by
// scanline, into a row-major RGBA32 pixel stream.
package video

import "github.com/flga/tilechip/internal/tilemap"

const (
	// MaxSprites is the maximum number of active sprites in a frame.
	MaxSprites = 64
	// MaxSpritesPerScanline mirrors the NES's 8-sprites-per-line cap:
	// once a scanline's list is full, further intersecting sprites are
	// dropped and Overflow is set.
	MaxSpritesPerScanline = 8
	// SlotsPerLine is the number of horizontal coverage-mask slots a
	// scanline's width is divided into.
	SlotsPerLine = 16
)

// Sprite is one entry in a frame's active sprite set.
type Sprite struct {
	X, Y         int16
	TileID       uint8
	SubPaletteID uint8
	Flags        uint8
}

func (s Sprite) FlipX() bool    { return s.Flags&tilemap.FlagFlipX != 0 }
func (s Sprite) FlipY() bool    { return s.Flags&tilemap.FlagFlipY != 0 }
func (s Sprite) Rotate90() bool { return s.Flags&tilemap.FlagRotate90 != 0 }

// Transform maps a destination pixel coordinate within the sprite back to
// its source tile coordinate, using the same rotate-then-flip order as
// tilemap cells.
func (s Sprite) Transform(x, y uint8) (sx, sy uint8) {
	c := tilemap.Cell{Flags: s.Flags}
	return c.Transform(x, y)
}

// Scanline holds the sprite indices touching one row, bounded to
// MaxSpritesPerScanline, plus a 16-bit mask of which horizontal slots any
// of those sprites cover.
type Scanline struct {
	Sprites  [MaxSpritesPerScanline]uint8
	Count    uint8
	Mask     uint16
	Overflow bool
}

// SpriteGenerator buckets up to MaxSprites per frame into per-scanline
// lists so the pixel iterator can skip scanlines/slots with no sprite
// coverage without scanning the whole sprite array.
type SpriteGenerator struct {
	Sprites     [MaxSprites]Sprite
	spriteCount uint8

	Scanlines  []Scanline
	tileHeight int
	screenW    int
}

// NewSpriteGenerator prepares a generator for a screen of the given
// width and height, with sprites occupying tileHeight rows (8 for the
// standard 8x8 tile).
func NewSpriteGenerator(screenWidth, screenHeight, tileHeight int) *SpriteGenerator {
	return &SpriteGenerator{
		Scanlines:  make([]Scanline, screenHeight),
		tileHeight: tileHeight,
		screenW:    screenWidth,
	}
}

// Clear resets every scanline list and the sprite count, to be called at
// the start of every frame before new sprites are queued.
func (g *SpriteGenerator) Clear() {
	g.spriteCount = 0
	for i := range g.Scanlines {
		g.Scanlines[i] = Scanline{}
	}
}

func (g *SpriteGenerator) slotMask(left, right int) uint16 {
	if right < left {
		return 0
	}
	startSlot := left * SlotsPerLine / g.screenW
	endSlot := right * SlotsPerLine / g.screenW
	if startSlot < 0 {
		startSlot = 0
	}
	if endSlot >= SlotsPerLine {
		endSlot = SlotsPerLine - 1
	}
	var mask uint16
	for s := startSlot; s <= endSlot; s++ {
		mask |= 1 << uint(s)
	}
	return mask
}

// PushSprite inserts a new sprite into the next free slot and appends its
// index to every scanline it intersects. If a frame's MaxSprites is
// already exhausted the sprite is silently dropped (matching the
// original hardware's own "sprites beyond the limit don't appear"
// behavior). If a scanline's own list is already full, the sprite index
// is dropped from that scanline only and Overflow is set on it.
func (g *SpriteGenerator) PushSprite(s Sprite) {
	if g.spriteCount >= MaxSprites {
		return
	}
	id := g.spriteCount
	g.Sprites[id] = s
	g.spriteCount++

	top := int(s.Y)
	bottom := top + g.tileHeight - 1
	left := int(s.X)
	right := left + 7
	mask := g.slotMask(left, right)

	for y := top; y <= bottom; y++ {
		if y < 0 || y >= len(g.Scanlines) {
			continue
		}
		sl := &g.Scanlines[y]
		if sl.Count < MaxSpritesPerScanline {
			sl.Sprites[sl.Count] = id
			sl.Count++
		} else {
			sl.Overflow = true
		}
		sl.Mask |= mask
	}
}

// SpriteCount returns the number of sprites queued so far this frame.
func (g *SpriteGenerator) SpriteCount() uint8 { return g.spriteCount }
