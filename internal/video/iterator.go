package video

import (
	"github.com/flga/tilechip/internal/bank"
	"github.com/flga/tilechip/internal/tilemap"
)

// transparentSprite is the sentinel the sprite line buffer is cleared to
// before each scanline: alpha 0, independent of BgColor, so the
// already-written guard in preRenderSprites and the z-priority composite
// in Next both see an empty slot rather than a solid color.
var transparentSprite = bank.NewColor(0, 0, 0, 0, bank.ZSprite)

// PixelIterator produces exactly Width*Height RGBA32 pixels, in
// row-major order, for one frame: horizontal sweep across a row, then
// the next row. It pre-renders each scanline into two internal line
// buffers (background, sprite) before yielding any of that line's
// pixels.
type PixelIterator struct {
	banks  []*bank.MemoryBank
	bgMaps []*tilemap.Tilemap
	sprGen *SpriteGenerator

	// Mutable per-line state, writable from an IRQFunc.
	ScrollX, ScrollY       int
	BgColor                bank.Color
	BGTileBank, FGTileBank int
	BGMapBank              int

	width, height                           int
	viewLeft, viewRight, viewTop, viewBottom int
	wrapBG                                   bool

	irq IRQFunc

	x, y     int
	scanline Scanline

	bgBuffer     []bank.Color
	spriteBuffer []bank.Color

	done bool
}

// New constructs a PixelIterator over the given tile banks, background
// tilemaps and sprite generator, applying cfg. Tile banks and background
// maps must be non-empty; bank/map indices named in cfg must be in
// range. Pre-renders scanline 0 before returning, after first invoking
// the IRQ callback for line 0 (matching line 0 having a chance to set up
// state before any pixel is produced).
func New(banks []*bank.MemoryBank, bgMaps []*tilemap.Tilemap, sprGen *SpriteGenerator, cfg Config, irq IRQFunc) *PixelIterator {
	if len(banks) == 0 {
		panic("video: at least one tile bank is required")
	}
	if len(bgMaps) == 0 {
		panic("video: at least one background tilemap is required")
	}

	it := &PixelIterator{
		banks:      banks,
		bgMaps:     bgMaps,
		sprGen:     sprGen,
		ScrollX:    cfg.ScrollX,
		ScrollY:    cfg.ScrollY,
		BgColor:    cfg.BgColor,
		BGTileBank: cfg.BGTileBank,
		FGTileBank: cfg.FGTileBank,
		BGMapBank:  cfg.BGMapBank,
		width:      cfg.Width,
		height:     cfg.Height,
		viewLeft:   cfg.ViewLeft,
		viewRight:  cfg.ViewRight,
		viewTop:    cfg.ViewTop,
		viewBottom: cfg.ViewBottom,
		wrapBG:     cfg.WrapBG,
		irq:        irq,

		bgBuffer:     make([]bank.Color, cfg.Width),
		spriteBuffer: make([]bank.Color, cfg.Width),
	}

	for i := range it.bgBuffer {
		it.bgBuffer[i] = it.BgColor.WithZ(bank.ZBGColor)
		it.spriteBuffer[i] = transparentSprite
	}

	if sprGen != nil && len(sprGen.Scanlines) > 0 {
		it.scanline = sprGen.Scanlines[0]
	}

	it.callLineIRQ()
	it.preRenderLine()

	return it
}

func (it *PixelIterator) callLineIRQ() {
	if it.irq != nil {
		it.irq(it, it.y)
	}
}

func (it *PixelIterator) currentBGMap() *tilemap.Tilemap {
	return it.bgMaps[it.BGMapBank]
}

func (it *PixelIterator) preRenderBackground() {
	left, right := it.viewLeft, it.viewRight
	if left < 0 {
		left = 0
	}
	if right >= it.width {
		right = it.width - 1
	}

	fillColor := it.BgColor.WithZ(bank.ZBGColor)
	for x := 0; x < it.width; x++ {
		if x < left || x > right {
			it.bgBuffer[x] = fillColor
		}
	}
	if left > right {
		return
	}

	bgMap := it.currentBGMap()
	bgW, bgH := bgMap.Width(), bgMap.Height()
	tileBank := it.banks[it.BGTileBank]

	bgY := it.y + it.ScrollY
	if !it.wrapBG {
		if bgY < 0 || bgY >= bgH {
			for x := left; x <= right; x++ {
				it.bgBuffer[x] = fillColor
			}
			return
		}
	} else {
		bgY = ((bgY % bgH) + bgH) % bgH
	}
	bgRow := bgY / 8
	tileY := uint8(bgY % 8)

	for x := left; x <= right; x++ {
		bgX := x + it.ScrollX
		if !it.wrapBG {
			if bgX < 0 || bgX >= bgW {
				it.bgBuffer[x] = fillColor
				continue
			}
		} else {
			bgX = ((bgX % bgW) + bgW) % bgW
		}
		bgCol := bgX / 8
		tileX := uint8(bgX % 8)

		cell := bgMap.At(bgCol, bgRow)
		sx, sy := cell.Transform(tileX, tileY)
		tile := tileBank.Tiles[cell.TileID]
		pixel := tile.GetPixel(sx, sy)
		subPalette := tileBank.SubPalettes[cell.SubPaletteID]
		color := tileBank.Palette[subPalette[pixel]]

		if color.A() > 0 {
			z := uint8(bank.ZBGTile)
			if cell.IsForeground() {
				z = bank.ZBGForeground
			}
			it.bgBuffer[x] = color.WithZ(z)
		} else {
			it.bgBuffer[x] = fillColor
		}
	}
}

func (it *PixelIterator) preRenderSprites() {
	left, right := it.viewLeft, it.viewRight
	if left < 0 {
		left = 0
	}
	if right >= it.width {
		right = it.width - 1
	}

	for x := left; x <= right && x >= 0; x++ {
		it.spriteBuffer[x] = transparentSprite
	}
	if it.sprGen == nil || it.scanline.Mask == 0 || left > right {
		return
	}

	tileBank := it.banks[it.FGTileBank]

	for i := int(it.scanline.Count) - 1; i >= 0; i-- {
		spriteID := it.scanline.Sprites[i]
		s := it.sprGen.Sprites[spriteID]

		spriteTop := int(s.Y)
		rowInSprite := it.y - spriteTop
		if rowInSprite < 0 || rowInSprite >= 8 {
			continue
		}

		spLeft := int(s.X)
		spRight := spLeft + 7
		if spLeft < left {
			spLeft = left
		}
		if spRight > right {
			spRight = right
		}
		if spLeft > spRight {
			continue
		}

		startSlot := spLeft * SlotsPerLine / it.width
		endSlot := spRight * SlotsPerLine / it.width
		if endSlot >= SlotsPerLine {
			endSlot = SlotsPerLine - 1
		}
		var slotMask uint16
		for sl := startSlot; sl <= endSlot; sl++ {
			slotMask |= 1 << uint(sl)
		}
		if it.scanline.Mask&slotMask == 0 {
			continue
		}

		subPalette := tileBank.SubPalettes[s.SubPaletteID]

		for x := spLeft; x <= spRight; x++ {
			if it.spriteBuffer[x].A() > 0 {
				continue
			}
			colInSprite := uint8(x - spLeft)
			sx, sy := s.Transform(colInSprite, uint8(rowInSprite))
			tile := tileBank.Tiles[s.TileID]
			pixel := tile.GetPixel(sx, sy)
			color := tileBank.Palette[subPalette[pixel]]
			if color.A() > 0 {
				it.spriteBuffer[x] = color.WithZ(bank.ZSprite)
			}
		}
	}
}

func (it *PixelIterator) preRenderLine() {
	it.preRenderBackground()
	it.preRenderSprites()
	it.x = 0
}

// Next yields the next pixel in row-major order along with its (x, y)
// coordinate. ok is false once Width*Height pixels have been produced.
func (it *PixelIterator) Next() (color bank.RGBA32, x, y int, ok bool) {
	if it.done || it.y >= it.height {
		return bank.RGBA32{}, 0, 0, false
	}

	x, y = it.x, it.y

	inViewport := y >= it.viewTop && y <= it.viewBottom
	var out bank.Color
	if inViewport {
		spr := it.spriteBuffer[x]
		bg := it.bgBuffer[x]
		if spr.A() > 0 && spr.Z() >= bg.Z() {
			out = spr
		} else if bg.A() > 0 {
			out = bg
		} else {
			out = it.BgColor.WithZ(bank.ZBGColor)
		}
	} else {
		out = it.BgColor.WithZ(bank.ZBGColor)
	}

	it.x++
	if it.x >= it.width {
		it.x = 0
		it.y++
		if it.y < it.height {
			if it.sprGen != nil && it.y < len(it.sprGen.Scanlines) {
				it.scanline = it.sprGen.Scanlines[it.y]
			} else {
				it.scanline = Scanline{}
			}
			it.callLineIRQ()
			it.preRenderLine()
		} else {
			it.done = true
		}
	}

	return out.ToRGBA32(), x, y, true
}
