package video

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/flga/tilechip/internal/bank"
	"github.com/flga/tilechip/internal/tilemap"
)

// SnapshotScene runs a PixelIterator over a single static frame (no IRQ
// callback) and writes it as a PNG, scaled by the given integer zoom factor
// using nearest-neighbor interpolation so individual pixels stay crisp.
// Intended for debug/documentation tooling that wants a quick look at a
// bank+tilemap combination without driving a window.
func SnapshotScene(w io.Writer, banks []*bank.MemoryBank, bgMaps []*tilemap.Tilemap, sprGen *SpriteGenerator, cfg Config, zoom int) error {
	it := New(banks, bgMaps, sprGen, cfg, nil)

	src := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	for {
		c, x, y, ok := it.Next()
		if !ok {
			break
		}
		src.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
	}

	if zoom < 1 {
		zoom = 1
	}
	if zoom == 1 {
		return png.Encode(w, src)
	}

	dst := image.NewRGBA(image.Rect(0, 0, cfg.Width*zoom, cfg.Height*zoom))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return png.Encode(w, dst)
}
