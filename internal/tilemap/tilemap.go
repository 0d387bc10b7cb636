// Package tilemap implements the 2D grid of tile cells the video
// pipeline samples its background plane from.
package tilemap

import "github.com/flga/tilechip/internal/bank"

// Cell flag bits, packed into the 3rd byte of each 4-byte cell.
const (
	FlagFlipX        = 1 << 0
	FlagFlipY        = 1 << 1
	FlagRotate90     = 1 << 2
	FlagIsForeground = 1 << 3
)

// Cell is one tilemap entry: fixed at 4 bytes.
type Cell struct {
	TileID       bank.TileID
	SubPaletteID bank.SubPaletteID
	Flags        uint8
	_            uint8
}

// FlipX, FlipY, Rotate90, IsForeground read the cell's transform/layer
// bits.
func (c Cell) FlipX() bool        { return c.Flags&FlagFlipX != 0 }
func (c Cell) FlipY() bool        { return c.Flags&FlagFlipY != 0 }
func (c Cell) Rotate90() bool     { return c.Flags&FlagRotate90 != 0 }
func (c Cell) IsForeground() bool { return c.Flags&FlagIsForeground != 0 }

// Transform applies, in order, rotate90 then flip_x then flip_y to map a
// destination pixel coordinate within the tile back to its source tile
// coordinate. Both build-time asset dedup and the pixel pipeline use
// this exact order.
func (c Cell) Transform(x, y uint8) (sx, sy uint8) {
	sx, sy = x, y
	if c.Rotate90() {
		sx, sy = sy, 7-sx
	}
	if c.FlipX() {
		sx = 7 - sx
	}
	if c.FlipY() {
		sy = 7 - sy
	}
	return sx, sy
}

// Tilemap is a columns x rows grid of Cells in row-major order, either a
// build-time constant or an arena-backed mutable instance; both expose
// the same read accessors.
type Tilemap struct {
	Columns, Rows int
	Cells         []Cell
}

// New allocates a Tilemap of the given dimensions, all cells zeroed
// (tile_id=0, meaning whichever tile the caller treats as "empty").
func New(columns, rows int) *Tilemap {
	return &Tilemap{
		Columns: columns,
		Rows:    rows,
		Cells:   make([]Cell, columns*rows),
	}
}

// At returns the cell at (col, row).
func (tm *Tilemap) At(col, row int) Cell {
	return tm.Cells[row*tm.Columns+col]
}

// Set writes the cell at (col, row).
func (tm *Tilemap) Set(col, row int, cell Cell) {
	tm.Cells[row*tm.Columns+col] = cell
}

// Width, Height return the tilemap's pixel dimensions, assuming 8x8
// tiles.
func (tm *Tilemap) Width() int  { return tm.Columns * 8 }
func (tm *Tilemap) Height() int { return tm.Rows * 8 }
