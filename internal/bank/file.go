package bank

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var (
	bankMagic    = []byte{'T', 'B', 'N', 'K'}
	errNoMagic   = errors.New("bank: invalid magic in header")
	errBadFormat = errors.New("bank: truncated or malformed bank file")
)

// fileHeader is the on-disk layout a build-time asset pipeline emits and
// the runtime loads back: magic, then the three live-prefix counts,
// followed by the palette, sub-palette and tile arrays at their fixed
// capacities.
type fileHeader struct {
	Magic          [4]byte
	PaletteHead    uint8
	SubPaletteHead uint8
	TileHead       uint8
	_              uint8
}

// LoadFile reads a MemoryBank previously written by WriteTo (or emitted
// by an external asset pipeline using the same layout) from r.
func LoadFile(r io.Reader) (*MemoryBank, error) {
	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, errBadFormat
	}
	if !bytes.Equal(hdr.Magic[:], bankMagic) {
		return nil, errNoMagic
	}

	b := &MemoryBank{
		paletteHead:    hdr.PaletteHead,
		subPaletteHead: hdr.SubPaletteHead,
		tileHead:       hdr.TileHead,
	}
	if err := binary.Read(r, binary.LittleEndian, &b.Palette); err != nil {
		return nil, errBadFormat
	}
	if err := binary.Read(r, binary.LittleEndian, &b.SubPalettes); err != nil {
		return nil, errBadFormat
	}
	if err := binary.Read(r, binary.LittleEndian, &b.Tiles); err != nil {
		return nil, errBadFormat
	}
	return b, nil
}

// WriteTo serializes b in the same layout LoadFile expects.
func (b *MemoryBank) WriteTo(w io.Writer) (int64, error) {
	hdr := fileHeader{
		Magic:          [4]byte{'T', 'B', 'N', 'K'},
		PaletteHead:    b.paletteHead,
		SubPaletteHead: b.subPaletteHead,
		TileHead:       b.tileHead,
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		return 0, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, b.Palette); err != nil {
		return 0, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, b.SubPalettes); err != nil {
		return 0, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, b.Tiles); err != nil {
		return 0, err
	}
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}
