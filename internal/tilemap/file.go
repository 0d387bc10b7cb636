package tilemap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var (
	tilemapMagic = []byte{'T', 'M', 'A', 'P'}
	errNoMagic   = errors.New("tilemap: invalid magic in header")
	errBadFormat = errors.New("tilemap: truncated or malformed tilemap file")
)

type fileHeader struct {
	Magic   [4]byte
	Columns int32
	Rows    int32
}

// LoadFile reads a Tilemap in row-major (columns, rows, cells) form.
func LoadFile(r io.Reader) (*Tilemap, error) {
	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, errBadFormat
	}
	if !bytes.Equal(hdr.Magic[:], tilemapMagic) {
		return nil, errNoMagic
	}
	if hdr.Columns <= 0 || hdr.Rows <= 0 {
		return nil, errBadFormat
	}

	tm := New(int(hdr.Columns), int(hdr.Rows))
	if err := binary.Read(r, binary.LittleEndian, tm.Cells); err != nil {
		return nil, errBadFormat
	}
	return tm, nil
}

// WriteTo serializes tm in the layout LoadFile expects.
func (tm *Tilemap) WriteTo(w io.Writer) (int64, error) {
	hdr := fileHeader{
		Magic:   [4]byte{'T', 'M', 'A', 'P'},
		Columns: int32(tm.Columns),
		Rows:    int32(tm.Rows),
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		return 0, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, tm.Cells); err != nil {
		return 0, err
	}
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}
