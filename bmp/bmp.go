// Package bmp writes 24-bit uncompressed Windows bitmaps.
//
// golang.org/x/image/bmp only writes bottom-up files without a resolution, so
// frames are serialized here with an explicit header.
package bmp

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	mandel "github.com/marben/mandex"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	headerLen     = fileHeaderLen + infoHeaderLen

	// 72 dpi
	pixelsPerMeter = 2835
)

var ErrSize = errors.New("bmp: pixel count does not match dimensions")

// header is the BITMAPFILEHEADER followed by the BITMAPINFOHEADER.
type header struct {
	Signature  [2]byte
	FileSize   uint32
	Reserved   uint32
	PixOffset  uint32
	InfoSize   uint32
	Width      int32
	Height     int32
	Planes     uint16
	BitCount   uint16
	Compress   uint32
	ImageSize  uint32
	XPelsMeter int32
	YPelsMeter int32
	ClrUsed    uint32
	ClrImport  uint32
}

// stride is the padded length of one row of BGR pixels.
func stride(width int) int {
	return (3*width + 3) &^ 3
}

// Encode writes pix, a row-major width x height frame, as a 24-bit BMP.
// topDown selects a negative height, storing rows in the order of pix.
// Alpha is dropped.
func Encode(w io.Writer, pix []mandel.Color, width, height int, topDown bool) error {
	if width <= 0 || height <= 0 || len(pix) != width*height {
		return fmt.Errorf("%w: %d pixels for %dx%d", ErrSize, len(pix), width, height)
	}
	rowLen := stride(width)
	imageSize := rowLen * height

	h := header{
		Signature:  [2]byte{'B', 'M'},
		FileSize:   uint32(headerLen + imageSize),
		PixOffset:  headerLen,
		InfoSize:   infoHeaderLen,
		Width:      int32(width),
		Height:     int32(height),
		Planes:     1,
		BitCount:   24,
		ImageSize:  uint32(imageSize),
		XPelsMeter: pixelsPerMeter,
		YPelsMeter: pixelsPerMeter,
	}
	if topDown {
		h.Height = -h.Height
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("bmp: header: %w", err)
	}

	row := make([]byte, rowLen)
	for i := range height {
		y := height - 1 - i
		if topDown {
			y = i
		}
		for x, c := range pix[y*width : (y+1)*width] {
			r, g, b, _ := c.Bytes()
			row[3*x], row[3*x+1], row[3*x+2] = b, g, r
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("bmp: row %d: %w", y, err)
		}
	}
	return bw.Flush()
}

// Marshal returns the BMP encoding of pix.
func Marshal(pix []mandel.Color, width, height int, topDown bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(headerLen + stride(width)*height)
	if err := Encode(&buf, pix, width, height, topDown); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes f to path.
func Save(path string, f *mandel.Frame, topDown bool) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(out, f.Pix, f.Width, f.Height, topDown); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
