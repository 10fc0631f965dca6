package bmp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	mandel "github.com/marben/mandex"
	xbmp "golang.org/x/image/bmp"
)

func testFrame(w, h int) *mandel.Frame {
	f := mandel.NewFrame(w, h)
	for y := range h {
		for x := range w {
			f.Pix[y*w+x] = mandel.RGB(uint8(x*40), uint8(y*60), uint8(x+y))
		}
	}
	return f
}

func TestMarshal_Header(t *testing.T) {
	const w, h = 5, 3 // 15 bytes per row, padded to 16
	data, err := Marshal(testFrame(w, h).Pix, w, h, true)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) != 54+16*h {
		t.Fatalf("len = %d, want %d", len(data), 54+16*h)
	}

	le := binary.LittleEndian
	checks := []struct {
		name string
		got  int64
		want int64
	}{
		{"file size", int64(le.Uint32(data[2:])), int64(len(data))},
		{"reserved", int64(le.Uint32(data[6:])), 0},
		{"offset", int64(le.Uint32(data[10:])), 54},
		{"info size", int64(le.Uint32(data[14:])), 40},
		{"width", int64(int32(le.Uint32(data[18:]))), w},
		{"height", int64(int32(le.Uint32(data[22:]))), -h},
		{"planes", int64(le.Uint16(data[26:])), 1},
		{"bpp", int64(le.Uint16(data[28:])), 24},
		{"compression", int64(le.Uint32(data[30:])), 0},
		{"image size", int64(le.Uint32(data[34:])), 16 * h},
		{"x ppm", int64(le.Uint32(data[38:])), 2835},
		{"y ppm", int64(le.Uint32(data[42:])), 2835},
		{"colors", int64(le.Uint32(data[46:])), 0},
		{"important", int64(le.Uint32(data[50:])), 0},
	}
	if string(data[:2]) != "BM" {
		t.Errorf("signature = %q", data[:2])
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	// first pixel, BGR
	r, g, b, _ := mandel.RGB(0, 0, 0).Bytes()
	if !bytes.Equal(data[54:57], []byte{b, g, r}) {
		t.Errorf("first pixel = %v", data[54:57])
	}
	if data[54+15] != 0 {
		t.Errorf("row padding = %d, want 0", data[54+15])
	}
}

func TestEncode_Decodes(t *testing.T) {
	for _, topDown := range []bool{false, true} {
		f := testFrame(7, 4)
		data, err := Marshal(f.Pix, f.Width, f.Height, topDown)
		if err != nil {
			t.Fatalf("Marshal(topDown=%v): %v", topDown, err)
		}
		img, err := xbmp.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("Decode(topDown=%v): %v", topDown, err)
		}
		if img.Bounds().Dx() != f.Width || img.Bounds().Dy() != f.Height {
			t.Fatalf("decoded bounds = %v", img.Bounds())
		}
		for y := range f.Height {
			for x := range f.Width {
				if got, want := mandel.ColorOf(img.At(x, y)), f.Pix[y*f.Width+x]; got != want {
					t.Fatalf("topDown=%v (%d,%d) = %#08x, want %#08x", topDown, x, y, uint32(got), uint32(want))
				}
			}
		}
	}
}

func TestEncode_SizeMismatch(t *testing.T) {
	if _, err := Marshal(make([]mandel.Color, 5), 2, 3, false); !errors.Is(err, ErrSize) {
		t.Errorf("Marshal = %v, want ErrSize", err)
	}
	if _, err := Marshal(nil, 0, 0, false); !errors.Is(err, ErrSize) {
		t.Errorf("Marshal(0x0) = %v, want ErrSize", err)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.bmp")
	f := testFrame(3, 3)
	if err := Save(path, f, true); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "missing", "x.bmp"), f, true); err == nil {
		t.Error("Save into a missing directory succeeded")
	}
}
