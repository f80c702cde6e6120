package capture

import (
	"errors"
	"fmt"

	"github.com/junsooki/xshot/internal/geometry"
)

var ErrCaptureFailed = errors.New("capture failed")

// ByteOrder is the server's image byte order.
type ByteOrder uint8

const (
	LSBFirst ByteOrder = 0
	MSBFirst ByteOrder = 1
)

func (o ByteOrder) String() string {
	if o == MSBFirst {
		return "msb-first"
	}
	return "lsb-first"
}

// Format describes how the server packed the pixels of a frame.
type Format struct {
	Depth        int // significant bits per pixel
	BitsPerPixel int // storage bits per pixel
	ScanlinePad  int // row alignment in bits
	ByteOrder    ByteOrder

	RedMask, GreenMask, BlueMask uint32

	// Alpha is set when the bits outside the color masks carry alpha
	// rather than padding.
	Alpha bool
}

// BytesPerPixel returns the storage size of one pixel in bytes.
func (f Format) BytesPerPixel() int {
	return (f.BitsPerPixel + 7) / 8
}

// Stride returns the row length in bytes for a frame of the given width.
func (f Format) Stride(width int) int {
	bits := width * f.BitsPerPixel
	pad := f.ScanlinePad
	if pad <= 0 {
		pad = 8
	}
	return ((bits + pad - 1) / pad) * pad / 8
}

// ExtraMask returns the bits of a pixel not covered by any color mask.
func (f Format) ExtraMask() uint32 {
	var all uint32 = 0xFFFFFFFF
	if f.BitsPerPixel < 32 {
		all = 1<<f.BitsPerPixel - 1
	}
	return all &^ (f.RedMask | f.GreenMask | f.BlueMask)
}

// ByteOffset returns the index within a stored pixel of the byte selected by
// mask. mask must cover exactly one whole byte.
func (f Format) ByteOffset(mask uint32) (int, error) {
	bpp := f.BytesPerPixel()
	for i := 0; i < bpp; i++ {
		if mask == 0xFF<<(8*i) {
			if f.ByteOrder == MSBFirst {
				return bpp - 1 - i, nil
			}
			return i, nil
		}
	}
	return 0, fmt.Errorf("mask 0x%08x is not a single byte of a %d-bit pixel", mask, f.BitsPerPixel)
}

// RawFrame is a pixel buffer exactly as the server returned it.
type RawFrame struct {
	Width, Height int
	Stride        int
	Format        Format
	Data          []byte

	// Covered holds the frame-relative areas backed by a monitor and
	// Blanked the number of pixels outside them. Both are set by Mask.
	Covered []geometry.Rect
	Blanked int
}

// PixelOffset returns the index of the first byte of pixel (x, y).
func (f *RawFrame) PixelOffset(x, y int) int {
	return y*f.Stride + x*f.Format.BytesPerPixel()
}
