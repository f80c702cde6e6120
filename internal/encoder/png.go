package encoder

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/junsooki/xshot/internal/pixel"
)

// Compression selects the PNG deflate level.
type Compression int

const (
	CompressionDefault Compression = iota
	CompressionSpeed
	CompressionBest
	CompressionNone
)

func (c Compression) String() string {
	switch c {
	case CompressionSpeed:
		return "speed"
	case CompressionBest:
		return "best"
	case CompressionNone:
		return "none"
	}
	return "default"
}

// ParseCompression accepts "default", "speed", "best" and "none".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "default":
		return CompressionDefault, nil
	case "speed", "fast":
		return CompressionSpeed, nil
	case "best":
		return CompressionBest, nil
	case "none":
		return CompressionNone, nil
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}

func (c Compression) level() png.CompressionLevel {
	switch c {
	case CompressionSpeed:
		return png.BestSpeed
	case CompressionBest:
		return png.BestCompression
	case CompressionNone:
		return png.NoCompression
	}
	return png.DefaultCompression
}

// PNGEncoder writes non-interlaced 8-bit PNG images.
type PNGEncoder struct {
	enc png.Encoder
}

// NewPNGEncoder creates a PNG encoder with the given compression level.
func NewPNGEncoder(c Compression) *PNGEncoder {
	return &PNGEncoder{enc: png.Encoder{CompressionLevel: c.level()}}
}

func (e *PNGEncoder) Format() Format { return PNG }

// Encode writes px as PNG. The color type follows the channel count: RGB
// for 3 channels, RGBA for 4 even when every pixel is opaque.
func (e *PNGEncoder) Encode(w io.Writer, px *pixel.Canonical) error {
	if err := px.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	nrgba := toNRGBA(px)
	var img image.Image = nrgba
	if px.HasAlpha() {
		img = withAlpha{nrgba}
	}
	if err := e.enc.Encode(w, img); err != nil {
		return fmt.Errorf("%w: png: %v", ErrEncodeFailed, err)
	}
	return nil
}

// withAlpha keeps image/png from dropping the alpha channel of an opaque
// NRGBA image.
type withAlpha struct{ *image.NRGBA }

func (withAlpha) Opaque() bool { return false }

// toNRGBA wraps or expands px into an NRGBA image. Four-channel buffers are
// wrapped without copying.
func toNRGBA(px *pixel.Canonical) *image.NRGBA {
	rect := image.Rect(0, 0, px.Width, px.Height)
	if px.HasAlpha() {
		return &image.NRGBA{Pix: px.Pix, Stride: px.Stride(), Rect: rect}
	}
	img := image.NewNRGBA(rect)
	for i, j := 0, 0; i < len(px.Pix); i, j = i+3, j+4 {
		img.Pix[j] = px.Pix[i]
		img.Pix[j+1] = px.Pix[i+1]
		img.Pix[j+2] = px.Pix[i+2]
		img.Pix[j+3] = 0xFF
	}
	return img
}
