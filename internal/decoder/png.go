package decoder

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/junsooki/xshot/internal/pixel"
)

// PNGDecoder decodes PNG into RGB, or RGBA when the file's color type
// carries alpha (an alpha channel, tRNS or a translucent palette).
type PNGDecoder struct{}

func NewPNGDecoder() *PNGDecoder {
	return &PNGDecoder{}
}

func (d *PNGDecoder) Decode(r io.Reader) (*pixel.Canonical, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	b := img.Bounds()
	channels := 3
	if hasAlpha(img) {
		channels = 4
	}
	out := pixel.New(b.Dx(), b.Dy(), channels)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = c.R, c.G, c.B
			if channels == 4 {
				out.Pix[i+3] = c.A
			}
			i += channels
		}
	}
	return out, nil
}

// hasAlpha reports whether image/png decoded img from a color type with
// alpha. Truecolor and gray images without tRNS come back as RGBA, RGBA64,
// Gray or Gray16.
func hasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.NRGBA, *image.NRGBA64:
		return true
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xFFFF {
				return true
			}
		}
	}
	return false
}
