package display

import (
	"errors"
	"math"

	"github.com/junsooki/xshot/internal/pixel"
)

// ErrDiscarded is returned by Run when the user closes the preview without
// accepting the image.
var ErrDiscarded = errors.New("preview discarded")

// Display shows an image until the user closes it.
type Display interface {
	Run() error
}

// premultiplied returns px as premultiplied RGBA, the layout Ebitengine
// expects for WritePixels.
func premultiplied(px *pixel.Canonical) []byte {
	out := make([]byte, px.Width*px.Height*4)
	for i, j := 0, 0; j < len(out); i, j = i+px.Channels, j+4 {
		if px.Channels == 3 {
			out[j], out[j+1], out[j+2], out[j+3] = px.Pix[i], px.Pix[i+1], px.Pix[i+2], 0xFF
			continue
		}
		a := uint16(px.Pix[i+3])
		out[j] = byte(uint16(px.Pix[i]) * a / 0xFF)
		out[j+1] = byte(uint16(px.Pix[i+1]) * a / 0xFF)
		out[j+2] = byte(uint16(px.Pix[i+2]) * a / 0xFF)
		out[j+3] = byte(a)
	}
	return out
}

// aspectFitTransform returns scale and offsets to fit frame into view with letterboxing.
func aspectFitTransform(viewW, viewH, frameW, frameH float64) (scale, offsetX, offsetY float64) {
	scale = math.Min(viewW/frameW, viewH/frameH)
	offsetX = (viewW - frameW*scale) / 2
	offsetY = (viewH - frameH*scale) / 2
	return
}

// windowSize shrinks w x h to fit within maxW x maxH, keeping the aspect ratio.
func windowSize(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(1, int(math.Round(float64(w)*scale))), max(1, int(math.Round(float64(h)*scale)))
}
