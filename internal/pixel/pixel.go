// Package pixel converts server framebuffers into a packed RGB or RGBA
// layout that the encoders consume.
package pixel

import (
	"errors"
	"fmt"

	"github.com/junsooki/xshot/internal/capture"
	"github.com/junsooki/xshot/internal/geometry"
)

var ErrUnsupportedFormat = errors.New("unsupported pixel format, only 24/32 bit (A)RGB8 is supported")

// Canonical is a tightly packed, row-major R,G,B[,A] buffer.
type Canonical struct {
	Width, Height int
	Channels      int // 3 or 4
	Pix           []byte
}

// New allocates a zeroed buffer.
func New(width, height, channels int) *Canonical {
	return &Canonical{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}
}

// HasAlpha reports whether the buffer carries an alpha channel.
func (c *Canonical) HasAlpha() bool { return c.Channels == 4 }

// Stride returns the row length in bytes.
func (c *Canonical) Stride() int { return c.Width * c.Channels }

// Validate checks the buffer length against its dimensions.
func (c *Canonical) Validate() error {
	if c.Channels != 3 && c.Channels != 4 {
		return fmt.Errorf("pixel: %d channels, want 3 or 4", c.Channels)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("pixel: empty image %dx%d", c.Width, c.Height)
	}
	if want := c.Width * c.Height * c.Channels; len(c.Pix) != want {
		return fmt.Errorf("pixel: buffer holds %d bytes, want %d", len(c.Pix), want)
	}
	return nil
}

// Options controls normalization.
type Options struct {
	// Opaque drops the alpha channel even when the frame has one.
	Opaque bool
}

// layout holds per-channel byte offsets within one stored pixel.
type layout struct {
	size       int
	r, g, b, a int
	alpha      bool
}

func layoutOf(f capture.Format) (layout, error) {
	switch {
	case f.Depth == 24 && f.BitsPerPixel == 24:
	case (f.Depth == 24 || f.Depth == 32) && f.BitsPerPixel == 32:
	default:
		return layout{}, fmt.Errorf("%w: depth %d at %d bits per pixel", ErrUnsupportedFormat, f.Depth, f.BitsPerPixel)
	}

	l := layout{size: f.BytesPerPixel()}
	var err error
	if l.r, err = f.ByteOffset(f.RedMask); err != nil {
		return layout{}, fmt.Errorf("%w: red: %v", ErrUnsupportedFormat, err)
	}
	if l.g, err = f.ByteOffset(f.GreenMask); err != nil {
		return layout{}, fmt.Errorf("%w: green: %v", ErrUnsupportedFormat, err)
	}
	if l.b, err = f.ByteOffset(f.BlueMask); err != nil {
		return layout{}, fmt.Errorf("%w: blue: %v", ErrUnsupportedFormat, err)
	}
	if f.BitsPerPixel == 32 && f.Alpha {
		if l.a, err = f.ByteOffset(f.ExtraMask()); err != nil {
			return layout{}, fmt.Errorf("%w: alpha: %v", ErrUnsupportedFormat, err)
		}
		l.alpha = true
	}
	return l, nil
}

// Normalize converts a masked frame into a Canonical buffer. The alpha
// channel comes from the frame when it has one; otherwise a frame with
// blanked pixels gets alpha 0xFF inside its covered areas and 0 elsewhere.
// Fully covered frames without alpha, or any frame when opts.Opaque is set,
// produce 3 channels.
func Normalize(frame *capture.RawFrame, opts Options) (*Canonical, error) {
	l, err := layoutOf(frame.Format)
	if err != nil {
		return nil, err
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil, fmt.Errorf("pixel: empty frame %dx%d", frame.Width, frame.Height)
	}
	if frame.Stride < frame.Width*l.size || len(frame.Data) != frame.Stride*frame.Height {
		return nil, fmt.Errorf("pixel: frame holds %d bytes, stride %d for %dx%d",
			len(frame.Data), frame.Stride, frame.Width, frame.Height)
	}

	channels, coverage := 3, false
	switch {
	case opts.Opaque:
	case l.alpha:
		channels = 4
	case frame.Blanked > 0:
		channels, coverage = 4, true
	}
	out := New(frame.Width, frame.Height, channels)

	i := 0
	for y := 0; y < frame.Height; y++ {
		row := frame.Data[y*frame.Stride : y*frame.Stride+frame.Width*l.size]
		for x := 0; x < len(row); x += l.size {
			px := row[x : x+l.size]
			out.Pix[i] = px[l.r]
			out.Pix[i+1] = px[l.g]
			out.Pix[i+2] = px[l.b]
			if l.alpha && channels == 4 {
				out.Pix[i+3] = px[l.a]
			}
			i += channels
		}
	}
	if coverage {
		coverageAlpha(out, frame.Covered)
	}
	return out, nil
}

// coverageAlpha sets alpha to 0xFF inside every covered rect of out.
func coverageAlpha(out *Canonical, covered []geometry.Rect) {
	bounds := geometry.Rect{W: out.Width, H: out.Height}
	for _, r := range covered {
		r, ok := r.Intersect(bounds)
		if !ok {
			continue
		}
		for y := r.Y; y < r.Y+r.H; y++ {
			row := out.Pix[y*out.Stride():]
			for x := r.X; x < r.X+r.W; x++ {
				row[x*4+3] = 0xFF
			}
		}
	}
}
