package capture

import (
	"fmt"

	"github.com/junsooki/xshot/internal/geometry"
)

// Source reads pixels from the root window of a display.
type Source interface {
	// Root returns the root window's extent.
	Root() geometry.Rect
	// GetImage reads r from the root window in one request.
	GetImage(r geometry.Rect) ([]byte, Format, error)
}

// Grab reads rect from src. A rect that leaves the root window is refused
// before anything is sent to the server.
func Grab(src Source, rect geometry.Rect) (*RawFrame, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("%w: empty rectangle %s", ErrCaptureFailed, geometry.FormatGeometry(rect))
	}
	root := src.Root()
	if !rect.In(root) {
		return nil, fmt.Errorf("%w: %s exceeds root window %s",
			ErrCaptureFailed, geometry.FormatGeometry(rect), geometry.FormatGeometry(root))
	}

	data, format, err := src.GetImage(rect)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}
	if format.BitsPerPixel <= 0 {
		return nil, fmt.Errorf("%w: server reported %d bits per pixel", ErrCaptureFailed, format.BitsPerPixel)
	}

	stride := format.Stride(rect.W)
	if len(data) != stride*rect.H {
		return nil, fmt.Errorf("%w: got %d bytes, want %d (%d rows of %d)",
			ErrCaptureFailed, len(data), stride*rect.H, rect.H, stride)
	}

	return &RawFrame{
		Width:  rect.W,
		Height: rect.H,
		Stride: stride,
		Format: format,
		Data:   data,
	}, nil
}
