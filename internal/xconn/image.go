package xconn

import (
	"fmt"

	"github.com/jezek/xgb/xproto"

	"github.com/junsooki/xshot/internal/capture"
	"github.com/junsooki/xshot/internal/geometry"
)

// GetImage reads r from the root window as a ZPixmap in a single request.
func (c *Conn) GetImage(r geometry.Rect) ([]byte, capture.Format, error) {
	reply, err := xproto.GetImage(c.conn, xproto.ImageFormatZPixmap, xproto.Drawable(c.screen.Root),
		int16(r.X), int16(r.Y), uint16(r.W), uint16(r.H), ^uint32(0)).Reply()
	if err != nil {
		return nil, capture.Format{}, fmt.Errorf("get image %s: %w", geometry.FormatGeometry(r), err)
	}
	f, err := pixelFormat(c.setup, c.screen, reply.Depth, reply.Visual)
	if err != nil {
		return nil, capture.Format{}, err
	}
	return reply.Data, f, nil
}

// pixelFormat describes ZPixmap data of the given depth and visual using
// the server's setup information.
func pixelFormat(setup *xproto.SetupInfo, screen *xproto.ScreenInfo, depth byte, visual xproto.Visualid) (capture.Format, error) {
	f := capture.Format{
		Depth:     int(depth),
		ByteOrder: capture.ByteOrder(setup.ImageByteOrder),
	}

	found := false
	for _, pf := range setup.PixmapFormats {
		if pf.Depth == depth {
			f.BitsPerPixel = int(pf.BitsPerPixel)
			f.ScanlinePad = int(pf.ScanlinePad)
			found = true
			break
		}
	}
	if !found {
		return capture.Format{}, fmt.Errorf("no pixmap format for depth %d", depth)
	}

	if visual == 0 {
		visual = screen.RootVisual
	}
	vi, ok := findVisual(screen, visual)
	if !ok {
		return capture.Format{}, fmt.Errorf("visual 0x%x not found on screen", visual)
	}
	f.RedMask, f.GreenMask, f.BlueMask = vi.RedMask, vi.GreenMask, vi.BlueMask

	// a 32-bit visual keeps alpha in the byte the color masks leave free
	if f.Depth == 32 && f.BitsPerPixel == 32 {
		if _, err := f.ByteOffset(f.ExtraMask()); err == nil {
			f.Alpha = true
		}
	}
	return f, nil
}

func findVisual(screen *xproto.ScreenInfo, id xproto.Visualid) (xproto.VisualInfo, bool) {
	for _, d := range screen.AllowedDepths {
		for _, v := range d.Visuals {
			if v.VisualId == id {
				return v, true
			}
		}
	}
	return xproto.VisualInfo{}, false
}
