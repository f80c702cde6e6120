package xconn

import (
	"errors"
	"fmt"

	"github.com/jezek/xgb/xproto"

	"github.com/junsooki/xshot/internal/geometry"
)

// WindowRect returns the inside area of window id in root coordinates. The
// window's position is relative to its parent, so it is translated through
// the parent into root space.
func (c *Conn) WindowRect(id uint32) (geometry.Rect, error) {
	win := xproto.Window(id)

	geom, err := xproto.GetGeometry(c.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return geometry.Rect{}, windowErr(id, "geometry", err)
	}
	tree, err := xproto.QueryTree(c.conn, win).Reply()
	if err != nil {
		return geometry.Rect{}, windowErr(id, "query tree", err)
	}

	bw := int16(geom.BorderWidth)
	x, y := geom.X+bw, geom.Y+bw
	if tree.Parent != 0 && tree.Parent != c.screen.Root {
		tr, err := xproto.TranslateCoordinates(c.conn, tree.Parent, c.screen.Root, x, y).Reply()
		if err != nil {
			return geometry.Rect{}, windowErr(id, "translate coordinates", err)
		}
		x, y = tr.DstX, tr.DstY
	}

	return geometry.Rect{X: int(x), Y: int(y), W: int(geom.Width), H: int(geom.Height)}, nil
}

// windowErr maps X errors that mean the window is gone to
// geometry.ErrWindowNotFound. The window can disappear between any two
// requests, so every step goes through here.
func windowErr(id uint32, step string, err error) error {
	if isMissingWindow(err) {
		return fmt.Errorf("%w: 0x%x: %s: %v", geometry.ErrWindowNotFound, id, step, err)
	}
	return fmt.Errorf("window 0x%x: %s: %w", id, step, err)
}

func isMissingWindow(err error) bool {
	var we xproto.WindowError
	var de xproto.DrawableError
	return errors.As(err, &we) || errors.As(err, &de)
}
