package geometry

import (
	"errors"
	"fmt"
)

var ErrWindowNotFound = errors.New("window not found")

// Target selects what to capture. It is either ByID or ByGeometry; a nil
// Target captures the whole virtual screen.
type Target interface {
	isTarget()
}

// ByID captures the on-screen area of an X window.
type ByID struct {
	Window uint32
}

// ByGeometry captures an explicit root-relative rectangle.
type ByGeometry struct {
	Rect Rect
}

func (ByID) isTarget()       {}
func (ByGeometry) isTarget() {}

func (t ByID) String() string       { return fmt.Sprintf("window 0x%x", t.Window) }
func (t ByGeometry) String() string { return FormatGeometry(t.Rect) }

// WindowLocator reports the root-relative rectangle of a window. It returns
// an error wrapping ErrWindowNotFound when the window does not exist.
type WindowLocator interface {
	WindowRect(id uint32) (Rect, error)
}

// Resolve turns a target into a non-empty capture rectangle in root
// coordinates.
func Resolve(t Target, layout Layout, windows WindowLocator) (Rect, error) {
	var r Rect
	switch t := t.(type) {
	case nil:
		r = layout.Bounds()
		if r.Empty() {
			return Rect{}, fmt.Errorf("%w: no active monitors", ErrInvalidGeometry)
		}
	case ByGeometry:
		r = t.Rect
		if r.Empty() {
			return Rect{}, fmt.Errorf("%w: %s: zero width or height", ErrInvalidGeometry, t)
		}
	case ByID:
		if windows == nil {
			return Rect{}, fmt.Errorf("%w: %s: no window locator", ErrWindowNotFound, t)
		}
		wr, err := windows.WindowRect(t.Window)
		if err != nil {
			if errors.Is(err, ErrWindowNotFound) {
				return Rect{}, err
			}
			return Rect{}, fmt.Errorf("%w: %s: %v", ErrWindowNotFound, t, err)
		}
		if wr.Empty() {
			return Rect{}, fmt.Errorf("%w: %s has no visible area", ErrWindowNotFound, t)
		}
		r = wr
	default:
		panic(fmt.Sprintf("geometry: unknown target %T", t))
	}
	return r, nil
}
