package geometry

// Monitor is one active display area within the root window.
type Monitor struct {
	Name string
	Rect
}

// Layout is the set of active monitors. Monitors may overlap or leave gaps,
// and the layout need not start at the origin.
type Layout []Monitor

// Bounds returns the bounding box of every monitor in the layout.
func (l Layout) Bounds() Rect {
	var b Rect
	for _, m := range l {
		b = b.Union(m.Rect)
	}
	return b
}

// Covers reports whether at least one monitor contains the pixel (x, y).
func (l Layout) Covers(x, y int) bool {
	for _, m := range l {
		if m.Contains(x, y) {
			return true
		}
	}
	return false
}

// Clip returns the parts of every monitor that fall inside r, dropping
// monitors that miss it entirely.
func (l Layout) Clip(r Rect) []Rect {
	var out []Rect
	for _, m := range l {
		if sub, ok := m.Intersect(r); ok {
			out = append(out, sub)
		}
	}
	return out
}
