package capture

import (
	"slices"

	"github.com/junsooki/xshot/internal/geometry"
)

// span is a half-open run of columns [x0, x1) in frame coordinates.
type span struct{ x0, x1 int }

// Mask blanks every pixel of frame that no monitor in layout backs. rect is
// the frame's position in root coordinates. Blanked pixels have every byte
// zeroed, so color is black and any alpha is transparent. It returns the
// number of blanked pixels and records the covered areas on the frame.
func Mask(frame *RawFrame, rect geometry.Rect, layout geometry.Layout) int {
	var subs []geometry.Rect
	for _, r := range layout.Clip(rect) {
		r.X -= rect.X
		r.Y -= rect.Y
		subs = append(subs, r)
	}

	bpp := frame.Format.BytesPerPixel()
	blanked := 0
	for y := 0; y < frame.Height; y++ {
		row := frame.Data[y*frame.Stride:]
		x := 0
		for _, s := range coveredSpans(subs, y, frame.Width) {
			blanked += s.x0 - x
			clear(row[x*bpp : s.x0*bpp])
			x = s.x1
		}
		blanked += frame.Width - x
		clear(row[x*bpp : frame.Width*bpp])
	}

	frame.Covered = subs
	frame.Blanked = blanked
	return blanked
}

// coveredSpans returns the sorted, merged column runs of row y covered by
// subs, clipped to [0, width).
func coveredSpans(subs []geometry.Rect, y, width int) []span {
	var spans []span
	for _, r := range subs {
		if y < r.Y || y >= r.Y+r.H {
			continue
		}
		spans = append(spans, span{max(r.X, 0), min(r.X+r.W, width)})
	}
	if len(spans) < 2 {
		return spans
	}
	slices.SortFunc(spans, func(a, b span) int { return a.x0 - b.x0 })
	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.x0 <= last.x1 {
			last.x1 = max(last.x1, s.x1)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
