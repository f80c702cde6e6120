// Package shot runs one screenshot from target resolution to the sink.
package shot

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/junsooki/xshot/internal/capture"
	"github.com/junsooki/xshot/internal/encoder"
	"github.com/junsooki/xshot/internal/geometry"
	"github.com/junsooki/xshot/internal/pixel"
	"github.com/junsooki/xshot/internal/sink"
)

// Display is the display-server side of a capture.
type Display interface {
	capture.Source
	geometry.WindowLocator
	Monitors() (geometry.Layout, error)
}

// Request describes one capture.
type Request struct {
	Target  geometry.Target // nil captures every monitor
	Encoder encoder.Encoder
	Opaque  bool

	// Review, when set, sees the normalized pixels before encoding. An
	// error aborts the run.
	Review func(px *pixel.Canonical) error
}

// Result reports what was captured.
type Result struct {
	ID      string
	Rect    geometry.Rect
	Blanked int
	Pixels  *pixel.Canonical
	Size    int
}

// Run captures, masks, normalizes and encodes one image, then writes it to
// out. Any stage error ends the run; nothing reaches out unless every
// stage before the write succeeded.
func Run(d Display, req Request, out sink.Sink) (*Result, error) {
	res := &Result{ID: uuid.NewString()}
	logf := func(format string, args ...any) {
		log.Printf("%s: "+format, append([]any{res.ID[:8]}, args...)...)
	}
	start := time.Now()

	layout, err := d.Monitors()
	if err != nil {
		return nil, fmt.Errorf("query monitors: %w", err)
	}
	for _, m := range layout {
		logf("monitor %s %s", m.Name, geometry.FormatGeometry(m.Rect))
	}

	rect, err := geometry.Resolve(req.Target, layout, d)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}
	res.Rect = rect
	logf("capturing %s", geometry.FormatGeometry(rect))

	frame, err := capture.Grab(d, rect)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	logf("frame depth %d, %d bpp, %s, stride %d",
		frame.Format.Depth, frame.Format.BitsPerPixel, frame.Format.ByteOrder, frame.Stride)

	res.Blanked = capture.Mask(frame, rect, layout)
	if res.Blanked > 0 {
		logf("masked %d pixels outside monitors", res.Blanked)
	}

	px, err := pixel.Normalize(frame, pixel.Options{Opaque: req.Opaque})
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	res.Pixels = px

	if req.Review != nil {
		if err := req.Review(px); err != nil {
			return nil, fmt.Errorf("review: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := req.Encoder.Encode(&buf, px); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	res.Size = buf.Len()
	logf("encoded %s, %d channels, %d bytes in %s",
		req.Encoder.Format(), px.Channels, res.Size, time.Since(start).Round(time.Millisecond))

	meta := sink.Meta{ID: res.ID, Format: req.Encoder.Format().String(), Width: px.Width, Height: px.Height}
	if err := out.Write(meta, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	return res, nil
}
