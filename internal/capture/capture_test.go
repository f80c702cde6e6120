package capture

import (
	"bytes"
	"errors"
	"testing"

	"github.com/junsooki/xshot/internal/geometry"
)

// bgrx is the common little-endian 24-bit depth, 32 bits per pixel format.
var bgrx = Format{
	Depth:        24,
	BitsPerPixel: 32,
	ScanlinePad:  32,
	ByteOrder:    LSBFirst,
	RedMask:      0xFF0000,
	GreenMask:    0x00FF00,
	BlueMask:     0x0000FF,
}

type fakeSource struct {
	root   geometry.Rect
	format Format
	data   []byte
	err    error
	calls  int
}

func (s *fakeSource) Root() geometry.Rect { return s.root }

func (s *fakeSource) GetImage(r geometry.Rect) ([]byte, Format, error) {
	s.calls++
	if s.err != nil {
		return nil, Format{}, s.err
	}
	if s.data != nil {
		return s.data, s.format, nil
	}
	return bytes.Repeat([]byte{0x11}, s.format.Stride(r.W)*r.H), s.format, nil
}

func filledFrame(w, h int, f Format) *RawFrame {
	stride := f.Stride(w)
	return &RawFrame{
		Width:  w,
		Height: h,
		Stride: stride,
		Format: f,
		Data:   bytes.Repeat([]byte{0xAB}, stride*h),
	}
}

func TestStride(t *testing.T) {
	tests := []struct {
		f     Format
		width int
		want  int
	}{
		{bgrx, 10, 40},
		{Format{Depth: 24, BitsPerPixel: 24, ScanlinePad: 32}, 3, 12},
		{Format{Depth: 24, BitsPerPixel: 24, ScanlinePad: 32}, 4, 12},
		{Format{Depth: 24, BitsPerPixel: 24, ScanlinePad: 8}, 3, 9},
		{Format{Depth: 16, BitsPerPixel: 16, ScanlinePad: 32}, 3, 8},
	}
	for _, tt := range tests {
		if got := tt.f.Stride(tt.width); got != tt.want {
			t.Errorf("%+v width %d: got %d, want %d", tt.f, tt.width, got, tt.want)
		}
	}
}

func TestByteOffset(t *testing.T) {
	msb := bgrx
	msb.ByteOrder = MSBFirst
	tests := []struct {
		f    Format
		mask uint32
		want int
	}{
		{bgrx, 0x0000FF, 0},
		{bgrx, 0xFF0000, 2},
		{bgrx, 0xFF000000, 3},
		{msb, 0x0000FF, 3},
		{msb, 0xFF000000, 0},
	}
	for _, tt := range tests {
		got, err := tt.f.ByteOffset(tt.mask)
		if err != nil {
			t.Fatalf("mask 0x%x: %v", tt.mask, err)
		}
		if got != tt.want {
			t.Errorf("mask 0x%x order %s: got %d, want %d", tt.mask, tt.f.ByteOrder, got, tt.want)
		}
	}
	if _, err := bgrx.ByteOffset(0x0FF0); err == nil {
		t.Fatal("expected error for unaligned mask")
	}
	if got := bgrx.ExtraMask(); got != 0xFF000000 {
		t.Fatalf("extra mask: got 0x%x", got)
	}
}

func TestGrab(t *testing.T) {
	src := &fakeSource{root: geometry.Rect{W: 100, H: 50}, format: bgrx}
	frame, err := Grab(src, geometry.Rect{X: 10, Y: 10, W: 20, H: 5})
	if err != nil {
		t.Fatalf("grab: %v", err)
	}
	if frame.Width != 20 || frame.Height != 5 || frame.Stride != 80 {
		t.Fatalf("unexpected frame %dx%d stride %d", frame.Width, frame.Height, frame.Stride)
	}
	if len(frame.Data) != frame.Stride*frame.Height {
		t.Fatalf("data length %d", len(frame.Data))
	}
	if src.calls != 1 {
		t.Fatalf("calls: got %d, want 1", src.calls)
	}
}

func TestGrabOutsideRoot(t *testing.T) {
	src := &fakeSource{root: geometry.Rect{W: 100, H: 50}, format: bgrx}
	for _, r := range []geometry.Rect{
		{X: 90, Y: 0, W: 20, H: 10},
		{X: 0, Y: 45, W: 10, H: 10},
		{X: 0, Y: 0, W: 101, H: 50},
	} {
		if _, err := Grab(src, r); !errors.Is(err, ErrCaptureFailed) {
			t.Fatalf("%+v: got %v, want ErrCaptureFailed", r, err)
		}
	}
	if src.calls != 0 {
		t.Fatalf("server was queried %d times", src.calls)
	}
}

func TestGrabServerError(t *testing.T) {
	src := &fakeSource{root: geometry.Rect{W: 100, H: 50}, format: bgrx, err: errors.New("BadMatch")}
	if _, err := Grab(src, geometry.Rect{W: 10, H: 10}); !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("got %v, want ErrCaptureFailed", err)
	}
}

func TestGrabShortReply(t *testing.T) {
	src := &fakeSource{root: geometry.Rect{W: 100, H: 50}, format: bgrx, data: make([]byte, 10)}
	if _, err := Grab(src, geometry.Rect{W: 10, H: 10}); !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("got %v, want ErrCaptureFailed", err)
	}
}

func TestMaskFullCoverage(t *testing.T) {
	layout := geometry.Layout{
		{Rect: geometry.Rect{X: 0, Y: 0, W: 1920, H: 1080}},
		{Rect: geometry.Rect{X: 1920, Y: 0, W: 1920, H: 1080}},
	}
	rect := geometry.Rect{W: 3840, H: 1080}
	frame := filledFrame(rect.W, rect.H, bgrx)
	want := bytes.Clone(frame.Data)

	if n := Mask(frame, rect, layout); n != 0 {
		t.Fatalf("blanked %d pixels, want 0", n)
	}
	if !bytes.Equal(frame.Data, want) {
		t.Fatal("frame changed")
	}
	if frame.Blanked != 0 || len(frame.Covered) != 2 {
		t.Fatalf("blanked %d covered %v", frame.Blanked, frame.Covered)
	}
}

func TestMaskMissingHead(t *testing.T) {
	layout := geometry.Layout{{Rect: geometry.Rect{X: 0, Y: 0, W: 1920, H: 1080}}}
	rect := geometry.Rect{W: 3840, H: 1080}
	frame := filledFrame(rect.W, rect.H, bgrx)

	if n, want := Mask(frame, rect, layout), 1920*1080; n != want {
		t.Fatalf("blanked %d pixels, want %d", n, want)
	}
	if frame.Blanked != 1920*1080 || len(frame.Covered) != 1 {
		t.Fatalf("blanked %d covered %v", frame.Blanked, frame.Covered)
	}
	for _, y := range []int{0, 540, 1079} {
		for _, x := range []int{0, 1919, 1920, 3839} {
			px := frame.Data[frame.PixelOffset(x, y) : frame.PixelOffset(x, y)+4]
			if x >= 1920 {
				if !bytes.Equal(px, []byte{0, 0, 0, 0}) {
					t.Fatalf("(%d,%d) not blanked: %v", x, y, px)
				}
				continue
			}
			if !bytes.Equal(px, []byte{0xAB, 0xAB, 0xAB, 0xAB}) {
				t.Fatalf("(%d,%d) changed: %v", x, y, px)
			}
		}
	}
}

func TestMaskIdempotent(t *testing.T) {
	layout := geometry.Layout{
		{Rect: geometry.Rect{X: 0, Y: 0, W: 40, H: 30}},
		{Rect: geometry.Rect{X: 40, Y: 10, W: 30, H: 40}},
		{Rect: geometry.Rect{X: 20, Y: 20, W: 30, H: 30}},
		{Rect: geometry.Rect{X: 500, Y: 500, W: 10, H: 10}},
	}
	rect := geometry.Rect{X: 5, Y: 5, W: 70, H: 50}
	frame := filledFrame(rect.W, rect.H, bgrx)

	first := Mask(frame, rect, layout)
	once := bytes.Clone(frame.Data)
	second := Mask(frame, rect, layout)
	if first != second {
		t.Fatalf("blank count changed: %d then %d", first, second)
	}
	if !bytes.Equal(frame.Data, once) {
		t.Fatal("second mask changed the frame")
	}
}

func TestMaskCoverage(t *testing.T) {
	layout := geometry.Layout{
		{Rect: geometry.Rect{X: -10, Y: -10, W: 20, H: 20}},
		{Rect: geometry.Rect{X: 15, Y: 0, W: 10, H: 10}},
	}
	rect := geometry.Rect{X: 0, Y: 0, W: 30, H: 15}
	f := Format{Depth: 24, BitsPerPixel: 24, ScanlinePad: 32, RedMask: 0xFF0000, GreenMask: 0xFF00, BlueMask: 0xFF}
	frame := filledFrame(rect.W, rect.H, f)
	Mask(frame, rect, layout)

	for y := 0; y < rect.H; y++ {
		for x := 0; x < rect.W; x++ {
			off := frame.PixelOffset(x, y)
			blank := frame.Data[off] == 0 && frame.Data[off+1] == 0 && frame.Data[off+2] == 0
			if covered := layout.Covers(x, y); covered == blank {
				t.Fatalf("(%d,%d): covered=%v blank=%v", x, y, covered, blank)
			}
		}
	}
}

func TestMaskNoMonitors(t *testing.T) {
	rect := geometry.Rect{W: 8, H: 4}
	frame := filledFrame(rect.W, rect.H, bgrx)
	if n := Mask(frame, rect, nil); n != 32 {
		t.Fatalf("blanked %d, want 32", n)
	}
	for i := 0; i < rect.H; i++ {
		row := frame.Data[i*frame.Stride : i*frame.Stride+rect.W*4]
		if !bytes.Equal(row, make([]byte, len(row))) {
			t.Fatalf("row %d not blank", i)
		}
	}
}
