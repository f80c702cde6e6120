package geometry

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseGeometry(t *testing.T) {
	got, err := ParseGeometry("640x480+10+20")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Rect{X: 10, Y: 20, W: 640, H: 480}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	rects := []Rect{
		{X: 0, Y: 0, W: 1, H: 1},
		{X: 1920, Y: 0, W: 1920, H: 1080},
		{X: 7, Y: 3000, W: 3840, H: 2160},
	}
	for _, r := range rects {
		s := FormatGeometry(r)
		got, err := ParseGeometry(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if got != r {
			t.Fatalf("%q: got %+v, want %+v", s, got, r)
		}
		if again := FormatGeometry(got); again != s {
			t.Fatalf("format: got %q, want %q", again, s)
		}
	}
}

func TestParseGeometryInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"640x480",
		"640x480+10",
		"640+10+20",
		"x480+10+20",
		"640x+10+20",
		"0x480+10+20",
		"640x0+10+20",
		"-640x480+10+20",
		"640x480-10+20",
		"640x480+-10+20",
		"640x480+10+20+30",
		"abcx480+10+20",
		"640x480+1a+20",
		"640x480+10+ 20",
		"99999999999x1+0+0",
	} {
		if _, err := ParseGeometry(s); !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("%q: got %v, want ErrInvalidGeometry", s, err)
		}
	}
}

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"1234", 1234},
		{"0x4a00003", 0x4a00003},
		{"0X1F", 0x1f},
		{"0o17", 017},
		{"0b101", 5},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := ParseWindowID(tt.in)
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("%q: got %d, want %d", tt.in, got, tt.want)
		}
	}
	for _, s := range []string{"", "0x", "-1", "+5", "12ab", "0b102", "0x100000000"} {
		if _, err := ParseWindowID(s); !errors.Is(err, ErrInvalidWindowID) {
			t.Errorf("%q: got %v, want ErrInvalidWindowID", s, err)
		}
	}
}

func TestIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 100, H: 100}
	tests := []struct {
		b    Rect
		want Rect
		ok   bool
	}{
		{Rect{X: 50, Y: 50, W: 100, H: 100}, Rect{X: 50, Y: 50, W: 50, H: 50}, true},
		{Rect{X: 10, Y: 10, W: 10, H: 10}, Rect{X: 10, Y: 10, W: 10, H: 10}, true},
		{Rect{X: -10, Y: -10, W: 500, H: 500}, a, true},
		{Rect{X: 100, Y: 0, W: 10, H: 10}, Rect{}, false},
		{Rect{X: 0, Y: 0, W: 0, H: 10}, Rect{}, false},
	}
	for _, tt := range tests {
		got, ok := a.Intersect(tt.b)
		if ok != tt.ok || got != tt.want {
			t.Errorf("%+v: got %+v %v, want %+v %v", tt.b, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLayoutBounds(t *testing.T) {
	l := Layout{
		{Name: "DP-1", Rect: Rect{X: 1920, Y: 200, W: 1280, H: 1024}},
		{Name: "HDMI-1", Rect: Rect{X: 0, Y: 0, W: 1920, H: 1080}},
	}
	want := Rect{X: 0, Y: 0, W: 3200, H: 1224}
	if got := l.Bounds(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if !l.Covers(1919, 1079) || l.Covers(100, 1100) || !l.Covers(3199, 1223) {
		t.Fatal("unexpected coverage")
	}
}

type fakeWindows map[uint32]Rect

func (f fakeWindows) WindowRect(id uint32) (Rect, error) {
	r, ok := f[id]
	if !ok {
		return Rect{}, fmt.Errorf("%w: 0x%x", ErrWindowNotFound, id)
	}
	return r, nil
}

func TestResolve(t *testing.T) {
	layout := Layout{
		{Rect: Rect{X: 0, Y: 0, W: 1920, H: 1080}},
		{Rect: Rect{X: 1920, Y: 0, W: 1920, H: 1080}},
	}
	windows := fakeWindows{0x400001: {X: 100, Y: 50, W: 800, H: 600}}

	tests := []struct {
		name string
		t    Target
		want Rect
	}{
		{"screen", nil, Rect{X: 0, Y: 0, W: 3840, H: 1080}},
		{"geometry", ByGeometry{Rect{X: 5, Y: 6, W: 7, H: 8}}, Rect{X: 5, Y: 6, W: 7, H: 8}},
		{"window", ByID{Window: 0x400001}, Rect{X: 100, Y: 50, W: 800, H: 600}},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.t, layout, windows)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	windows := fakeWindows{}
	if _, err := Resolve(ByID{Window: 0xdead}, nil, windows); !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("missing window: got %v", err)
	}
	if _, err := Resolve(ByID{Window: 1}, nil, nil); !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("nil locator: got %v", err)
	}
	if _, err := Resolve(nil, Layout{}, windows); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("empty layout: got %v", err)
	}
	if _, err := Resolve(ByGeometry{Rect{W: 0, H: 5}}, nil, windows); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("empty geometry: got %v", err)
	}
}
