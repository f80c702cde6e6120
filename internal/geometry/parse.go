package geometry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrInvalidWindowID = errors.New("invalid window id")
)

// ParseGeometry parses a root-relative "WxH+X+Y" string. All four fields
// are required, offsets are non-negative and the size must be non-zero.
func ParseGeometry(s string) (Rect, error) {
	size, offsets, ok := strings.Cut(s, "+")
	if !ok {
		return Rect{}, fmt.Errorf("%w: %q: missing offsets", ErrInvalidGeometry, s)
	}
	ws, hs, ok := strings.Cut(size, "x")
	if !ok {
		return Rect{}, fmt.Errorf("%w: %q: size must be WxH", ErrInvalidGeometry, s)
	}
	xs, ys, ok := strings.Cut(offsets, "+")
	if !ok {
		return Rect{}, fmt.Errorf("%w: %q: missing y offset", ErrInvalidGeometry, s)
	}

	var fields [4]int
	for i, f := range []string{ws, hs, xs, ys} {
		n, err := parseUint(f)
		if err != nil {
			return Rect{}, fmt.Errorf("%w: %q: %v", ErrInvalidGeometry, s, err)
		}
		fields[i] = n
	}

	r := Rect{W: fields[0], H: fields[1], X: fields[2], Y: fields[3]}
	if r.Empty() {
		return Rect{}, fmt.Errorf("%w: %q: zero width or height", ErrInvalidGeometry, s)
	}
	return r, nil
}

// FormatGeometry renders r in the form accepted by ParseGeometry.
func FormatGeometry(r Rect) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// parseUint accepts only plain decimal digits, so signs and spaces that
// strconv would tolerate are rejected.
func parseUint(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty field")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("non-numeric field %q", s)
		}
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("field %q out of range", s)
	}
	return int(n), nil
}

// ParseWindowID accepts decimal, hex (0x), octal (0o) and binary (0b) ids.
func ParseWindowID(s string) (uint32, error) {
	base := 10
	digits := s
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			digits = s[2:]
		}
	}
	id, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: accepted forms are decimal, hex (0x), octal (0o) and binary (0b)", ErrInvalidWindowID, s)
	}
	return uint32(id), nil
}
