package encoder

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/junsooki/xshot/internal/pixel"
)

var ErrEncodeFailed = errors.New("encode failed")

// Format identifies an output image format.
type Format int

const (
	PNG Format = iota
	PAM
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case PAM:
		return "pam"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the usual file extension, including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat accepts "png" and "pam", case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "pam":
		return PAM, nil
	}
	return 0, fmt.Errorf("unknown format %q (want png or pam)", s)
}

// Encoder encodes a packed pixel buffer into an image stream.
type Encoder interface {
	Encode(w io.Writer, px *pixel.Canonical) error
	Format() Format
}

// Options configures New.
type Options struct {
	Compression Compression // PNG only
}

// New returns the encoder for f.
func New(f Format, opts Options) (Encoder, error) {
	switch f {
	case PNG:
		return NewPNGEncoder(opts.Compression), nil
	case PAM:
		return NewPAMEncoder(), nil
	}
	return nil, fmt.Errorf("no encoder for %s", f)
}
