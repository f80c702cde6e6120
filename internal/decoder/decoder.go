package decoder

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/junsooki/xshot/internal/pixel"
)

// Decoder decodes an image stream into a packed pixel buffer.
type Decoder interface {
	Decode(r io.Reader) (*pixel.Canonical, error)
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// Decode sniffs the stream's magic bytes and decodes PNG or PAM.
func Decode(r io.Reader) (*pixel.Canonical, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(pngMagic))
	if err != nil && len(magic) < 3 {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	switch {
	case bytes.HasPrefix(magic, pngMagic):
		return NewPNGDecoder().Decode(br)
	case bytes.HasPrefix(magic, []byte("P7\n")):
		return NewPAMDecoder().Decode(br)
	}
	return nil, fmt.Errorf("unrecognized image format (magic %q)", magic)
}
