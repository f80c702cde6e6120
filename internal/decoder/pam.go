package decoder

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/junsooki/xshot/internal/pixel"
)

// maxPAMBytes bounds the pixel data a PAM header may announce.
const maxPAMBytes = 1 << 31

// maxPAMDimension is the largest width or height, the X protocol limit.
const maxPAMDimension = 65535

// PAMDecoder reads 8-bit RGB and RGB_ALPHA Netpbm PAM images.
type PAMDecoder struct{}

func NewPAMDecoder() *PAMDecoder {
	return &PAMDecoder{}
}

func (d *PAMDecoder) Decode(r io.Reader) (*pixel.Canonical, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	magic, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("pam magic: %w", err)
	}
	if magic != "P7\n" {
		return nil, fmt.Errorf("pam magic: got %q", strings.TrimSpace(magic))
	}

	fields := map[string]string{}
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("pam header: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "ENDHDR" {
			break
		}
		key, value, _ := strings.Cut(line, " ")
		fields[key] = strings.TrimSpace(value)
	}

	var dims [4]int
	for i, key := range []string{"WIDTH", "HEIGHT", "DEPTH", "MAXVAL"} {
		n, err := strconv.Atoi(fields[key])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("pam header: bad %s %q", key, fields[key])
		}
		dims[i] = n
	}
	w, h, depth, maxval := dims[0], dims[1], dims[2], dims[3]
	if w > maxPAMDimension || h > maxPAMDimension {
		return nil, fmt.Errorf("pam: %dx%d exceeds %d pixels per side", w, h, maxPAMDimension)
	}
	if maxval != 255 {
		return nil, fmt.Errorf("pam: maxval %d not supported", maxval)
	}
	switch tuple := fields["TUPLTYPE"]; {
	case depth == 3 && (tuple == "RGB" || tuple == ""):
	case depth == 4 && (tuple == "RGB_ALPHA" || tuple == ""):
	default:
		return nil, fmt.Errorf("pam: tuple type %q with depth %d not supported", tuple, depth)
	}

	if size := int64(w) * int64(h) * int64(depth); size > maxPAMBytes {
		return nil, fmt.Errorf("pam: %dx%dx%d needs %d bytes, limit %d", w, h, depth, size, int64(maxPAMBytes))
	}
	out := pixel.New(w, h, depth)
	if _, err := io.ReadFull(br, out.Pix); err != nil {
		return nil, fmt.Errorf("pam data: %w", err)
	}
	return out, nil
}
