package encoder

import (
	"fmt"
	"io"

	"github.com/junsooki/xshot/internal/pixel"
)

// PAMEncoder writes uncompressed Netpbm PAM (P7) images.
type PAMEncoder struct{}

func NewPAMEncoder() *PAMEncoder {
	return &PAMEncoder{}
}

func (e *PAMEncoder) Format() Format { return PAM }

// PAMHeader returns the header written in front of px.
func PAMHeader(px *pixel.Canonical) string {
	tuple := "RGB"
	if px.HasAlpha() {
		tuple = "RGB_ALPHA"
	}
	return fmt.Sprintf("P7\nWIDTH %d\nHEIGHT %d\nDEPTH %d\nMAXVAL 255\nTUPLTYPE %s\nENDHDR\n",
		px.Width, px.Height, px.Channels, tuple)
}

func (e *PAMEncoder) Encode(w io.Writer, px *pixel.Canonical) error {
	if err := px.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	if _, err := io.WriteString(w, PAMHeader(px)); err != nil {
		return fmt.Errorf("%w: pam header: %v", ErrEncodeFailed, err)
	}
	if _, err := w.Write(px.Pix); err != nil {
		return fmt.Errorf("%w: pam data: %v", ErrEncodeFailed, err)
	}
	return nil
}
