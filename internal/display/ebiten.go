package display

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/junsooki/xshot/internal/pixel"
)

// EbitenDisplay shows one captured image using Ebitengine. Enter or Space
// accepts the image, Escape or Q discards it.
type EbitenDisplay struct {
	title    string
	px       *pixel.Canonical
	image    *ebiten.Image
	accepted bool
}

var _ Display = (*EbitenDisplay)(nil)

// NewEbitenDisplay creates a preview for px.
func NewEbitenDisplay(title string, px *pixel.Canonical) *EbitenDisplay {
	return &EbitenDisplay{title: title, px: px}
}

// Run opens the window and blocks until it is closed. Must be called from
// the main goroutine. It returns ErrDiscarded unless the image was accepted.
func (d *EbitenDisplay) Run() error {
	w, h := windowSize(d.px.Width, d.px.Height, 1280, 720)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(fmt.Sprintf("%s (%dx%d)", d.title, d.px.Width, d.px.Height))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(d); err != nil {
		return err
	}
	if !d.accepted {
		return ErrDiscarded
	}
	return nil
}

// --- ebiten.Game interface ---

func (d *EbitenDisplay) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		d.accepted = true
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	}
	return nil
}

func (d *EbitenDisplay) Draw(screen *ebiten.Image) {
	if d.image == nil {
		d.image = ebiten.NewImage(d.px.Width, d.px.Height)
		d.image.WritePixels(premultiplied(d.px))
	}

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale, offsetX, offsetY := aspectFitTransform(float64(sw), float64(sh), float64(d.px.Width), float64(d.px.Height))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(d.image, op)
}

func (d *EbitenDisplay) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
