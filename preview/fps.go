package preview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay shows FPS, TPS and the document clock in the top-right
// corner. The text is redrawn about twice a second.
type fpsOverlay struct {
	img   *ebiten.Image
	since float64
	text  func() string
}

func newFPSOverlay(text func() string) *fpsOverlay {
	// 140x48 fits three lines of debug text.
	return &fpsOverlay{img: ebiten.NewImage(140, 48), since: 1, text: text}
}

func (o *fpsOverlay) update(dt float64) {
	o.since += dt
	if o.since < 0.5 {
		return
	}
	o.since = 0

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if o.text != nil {
		msg += "\n" + o.text()
	}
	ebitenutil.DebugPrint(o.img, msg)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx()-o.img.Bounds().Dx()-4), 4)
	screen.DrawImage(o.img, op)
}
