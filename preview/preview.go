// Package preview renders a folio document in an Ebitengine window so the
// intro and reveal animations can be watched and snapshotted.
package preview

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/folio"
	"go.uber.org/zap"
)

// RunConfig configures Run.
type RunConfig struct {
	Title       string
	Width       int
	Height      int
	ShowFPS     bool
	SnapshotDir string
	// WheelStep is the scroll distance per wheel notch.
	WheelStep float64
	Logger    *zap.Logger
}

// Game implements ebiten.Game over a document. Update advances the document
// by one tick; mouse wheel scrolls, T toggles the theme, M toggles the
// mobile menu and S takes a snapshot.
type Game struct {
	doc  *folio.Document
	page *folio.Page
	cfg  RunConfig

	snaps *snapshotter
	fps   *fpsOverlay
	items []folio.PaintItem
}

// NewGame creates a game for doc. page may be nil.
func NewGame(doc *folio.Document, page *folio.Page, cfg RunConfig) *Game {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.WheelStep == 0 {
		cfg.WheelStep = 40
	}
	g := &Game{
		doc:   doc,
		page:  page,
		cfg:   cfg,
		snaps: newSnapshotter(cfg.SnapshotDir, cfg.Logger.Named("snapshot")),
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay(func() string {
			return fmt.Sprintf("t=%s", doc.Now().Truncate(time.Millisecond))
		})
	}
	doc.OnSnapshot = g.snaps.request
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.doc.InjectScroll(-dy * g.cfg.WheelStep)
	}
	if g.page != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyT) {
			g.page.ToggleTheme()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyM) {
			g.page.ToggleMenu()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.snaps.request("manual")
	}

	g.doc.Update(dt)
	if g.fps != nil {
		g.fps.update(dt.Seconds())
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	pal := paletteFor(g.doc.Theme())
	screen.Fill(pal.background)

	g.items = g.doc.PaintList(g.items[:0])
	for _, it := range g.items {
		drawItem(screen, it, pal)
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.snaps.flush(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives doc until it is closed.
func Run(doc *folio.Document, page *folio.Page, cfg RunConfig) error {
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = int(doc.Viewport().Width), int(doc.Viewport().Height)
	}
	if cfg.Title == "" {
		cfg.Title = "folio"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(NewGame(doc, page, cfg)); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

type palette struct {
	background color.RGBA
	surface    color.RGBA
	accent     color.RGBA
	muted      color.RGBA
	overlay    color.RGBA
}

var (
	darkPalette = palette{
		background: color.RGBA{0x0f, 0x0f, 0x14, 0xff},
		surface:    color.RGBA{0x1c, 0x1c, 0x26, 0xff},
		accent:     color.RGBA{0xd4, 0xa5, 0x37, 0xff},
		muted:      color.RGBA{0x2e, 0x2e, 0x3a, 0xff},
		overlay:    color.RGBA{0x08, 0x08, 0x0c, 0xff},
	}
	lightPalette = palette{
		background: color.RGBA{0xf7, 0xf5, 0xf0, 0xff},
		surface:    color.RGBA{0xff, 0xff, 0xff, 0xff},
		accent:     color.RGBA{0xb8, 0x86, 0x0b, 0xff},
		muted:      color.RGBA{0xe0, 0xdc, 0xd2, 0xff},
		overlay:    color.RGBA{0xf7, 0xf5, 0xf0, 0xff},
	}
)

func paletteFor(theme string) palette {
	if theme == folio.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// fillFor picks the fill color of an element from its classes. Elements
// without a known class are not filled.
func fillFor(el *folio.Element, pal palette) (color.RGBA, bool) {
	switch {
	case el.HasClass("loader"):
		return pal.overlay, true
	case el.HasClass("navbar"):
		if el.HasClass("scrolled") {
			return pal.surface, true
		}
		return color.RGBA{}, false
	case el.HasClass("skill-fill"), el.HasClass("status-dot"),
		el.HasClass("loader-logo"), el.HasClass("logo-img"):
		return pal.accent, true
	case el.HasClass("skill-bar"), el.HasClass("hero-title-slot"):
		return pal.muted, true
	case el.HasClass("metric-card"), el.HasClass("service-card"),
		el.HasClass("project-card"), el.HasClass("timeline-item"),
		el.HasClass("contact-card"), el.HasClass("mobile-menu"):
		return pal.surface, true
	}
	return color.RGBA{}, false
}

func scaleAlpha(c color.RGBA, alpha float64) color.RGBA {
	// Premultiplied: scale every channel.
	f := func(v uint8) uint8 { return uint8(float64(v) * alpha) }
	return color.RGBA{f(c.R), f(c.G), f(c.B), f(c.A)}
}

func drawItem(screen *ebiten.Image, it folio.PaintItem, pal palette) {
	r := it.Rect
	if it.Clipped {
		r = r.Intersection(it.Clip)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	if c, ok := fillFor(it.El, pal); ok {
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
			scaleAlpha(c, it.Opacity), false)
	}
	if it.El.Text == "" || it.Opacity < 0.5 {
		return
	}
	txt := it.El.Text
	if it.Clipped {
		// Debug glyphs are 6px wide.
		n := int((it.Clip.X + it.Clip.Width - it.Rect.X) / 6)
		runes := []rune(txt)
		if n < len(runes) {
			txt = string(runes[:max(n, 0)])
		}
	}
	ebitenutil.DebugPrintAt(screen, txt, int(it.Rect.X), int(it.Rect.Y))
}
