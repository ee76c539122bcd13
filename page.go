package folio

import (
	"context"
	"sync"
	"time"

	"github.com/phanxgames/folio/content"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Fetcher loads the page content. content.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context) (*content.Bundle, error)
}

// PageConfig configures a Page. Zero fields take defaults.
type PageConfig struct {
	Brand  BrandConfig
	Intro  IntroTimeline
	Reveal RevealConfig
	// ScrolledOffset is the scroll offset past which the navbar gets the
	// "scrolled" class.
	ScrolledOffset float64
	// ScrollDuration is the length of smooth scrolls to a section.
	ScrollDuration time.Duration
}

// Page ties the document, session, content fetch, intro sequencer,
// renderer and reveal engine together for one page load.
type Page struct {
	doc     *Document
	session *Session
	fetcher Fetcher
	cfg     PageConfig
	logger  *zap.Logger

	Intro    *IntroSequencer
	Renderer *Renderer
	Reveal   *RevealEngine

	wg sync.WaitGroup

	bundle  *content.Bundle
	fetched bool
	ready   bool
	painted bool

	// OnPaint is called once the content has been painted and the reveal
	// engine armed.
	OnPaint func()
}

// NewPage creates a page for doc. The skeleton must already be built.
func NewPage(doc *Document, session *Session, fetcher Fetcher, cfg PageConfig) *Page {
	if cfg.Brand == (BrandConfig{}) {
		cfg.Brand = DefaultBrand
	}
	if cfg.Intro == (IntroTimeline{}) {
		cfg.Intro = DefaultIntroTimeline
	}
	cfg.Intro.BrandGap = cfg.Brand.Gap
	if cfg.ScrolledOffset == 0 {
		cfg.ScrolledOffset = 100
	}
	if cfg.ScrollDuration == 0 {
		cfg.ScrollDuration = 600 * time.Millisecond
	}
	if session == nil {
		session = NewSession(nil, nil, Preferences{})
	}
	p := &Page{
		doc:     doc,
		session: session,
		fetcher: fetcher,
		cfg:     cfg,
		logger:  doc.Logger().Named("page"),
	}
	p.Intro = NewIntroSequencer(doc, session, IntroConfig{Timeline: cfg.Intro})
	p.Renderer = NewRenderer(doc, cfg.Brand)
	p.Renderer.PendingBrand = p.Intro.PendingBrand
	p.Reveal = NewRevealEngine(doc, cfg.Reveal)
	return p
}

// Boot applies the theme, starts the content fetch in the background and
// starts the intro. Content is painted once both the fetch has resolved and
// the intro has handed over. Must be called on the document goroutine.
func (p *Page) Boot(ctx context.Context) {
	p.doc.SetTheme(p.session.Theme())
	p.doc.OnToggleTheme = p.ToggleTheme
	p.doc.OnScroll(p.onScroll)

	if p.fetcher == nil {
		p.fetched = true
	} else {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			b, err := p.fetcher.Fetch(ctx)
			p.doc.Scheduler().Post(func() { p.onFetched(b, err) })
		}()
	}

	p.Intro.Start(p.onContentReady)
}

// Wait blocks until the background fetch has returned.
func (p *Page) Wait() {
	p.wg.Wait()
}

// Painted reports whether content has been painted.
func (p *Page) Painted() bool {
	return p.painted
}

// Bundle returns the fetched content, or nil before the fetch resolves.
func (p *Page) Bundle() *content.Bundle {
	return p.bundle
}

func (p *Page) onFetched(b *content.Bundle, err error) {
	if err != nil {
		p.logger.Error("load portfolio data", zap.Error(err))
	}
	p.bundle = b
	p.fetched = true
	p.maybePaint()
}

func (p *Page) onContentReady() {
	p.ready = true
	p.maybePaint()
}

func (p *Page) maybePaint() {
	if !p.fetched || !p.ready || p.painted {
		return
	}
	p.painted = true
	p.Renderer.Render(p.bundle)
	p.Reveal.Arm()
	if p.OnPaint != nil {
		p.OnPaint()
	}
}

// ToggleTheme flips between dark and light, persists the choice and
// updates the GitHub icon.
func (p *Page) ToggleTheme() {
	next := ThemeDark
	if p.doc.Theme() == ThemeDark {
		next = ThemeLight
	}
	p.doc.SetTheme(next)
	if err := p.session.SetTheme(next); err != nil {
		p.logger.Warn("persist theme", zap.Error(err))
	}
	if icon := p.doc.GetElementByID(GitHubIconID); icon != nil {
		icon.SetAttr("src", githubIcon(next))
	}
}

// ToggleMenu opens or closes the mobile menu.
func (p *Page) ToggleMenu() {
	burger := p.doc.GetElementByID(HamburgerID)
	menu := p.doc.GetElementByID(MobileMenuID)
	if burger == nil || menu == nil {
		return
	}
	p.setMenu(!burger.HasClass(ClassActive))
}

func (p *Page) setMenu(open bool) {
	burger := p.doc.GetElementByID(HamburgerID)
	menu := p.doc.GetElementByID(MobileMenuID)
	if burger == nil || menu == nil {
		return
	}
	burger.ToggleClass(ClassActive, open)
	menu.ToggleClass(ClassActive, open)
	if open {
		menu.Style.Display = DisplayBlock
		burger.SetAttr("aria-expanded", "true")
	} else {
		menu.Style.Display = DisplayNone
		burger.SetAttr("aria-expanded", "false")
	}
}

// ScrollToSection smoothly scrolls the section with id into view and closes
// the mobile menu. Unknown ids are ignored.
func (p *Page) ScrollToSection(id string) {
	p.setMenu(false)
	sec := p.doc.GetElementByID(id)
	r, ok := p.doc.documentRect(sec)
	if !ok {
		return
	}
	p.doc.Viewport().ScrollTo(r.Y, p.cfg.ScrollDuration, ease.InOutQuad)
}

func (p *Page) onScroll(y float64) {
	if nav := p.doc.GetElementByID(NavbarID); nav != nil {
		nav.ToggleClass("scrolled", y > p.cfg.ScrolledOffset)
	}
}
