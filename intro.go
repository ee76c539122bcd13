package folio

import (
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// IntroState is the phase of the intro sequence.
type IntroState uint8

const (
	IntroNotStarted IntroState = iota
	IntroMeasuringText
	IntroExpandingText
	IntroDwelling
	IntroDetaching
	IntroMorphing
	IntroHandedOff
	IntroSkipped
)

var introStateNames = [...]string{
	"not-started", "measuring-text", "expanding-text", "dwelling",
	"detaching", "morphing", "handed-off", "skipped",
}

func (s IntroState) String() string {
	if int(s) < len(introStateNames) {
		return introStateNames[s]
	}
	return "unknown"
}

// IntroTimeline holds the intro's offsets from sequence start and the
// durations of its transitions.
type IntroTimeline struct {
	Expand         time.Duration // text width transition starts
	ExpandDuration time.Duration
	Unclip         time.Duration // text clipping removed
	Detach         time.Duration // brand pinned to body, content rendered
	LoaderFade     time.Duration
	Morph          time.Duration // brand transform to the hero slot
	// Fallback is measured from morph start. It must exceed Morph.
	Fallback        time.Duration
	NavReturn       time.Duration
	NavSlide        time.Duration
	BrandGap        float64 // relaxed gap between logo and wordmark
	NavHiddenOffset float64 // used when the navbar has no height yet
}

// DefaultIntroTimeline is the stock intro timing.
var DefaultIntroTimeline = IntroTimeline{
	Expand:          600 * time.Millisecond,
	ExpandDuration:  1000 * time.Millisecond,
	Unclip:          1750 * time.Millisecond,
	Detach:          1850 * time.Millisecond,
	LoaderFade:      400 * time.Millisecond,
	Morph:           700 * time.Millisecond,
	Fallback:        1000 * time.Millisecond,
	NavReturn:       2450 * time.Millisecond,
	NavSlide:        500 * time.Millisecond,
	BrandGap:        12,
	NavHiddenOffset: 80,
}

// Element ids the intro looks up.
const (
	LoaderID        = "loader"
	LoaderBrandID   = "loader-brand"
	LoaderTextID    = "loader-text"
	NavbarID        = "navbar"
	HeroTitleSlotID = "hero-title-slot"
)

// IntroConfig configures an IntroSequencer. Zero fields take defaults.
type IntroConfig struct {
	Timeline IntroTimeline
	// OnStateChange is called after every state transition.
	OnStateChange func(from, to IntroState)
}

// IntroSequencer drives the loader timeline from page load to the brand's
// handoff into the hero heading. All methods run on the document goroutine.
type IntroSequencer struct {
	doc     *Document
	session *Session
	tl      IntroTimeline
	onState func(from, to IntroState)
	logger  *zap.Logger

	state   IntroState
	ready   func()
	called  bool

	loader *Element
	text   *Element
	navbar *Element
	brand  *brandHandoff

	textWidth float64
	snap      Rect
	endHandle ListenerHandle
}

// NewIntroSequencer creates a sequencer for doc. session provides the
// loader marker and the reduced-motion preference.
func NewIntroSequencer(doc *Document, session *Session, cfg IntroConfig) *IntroSequencer {
	tl := cfg.Timeline
	if tl == (IntroTimeline{}) {
		tl = DefaultIntroTimeline
	}
	if session == nil {
		session = NewSession(nil, nil, Preferences{})
	}
	return &IntroSequencer{
		doc:     doc,
		session: session,
		tl:      tl,
		onState: cfg.OnStateChange,
		logger:  doc.Logger().Named("intro"),
		brand:   newBrandHandoff(nil),
	}
}

// State returns the current phase.
func (s *IntroSequencer) State() IntroState {
	return s.state
}

// Owner reports which container holds the brand.
func (s *IntroSequencer) Owner() Owner {
	return s.brand.owner
}

// PendingBrand returns the brand element while it is still travelling to
// the hero, or nil once it has been handed off or was never there. The
// renderer uses it to decide between a slot and plain title markup.
func (s *IntroSequencer) PendingBrand() *Element {
	return s.brand.pending()
}

// Start evaluates the bypass conditions and either calls onContentReady
// right away or starts the timed path, which calls it at Detaching.
// onContentReady runs exactly once. Start must be called once.
func (s *IntroSequencer) Start(onContentReady func()) {
	if s.state != IntroNotStarted {
		panic("folio: intro sequencer started twice")
	}
	s.ready = onContentReady

	s.loader = s.doc.GetElementByID(LoaderID)
	if s.loader == nil {
		s.skip("no loader")
		return
	}
	if s.session.LoaderShown() {
		s.loader.Dispose()
		s.skip("already shown")
		return
	}
	if s.session.ReducedMotion() {
		s.loader.Dispose()
		s.markShown()
		s.skip("reduced motion")
		return
	}
	s.markShown()

	s.navbar = s.doc.GetElementByID(NavbarID)
	s.text = s.doc.GetElementByID(LoaderTextID)
	s.brand = newBrandHandoff(s.doc.GetElementByID(LoaderBrandID))

	s.measure()
	s.doc.After(s.tl.Expand, s.expand)
	s.doc.After(s.tl.Unclip, s.unclip)
	s.doc.After(s.tl.Detach, s.detach)
	s.doc.After(s.tl.NavReturn, s.navReturn)
}

func (s *IntroSequencer) setState(to IntroState) {
	from := s.state
	s.state = to
	s.logger.Debug("state", zap.Stringer("from", from), zap.Stringer("to", to))
	if s.onState != nil {
		s.onState(from, to)
	}
}

func (s *IntroSequencer) markShown() {
	if err := s.session.MarkLoaderShown(); err != nil {
		s.logger.Warn("mark loader shown", zap.Error(err))
	}
}

func (s *IntroSequencer) skip(reason string) {
	s.logger.Debug("bypass", zap.String("reason", reason))
	s.setState(IntroSkipped)
	s.contentReady()
}

func (s *IntroSequencer) contentReady() {
	if s.called {
		return
	}
	s.called = true
	if s.ready != nil {
		s.ready()
	}
}

// measure hides the navbar and caches the wordmark's natural width before
// any width transition can start.
func (s *IntroSequencer) measure() {
	s.setState(IntroMeasuringText)
	if s.navbar != nil {
		h := s.doc.ClientRect(s.navbar).Height
		if h <= 0 {
			h = s.tl.NavHiddenOffset
		}
		s.navbar.Style.TranslateY = -h
	}
	if s.text != nil {
		s.textWidth = s.doc.MeasureNatural(s.text).X
		s.text.Style.Width = Px(0)
		s.text.Style.ClipOverflow = true
	}
}

func (s *IntroSequencer) expand() {
	s.setState(IntroExpandingText)
	if s.text != nil && !s.text.IsDisposed() {
		s.doc.TransitionWidth(s.text, s.textWidth, s.tl.ExpandDuration, ease.InOutQuad)
	}
	if b := s.brand.el; b != nil && !b.IsDisposed() {
		s.doc.TransitionGap(b, s.tl.BrandGap, s.tl.ExpandDuration, ease.InOutQuad)
	}
}

func (s *IntroSequencer) unclip() {
	s.setState(IntroDwelling)
	if s.text != nil {
		s.text.Style.ClipOverflow = false
	}
}

// detach pins the brand over its current position, hands control to the
// content renderer and fades the loader out.
func (s *IntroSequencer) detach() {
	s.setState(IntroDetaching)

	if b := s.brand.el; b != nil && !b.IsDisposed() {
		s.snap = s.doc.ClientRect(b)
		s.brand.detach(s.doc.Body(), s.snap)
	}

	s.contentReady()

	if l := s.loader; l != nil && !l.IsDisposed() {
		s.doc.TransitionOpacity(l, 0, s.tl.LoaderFade, ease.Linear)
		s.doc.After(s.tl.LoaderFade, l.Dispose)
	}

	if s.brand.owner != OwnerBody {
		s.finish()
		return
	}
	// Two frames, so the freshly rendered content has been laid out before
	// the slot is measured.
	s.doc.NextFrame(func(time.Duration) {
		s.doc.NextFrame(func(time.Duration) { s.morph() })
	})
}

func (s *IntroSequencer) morph() {
	s.setState(IntroMorphing)
	s.doc.After(s.tl.Fallback, func() {
		if s.finish() {
			s.logger.Debug("handoff by fallback timer")
		}
	})

	el := s.brand.pending()
	slot := s.doc.GetElementByID(HeroTitleSlotID)
	if el == nil || slot == nil {
		return
	}
	slot.Style.Height = Px(s.snap.Height)
	target := s.doc.ClientRect(slot).Center()
	from := s.snap.Center()

	s.endHandle = el.OnTransitionEnd(func(ev TransitionEvent) {
		if ev.Property != PropTransform {
			return
		}
		s.finish()
	})
	s.doc.TransitionTransform(el, target.X-from.X, target.Y-from.Y, s.tl.Morph, ease.OutCubic)
}

// finish runs the handoff. Reports whether this call performed it.
func (s *IntroSequencer) finish() bool {
	el := s.brand.el
	if !s.brand.complete(s.doc, s.doc.GetElementByID(HeroTitleSlotID)) {
		return false
	}
	s.endHandle.Remove()
	s.setState(IntroHandedOff)
	if s.brand.owner == OwnerHero {
		s.doc.NextFrame(func(time.Duration) {
			if el.IsDisposed() {
				return
			}
			el.Style.Hidden = false
			s.doc.ClearTransitions(el)
		})
	}
	return true
}

func (s *IntroSequencer) navReturn() {
	nav := s.navbar
	if nav == nil || nav.IsDisposed() {
		return
	}
	var h ListenerHandle
	h = nav.OnTransitionEnd(func(ev TransitionEvent) {
		if ev.Property != PropTransform {
			return
		}
		s.doc.ClearTransitions(nav)
		h.Remove()
	})
	s.doc.TransitionTransform(nav, 0, 0, s.tl.NavSlide, ease.OutCubic)
}
