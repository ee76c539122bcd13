package folio

import (
	"time"

	"go.uber.org/zap"
)

// Document is the top-level object that owns the element tree, viewport,
// scheduler, running transitions and visibility observers. It is driven
// one frame at a time by Update from a single goroutine.
type Document struct {
	root *Element
	body *Element

	viewport  *Viewport
	scheduler *Scheduler
	measurer  TextMeasurer

	transitions []*Transition
	observers   []*VisibilityObserver

	scrollListeners []func(scrollY float64)
	lastScrollY     float64

	injectQueue []syntheticScroll
	script      *ScriptRunner

	// SuppressTransitionEnd models hosts that never fire transition-end
	// events. Transitions still run to completion.
	SuppressTransitionEnd bool

	// OnSnapshot is called by script "snapshot" steps.
	OnSnapshot func(label string)
	// OnToggleTheme is called by script "toggle-theme" steps.
	OnToggleTheme func()

	logger *zap.Logger
	debug  bool
	stats  frameStats
}

// NewDocument creates a document with an html root and body, a viewport of
// the given size and a scheduler at time zero.
func NewDocument(width, height float64) *Document {
	root := NewElement("html", "")
	body := NewElement("body", "")
	root.AppendChild(body)
	return &Document{
		root:      root,
		body:      body,
		viewport:  newViewport(width, height),
		scheduler: NewScheduler(),
		measurer:  DefaultMeasurer,
		logger:    zap.NewNop(),
	}
}

// Root returns the document element.
func (d *Document) Root() *Element {
	return d.root
}

// Body returns the body element.
func (d *Document) Body() *Element {
	return d.body
}

// Viewport returns the document's viewport.
func (d *Document) Viewport() *Viewport {
	return d.viewport
}

// Scheduler returns the document's clock.
func (d *Document) Scheduler() *Scheduler {
	return d.scheduler
}

// Now returns the current clock value.
func (d *Document) Now() time.Duration {
	return d.scheduler.now
}

// After schedules fn once delay has elapsed.
func (d *Document) After(delay time.Duration, fn func()) {
	d.scheduler.After(delay, fn)
}

// NextFrame schedules fn for the next frame.
func (d *Document) NextFrame(fn FrameFunc) {
	d.scheduler.NextFrame(fn)
}

// SetMeasurer replaces the text measurer used by layout.
func (d *Document) SetMeasurer(m TextMeasurer) {
	if m == nil {
		m = DefaultMeasurer
	}
	d.measurer = m
}

// SetLogger sets the logger used for debug output.
func (d *Document) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	d.logger = l
}

// Logger returns the document logger.
func (d *Document) Logger() *zap.Logger {
	return d.logger
}

// GetElementByID returns the attached element whose id attribute is key,
// or nil.
func (d *Document) GetElementByID(key string) *Element {
	return d.root.ByKey(key)
}

// QueryAll returns every attached element carrying class c.
func (d *Document) QueryAll(c string) []*Element {
	return d.root.AllByClass(c)
}

// Query returns the first attached element carrying class c, or nil.
func (d *Document) Query(c string) *Element {
	return d.root.ByClass(c)
}

// SetTheme writes the data-theme attribute on the root element.
func (d *Document) SetTheme(theme string) {
	d.root.SetData("theme", theme)
}

// Theme returns the root element's data-theme attribute.
func (d *Document) Theme() string {
	t, _ := d.root.Data("theme")
	return t
}

// OnScroll registers fn to run at the end of any frame in which the scroll
// offset changed.
func (d *Document) OnScroll(fn func(scrollY float64)) {
	d.scrollListeners = append(d.scrollListeners, fn)
}

// Update runs one frame: tasks posted from other goroutines, due timers,
// next-frame callbacks, transitions and scrolling, layout, visibility
// observers, then scroll listeners.
func (d *Document) Update(dt time.Duration) {
	var t0 time.Time
	if d.debug {
		d.stats = frameStats{}
		t0 = time.Now()
	}
	if d.script != nil {
		d.script.step(d)
	}
	d.processInjectedScroll()

	d.stats.posted = d.scheduler.runPosted()
	d.stats.timers = d.scheduler.advance(dt)
	d.stats.frames = d.scheduler.runFrames()

	sec := float32(dt.Seconds())
	d.viewport.update(sec)
	d.stats.transitions = d.updateTransitions(sec)

	d.Layout()
	d.stats.observed = d.updateObservers()

	if d.viewport.ScrollY != d.lastScrollY {
		d.lastScrollY = d.viewport.ScrollY
		for _, fn := range d.scrollListeners {
			fn(d.lastScrollY)
		}
	}

	if d.debug {
		d.stats.elapsed = time.Since(t0)
		d.debugLog(d.stats)
	}
}

// Advance runs frames of length step until total has elapsed.
func (d *Document) Advance(total, step time.Duration) {
	if step <= 0 {
		step = time.Second / 60
	}
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		d.Update(min(step, total-elapsed))
	}
}

// SetDebugMode enables or disables per-frame stats logging. Enabling it
// also checks the current tree depth.
func (d *Document) SetDebugMode(enabled bool) {
	d.debug = enabled
	if enabled {
		d.debugCheckTreeDepth()
	}
}
