package folio

import (
	"strconv"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Class names and ids the reveal engine works with.
const (
	ClassAnimateOnScroll = "animate-on-scroll"
	ClassAnimateVisible  = "animate-visible"
	ClassMetricValue     = "metric-value"
	ClassSkillFill       = "skill-fill"
	ClassSection         = "section"
	ClassNavLink         = "nav-link"
	ClassActive          = "active"
	SkillsID             = "skills"
)

// RevealConfig configures a RevealEngine.
type RevealConfig struct {
	// Threshold and RootMargin apply to reveal entries and the skills
	// container. A positive bottom margin triggers slightly before an
	// element scrolls into view.
	Threshold  float64
	RootMargin Margin
	// SkillFill is the duration of the skill bar width transition.
	SkillFill time.Duration
	// NavMargin narrows the viewport band used for nav highlighting.
	NavMargin Margin
}

// DefaultRevealConfig is the stock reveal configuration.
var DefaultRevealConfig = RevealConfig{
	Threshold:  0.1,
	RootMargin: Margin{Bottom: 50},
	SkillFill:  1200 * time.Millisecond,
	NavMargin:  Margin{Top: -20, Bottom: -60, Percent: true},
}

// CounterSpec describes a numeric count-up attached to a reveal entry.
type CounterSpec struct {
	Target int
	Suffix string
}

// RevealEntry is one element flagged for a one-shot scroll reveal.
type RevealEntry struct {
	Element  *Element
	Revealed bool
	Counter  *CounterSpec

	counterEl *Element
	run       *CountUpRun
}

// CountUp returns the entry's count-up run, or nil if none was started.
func (e *RevealEntry) CountUp() *CountUpRun {
	return e.run
}

// RevealEngine reveals flagged elements the first time they intersect the
// viewport, fills the skill bars once, and highlights the nav link of the
// section currently in view.
type RevealEngine struct {
	doc    *Document
	cfg    RevealConfig
	logger *zap.Logger

	entries []*RevealEntry
	byEl    map[*Element]*RevealEntry

	reveal *VisibilityObserver
	skills *VisibilityObserver
	nav    *VisibilityObserver

	skillsFilled bool

	// OnReveal is called after an entry has been revealed.
	OnReveal func(*RevealEntry)
}

// NewRevealEngine creates an engine for doc. Nothing is observed until Arm.
func NewRevealEngine(doc *Document, cfg RevealConfig) *RevealEngine {
	if cfg == (RevealConfig{}) {
		cfg = DefaultRevealConfig
	}
	return &RevealEngine{
		doc:    doc,
		cfg:    cfg,
		logger: doc.Logger().Named("reveal"),
		byEl:   make(map[*Element]*RevealEntry),
	}
}

// Arm scans the document and starts observing every unrevealed
// animate-on-scroll element, the skills container and the page sections.
// Calling it again picks up elements added since; revealed entries are
// never observed again.
func (e *RevealEngine) Arm() {
	opts := ObserverOptions{RootMargin: e.cfg.RootMargin, Threshold: e.cfg.Threshold}
	if e.reveal == nil {
		e.reveal = e.doc.NewVisibilityObserver(opts, e.onReveal)
	}
	for _, el := range e.doc.QueryAll(ClassAnimateOnScroll) {
		if _, ok := e.byEl[el]; ok {
			continue
		}
		entry := &RevealEntry{Element: el}
		if c := el.Find(isCounter); c != nil {
			if target, err := strconv.Atoi(dataAttr(c, "target")); err == nil {
				suffix, _ := c.Data("suffix")
				entry.Counter = &CounterSpec{Target: target, Suffix: suffix}
				entry.counterEl = c
			}
		}
		e.entries = append(e.entries, entry)
		e.byEl[el] = entry
		e.reveal.Observe(el)
	}

	if skills := e.doc.GetElementByID(SkillsID); skills != nil && !e.skillsFilled {
		if e.skills == nil {
			e.skills = e.doc.NewVisibilityObserver(opts, e.onSkills)
		}
		e.skills.Observe(skills)
	}

	sections := e.doc.Root().FindAll(func(el *Element) bool {
		return el.Key != "" && el.HasClass(ClassSection)
	})
	if len(sections) > 0 && e.doc.Query(ClassNavLink) != nil {
		if e.nav == nil {
			e.nav = e.doc.NewVisibilityObserver(ObserverOptions{RootMargin: e.cfg.NavMargin}, e.onNav)
		}
		for _, s := range sections {
			e.nav.Observe(s)
		}
	}
	e.logger.Debug("armed", zap.Int("entries", len(e.entries)), zap.Int("sections", len(sections)))
}

// Disarm stops all observation. Running count-ups finish on their own.
func (e *RevealEngine) Disarm() {
	for _, o := range []*VisibilityObserver{e.reveal, e.skills, e.nav} {
		if o != nil {
			o.Disconnect()
		}
	}
	e.reveal, e.skills, e.nav = nil, nil, nil
}

// Entries returns every entry seen by Arm, in document order.
func (e *RevealEngine) Entries() []*RevealEntry {
	return e.entries
}

// Entry returns the entry for el, or nil.
func (e *RevealEngine) Entry(el *Element) *RevealEntry {
	return e.byEl[el]
}

// Pending returns the number of entries still waiting to be revealed.
func (e *RevealEngine) Pending() int {
	if e.reveal == nil {
		return 0
	}
	return e.reveal.NumTargets()
}

func (e *RevealEngine) onReveal(entries []VisibilityEntry, o *VisibilityObserver) {
	for _, ve := range entries {
		if !ve.Intersecting {
			continue
		}
		entry := e.byEl[ve.Target]
		o.Unobserve(ve.Target)
		if entry == nil || entry.Revealed {
			continue
		}
		entry.Revealed = true
		ve.Target.AddClass(ClassAnimateVisible)
		if entry.Counter != nil {
			entry.run = e.doc.StartCountUp(entry.counterEl, entry.Counter.Target, entry.Counter.Suffix)
		}
		if e.OnReveal != nil {
			e.OnReveal(entry)
		}
	}
}

func (e *RevealEngine) onSkills(entries []VisibilityEntry, o *VisibilityObserver) {
	for _, ve := range entries {
		if !ve.Intersecting || e.skillsFilled {
			continue
		}
		e.skillsFilled = true
		o.Unobserve(ve.Target)
		for _, fill := range ve.Target.AllByClass(ClassSkillFill) {
			pct, err := strconv.ParseFloat(dataAttr(fill, "width"), 64)
			if err != nil {
				continue
			}
			fill.AddClass("animate")
			barWidth := 0.0
			if fill.Parent != nil {
				barWidth = fill.Parent.box.Width
			}
			e.doc.TransitionWidth(fill, barWidth*pct/100, e.cfg.SkillFill, ease.OutCubic)
		}
	}
}

func (e *RevealEngine) onNav(entries []VisibilityEntry, _ *VisibilityObserver) {
	for _, ve := range entries {
		if !ve.Intersecting {
			continue
		}
		href := "#" + ve.Target.Key
		for _, link := range e.doc.QueryAll(ClassNavLink) {
			v, _ := link.Attr("href")
			link.ToggleClass(ClassActive, v == href)
		}
	}
}

func isCounter(el *Element) bool {
	if !el.HasClass(ClassMetricValue) {
		return false
	}
	_, ok := el.Data("target")
	return ok
}

func dataAttr(el *Element, name string) string {
	v, _ := el.Data(name)
	return v
}
