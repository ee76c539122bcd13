// Package folio is a retained-mode, headless model of a single-page
// portfolio and the animation layer that runs on top of it.
//
// The page lives in a [Document]: a tree of [Element] values rooted at an
// html element, a [Viewport] that scrolls over it and a [Scheduler] that
// provides timers, next-frame callbacks and a queue for results coming
// back from other goroutines. The document advances one frame at a time:
//
//	doc := folio.NewDocument(1280, 720)
//	folio.BuildSkeleton(doc, folio.DefaultBrand)
//	page := folio.NewPage(doc, session, client, folio.PageConfig{})
//	page.Boot(ctx)
//	for !page.Painted() {
//		doc.Update(time.Second / 60)
//	}
//
// # Frames
//
// [Document.Update] runs, in order: the attached script and injected
// scroll, posted tasks, due timers, frame callbacks, the viewport scroll
// animation and property transitions, layout, visibility observers, and
// finally scroll listeners. Reading [Document.ClientRect] forces a layout
// at any point.
//
// # Transitions
//
// Style properties (width, height, opacity, transform, gap) animate through
// declarative transitions backed by gween tweens. A finished transition
// dispatches a [TransitionEvent] to the element's listeners unless
// [Document.SuppressTransitionEnd] is set. Text that changes every frame,
// like a counter, is driven by [Document.NextFrame] instead.
//
// # Intro
//
// [IntroSequencer] plays the loader timeline: the wordmark is measured and
// expanded, the brand is pinned to the body, content is rendered behind it,
// and the brand morphs into the hero heading. Bypass conditions (no loader,
// already shown this session, reduced motion) render immediately. The
// content callback runs exactly once on every path.
//
// # Reveal
//
// [RevealEngine] adds "animate-visible" to each "animate-on-scroll" element
// the first time it enters the viewport, starts a count-up for metric
// counters, fills the skill bars once and highlights the nav link of the
// section in view.
//
// # Session
//
// [Session] carries the per-session loader marker, the persisted theme and
// the reduced-motion preference. [FileKV] persists either store as YAML.
package folio
