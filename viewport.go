package folio

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is the visible window onto the document: its size and vertical
// scroll offset.
type Viewport struct {
	Width, Height float64
	// ScrollY is the document offset of the viewport's top edge.
	ScrollY float64

	scrollTween *gween.Tween
}

// newViewport creates a viewport of the given size scrolled to the top.
func newViewport(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// ScrollTo animates the scroll offset to y over duration.
func (v *Viewport) ScrollTo(y float64, duration time.Duration, easeFn ease.TweenFunc) {
	if duration <= 0 {
		v.scrollTween = nil
		v.ScrollY = max(y, 0)
		return
	}
	if easeFn == nil {
		easeFn = ease.InOutQuad
	}
	v.scrollTween = gween.New(float32(v.ScrollY), float32(max(y, 0)), float32(duration.Seconds()), easeFn)
}

// ScrollBy jumps the scroll offset by dy, clamped at the top.
func (v *Viewport) ScrollBy(dy float64) {
	v.scrollTween = nil
	v.ScrollY = max(v.ScrollY+dy, 0)
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// update advances the scroll animation. Called from Document.Update.
func (v *Viewport) update(dt float32) {
	if v.scrollTween == nil {
		return
	}
	val, done := v.scrollTween.Update(dt)
	v.ScrollY = float64(val)
	if done {
		v.scrollTween = nil
	}
}

// VisibleBounds returns the document-space rectangle currently in view.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{X: 0, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// DocumentToViewport converts a document-space rect to viewport space.
func (v *Viewport) DocumentToViewport(r Rect) Rect {
	return r.Translate(0, -v.ScrollY)
}
