package folio

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Property names a transitionable style property.
type Property uint8

const (
	PropWidth     Property = iota // Style.Width
	PropHeight                    // Style.Height
	PropOpacity                   // Style.Opacity
	PropTransform                 // Style.TranslateX and Style.TranslateY
	PropGap                       // Style.Gap
)

var propertyNames = [...]string{"width", "height", "opacity", "transform", "gap"}

func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return "unknown"
}

// Transition animates up to 2 float64 style fields of one property on an
// element. It is the declarative counterpart of a frame callback: callers
// set the target once and the document advances it each frame, then
// dispatches a TransitionEvent to the element when it finishes.
type Transition struct {
	Property Property
	Done     bool

	target *Element
	tweens [2]*gween.Tween
	ends   [2]float32
	fields [2]*float64
	count  int
}

// Target returns the element being animated.
func (t *Transition) Target() *Element {
	return t.target
}

// update advances all tweens by dt seconds and writes values to the target
// fields. If the target element has been disposed, Done is set and no
// writes occur.
func (t *Transition) update(dt float32) {
	if t.Done {
		return
	}
	if t.target.IsDisposed() {
		t.Done = true
		return
	}
	allDone := true
	for i := 0; i < t.count; i++ {
		val, finished := t.tweens[i].Update(dt)
		*t.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	t.Done = allDone
}

// settle writes the end values immediately.
func (t *Transition) settle() {
	for i := 0; i < t.count; i++ {
		*t.fields[i] = float64(t.ends[i])
	}
	t.Done = true
}

func newTransition(el *Element, prop Property, duration float32, fn ease.TweenFunc, to ...float64) *Transition {
	t := &Transition{Property: prop, target: el}
	switch prop {
	case PropWidth:
		if !el.Style.Width.Set {
			el.Style.Width = Px(0)
		}
		t.fields[0] = &el.Style.Width.Px
	case PropHeight:
		if !el.Style.Height.Set {
			el.Style.Height = Px(0)
		}
		t.fields[0] = &el.Style.Height.Px
	case PropOpacity:
		t.fields[0] = &el.Style.Opacity
	case PropTransform:
		t.fields[0] = &el.Style.TranslateX
		t.fields[1] = &el.Style.TranslateY
	case PropGap:
		t.fields[0] = &el.Style.Gap
	}
	t.count = 1
	if prop == PropTransform {
		t.count = 2
	}
	for i := 0; i < t.count; i++ {
		v := 0.0
		if i < len(to) {
			v = to[i]
		}
		t.ends[i] = float32(v)
		t.tweens[i] = gween.New(float32(*t.fields[i]), float32(v), duration, fn)
	}
	return t
}

// startTransition registers a transition, replacing any running transition
// of the same property on the same element. A zero duration applies the
// end values immediately and fires no event.
func (d *Document) startTransition(el *Element, prop Property, duration time.Duration, fn ease.TweenFunc, to ...float64) *Transition {
	if el == nil {
		return nil
	}
	if fn == nil {
		fn = ease.Linear
	}
	for _, running := range d.transitions {
		if running.target == el && running.Property == prop && !running.Done {
			running.Done = true // superseded, no event
		}
	}
	t := newTransition(el, prop, float32(duration.Seconds()), fn, to...)
	if duration <= 0 {
		t.settle()
		return t
	}
	d.transitions = append(d.transitions, t)
	return t
}

// TransitionWidth animates el's width to px.
func (d *Document) TransitionWidth(el *Element, px float64, duration time.Duration, fn ease.TweenFunc) *Transition {
	return d.startTransition(el, PropWidth, duration, fn, px)
}

// TransitionHeight animates el's height to px.
func (d *Document) TransitionHeight(el *Element, px float64, duration time.Duration, fn ease.TweenFunc) *Transition {
	return d.startTransition(el, PropHeight, duration, fn, px)
}

// TransitionOpacity animates el's opacity to alpha.
func (d *Document) TransitionOpacity(el *Element, alpha float64, duration time.Duration, fn ease.TweenFunc) *Transition {
	return d.startTransition(el, PropOpacity, duration, fn, alpha)
}

// TransitionTransform animates el's translate to (x, y).
func (d *Document) TransitionTransform(el *Element, x, y float64, duration time.Duration, fn ease.TweenFunc) *Transition {
	return d.startTransition(el, PropTransform, duration, fn, x, y)
}

// TransitionGap animates el's child gap to px.
func (d *Document) TransitionGap(el *Element, px float64, duration time.Duration, fn ease.TweenFunc) *Transition {
	return d.startTransition(el, PropGap, duration, fn, px)
}

// ClearTransitions settles every running transition on el at its end value
// without dispatching events, like removing an inline transition property.
func (d *Document) ClearTransitions(el *Element) {
	for _, t := range d.transitions {
		if t.target == el && !t.Done {
			t.settle()
		}
	}
}

// HasTransition reports whether el has a running transition of prop.
func (d *Document) HasTransition(el *Element, prop Property) bool {
	for _, t := range d.transitions {
		if t.target == el && t.Property == prop && !t.Done {
			return true
		}
	}
	return false
}

// updateTransitions advances running transitions and dispatches completion
// events. Returns the number of transitions still running.
func (d *Document) updateTransitions(dt float32) int {
	if len(d.transitions) == 0 {
		return 0
	}
	active := d.transitions
	d.transitions = nil
	var finished []*Transition
	kept := active[:0]
	for _, t := range active {
		if t.Done {
			continue
		}
		t.update(dt)
		if t.Done {
			if !t.target.IsDisposed() {
				finished = append(finished, t)
			}
			continue
		}
		kept = append(kept, t)
	}
	// Transitions started by listeners land in d.transitions.
	d.transitions = append(kept, d.transitions...)
	if !d.SuppressTransitionEnd {
		for _, t := range finished {
			t.target.dispatchTransitionEnd(TransitionEvent{Target: t.target, Property: t.Property})
		}
	}
	return len(d.transitions)
}
