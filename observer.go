package folio

import "slices"

// ObserverOptions configures a VisibilityObserver.
type ObserverOptions struct {
	// RootMargin grows or shrinks the viewport before intersecting.
	RootMargin Margin
	// Threshold is the visible fraction of the target at which it counts as
	// intersecting. Zero means any overlap.
	Threshold float64
}

// VisibilityEntry reports a change in a target's intersection with the
// viewport.
type VisibilityEntry struct {
	Target       *Element
	Intersecting bool
	Ratio        float64
}

type observedTarget struct {
	el           *Element
	intersecting bool
	reported     bool
}

// VisibilityObserver watches elements against the viewport and reports
// state changes once per frame, after layout. Every target is reported once
// on the first frame after Observe, then only when its state flips.
type VisibilityObserver struct {
	doc      *Document
	opts     ObserverOptions
	callback func([]VisibilityEntry, *VisibilityObserver)
	targets  []*observedTarget
	entries  []VisibilityEntry
}

// NewVisibilityObserver creates and registers an observer.
func (d *Document) NewVisibilityObserver(opts ObserverOptions, callback func([]VisibilityEntry, *VisibilityObserver)) *VisibilityObserver {
	o := &VisibilityObserver{doc: d, opts: opts, callback: callback}
	d.observers = append(d.observers, o)
	return o
}

// Observe starts watching el. Observing an element twice is a no-op.
func (o *VisibilityObserver) Observe(el *Element) {
	if el == nil || o.indexOf(el) >= 0 {
		return
	}
	o.targets = append(o.targets, &observedTarget{el: el})
}

// Unobserve stops watching el. Safe to call from the callback.
func (o *VisibilityObserver) Unobserve(el *Element) {
	if i := o.indexOf(el); i >= 0 {
		o.targets = slices.Delete(o.targets, i, i+1)
	}
}

// Disconnect stops watching all targets and unregisters the observer.
func (o *VisibilityObserver) Disconnect() {
	o.targets = nil
	o.doc.observers = slices.DeleteFunc(o.doc.observers, func(x *VisibilityObserver) bool { return x == o })
}

// Observing reports whether el is being watched.
func (o *VisibilityObserver) Observing(el *Element) bool {
	return o.indexOf(el) >= 0
}

// NumTargets returns the number of watched elements.
func (o *VisibilityObserver) NumTargets() int {
	return len(o.targets)
}

func (o *VisibilityObserver) indexOf(el *Element) int {
	return slices.IndexFunc(o.targets, func(t *observedTarget) bool { return t.el == el })
}

// check computes entries for targets whose state changed. Layout must be
// current.
func (o *VisibilityObserver) check(bounds Rect) []VisibilityEntry {
	root := bounds.Expand(o.opts.RootMargin)
	o.entries = o.entries[:0]
	for _, t := range o.targets {
		if t.el.IsDisposed() || !o.doc.root.Contains(t.el) {
			continue
		}
		r := paintedRect(t.el)
		ratio := visibleRatio(r, root)
		in := r.Intersects(root) && ratio >= o.opts.Threshold
		if o.opts.Threshold > 0 && ratio == 0 {
			in = false
		}
		if t.reported && in == t.intersecting {
			continue
		}
		t.reported = true
		t.intersecting = in
		o.entries = append(o.entries, VisibilityEntry{Target: t.el, Intersecting: in, Ratio: ratio})
	}
	return o.entries
}

// visibleRatio is the fraction of r's area inside root. Zero-area targets
// count as fully visible when they touch root.
func visibleRatio(r, root Rect) float64 {
	if r.Area() == 0 {
		if r.Intersects(root) {
			return 1
		}
		return 0
	}
	return r.Intersection(root).Area() / r.Area()
}

// updateObservers runs every observer against the current viewport.
// Returns the number of entries delivered.
func (d *Document) updateObservers() int {
	if len(d.observers) == 0 {
		return 0
	}
	bounds := d.viewport.VisibleBounds()
	delivered := 0
	for _, o := range slices.Clone(d.observers) {
		entries := o.check(bounds)
		if len(entries) == 0 || o.callback == nil {
			continue
		}
		delivered += len(entries)
		o.callback(slices.Clone(entries), o)
	}
	return delivered
}
