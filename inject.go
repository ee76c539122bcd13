package folio

// syntheticScroll is a single injected scroll step: an absolute offset or a
// relative delta applied on one frame.
type syntheticScroll struct {
	y        float64
	absolute bool
}

// InjectScroll queues a relative scroll by dy. The step is consumed at the
// start of the next frame, before timers and layout run.
func (d *Document) InjectScroll(dy float64) {
	d.injectQueue = append(d.injectQueue, syntheticScroll{y: dy})
}

// InjectScrollTo queues a scroll from the current queued position to y,
// linearly interpolated over frames frames. The last frame lands exactly on
// y. Minimum frames is 1.
func (d *Document) InjectScrollTo(y float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	from := d.queuedScrollY()
	for i := 1; i < frames; i++ {
		t := float64(i) / float64(frames)
		d.injectQueue = append(d.injectQueue, syntheticScroll{y: from + (y-from)*t, absolute: true})
	}
	d.injectQueue = append(d.injectQueue, syntheticScroll{y: y, absolute: true})
}

// PendingInjections returns the number of queued scroll steps.
func (d *Document) PendingInjections() int {
	return len(d.injectQueue)
}

// queuedScrollY is the scroll offset after every queued step has run.
func (d *Document) queuedScrollY() float64 {
	y := d.viewport.ScrollY
	for _, s := range d.injectQueue {
		if s.absolute {
			y = s.y
		} else {
			y += s.y
		}
		y = max(y, 0)
	}
	return y
}

// processInjectedScroll pops one step from the inject queue and applies it
// to the viewport. Returns true if a step was consumed.
func (d *Document) processInjectedScroll() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	s := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	if s.absolute {
		d.viewport.ScrollTo(s.y, 0, nil)
	} else {
		d.viewport.ScrollBy(s.y)
	}
	return true
}
