package folio

import (
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame counts. Only reported when debug mode is on.
type frameStats struct {
	posted       int
	timers       int
	frames       int
	transitions  int
	observed     int
	layoutPasses int
	elapsed      time.Duration
}

// debugLog writes the frame stats at debug level.
func (d *Document) debugLog(stats frameStats) {
	if !d.debug {
		return
	}
	d.logger.Debug("frame",
		zap.Duration("clock", d.scheduler.now),
		zap.Duration("elapsed", stats.elapsed),
		zap.Int("posted", stats.posted),
		zap.Int("timers", stats.timers),
		zap.Int("frame_callbacks", stats.frames),
		zap.Int("transitions", stats.transitions),
		zap.Int("observer_entries", stats.observed),
		zap.Int("layout_passes", stats.layoutPasses),
	)
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if the tree below root is deeper than
// debugMaxTreeDepth.
func (d *Document) debugCheckTreeDepth() {
	var deepest int
	var walk func(el *Element, depth int)
	walk = func(el *Element, depth int) {
		deepest = max(deepest, depth)
		for _, c := range el.children {
			walk(c, depth+1)
		}
	}
	walk(d.root, 1)
	if deepest > debugMaxTreeDepth {
		d.logger.Warn("document tree too deep",
			zap.Int("depth", deepest), zap.Int("threshold", debugMaxTreeDepth))
	}
}
