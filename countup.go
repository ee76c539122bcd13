package folio

import (
	"math"
	"strconv"
	"time"
)

// Count-up curve constants.
const (
	CountUpDuration  = 2000 * time.Millisecond
	countUpOvershoot = 1.15
	countUpRiseShare = 0.7 // share of the duration spent rising to the overshoot
)

// CountUpOvershoot returns the peak value shown for target.
func CountUpOvershoot(target int) int {
	return int(math.Ceil(float64(target) * countUpOvershoot))
}

// CountUpValue returns the integer displayed elapsed into a count-up of
// length total. The value rises to CountUpOvershoot(target) with a cubic
// ease-out over the first 70% of total, settles back with a quadratic
// ease-in, and is exactly target once elapsed reaches total. The curves are
// evaluated in float64 so large targets land on the same integers as
// over*(1-(1-p)^3) and over-(over-target)*p^2.
func CountUpValue(target int, elapsed, total time.Duration) int {
	if total <= 0 || elapsed >= total {
		return max(target, 0)
	}
	if target <= 0 {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	over := float64(CountUpOvershoot(target))
	rise := time.Duration(float64(total) * countUpRiseShare)

	if elapsed < rise {
		p := clamp01(float64(elapsed) / float64(rise))
		return int(math.Round(over * (1 - math.Pow(1-p, 3))))
	}
	p := clamp01(float64(elapsed-rise) / float64(total-rise))
	return int(math.Round(over - (over-float64(target))*p*p))
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// CountUpRun animates one counter element's text from 0 to Target. It is
// stepped by frame callbacks, not by transitions, since the animated value
// is text.
type CountUpRun struct {
	Target int
	Suffix string
	Start  time.Duration

	el       *Element
	doc      *Document
	duration time.Duration
	done     bool
	onDone   func()
}

// StartCountUp seeds a run on el at the document's current time and
// schedules its first frame.
func (d *Document) StartCountUp(el *Element, target int, suffix string) *CountUpRun {
	r := &CountUpRun{
		Target:   max(target, 0),
		Suffix:   suffix,
		Start:    d.Now(),
		el:       el,
		doc:      d,
		duration: CountUpDuration,
	}
	d.NextFrame(r.frame)
	return r
}

// Done reports whether the run has written its final text.
func (r *CountUpRun) Done() bool {
	return r.done
}

func (r *CountUpRun) frame(now time.Duration) {
	if r.el.IsDisposed() {
		r.finish()
		return
	}
	elapsed := now - r.Start
	r.el.Text = strconv.Itoa(CountUpValue(r.Target, elapsed, r.duration)) + r.Suffix
	if elapsed >= r.duration {
		r.finish()
		return
	}
	r.doc.NextFrame(r.frame)
}

func (r *CountUpRun) finish() {
	r.done = true
	if r.onDone != nil {
		r.onDone()
	}
}
