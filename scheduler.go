package folio

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// FrameFunc is a next-frame callback. now is the frame timestamp on the
// scheduler clock.
type FrameFunc func(now time.Duration)

type timer struct {
	due time.Duration
	seq uint64
	fn  func()
}

// Scheduler is the document's cooperative clock: fixed-delay timers,
// next-frame callbacks and a queue for work handed over from other
// goroutines. Everything except Post must be called from the goroutine
// driving Document.Update.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers []timer
	frames []FrameFunc
	spare  []FrameFunc

	mu     sync.Mutex
	posted []func()
}

// NewScheduler creates a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current clock value.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once the clock has advanced by delay. Timers
// fire in due order; timers due at the same instant fire in the order they
// were scheduled. Negative delays are treated as zero.
func (s *Scheduler) After(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := timer{due: s.now + delay, seq: s.seq, fn: fn}
	i, _ := slices.BinarySearchFunc(s.timers, t, compareTimers)
	s.timers = slices.Insert(s.timers, i, t)
}

// NextFrame schedules fn for the next frame. Callbacks registered while
// frame callbacks are running wait for the frame after.
func (s *Scheduler) NextFrame(fn FrameFunc) {
	s.frames = append(s.frames, fn)
}

// Post queues fn to run on the scheduler goroutine at the start of the next
// frame. Safe to call from any goroutine.
func (s *Scheduler) Post(fn func()) {
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

// PendingTimers returns the number of timers not yet fired.
func (s *Scheduler) PendingTimers() int {
	return len(s.timers)
}

// PendingFrames returns the number of callbacks waiting for the next frame.
func (s *Scheduler) PendingFrames() int {
	return len(s.frames)
}

// runPosted drains the cross-goroutine queue. Returns the number of tasks run.
func (s *Scheduler) runPosted() int {
	s.mu.Lock()
	tasks := s.posted
	s.posted = nil
	s.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// advance moves the clock forward by dt and fires every timer that has
// come due, including timers scheduled by those timers that are already due.
// Returns the number of timers fired.
func (s *Scheduler) advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}
	fired := 0
	for len(s.timers) > 0 && s.timers[0].due <= s.now {
		t := s.timers[0]
		s.timers = slices.Delete(s.timers, 0, 1)
		t.fn()
		fired++
	}
	return fired
}

// runFrames runs the callbacks queued before this frame started.
func (s *Scheduler) runFrames() int {
	if len(s.frames) == 0 {
		return 0
	}
	run := s.frames
	s.frames = s.spare[:0]
	for _, fn := range run {
		fn(s.now)
	}
	clear(run)
	s.spare = run[:0]
	return len(run)
}

func compareTimers(a, b timer) int {
	if c := cmp.Compare(a.due, b.due); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}
