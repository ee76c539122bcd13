package folio

import (
	"sync"
	"testing"
	"time"
)

func TestSchedulerTimerOrder(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After(20*time.Millisecond, func() { got = append(got, "b") })
	s.After(10*time.Millisecond, func() { got = append(got, "a") })
	s.After(20*time.Millisecond, func() { got = append(got, "c") })
	s.After(-5*time.Millisecond, func() { got = append(got, "now") })

	if n := s.advance(0); n != 1 {
		t.Errorf("fired %d at t=0, want 1", n)
	}
	s.advance(15 * time.Millisecond)
	s.advance(5 * time.Millisecond)

	want := []string{"now", "a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
	if s.PendingTimers() != 0 {
		t.Errorf("pending = %d", s.PendingTimers())
	}
}

func TestSchedulerTimerScheduledByTimer(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(10*time.Millisecond, func() {
		fired++
		s.After(0, func() { fired++ })
		s.After(time.Second, func() { fired++ })
	})
	s.advance(10 * time.Millisecond)
	if fired != 2 {
		t.Errorf("fired = %d, want 2", fired)
	}
	if s.PendingTimers() != 1 {
		t.Errorf("pending = %d, want 1", s.PendingTimers())
	}
}

func TestSchedulerNextFrameDefers(t *testing.T) {
	s := NewScheduler()
	var order []int
	s.NextFrame(func(time.Duration) {
		order = append(order, 1)
		s.NextFrame(func(time.Duration) { order = append(order, 2) })
	})

	if n := s.runFrames(); n != 1 {
		t.Errorf("first frame ran %d, want 1", n)
	}
	if len(order) != 1 {
		t.Fatalf("callback registered during a frame should wait, got %v", order)
	}
	if s.PendingFrames() != 1 {
		t.Errorf("pending frames = %d, want 1", s.PendingFrames())
	}
	s.runFrames()
	if len(order) != 2 || order[1] != 2 {
		t.Errorf("order = %v", order)
	}
}

func TestSchedulerFrameTimestamp(t *testing.T) {
	s := NewScheduler()
	var at time.Duration
	s.NextFrame(func(now time.Duration) { at = now })
	s.advance(16 * time.Millisecond)
	s.runFrames()
	if at != 16*time.Millisecond {
		t.Errorf("frame time = %v, want 16ms", at)
	}
}

func TestSchedulerPostFromGoroutines(t *testing.T) {
	s := NewScheduler()
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Post(func() { count++ })
		}()
	}
	wg.Wait()
	if n := s.runPosted(); n != 8 {
		t.Errorf("ran %d posted tasks, want 8", n)
	}
	if count != 8 {
		t.Errorf("count = %d, want 8", count)
	}
	if s.runPosted() != 0 {
		t.Error("queue should be drained")
	}
}

func TestDocumentUpdateOrder(t *testing.T) {
	doc := NewDocument(100, 100)
	var order []string
	doc.Scheduler().Post(func() { order = append(order, "posted") })
	doc.After(0, func() {
		order = append(order, "timer")
		doc.Scheduler().Post(func() { order = append(order, "late-post") })
	})
	doc.NextFrame(func(time.Duration) { order = append(order, "frame") })

	doc.Update(time.Millisecond)
	want := []string{"posted", "timer", "frame"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}

	doc.Update(time.Millisecond)
	if order[len(order)-1] != "late-post" {
		t.Errorf("task posted by a timer should run next frame, got %v", order)
	}
}

func TestDocumentAdvance(t *testing.T) {
	doc := NewDocument(100, 100)
	frames := 0
	var tick FrameFunc
	tick = func(time.Duration) {
		frames++
		doc.NextFrame(tick)
	}
	doc.NextFrame(tick)
	doc.Advance(100*time.Millisecond, 10*time.Millisecond)
	if doc.Now() != 100*time.Millisecond {
		t.Errorf("Now = %v, want 100ms", doc.Now())
	}
	if frames != 10 {
		t.Errorf("frames = %d, want 10", frames)
	}
}
