package folio

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestCountUpOvershoot(t *testing.T) {
	tests := []struct{ target, want int }{
		{15, 18},
		{100, 115},
		{20, 23},
		{0, 0},
		{1, 2},
	}
	for _, tt := range tests {
		if got := CountUpOvershoot(tt.target); got != tt.want {
			t.Errorf("CountUpOvershoot(%d) = %d, want %d", tt.target, got, tt.want)
		}
	}
}

func TestCountUpValueCurve(t *testing.T) {
	d := CountUpDuration
	if v := CountUpValue(15, 0, d); v != 0 {
		t.Errorf("start = %d, want 0", v)
	}
	if v := CountUpValue(15, 1400*time.Millisecond, d); v != 18 {
		t.Errorf("peak = %d, want 18", v)
	}
	if v := CountUpValue(15, d, d); v != 15 {
		t.Errorf("end = %d, want 15", v)
	}
	if v := CountUpValue(15, 3*d, d); v != 15 {
		t.Errorf("past end = %d, want 15", v)
	}
	if v := CountUpValue(15, -time.Second, d); v != 0 {
		t.Errorf("negative elapsed = %d, want 0", v)
	}
	if v := CountUpValue(0, d/2, d); v != 0 {
		t.Errorf("zero target = %d, want 0", v)
	}
}

func TestCountUpValueShape(t *testing.T) {
	d := CountUpDuration
	rise := 1400 * time.Millisecond
	prev := -1
	for e := time.Duration(0); e <= rise; e += 10 * time.Millisecond {
		v := CountUpValue(100, e, d)
		if v < prev {
			t.Fatalf("rise not monotonic at %v: %d < %d", e, v, prev)
		}
		prev = v
	}
	if prev != 115 {
		t.Fatalf("rise ends at %d, want 115", prev)
	}
	for e := rise; e <= d; e += 10 * time.Millisecond {
		v := CountUpValue(100, e, d)
		if v > prev {
			t.Fatalf("settle not monotonic at %v: %d > %d", e, v, prev)
		}
		if v < 100 {
			t.Fatalf("settle dips below target at %v: %d", e, v)
		}
		prev = v
	}
}

func TestCountUpValueLargeTargets(t *testing.T) {
	d := CountUpDuration
	rise := 1400 * time.Millisecond
	for _, target := range []int{1_000_000, 50_000_000, 2_000_000_000} {
		over := float64(CountUpOvershoot(target))
		for e := time.Duration(0); e < d; e += time.Millisecond {
			var want int
			if e < rise {
				p := float64(e) / float64(rise)
				want = int(math.Round(over * (1 - math.Pow(1-p, 3))))
			} else {
				p := float64(e-rise) / float64(d-rise)
				want = int(math.Round(over - (over-float64(target))*p*p))
			}
			if got := CountUpValue(target, e, d); got != want {
				t.Fatalf("CountUpValue(%d, %v) = %d, want %d", target, e, got, want)
			}
		}
		if got := CountUpValue(target, d, d); got != target {
			t.Errorf("CountUpValue(%d) at end = %d, want %d", target, got, target)
		}
	}
}

func TestCountUpRun(t *testing.T) {
	doc := NewDocument(400, 300)
	el := NewText("", "0", ClassMetricValue)
	doc.Body().AppendChild(el)

	run := doc.StartCountUp(el, 15, "+")
	var seen []int
	for i := 0; i < 200 && !run.Done(); i++ {
		doc.Update(frame)
		if !strings.HasSuffix(el.Text, "+") {
			t.Fatalf("text %q lacks suffix", el.Text)
		}
		v, err := strconv.Atoi(strings.TrimSuffix(el.Text, "+"))
		if err != nil {
			t.Fatal(err)
		}
		seen = append(seen, v)
	}
	if !run.Done() {
		t.Fatal("count-up should finish")
	}
	if el.Text != "15+" {
		t.Errorf("final text = %q, want 15+", el.Text)
	}
	peak := 0
	for _, v := range seen {
		peak = max(peak, v)
	}
	if peak != 18 {
		t.Errorf("peak = %d, want 18", peak)
	}
	if doc.Now()-run.Start < CountUpDuration {
		t.Errorf("finished after %v, before the full duration", doc.Now()-run.Start)
	}

	doc.Update(frame)
	if el.Text != "15+" {
		t.Error("finished run should not write again")
	}
}

func TestCountUpZeroTarget(t *testing.T) {
	doc := NewDocument(400, 300)
	el := NewText("", "0", ClassMetricValue)
	doc.Body().AppendChild(el)
	run := doc.StartCountUp(el, 0, "+")
	doc.Advance(CountUpDuration+100*time.Millisecond, frame)
	if !run.Done() || el.Text != "0+" {
		t.Errorf("text = %q done = %v, want 0+ done", el.Text, run.Done())
	}
}

func TestCountUpDisposedElement(t *testing.T) {
	doc := NewDocument(400, 300)
	el := NewText("", "0")
	doc.Body().AppendChild(el)
	run := doc.StartCountUp(el, 50, "")
	doc.Update(frame)
	el.Dispose()
	doc.Update(frame)
	if !run.Done() {
		t.Error("run should stop when its element is disposed")
	}
	if doc.Scheduler().PendingFrames() != 0 {
		t.Error("stopped run should not reschedule")
	}
}
