package folio

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

const frame = 16 * time.Millisecond

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestTransitionWidthRunsToEnd(t *testing.T) {
	doc := NewDocument(400, 300)
	el := NewElement("div", "")
	doc.Body().AppendChild(el)

	var events []TransitionEvent
	el.OnTransitionEnd(func(ev TransitionEvent) { events = append(events, ev) })

	doc.TransitionWidth(el, 200, 100*time.Millisecond, ease.Linear)
	if !el.Style.Width.Set || el.Style.Width.Px != 0 {
		t.Errorf("auto width should start from 0, got %+v", el.Style.Width)
	}
	if !doc.HasTransition(el, PropWidth) {
		t.Error("transition should be running")
	}

	doc.Update(50 * time.Millisecond)
	if !approx(el.Style.Width.Px, 100) {
		t.Errorf("width at half = %v, want 100", el.Style.Width.Px)
	}
	if len(events) != 0 {
		t.Error("no event before the end")
	}

	doc.Update(60 * time.Millisecond)
	if !approx(el.Style.Width.Px, 200) {
		t.Errorf("width at end = %v, want 200", el.Style.Width.Px)
	}
	if len(events) != 1 || events[0].Property != PropWidth || events[0].Target != el {
		t.Fatalf("events = %+v", events)
	}
	if doc.HasTransition(el, PropWidth) {
		t.Error("transition should be finished")
	}

	doc.Update(frame)
	if len(events) != 1 {
		t.Error("event should fire once")
	}
}

func TestTransitionTransformTwoFields(t *testing.T) {
	doc := NewDocument(400, 300)
	el := NewElement("div", "")
	doc.Body().AppendChild(el)
	el.Style.TranslateY = -80

	doc.TransitionTransform(el, 30, 0, 100*time.Millisecond, ease.OutCubic)
	doc.Advance(120*time.Millisecond, frame)
	if !approx(el.Style.TranslateX, 30) || !approx(el.Style.TranslateY, 0) {
		t.Errorf("translate = (%v, %v), want (30, 0)", el.Style.TranslateX, el.Style.TranslateY)
	}
}

func TestTransitionSupersededFiresNoEvent(t *testing.T) {
	doc := NewDocument(400, 300)
	el := NewElement("div", "")
	doc.Body().AppendChild(el)

	var props []Property
	el.OnTransitionEnd(func(ev TransitionEvent) { props = append(props, ev.Property) })

	doc.TransitionOpacity(el, 0, 100*time.Millisecond, nil)
	doc.Update(frame)
	doc.TransitionOpacity(el, 0.5, 100*time.Millisecond, nil)
	doc.Advance(200*time.Millisecond, frame)

	if len(props) != 1 {
		t.Fatalf("events = %v, want exactly one", props)
	}
	if !approx(el.Style.Opacity, 0.5) {
		t.Errorf("opacity = %v, want 0.5", el.Style.Opacity)
	}
}

func TestTransitionZeroDurationApplies(t *testing.T) {
	doc := NewDocument(400, 300)
	el := NewElement("div", "")
	doc.Body().AppendChild(el)
	fired := false
	el.OnTransitionEnd(func(TransitionEvent) { fired = true })

	doc.TransitionGap(el, 12, 0, nil)
	if el.Style.Gap != 12 {
		t.Errorf("gap = %v, want 12", el.Style.Gap)
	}
	doc.Update(frame)
	if fired {
		t.Error("zero-duration transition should not fire an event")
	}
}

func TestSuppressTransitionEnd(t *testing.T) {
	doc := NewDocument(400, 300)
	doc.SuppressTransitionEnd = true
	el := NewElement("div", "")
	doc.Body().AppendChild(el)
	fired := false
	el.OnTransitionEnd(func(TransitionEvent) { fired = true })

	doc.TransitionHeight(el, 50, 50*time.Millisecond, nil)
	doc.Advance(100*time.Millisecond, frame)
	if fired {
		t.Error("events should be suppressed")
	}
	if !approx(el.Style.Height.Px, 50) {
		t.Errorf("height = %v, want 50", el.Style.Height.Px)
	}
}

func TestClearTransitionsSettlesSilently(t *testing.T) {
	doc := NewDocument(400, 300)
	el := NewElement("div", "")
	doc.Body().AppendChild(el)
	fired := false
	el.OnTransitionEnd(func(TransitionEvent) { fired = true })

	doc.TransitionTransform(el, 100, 50, time.Second, nil)
	doc.Update(frame)
	doc.ClearTransitions(el)

	if el.Style.TranslateX != 100 || el.Style.TranslateY != 50 {
		t.Errorf("translate = (%v, %v), want end values", el.Style.TranslateX, el.Style.TranslateY)
	}
	doc.Advance(2*time.Second, frame)
	if fired {
		t.Error("cleared transition should not fire an event")
	}
}

func TestTransitionDisposedTarget(t *testing.T) {
	doc := NewDocument(400, 300)
	el := NewElement("div", "")
	doc.Body().AppendChild(el)
	fired := false
	el.OnTransitionEnd(func(TransitionEvent) { fired = true })

	doc.TransitionOpacity(el, 0, 50*time.Millisecond, nil)
	el.Dispose()
	doc.Advance(100*time.Millisecond, frame)
	if fired {
		t.Error("disposed target should get no event")
	}
	if doc.HasTransition(el, PropOpacity) {
		t.Error("transition on disposed target should be dropped")
	}
}

func TestTransitionStartedByListener(t *testing.T) {
	doc := NewDocument(400, 300)
	el := NewElement("div", "")
	doc.Body().AppendChild(el)

	var h ListenerHandle
	h = el.OnTransitionEnd(func(ev TransitionEvent) {
		h.Remove()
		doc.TransitionOpacity(el, 0, 50*time.Millisecond, nil)
	})
	doc.TransitionWidth(el, 10, 50*time.Millisecond, nil)
	doc.Advance(64*time.Millisecond, frame)
	if !doc.HasTransition(el, PropOpacity) {
		t.Fatal("transition started from a listener should be kept")
	}
	doc.Advance(100*time.Millisecond, frame)
	if !approx(el.Style.Opacity, 0) {
		t.Errorf("opacity = %v, want 0", el.Style.Opacity)
	}
}

func TestPropertyString(t *testing.T) {
	if PropTransform.String() != "transform" || Property(99).String() != "unknown" {
		t.Error("unexpected property names")
	}
}
