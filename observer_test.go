package folio

import "testing"

// tallDoc returns a 400x300 document whose body holds a 1000px spacer
// followed by target, so target starts at y=1000.
func tallDoc(target *Element) *Document {
	doc := NewDocument(400, 300)
	spacer := NewElement("div", "")
	spacer.Style.Height = Px(1000)
	doc.Body().AppendChild(spacer)
	doc.Body().AppendChild(target)
	return doc
}

func TestObserverInitialAndFlips(t *testing.T) {
	target := NewElement("div", "t")
	target.Style.Height = Px(100)
	doc := tallDoc(target)

	var got []VisibilityEntry
	o := doc.NewVisibilityObserver(ObserverOptions{}, func(es []VisibilityEntry, _ *VisibilityObserver) {
		got = append(got, es...)
	})
	o.Observe(target)
	o.Observe(target)
	if o.NumTargets() != 1 {
		t.Errorf("targets = %d, want 1", o.NumTargets())
	}

	doc.Update(frame)
	if len(got) != 1 || got[0].Intersecting {
		t.Fatalf("first frame should report not intersecting, got %+v", got)
	}

	doc.Update(frame)
	if len(got) != 1 {
		t.Error("unchanged state should not be reported again")
	}

	doc.Viewport().ScrollBy(800)
	doc.Update(frame)
	if len(got) != 2 || !got[1].Intersecting || got[1].Ratio != 1 {
		t.Fatalf("scrolled in: %+v", got)
	}

	doc.Viewport().ScrollBy(-800)
	doc.Update(frame)
	if len(got) != 3 || got[2].Intersecting {
		t.Fatalf("scrolled out: %+v", got)
	}
}

func TestObserverThresholdAndMargin(t *testing.T) {
	target := NewElement("div", "t")
	target.Style.Height = Px(100)
	doc := tallDoc(target)

	var last *VisibilityEntry
	o := doc.NewVisibilityObserver(ObserverOptions{RootMargin: Margin{Bottom: 50}, Threshold: 0.1},
		func(es []VisibilityEntry, _ *VisibilityObserver) {
			last = &es[len(es)-1]
		})
	o.Observe(target)

	// Grown viewport bottom at 1005: 5% of target inside.
	doc.Viewport().ScrollBy(655)
	doc.Update(frame)
	if last == nil || last.Intersecting {
		t.Fatalf("5%% visible should not count, got %+v", last)
	}

	// Grown viewport bottom at 1015: 15% inside.
	doc.Viewport().ScrollBy(10)
	doc.Update(frame)
	if !last.Intersecting {
		t.Fatalf("15%% visible should count, got %+v", last)
	}
}

func TestObserverUnobserveFromCallback(t *testing.T) {
	a := NewElement("div", "a")
	a.Style.Height = Px(10)
	b := NewElement("div", "b")
	b.Style.Height = Px(10)
	doc := NewDocument(400, 300)
	doc.Body().AppendChild(a)
	doc.Body().AppendChild(b)

	calls := 0
	o := doc.NewVisibilityObserver(ObserverOptions{}, func(es []VisibilityEntry, o *VisibilityObserver) {
		for _, e := range es {
			calls++
			o.Unobserve(e.Target)
		}
	})
	o.Observe(a)
	o.Observe(b)
	doc.Update(frame)
	doc.Update(frame)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if o.Observing(a) || o.Observing(b) {
		t.Error("targets should be unobserved")
	}
}

func TestObserverSkipsDetached(t *testing.T) {
	doc := NewDocument(400, 300)
	el := NewElement("div", "")
	calls := 0
	o := doc.NewVisibilityObserver(ObserverOptions{}, func([]VisibilityEntry, *VisibilityObserver) { calls++ })
	o.Observe(el)
	doc.Update(frame)
	if calls != 0 {
		t.Error("detached targets should not be reported")
	}

	doc.Body().AppendChild(el)
	doc.Update(frame)
	if calls != 1 {
		t.Errorf("attached target should be reported, calls = %d", calls)
	}
}

func TestObserverDisconnect(t *testing.T) {
	doc := NewDocument(400, 300)
	el := NewElement("div", "")
	doc.Body().AppendChild(el)
	calls := 0
	o := doc.NewVisibilityObserver(ObserverOptions{}, func([]VisibilityEntry, *VisibilityObserver) { calls++ })
	o.Observe(el)
	o.Disconnect()
	doc.Update(frame)
	if calls != 0 || len(doc.observers) != 0 {
		t.Error("disconnected observer should not run")
	}
}

func TestScrollListeners(t *testing.T) {
	doc := NewDocument(400, 300)
	var seen []float64
	doc.OnScroll(func(y float64) { seen = append(seen, y) })

	doc.Update(frame)
	doc.Viewport().ScrollBy(120)
	doc.Update(frame)
	doc.Update(frame)
	if len(seen) != 1 || seen[0] != 120 {
		t.Errorf("seen = %v, want [120]", seen)
	}
}
