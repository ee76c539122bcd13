package folio

import "unicode/utf8"

// TextMeasurer reports the natural size of an element's text.
type TextMeasurer interface {
	MeasureText(el *Element, text string) Vec2
}

// MonospaceMeasurer sizes text as a single line of fixed-width glyphs.
type MonospaceMeasurer struct {
	CharWidth  float64
	LineHeight float64
}

// DefaultMeasurer matches ebitenutil's debug font metrics.
var DefaultMeasurer = MonospaceMeasurer{CharWidth: 6, LineHeight: 16}

// MeasureText implements TextMeasurer.
func (m MonospaceMeasurer) MeasureText(_ *Element, text string) Vec2 {
	if text == "" {
		return Vec2{}
	}
	return Vec2{X: float64(utf8.RuneCountInString(text)) * m.CharWidth, Y: m.LineHeight}
}

// Layout recomputes every element box in the document. It runs once per
// frame after frame callbacks and transitions, and synchronously whenever a
// client rect is read.
func (d *Document) Layout() {
	d.stats.layoutPasses++
	d.layoutElement(d.root, 0, 0, d.viewport.Width, false)
}

// MeasureNatural returns el's width and height as if its own width and
// height were auto, the way an invisible off-screen copy would measure it.
// Elements with no content measure as zero.
func (d *Document) MeasureNatural(el *Element) Vec2 {
	if el == nil {
		return Vec2{}
	}
	return d.naturalSize(el, true)
}

// ClientRect returns el's painted rectangle in viewport coordinates,
// including translate transforms of el and its ancestors. Reading it forces
// a layout. Detached or disposed elements report a zero rect.
func (d *Document) ClientRect(el *Element) Rect {
	r, ok := d.documentRect(el)
	if !ok {
		return Rect{}
	}
	return d.viewport.DocumentToViewport(r)
}

// documentRect is ClientRect in document coordinates.
func (d *Document) documentRect(el *Element) (Rect, bool) {
	if el == nil || el.IsDisposed() || !d.root.Contains(el) {
		return Rect{}, false
	}
	d.Layout()
	return paintedRect(el), true
}

// paintedRect is el's last layout box moved by the translate of el and its
// ancestors.
func paintedRect(el *Element) Rect {
	r := el.box
	for p := el; p != nil; p = p.Parent {
		r = r.Translate(p.Style.TranslateX, p.Style.TranslateY)
	}
	return r
}

// naturalSize measures el ignoring any constraint from its parent. When
// ignoreOwn is true el's own explicit width and height are ignored too.
func (d *Document) naturalSize(el *Element, ignoreOwn bool) Vec2 {
	if el.Style.Display == DisplayNone {
		return Vec2{}
	}
	size := el.Intrinsic
	if el.Text != "" {
		t := d.measurer.MeasureText(el, el.Text)
		size.X = max(size.X, t.X)
		size.Y = max(size.Y, t.Y)
	}
	var cw, ch float64
	n := 0
	for _, c := range el.children {
		if c.Style.Position == PositionFixed || c.Style.Display == DisplayNone {
			continue
		}
		cs := d.naturalSize(c, false)
		if el.Style.Display == DisplayRow {
			cw += cs.X
			ch = max(ch, cs.Y)
		} else {
			cw = max(cw, cs.X)
			ch += cs.Y
		}
		n++
	}
	if el.Style.Display == DisplayRow && n > 1 {
		cw += el.Style.Gap * float64(n-1)
	}
	size.X = max(size.X, cw)
	size.Y = max(size.Y, ch)
	if !ignoreOwn {
		if el.Style.Width.Set {
			size.X = el.Style.Width.Px
		}
		if el.Style.Height.Set {
			size.Y = el.Style.Height.Px
		}
	}
	return size
}

// fillsWidth reports whether el stretches to its container's width.
func fillsWidth(el *Element, inRow bool) bool {
	return !inRow && el.Style.Display == DisplayBlock &&
		el.Text == "" && el.Intrinsic == (Vec2{})
}

// layoutElement places el at (x, y) and lays out its subtree. Returns the
// size el occupies in flow.
func (d *Document) layoutElement(el *Element, x, y, avail float64, inRow bool) Vec2 {
	if el.Style.Display == DisplayNone {
		el.box = Rect{X: x, Y: y}
		return Vec2{}
	}
	natural := d.naturalSize(el, false)
	w := natural.X
	if !el.Style.Width.Set && fillsWidth(el, inRow) {
		w = avail
	}

	row := el.Style.Display == DisplayRow
	cx, cy := x, y
	var extentW, extentH float64
	placed := 0
	for _, c := range el.children {
		if c.Style.Position == PositionFixed {
			d.layoutFixed(c)
			continue
		}
		if c.Style.Display == DisplayNone {
			c.box = Rect{X: cx, Y: cy}
			continue
		}
		if row && placed > 0 {
			cx += el.Style.Gap
		}
		size := d.layoutElement(c, cx, cy, w, row)
		if row {
			cx += size.X
			extentW = cx - x
			extentH = max(extentH, size.Y)
		} else {
			cy += size.Y
			extentH = cy - y
			extentW = max(extentW, size.X)
		}
		placed++
	}

	h := max(natural.Y, extentH)
	if el.Style.Height.Set {
		h = el.Style.Height.Px
	}
	if !el.Style.Width.Set && !fillsWidth(el, inRow) {
		w = max(w, extentW)
	}
	el.box = Rect{X: x, Y: y, Width: w, Height: h}
	if el.Style.Center && placed > 0 {
		dx := max((w-extentW)/2, 0)
		dy := max((h-extentH)/2, 0)
		for _, c := range el.children {
			if c.Style.Position != PositionFixed {
				shiftSubtree(c, dx, dy)
			}
		}
	}
	return Vec2{X: w, Y: h}
}

// shiftSubtree moves the boxes of el and its in-flow descendants.
func shiftSubtree(el *Element, dx, dy float64) {
	el.box = el.box.Translate(dx, dy)
	for _, c := range el.children {
		if c.Style.Position != PositionFixed {
			shiftSubtree(c, dx, dy)
		}
	}
}

// layoutFixed places a fixed element from its Left/Top in viewport space.
func (d *Document) layoutFixed(el *Element) {
	top := d.viewport.ScrollY + el.Style.Top
	d.layoutElement(el, el.Style.Left, top, d.viewport.Width, true)
}
