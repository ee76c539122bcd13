package folio

// PaintItem is one element ready to be drawn, in viewport coordinates.
type PaintItem struct {
	El      *Element
	Rect    Rect
	Opacity float64
	// Clip is the intersection of every clipping ancestor's rect, including
	// the element's own when it clips. Valid only when Clipped is true.
	Clip    Rect
	Clipped bool
}

// PaintList appends the visible elements to dst in paint order (tree order,
// so later siblings draw on top) and returns it. Hidden and display:none
// subtrees are skipped, as are fully transparent ones. Layout must be
// current, which it is after Update.
func (d *Document) PaintList(dst []PaintItem) []PaintItem {
	return d.paintElement(dst, d.root, 1, Rect{}, false)
}

func (d *Document) paintElement(dst []PaintItem, el *Element, alpha float64, clip Rect, clipped bool) []PaintItem {
	if el.Style.Display == DisplayNone || el.Style.Hidden {
		return dst
	}
	alpha *= el.Style.Opacity
	if alpha <= 0 {
		return dst
	}
	r := d.viewport.DocumentToViewport(paintedRect(el))
	if el.Style.ClipOverflow {
		if clipped {
			clip = clip.Intersection(r)
		} else {
			clip, clipped = r, true
		}
	}
	dst = append(dst, PaintItem{El: el, Rect: r, Opacity: alpha, Clip: clip, Clipped: clipped})
	for _, c := range el.children {
		dst = d.paintElement(dst, c, alpha, clip, clipped)
	}
	return dst
}
