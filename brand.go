package folio

import "sync/atomic"

// Owner identifies which container currently holds the brand element.
type Owner uint8

const (
	OwnerNone   Owner = iota // brand absent or discarded
	OwnerLoader              // inside the loader overlay
	OwnerBody                // fixed overlay directly under body
	OwnerHero                // inside the rendered hero heading
)

var ownerNames = [...]string{"none", "loader", "body", "hero"}

func (o Owner) String() string {
	if int(o) < len(ownerNames) {
		return ownerNames[o]
	}
	return "unknown"
}

// Class pairs swapped on the brand subtree at handoff.
var heroClassSwaps = [][2]string{
	{"loader-brand", "hero-title"},
	{"loader-logo", "logo-img"},
	{"loader-text", "title-text"},
}

// brandHandoff moves the brand element between its three owners. owner is
// the single source of truth for where the element lives; consumed guards
// the completion step so that it runs at most once whichever signal
// arrives first.
type brandHandoff struct {
	el       *Element
	owner    Owner
	consumed atomic.Bool
}

func newBrandHandoff(el *Element) *brandHandoff {
	b := &brandHandoff{el: el}
	if el != nil {
		b.owner = OwnerLoader
	}
	return b
}

// pending returns the brand while it is still on its way to the hero.
func (b *brandHandoff) pending() *Element {
	if b.el == nil || b.el.IsDisposed() || b.consumed.Load() {
		return nil
	}
	if b.owner != OwnerLoader && b.owner != OwnerBody {
		return nil
	}
	return b.el
}

// detach reparents the brand to body as a fixed overlay pinned to snap, so
// it keeps its on-screen position when the loader goes away.
func (b *brandHandoff) detach(body *Element, snap Rect) bool {
	if b.owner != OwnerLoader || b.el == nil || b.el.IsDisposed() {
		return false
	}
	st := &b.el.Style
	st.Position = PositionFixed
	st.Left, st.Top = snap.X, snap.Y
	st.Width, st.Height = Px(snap.Width), Px(snap.Height)
	body.AppendChild(b.el)
	b.owner = OwnerBody
	return true
}

// complete hands the brand to the hero slot. It returns false if handoff
// already ran. Without a slot the brand is discarded so the renderer falls
// back to plain title markup.
func (b *brandHandoff) complete(doc *Document, slot *Element) bool {
	if !b.consumed.CompareAndSwap(false, true) {
		return false
	}
	el := b.el
	if el == nil || el.IsDisposed() {
		b.owner = OwnerNone
		return true
	}

	el.Style.Hidden = true
	doc.ClearTransitions(el)
	el.walk(func(n *Element) {
		doc.ClearTransitions(n)
		stripInlineLayout(&n.Style)
		n.Key = ""
		for _, swap := range heroClassSwaps {
			n.ReplaceClass(swap[0], swap[1])
		}
	})

	if slot == nil || slot.Parent == nil {
		el.Dispose()
		b.owner = OwnerNone
		return true
	}
	slot.ReplaceWith(el)
	b.owner = OwnerHero
	return true
}

// stripInlineLayout resets the inline position, size, transform and clipping
// applied during the intro. Display, gap and opacity are kept.
func stripInlineLayout(st *Style) {
	st.Position = PositionStatic
	st.Left, st.Top = 0, 0
	st.Width, st.Height = Auto, Auto
	st.TranslateX, st.TranslateY = 0, 0
	st.ClipOverflow = false
}
