package folio

import "slices"

// Position selects how an element is placed by layout.
type Position uint8

const (
	PositionStatic Position = iota // in flow, placed by its parent
	PositionFixed                  // pinned to viewport coordinates Left/Top
)

// Display selects how an element lays out its children.
type Display uint8

const (
	DisplayBlock Display = iota // children stack vertically at full width
	DisplayRow                  // children sit side by side, separated by Gap
	DisplayNone                 // element and subtree take no space
)

// Length is either auto (zero value) or an explicit pixel size.
type Length struct {
	Px  float64
	Set bool
}

// Px returns an explicit pixel Length.
func Px(v float64) Length {
	return Length{Px: v, Set: true}
}

// Auto is the unset Length.
var Auto = Length{}

// Style holds an element's inline presentation state.
type Style struct {
	Display  Display
	Position Position
	// Left and Top are viewport coordinates for PositionFixed elements.
	Left, Top     float64
	Width, Height Length
	// TranslateX and TranslateY form the element's transform. They move the
	// painted rect without affecting layout.
	TranslateX, TranslateY float64
	Opacity                float64
	// Hidden keeps the element's box but does not paint it.
	Hidden       bool
	ClipOverflow bool
	Gap          float64
	// Center places in-flow children in the middle of the element's box.
	Center bool
}

// TransitionEvent is dispatched to an element when one of its property
// transitions completes.
type TransitionEvent struct {
	Target   *Element
	Property Property
}

type transitionListener struct {
	id uint32
	fn func(TransitionEvent)
}

// ListenerHandle removes a previously registered listener.
type ListenerHandle struct {
	el *Element
	id uint32
}

// Remove unregisters the listener. Safe to call more than once.
func (h ListenerHandle) Remove() {
	if h.el == nil {
		return
	}
	h.el.listeners = slices.DeleteFunc(h.el.listeners, func(l transitionListener) bool {
		return l.id == h.id
	})
}

// elementIDCounter is not atomic. The document is driven from a single
// goroutine.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is the fundamental document node.
type Element struct {
	// Identity
	ID  uint32
	Key string // document-unique id attribute, may be empty
	Tag string

	// Content
	Text string
	// Intrinsic is the natural content size. Text elements receive it from
	// the document's TextMeasurer during layout.
	Intrinsic Vec2

	Style Style

	// Hierarchy
	Parent   *Element
	children []*Element

	classes []string
	attrs   map[string]string

	// Computed by layout, in document coordinates.
	box Rect

	listeners  []transitionListener
	listenerID uint32

	disposed bool
}

// NewElement creates a detached element with the given tag, id attribute
// and classes.
func NewElement(tag, key string, classes ...string) *Element {
	return &Element{
		ID:      nextElementID(),
		Key:     key,
		Tag:     tag,
		classes: append([]string(nil), classes...),
		Style:   Style{Opacity: 1},
	}
}

// NewText creates a span-like text element.
func NewText(key, text string, classes ...string) *Element {
	el := NewElement("span", key, classes...)
	el.Text = text
	return el
}

// --- Tree manipulation ---

// AppendChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (n *Element) AppendChild(child *Element) {
	n.InsertChildAt(child, len(n.children))
}

// InsertChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AppendChild.
func (n *Element) InsertChildAt(child *Element, index int) {
	if child == nil {
		panic("folio: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("folio: adding child would create a cycle")
	}
	if child.Parent != nil {
		if child.Parent == n {
			if i := n.indexOf(child); i < index {
				index--
			}
		}
		child.Parent.removeChildByPtr(child)
		child.Parent = nil
	}
	if index < 0 || index > len(n.children) {
		panic("folio: child index out of range")
	}
	child.Parent = n
	n.children = slices.Insert(n.children, index, child)
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != n.
func (n *Element) RemoveChild(child *Element) {
	if child.Parent != n {
		panic("folio: child's parent is not this element")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this element from its parent.
// No-op if this element has no parent.
func (n *Element) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// ReplaceWith puts other in this element's place in its parent and detaches
// this element. No-op if this element has no parent or other is nil.
func (n *Element) ReplaceWith(other *Element) {
	p := n.Parent
	if p == nil || other == nil || other == n {
		return
	}
	if other.Parent != nil {
		other.Parent.RemoveChild(other)
	}
	i := p.indexOf(n)
	p.children[i] = other
	other.Parent = p
	n.Parent = nil
}

// RemoveChildren detaches all children from this element.
// Children are NOT disposed.
func (n *Element) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	clear(n.children)
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Element) Children() []*Element {
	return n.children
}

// NumChildren returns the number of children.
func (n *Element) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Element) ChildAt(index int) *Element {
	return n.children[index]
}

// Contains reports whether other is n or one of its descendants.
func (n *Element) Contains(other *Element) bool {
	return other != nil && isAncestor(n, other)
}

// --- Classes and attributes ---

// HasClass reports whether the element carries class c.
func (n *Element) HasClass(c string) bool {
	return slices.Contains(n.classes, c)
}

// AddClass adds c if not already present.
func (n *Element) AddClass(c string) {
	if !n.HasClass(c) {
		n.classes = append(n.classes, c)
	}
}

// RemoveClass removes c if present.
func (n *Element) RemoveClass(c string) {
	n.classes = slices.DeleteFunc(n.classes, func(s string) bool { return s == c })
}

// ToggleClass adds or removes c depending on on.
func (n *Element) ToggleClass(c string, on bool) {
	if on {
		n.AddClass(c)
	} else {
		n.RemoveClass(c)
	}
}

// ReplaceClass swaps from for to in place. Reports whether from was present.
func (n *Element) ReplaceClass(from, to string) bool {
	i := slices.Index(n.classes, from)
	if i < 0 {
		return false
	}
	if n.HasClass(to) {
		n.classes = slices.Delete(n.classes, i, i+1)
		return true
	}
	n.classes[i] = to
	return true
}

// Classes returns the class list. The returned slice MUST NOT be mutated.
func (n *Element) Classes() []string {
	return n.classes
}

// SetAttr sets an attribute.
func (n *Element) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// Attr returns an attribute value.
func (n *Element) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// RemoveAttr deletes an attribute.
func (n *Element) RemoveAttr(name string) {
	delete(n.attrs, name)
}

// Data returns the data-<name> attribute.
func (n *Element) Data(name string) (string, bool) {
	return n.Attr("data-" + name)
}

// SetData sets the data-<name> attribute.
func (n *Element) SetData(name, value string) {
	n.SetAttr("data-"+name, value)
}

// --- Queries ---

// Find returns the first element in n's subtree (n included, depth-first)
// for which match returns true.
func (n *Element) Find(match func(*Element) bool) *Element {
	if match(n) {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every element in n's subtree matching, in document order.
func (n *Element) FindAll(match func(*Element) bool) []*Element {
	var out []*Element
	n.walk(func(el *Element) {
		if match(el) {
			out = append(out, el)
		}
	})
	return out
}

// ByKey finds the element whose id attribute is key.
func (n *Element) ByKey(key string) *Element {
	if key == "" {
		return nil
	}
	return n.Find(func(el *Element) bool { return el.Key == key })
}

// ByClass finds the first element carrying class c.
func (n *Element) ByClass(c string) *Element {
	return n.Find(func(el *Element) bool { return el.HasClass(c) })
}

// AllByClass finds every element carrying class c.
func (n *Element) AllByClass(c string) []*Element {
	return n.FindAll(func(el *Element) bool { return el.HasClass(c) })
}

func (n *Element) walk(fn func(*Element)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

// --- Transition events ---

// OnTransitionEnd registers fn for transition completion events on this
// element.
func (n *Element) OnTransitionEnd(fn func(TransitionEvent)) ListenerHandle {
	n.listenerID++
	n.listeners = append(n.listeners, transitionListener{id: n.listenerID, fn: fn})
	return ListenerHandle{el: n, id: n.listenerID}
}

func (n *Element) dispatchTransitionEnd(ev TransitionEvent) {
	// Listeners may remove themselves while running.
	ls := slices.Clone(n.listeners)
	for _, l := range ls {
		l.fn(ev)
	}
}

// --- Disposal ---

// Dispose removes this element from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Element) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Element) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.listeners = nil
	n.Parent = nil
}

// IsDisposed returns true if this element has been disposed.
func (n *Element) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Element) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (n *Element) indexOf(child *Element) int {
	return slices.Index(n.children, child)
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Element) removeChildByPtr(child *Element) {
	if i := n.indexOf(child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}
