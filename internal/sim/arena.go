// Package sim is an in-memory host implementation: a widget tree with
// coordinate translation, a manually advanced frame clock, grab and focus
// stacks, and scrollable viewports. It backs the engine's tests and the
// interactive playground; nothing in it touches a display server.
package sim

import (
	"github.com/jmylchreest/bubbletip/internal/geometry"
	"github.com/jmylchreest/bubbletip/internal/host"
	"github.com/oklog/ulid/v2"
)

// Arena owns the widget tree. Destroying a widget notifies OnDestroy for
// each node of its subtree, which is where bubble detachment hooks in.
type Arena struct {
	widgets map[string]*Widget

	// OnDestroy is invoked with each widget ID removed from the arena.
	OnDestroy func(widgetID string)
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{widgets: make(map[string]*Widget)}
}

// Widget is a node in the simulated tree.
type Widget struct {
	id     string
	arena  *Arena
	parent *Widget
	childs []*Widget

	bounds    geometry.Rect // in parent coordinates
	preferred geometry.Size
	mapped    bool
	canFocus  bool

	win    *Window     // set on window roots only
	scroll *ScrollArea // set on scroll viewports only

	nextSub      int
	unmapFns     map[int]func()
	movedFns     map[int]func()
	hierarchyFns map[int]func()
	grabFns      map[int]func(wasShadowed bool)
}

func (a *Arena) newWidget(parent *Widget, bounds geometry.Rect) *Widget {
	w := &Widget{
		id:           ulid.Make().String(),
		arena:        a,
		parent:       parent,
		bounds:       bounds,
		mapped:       true,
		canFocus:     true,
		unmapFns:     make(map[int]func()),
		movedFns:     make(map[int]func()),
		hierarchyFns: make(map[int]func()),
		grabFns:      make(map[int]func(bool)),
	}
	if parent != nil {
		parent.childs = append(parent.childs, w)
	}
	a.widgets[w.id] = w
	return w
}

// NewWidget creates a mapped widget under parent.
func (a *Arena) NewWidget(parent *Widget, bounds geometry.Rect) *Widget {
	return a.newWidget(parent, bounds)
}

// Destroy removes the widget and its subtree from the arena, firing
// OnDestroy for every removed node.
func (a *Arena) Destroy(w *Widget) {
	w.Unmap()
	w.detach()
	a.destroyed(w)
}

func (a *Arena) destroyed(w *Widget) {
	for _, c := range w.childs {
		a.destroyed(c)
	}
	delete(a.widgets, w.id)
	if a.OnDestroy != nil {
		a.OnDestroy(w.id)
	}
}

// Reparent moves a widget under a new parent, firing hierarchy-change
// notifications across the subtree when the host window changes.
func (a *Arena) Reparent(w *Widget, parent *Widget) {
	oldWin := w.Window()
	w.detach()
	w.parent = parent
	if parent != nil {
		parent.childs = append(parent.childs, w)
	}
	if w.Window() != oldWin {
		w.fireHierarchyChanged()
	}
}

func (w *Widget) detach() {
	if w.parent == nil {
		return
	}
	sibs := w.parent.childs
	for i, c := range sibs {
		if c == w {
			w.parent.childs = append(sibs[:i], sibs[i+1:]...)
			break
		}
	}
	w.parent = nil
}

func (w *Widget) fireHierarchyChanged() {
	for _, fn := range w.hierarchyFns {
		fn()
	}
	for _, c := range w.childs {
		c.fireHierarchyChanged()
	}
}

// ID implements host.Widget.
func (w *Widget) ID() string { return w.id }

// Bounds implements host.Widget.
func (w *Widget) Bounds() geometry.Rect { return w.bounds }

// SetBounds moves or resizes the widget and fires move notifications.
func (w *Widget) SetBounds(r geometry.Rect) {
	if w.bounds == r {
		return
	}
	w.bounds = r
	for _, fn := range w.movedFns {
		fn()
	}
	if w.win != nil {
		w.win.fireResized()
	}
}

// PreferredSize implements host.Widget.
func (w *Widget) PreferredSize() geometry.Size { return w.preferred }

// SetPreferredSize sets the natural requisition reported by the widget.
func (w *Widget) SetPreferredSize(s geometry.Size) { w.preferred = s }

// Parent implements host.Widget.
func (w *Widget) Parent() host.Widget {
	if w.parent == nil {
		return nil
	}
	return w.parent
}

// Window implements host.Widget.
func (w *Widget) Window() host.Window {
	root := w
	for root.parent != nil {
		root = root.parent
	}
	if root.win == nil {
		return nil
	}
	return root.win
}

// ScrollableAncestor implements host.Widget.
func (w *Widget) ScrollableAncestor() host.Scrollable {
	for cur := w.parent; cur != nil; cur = cur.parent {
		if cur.scroll != nil {
			return cur.scroll
		}
	}
	return nil
}

// origin returns the widget origin in root coordinates, with the tree root.
func (w *Widget) origin() (geometry.Point, *Widget) {
	p := geometry.Point{}
	cur := w
	for {
		p.X += cur.bounds.X
		p.Y += cur.bounds.Y
		if cur.parent == nil {
			return p, cur
		}
		cur = cur.parent
	}
}

// TranslateTo implements host.Widget.
func (w *Widget) TranslateTo(other host.Widget, p geometry.Point) (geometry.Point, bool) {
	dst := asWidget(other)
	if dst == nil {
		return geometry.Point{}, false
	}
	src, srcRoot := w.origin()
	dstOrigin, dstRoot := dst.origin()
	if srcRoot != dstRoot {
		return geometry.Point{}, false
	}
	return geometry.Point{
		X: p.X + src.X - dstOrigin.X,
		Y: p.Y + src.Y - dstOrigin.Y,
	}, true
}

// IsMapped implements host.Widget: mapped only when every ancestor is.
func (w *Widget) IsMapped() bool {
	for cur := w; cur != nil; cur = cur.parent {
		if !cur.mapped {
			return false
		}
	}
	return true
}

// IsDrawable implements host.Widget.
func (w *Widget) IsDrawable() bool { return w.IsMapped() }

// Map marks the widget (not its children) mapped again.
func (w *Widget) Map() { w.mapped = true }

// Unmap unmaps the widget and its subtree, firing unmap notifications
// bottom-up the way a real toolkit tears a branch down.
func (w *Widget) Unmap() {
	if !w.mapped {
		return
	}
	for _, c := range w.childs {
		c.Unmap()
	}
	w.mapped = false
	for _, fn := range w.unmapFns {
		fn()
	}
}

// SetCanFocus controls whether GrabFocus succeeds.
func (w *Widget) SetCanFocus(v bool) { w.canFocus = v }

// GrabFocus implements host.Widget.
func (w *Widget) GrabFocus() bool {
	if !w.canFocus {
		return false
	}
	win := w.Window()
	if win == nil {
		return false
	}
	win.(*Window).setFocus(w)
	return true
}

func (w *Widget) subscribe(m map[int]func()) (int, func(int)) {
	w.nextSub++
	return w.nextSub, func(id int) { delete(m, id) }
}

// OnUnmap implements host.Widget.
func (w *Widget) OnUnmap(fn func()) host.Subscription {
	id, cancel := w.subscribe(w.unmapFns)
	w.unmapFns[id] = fn
	return host.NewSubscription(func() { cancel(id) })
}

// OnMoved implements host.Widget.
func (w *Widget) OnMoved(fn func()) host.Subscription {
	id, cancel := w.subscribe(w.movedFns)
	w.movedFns[id] = fn
	return host.NewSubscription(func() { cancel(id) })
}

// OnHierarchyChanged implements host.Widget.
func (w *Widget) OnHierarchyChanged(fn func()) host.Subscription {
	id, cancel := w.subscribe(w.hierarchyFns)
	w.hierarchyFns[id] = fn
	return host.NewSubscription(func() { cancel(id) })
}

// OnGrabNotify implements host.Widget.
func (w *Widget) OnGrabNotify(fn func(wasShadowed bool)) host.Subscription {
	w.nextSub++
	id := w.nextSub
	w.grabFns[id] = fn
	return host.NewSubscription(func() { delete(w.grabFns, id) })
}

// asWidget unwraps the concrete node behind a host.Widget produced by this
// package.
func asWidget(w host.Widget) *Widget {
	switch v := w.(type) {
	case *Widget:
		return v
	case *Overlay:
		return v.Widget
	default:
		return nil
	}
}
