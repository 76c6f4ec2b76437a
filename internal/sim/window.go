package sim

import (
	"errors"

	"github.com/jmylchreest/bubbletip/internal/geometry"
	"github.com/jmylchreest/bubbletip/internal/host"
)

// Window is the simulated toplevel: a root widget, a frame clock, and the
// focus, default-widget and grab machinery a bubble manipulates.
type Window struct {
	root  *Widget
	arena *Arena
	clock *Clock

	shadow        geometry.Insets
	direction     geometry.TextDirection
	freePlacement bool
	animations    bool
	active        bool

	focus     *Widget
	defaultW  *Widget
	grabStack []*Widget
	shadowed  map[string]bool // previous grab-shadow state per subscribed widget

	nextSub   int
	activeFns map[int]func(bool)
	focusFns  map[int]func(host.Widget)
	resizeFns map[int]func()
}

// NewWindow creates an active window with the given content bounds.
func (a *Arena) NewWindow(bounds geometry.Rect) *Window {
	win := &Window{
		arena:      a,
		clock:      NewClock(),
		direction:  geometry.DirectionLTR,
		animations: true,
		active:     true,
		shadowed:   make(map[string]bool),
		activeFns:  make(map[int]func(bool)),
		focusFns:   make(map[int]func(host.Widget)),
		resizeFns:  make(map[int]func()),
	}
	win.root = a.newWidget(nil, bounds)
	win.root.win = win
	return win
}

// Root implements host.Window.
func (w *Window) Root() host.Widget { return w.root }

// RootWidget returns the concrete root for building trees under it.
func (w *Window) RootWidget() *Widget { return w.root }

// Bounds implements host.Window.
func (w *Window) Bounds() geometry.Rect { return w.root.bounds }

// SetBounds resizes the window and fires resize notifications.
func (w *Window) SetBounds(r geometry.Rect) { w.root.SetBounds(r) }

func (w *Window) fireResized() {
	for _, fn := range w.resizeFns {
		fn()
	}
}

// ShadowInsets implements host.Window.
func (w *Window) ShadowInsets() geometry.Insets { return w.shadow }

// SetShadowInsets sets the decoration widths placement stays clear of.
func (w *Window) SetShadowInsets(in geometry.Insets) { w.shadow = in }

// TextDirection implements host.Window.
func (w *Window) TextDirection() geometry.TextDirection { return w.direction }

// SetTextDirection switches the effective text direction.
func (w *Window) SetTextDirection(d geometry.TextDirection) { w.direction = d }

// FreePlacement implements host.Window.
func (w *Window) FreePlacement() bool { return w.freePlacement }

// SetFreePlacement toggles unconstrained overlay placement.
func (w *Window) SetFreePlacement(v bool) { w.freePlacement = v }

// AnimationsEnabled implements host.Window.
func (w *Window) AnimationsEnabled() bool { return w.animations }

// SetAnimationsEnabled toggles transitions.
func (w *Window) SetAnimationsEnabled(v bool) { w.animations = v }

// FrameClock implements host.Window.
func (w *Window) FrameClock() host.FrameClock { return w.clock }

// Clock returns the concrete clock for manual frame stepping.
func (w *Window) Clock() *Clock { return w.clock }

// AddOverlay implements host.Window.
func (w *Window) AddOverlay(attached host.Widget) (host.Overlay, error) {
	if asWidget(attached) == nil {
		return nil, errors.New("overlay requires an attached widget in this arena")
	}
	ow := w.arena.newWidget(w.root, geometry.Rect{})
	ow.mapped = false
	o := &Overlay{
		Widget:       ow,
		win:          w,
		opacity:      1,
		childVisible: true,
	}
	return o, nil
}

// RemoveOverlay implements host.Window.
func (w *Window) RemoveOverlay(o host.Overlay) {
	ov, ok := o.(*Overlay)
	if !ok {
		return
	}
	ov.Widget.Unmap()
	ov.Widget.detach()
	delete(w.arena.widgets, ov.Widget.id)
}

// Focus implements host.Window.
func (w *Window) Focus() host.Widget {
	if w.focus == nil {
		return nil
	}
	return w.focus
}

// SetFocus implements host.Window.
func (w *Window) SetFocus(widget host.Widget) {
	w.setFocus(asWidget(widget))
}

func (w *Window) setFocus(widget *Widget) {
	if w.focus == widget {
		return
	}
	w.focus = widget
	for _, fn := range w.focusFns {
		if widget == nil {
			fn(nil)
		} else {
			fn(widget)
		}
	}
}

// FocusSelf implements host.Window: focus falls back to the root.
func (w *Window) FocusSelf() { w.setFocus(w.root) }

// IsActive implements host.Window.
func (w *Window) IsActive() bool { return w.active }

// SetActive flips session focus and fires active-change notifications.
func (w *Window) SetActive(active bool) {
	if w.active == active {
		return
	}
	w.active = active
	for _, fn := range w.activeFns {
		fn(active)
	}
}

// DefaultWidget implements host.Window.
func (w *Window) DefaultWidget() host.Widget {
	if w.defaultW == nil {
		return nil
	}
	return w.defaultW
}

// SetDefaultWidget implements host.Window.
func (w *Window) SetDefaultWidget(widget host.Widget) {
	w.defaultW = asWidget(widget)
}

// GrabAdd implements host.Window.
func (w *Window) GrabAdd(widget host.Widget) {
	g := asWidget(widget)
	if g == nil {
		return
	}
	w.grabStack = append(w.grabStack, g)
	w.notifyGrabChange()
}

// GrabRemove implements host.Window.
func (w *Window) GrabRemove(widget host.Widget) {
	g := asWidget(widget)
	for i := len(w.grabStack) - 1; i >= 0; i-- {
		if w.grabStack[i] == g {
			w.grabStack = append(w.grabStack[:i], w.grabStack[i+1:]...)
			w.notifyGrabChange()
			return
		}
	}
}

// GrabHolder implements host.Window.
func (w *Window) GrabHolder() host.Widget {
	if len(w.grabStack) == 0 {
		return nil
	}
	return w.grabStack[len(w.grabStack)-1]
}

// notifyGrabChange fires grab-notify on every widget whose shadowed state
// changed. A widget is shadowed when a grab holder outside its own ancestry
// owns input.
func (w *Window) notifyGrabChange() {
	var holder *Widget
	if len(w.grabStack) > 0 {
		holder = w.grabStack[len(w.grabStack)-1]
	}
	for _, widget := range w.arena.widgets {
		if len(widget.grabFns) == 0 {
			continue
		}
		was := w.shadowed[widget.id]
		now := holder != nil && !host.IsAncestor(widget, holder)
		if was == now {
			continue
		}
		w.shadowed[widget.id] = now
		for _, fn := range widget.grabFns {
			fn(was)
		}
	}
}

// OnActiveChanged implements host.Window.
func (w *Window) OnActiveChanged(fn func(active bool)) host.Subscription {
	w.nextSub++
	id := w.nextSub
	w.activeFns[id] = fn
	return host.NewSubscription(func() { delete(w.activeFns, id) })
}

// OnFocusChanged implements host.Window.
func (w *Window) OnFocusChanged(fn func(widget host.Widget)) host.Subscription {
	w.nextSub++
	id := w.nextSub
	w.focusFns[id] = fn
	return host.NewSubscription(func() { delete(w.focusFns, id) })
}

// OnResized implements host.Window.
func (w *Window) OnResized(fn func()) host.Subscription {
	w.nextSub++
	id := w.nextSub
	w.resizeFns[id] = fn
	return host.NewSubscription(func() { delete(w.resizeFns, id) })
}

// Overlay is the simulated bubble surface: a widget under the window root
// that records every mutation the engine makes, for assertion and painting.
type Overlay struct {
	*Widget
	win *Window

	preferred     geometry.Size
	side          geometry.Side
	opacity       float64
	childVisible  bool
	shape         *host.InputShape
	inputDisabled bool
	raised        int
	moves         int
}

// PreferredSize implements host.Widget; overlays report the content
// requisition installed with SetContentSize.
func (o *Overlay) PreferredSize() geometry.Size { return o.preferred }

// SetContentSize installs the content requisition the engine will pad.
func (o *Overlay) SetContentSize(s geometry.Size) { o.preferred = s }

// SetVisible implements host.Overlay.
func (o *Overlay) SetVisible(visible bool) {
	if visible {
		o.Widget.Map()
	} else {
		o.Widget.Unmap()
	}
}

// Visible reports whether the surface is mapped.
func (o *Overlay) Visible() bool { return o.Widget.mapped }

// SetChildVisible implements host.Overlay.
func (o *Overlay) SetChildVisible(visible bool) { o.childVisible = visible }

// ChildVisible reports the suppression state.
func (o *Overlay) ChildVisible() bool { return o.childVisible }

// SetOpacity implements host.Overlay.
func (o *Overlay) SetOpacity(opacity float64) { o.opacity = opacity }

// Opacity returns the last committed opacity.
func (o *Overlay) Opacity() float64 { return o.opacity }

// Move implements host.Overlay.
func (o *Overlay) Move(side geometry.Side, bounds geometry.Rect) {
	o.side = side
	o.Widget.bounds = bounds
	o.moves++
}

// Side returns the side of the last committed placement.
func (o *Overlay) Side() geometry.Side { return o.side }

// Moves returns how many placement passes have been committed.
func (o *Overlay) Moves() int { return o.moves }

// Raise implements host.Overlay.
func (o *Overlay) Raise() {
	parent := o.Widget.parent
	if parent == nil {
		o.raised++
		return
	}
	o.Widget.detach()
	o.Widget.parent = parent
	parent.childs = append(parent.childs, o.Widget)
	o.raised++
}

// SetInputShape implements host.Overlay.
func (o *Overlay) SetInputShape(shape *host.InputShape) {
	if shape == nil {
		o.shape = nil
	} else {
		s := *shape
		o.shape = &s
	}
	o.inputDisabled = false
}

// InputShape returns the last committed hit region, nil meaning the full
// surface.
func (o *Overlay) InputShape() *host.InputShape { return o.shape }

// DisableInput implements host.Overlay.
func (o *Overlay) DisableInput() {
	o.shape = nil
	o.inputDisabled = true
}

// InputDisabled reports whether the surface captures no input at all.
func (o *Overlay) InputDisabled() bool { return o.inputDisabled }
