package gtkhost

import (
	"errors"
	"time"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/bubbletip/internal/geometry"
	"github.com/jmylchreest/bubbletip/internal/host"
)

// Window adapts a gtk.Window plus a gtk.Fixed overlay layer to host.Window.
type Window struct {
	gtk   *gtk.Window
	layer *gtk.Fixed
	grabs *grabTable
	clock *frameClock
}

// NewWindow adapts a GTK window. layer must be a gtk.Fixed stacked over the
// window's content (for example the overlay child of a gtk.Overlay); bubble
// surfaces are created under it.
func NewWindow(win *gtk.Window, layer *gtk.Fixed) *Window {
	w := &Window{gtk: win, layer: layer}
	w.grabs = newGrabTable()
	w.clock = &frameClock{layer: layer}
	return w
}

// Root implements host.Window.
func (w *Window) Root() host.Widget { return WrapWidget(w.gtk, w) }

// Bounds implements host.Window.
func (w *Window) Bounds() geometry.Rect {
	alloc := w.gtk.Allocation()
	return geometry.Rect{Width: alloc.Width(), Height: alloc.Height()}
}

// ShadowInsets implements host.Window. Decoration extents are not queried;
// bubbles may touch the window edge.
func (w *Window) ShadowInsets() geometry.Insets { return geometry.Insets{} }

// TextDirection implements host.Window.
func (w *Window) TextDirection() geometry.TextDirection {
	if w.gtk.Direction() == gtk.TextDirRTL {
		return geometry.DirectionRTL
	}
	return geometry.DirectionLTR
}

// FreePlacement implements host.Window: a layered surface cannot leave the
// window.
func (w *Window) FreePlacement() bool { return false }

// AnimationsEnabled implements host.Window, honoring the desktop-wide
// animation switch.
func (w *Window) AnimationsEnabled() bool {
	settings := w.gtk.Settings()
	if settings == nil {
		return true
	}
	if enabled, ok := settings.ObjectProperty("gtk-enable-animations").(bool); ok {
		return enabled
	}
	return true
}

// FrameClock implements host.Window.
func (w *Window) FrameClock() host.FrameClock { return w.clock }

// AddOverlay implements host.Window: a styled box positioned on the layer.
func (w *Window) AddOverlay(attached host.Widget) (host.Overlay, error) {
	if _, ok := attached.(*Widget); !ok {
		return nil, errors.New("attached widget does not belong to this window adapter")
	}
	box := gtk.NewBox(gtk.OrientationVertical, 0)
	box.AddCSSClass("bubbletip")
	box.SetVisible(false)
	w.layer.Put(box, 0, 0)
	return &Overlay{
		Widget: WrapWidget(box, w),
		box:    box,
		layer:  w.layer,
	}, nil
}

// RemoveOverlay implements host.Window.
func (w *Window) RemoveOverlay(o host.Overlay) {
	ov, ok := o.(*Overlay)
	if !ok {
		return
	}
	w.layer.Remove(ov.box)
}

// Focus implements host.Window.
func (w *Window) Focus() host.Widget {
	f := w.gtk.Focus()
	if f == nil {
		return nil
	}
	return WrapWidget(f, w)
}

// SetFocus implements host.Window.
func (w *Window) SetFocus(widget host.Widget) {
	if widget == nil {
		w.gtk.SetFocus(nil)
		return
	}
	if gw, ok := widget.(*Widget); ok {
		w.gtk.SetFocus(gw.gtk)
	}
}

// FocusSelf implements host.Window: clearing the focus widget returns key
// events to the window itself.
func (w *Window) FocusSelf() { w.gtk.SetFocus(nil) }

// IsActive implements host.Window.
func (w *Window) IsActive() bool { return w.gtk.IsActive() }

// DefaultWidget implements host.Window.
func (w *Window) DefaultWidget() host.Widget {
	d := w.gtk.DefaultWidget()
	if d == nil {
		return nil
	}
	return WrapWidget(d, w)
}

// SetDefaultWidget implements host.Window.
func (w *Window) SetDefaultWidget(widget host.Widget) {
	if widget == nil {
		w.gtk.SetDefaultWidget(nil)
		return
	}
	if gw, ok := widget.(*Widget); ok {
		w.gtk.SetDefaultWidget(gw.gtk)
	}
}

// GrabAdd implements host.Window on the adapter's grab table.
func (w *Window) GrabAdd(widget host.Widget) { w.grabs.add(widget) }

// GrabRemove implements host.Window.
func (w *Window) GrabRemove(widget host.Widget) { w.grabs.remove(widget) }

// GrabHolder implements host.Window.
func (w *Window) GrabHolder() host.Widget { return w.grabs.holder() }

// OnActiveChanged implements host.Window.
func (w *Window) OnActiveChanged(fn func(active bool)) host.Subscription {
	handle := w.gtk.NotifyProperty("is-active", func() { fn(w.gtk.IsActive()) })
	obj := w.gtk.Object
	return host.NewSubscription(func() { obj.HandlerDisconnect(handle) })
}

// OnFocusChanged implements host.Window.
func (w *Window) OnFocusChanged(fn func(widget host.Widget)) host.Subscription {
	handle := w.gtk.NotifyProperty("focus-widget", func() { fn(w.Focus()) })
	obj := w.gtk.Object
	return host.NewSubscription(func() { obj.HandlerDisconnect(handle) })
}

// OnResized implements host.Window.
func (w *Window) OnResized(fn func()) host.Subscription {
	h1 := w.gtk.NotifyProperty("default-width", fn)
	h2 := w.gtk.NotifyProperty("default-height", fn)
	obj := w.gtk.Object
	return host.NewSubscription(func() {
		obj.HandlerDisconnect(h1)
		obj.HandlerDisconnect(h2)
	})
}

// Overlay is a bubble surface on the layer.
type Overlay struct {
	*Widget
	box     *gtk.Box
	layer   *gtk.Fixed
	content geometry.Size
}

// Box returns the surface container for application content.
func (o *Overlay) Box() *gtk.Box { return o.box }

// SetContentSize installs the content requisition placement will pad.
// Without it the surface box reports the size request Move last committed,
// feeding the padding back into the next placement pass.
func (o *Overlay) SetContentSize(s geometry.Size) { o.content = s }

// PreferredSize implements host.Widget.
func (o *Overlay) PreferredSize() geometry.Size {
	if !o.content.IsEmpty() {
		return o.content
	}
	return o.Widget.PreferredSize()
}

// SetVisible implements host.Overlay.
func (o *Overlay) SetVisible(visible bool) { o.box.SetVisible(visible) }

// SetChildVisible implements host.Overlay.
func (o *Overlay) SetChildVisible(visible bool) { o.box.SetChildVisible(visible) }

// SetOpacity implements host.Overlay.
func (o *Overlay) SetOpacity(opacity float64) { o.box.SetOpacity(opacity) }

// Move implements host.Overlay.
func (o *Overlay) Move(side geometry.Side, bounds geometry.Rect) {
	o.box.SetSizeRequest(bounds.Width, bounds.Height)
	o.layer.Move(o.box, float64(bounds.X), float64(bounds.Y))
}

// Raise implements host.Overlay.
func (o *Overlay) Raise() {
	last := o.layer.LastChild()
	if last == nil || gtk.BaseWidget(last).Native() == o.box.Native() {
		return
	}
	o.box.InsertAfter(o.layer, last)
}

// SetInputShape implements host.Overlay. GTK4 routes input per widget, so
// the precise body-plus-tail region is approximated by re-enabling
// targeting on the whole surface.
func (o *Overlay) SetInputShape(shape *host.InputShape) {
	o.box.SetCanTarget(true)
}

// DisableInput implements host.Overlay.
func (o *Overlay) DisableInput() { o.box.SetCanTarget(false) }

// frameClock schedules ticks off the layer widget's frame clock.
type frameClock struct {
	layer *gtk.Fixed
}

// AddTick implements host.FrameClock.
func (c *frameClock) AddTick(fn func(frameTime time.Duration) bool) host.TickID {
	id := c.layer.AddTickCallback(func(_ gtk.Widgetter, clock gdk.FrameClocker) bool {
		fc, ok := clock.(*gdk.FrameClock)
		if !ok {
			return false
		}
		return fn(time.Duration(fc.FrameTime()) * time.Microsecond)
	})
	return host.TickID(id)
}

// RemoveTick implements host.FrameClock.
func (c *frameClock) RemoveTick(id host.TickID) {
	c.layer.RemoveTickCallback(uint(id))
}

// FrameTime implements host.FrameClock.
func (c *frameClock) FrameTime() time.Duration {
	fc := c.layer.FrameClock()
	if fc == nil {
		return 0
	}
	return time.Duration(fc.FrameTime()) * time.Microsecond
}
