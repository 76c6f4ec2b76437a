package gtkhost

import (
	"fmt"

	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/bubbletip/internal/geometry"
	"github.com/jmylchreest/bubbletip/internal/host"
)

// Widget wraps a gtk.Widget as a host.Widget.
type Widget struct {
	gtk *gtk.Widget
	win *Window
}

// WrapWidget adapts a GTK widget belonging to the given adapted window.
func WrapWidget(w gtk.Widgetter, win *Window) *Widget {
	if w == nil {
		return nil
	}
	return &Widget{gtk: gtk.BaseWidget(w), win: win}
}

// GTK returns the underlying widget.
func (w *Widget) GTK() *gtk.Widget { return w.gtk }

// ID implements host.Widget; identity is the GObject instance pointer.
func (w *Widget) ID() string {
	return fmt.Sprintf("gtk-%x", w.gtk.Native())
}

// Bounds implements host.Widget.
func (w *Widget) Bounds() geometry.Rect {
	alloc := w.gtk.Allocation()
	return geometry.Rect{
		X:      alloc.X(),
		Y:      alloc.Y(),
		Width:  alloc.Width(),
		Height: alloc.Height(),
	}
}

// PreferredSize implements host.Widget. An explicit size request wins; an
// unset request falls back to the current allocation.
func (w *Widget) PreferredSize() geometry.Size {
	reqW, reqH := w.gtk.SizeRequest()
	alloc := w.gtk.Allocation()
	if reqW < 0 {
		reqW = alloc.Width()
	}
	if reqH < 0 {
		reqH = alloc.Height()
	}
	return geometry.Size{Width: reqW, Height: reqH}
}

// Parent implements host.Widget.
func (w *Widget) Parent() host.Widget {
	parent := w.gtk.Parent()
	if parent == nil {
		return nil
	}
	return WrapWidget(parent, w.win)
}

// Window implements host.Widget: the adapted window, provided its GTK
// toplevel is still in this widget's ancestry.
func (w *Widget) Window() host.Window {
	if w.win == nil {
		return nil
	}
	root := w.gtk.Root()
	if root == nil {
		return nil
	}
	if gtk.BaseWidget(root).Native() != w.win.gtk.Widget.Native() {
		return nil
	}
	return w.win
}

// ScrollableAncestor implements host.Widget.
func (w *Widget) ScrollableAncestor() host.Scrollable {
	for parent := w.gtk.Parent(); parent != nil; parent = gtk.BaseWidget(parent).Parent() {
		if sw, ok := parent.(*gtk.ScrolledWindow); ok {
			return &Scrollable{gtk: sw, win: w.win}
		}
	}
	return nil
}

// TranslateTo implements host.Widget.
func (w *Widget) TranslateTo(other host.Widget, p geometry.Point) (geometry.Point, bool) {
	dst, ok := other.(*Widget)
	if !ok || dst == nil {
		return geometry.Point{}, false
	}
	x, y, ok := w.gtk.TranslateCoordinates(dst.gtk, float64(p.X), float64(p.Y))
	if !ok {
		return geometry.Point{}, false
	}
	return geometry.Point{X: int(x), Y: int(y)}, true
}

// IsMapped implements host.Widget.
func (w *Widget) IsMapped() bool { return w.gtk.Mapped() }

// IsDrawable implements host.Widget.
func (w *Widget) IsDrawable() bool { return w.gtk.Mapped() && w.gtk.Visible() }

// GrabFocus implements host.Widget.
func (w *Widget) GrabFocus() bool { return w.gtk.GrabFocus() }

func (w *Widget) disconnecting(handle coreglib.SignalHandle) host.Subscription {
	obj := w.gtk.Object
	return host.NewSubscription(func() { obj.HandlerDisconnect(handle) })
}

// OnUnmap implements host.Widget.
func (w *Widget) OnUnmap(fn func()) host.Subscription {
	return w.disconnecting(w.gtk.ConnectUnmap(fn))
}

// OnMoved implements host.Widget. GTK4 exposes allocation changes through
// property notification on the widget's size alongside map/unmap; the
// engine only needs a recompute trigger, so notify on both dimensions.
func (w *Widget) OnMoved(fn func()) host.Subscription {
	h1 := w.gtk.NotifyProperty("width-request", fn)
	h2 := w.gtk.NotifyProperty("height-request", fn)
	obj := w.gtk.Object
	return host.NewSubscription(func() {
		obj.HandlerDisconnect(h1)
		obj.HandlerDisconnect(h2)
	})
}

// OnHierarchyChanged implements host.Widget: root changes surface as
// notify::root in GTK4.
func (w *Widget) OnHierarchyChanged(fn func()) host.Subscription {
	return w.disconnecting(w.gtk.NotifyProperty("root", fn))
}

// OnGrabNotify implements host.Widget against the adapter's own grab stack;
// GTK4 has no toolkit grab-notify signal.
func (w *Widget) OnGrabNotify(fn func(wasShadowed bool)) host.Subscription {
	if w.win == nil {
		return host.NewSubscription(nil)
	}
	return w.win.grabs.subscribe(w, fn)
}

// Scrollable adapts a gtk.ScrolledWindow.
type Scrollable struct {
	gtk *gtk.ScrolledWindow
	win *Window
}

// Container implements host.Scrollable.
func (s *Scrollable) Container() host.Widget {
	return WrapWidget(s.gtk, s.win)
}

// OnAdjustmentChanged implements host.Scrollable: value and range changes
// on both axis adjustments.
func (s *Scrollable) OnAdjustmentChanged(fn func()) host.Subscription {
	h := s.gtk.HAdjustment()
	v := s.gtk.VAdjustment()
	handles := []struct {
		obj    *coreglib.Object
		handle coreglib.SignalHandle
	}{
		{h.Object, h.ConnectValueChanged(fn)},
		{h.Object, h.ConnectChanged(fn)},
		{v.Object, v.ConnectValueChanged(fn)},
		{v.Object, v.ConnectChanged(fn)},
	}
	return host.NewSubscription(func() {
		for _, entry := range handles {
			entry.obj.HandlerDisconnect(entry.handle)
		}
	})
}
