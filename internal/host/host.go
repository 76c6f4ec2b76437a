// Package host declares the collaborator interfaces the bubble engine
// consumes: widget geometry queries, coordinate translation, the frame
// clock, grab and focus stacks, and scrollable-ancestor tracking. The
// engine never owns these objects; it observes them through explicit
// subscriptions and undoes every mutation it makes on detach or hide.
package host

import (
	"time"

	"github.com/jmylchreest/bubbletip/internal/geometry"
)

// Subscription is a handle to an observation established on a host object.
// Cancel releases it; canceling twice is harmless.
type Subscription struct {
	cancel func()
}

// NewSubscription wraps a cancel function into a handle.
func NewSubscription(cancel func()) Subscription {
	return Subscription{cancel: cancel}
}

// Cancel releases the observation.
func (s *Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// CancelAll cancels every subscription in the slice and empties it.
func CancelAll(subs *[]Subscription) {
	for i := range *subs {
		(*subs)[i].Cancel()
	}
	*subs = (*subs)[:0]
}

// Widget is a node in the host's widget tree.
type Widget interface {
	// ID identifies the widget within its arena.
	ID() string

	// Bounds returns the widget's allocation in its parent's coordinate
	// space.
	Bounds() geometry.Rect

	// PreferredSize returns the widget's natural requisition.
	PreferredSize() geometry.Size

	// Parent returns the parent widget, or nil at the tree root.
	Parent() Widget

	// Window returns the host window in the widget's ancestry, or nil.
	Window() Window

	// ScrollableAncestor returns the nearest scrollable ancestor, or nil.
	ScrollableAncestor() Scrollable

	// TranslateTo maps a point from this widget's coordinate space into
	// another widget's space through their shared ancestry. It reports
	// false when the widgets do not share a root.
	TranslateTo(other Widget, p geometry.Point) (geometry.Point, bool)

	// IsMapped reports whether the widget is currently mapped.
	IsMapped() bool

	// IsDrawable reports whether the widget is mapped and visible.
	IsDrawable() bool

	// GrabFocus moves keyboard focus to the widget (or its first
	// focusable descendant) and reports whether focus moved.
	GrabFocus() bool

	// OnUnmap observes the widget being unmapped.
	OnUnmap(fn func()) Subscription

	// OnMoved observes allocation changes (resize or reposition).
	OnMoved(fn func()) Subscription

	// OnHierarchyChanged observes the widget's ancestry changing its
	// host window.
	OnHierarchyChanged(fn func()) Subscription

	// OnGrabNotify observes the grab stack shadowing or unshadowing the
	// widget.
	OnGrabNotify(fn func(wasShadowed bool)) Subscription
}

// IsAncestor walks the parent chain and reports whether ancestor contains w
// (a widget is considered its own ancestor).
func IsAncestor(w, ancestor Widget) bool {
	if ancestor == nil {
		return false
	}
	for cur := w; cur != nil; cur = cur.Parent() {
		if cur.ID() == ancestor.ID() {
			return true
		}
	}
	return false
}

// TickID identifies a registered frame callback. Zero means none.
type TickID uint64

// FrameClock schedules per-frame callbacks. Callbacks receive the current
// frame timestamp and return true to stay registered.
type FrameClock interface {
	AddTick(fn func(frameTime time.Duration) bool) TickID
	RemoveTick(id TickID)
	FrameTime() time.Duration
}

// InputShape is the input-hit region pushed to the host's input routing:
// the rounded content body plus the tail triangle.
type InputShape struct {
	Body geometry.Rect
	Tail geometry.TailGeometry
}

// Overlay is the surface a window allocates for a bubble. It is a Widget
// (the bubble's node in the host tree) plus the mutations a bubble is
// allowed to make on its own surface.
type Overlay interface {
	Widget

	// SetVisible maps or unmaps the overlay surface.
	SetVisible(visible bool)

	// SetChildVisible suppresses the overlay without unmapping it, used
	// when the anchor scrolls out of the viewport.
	SetChildVisible(visible bool)

	// SetOpacity sets the surface opacity in [0,1].
	SetOpacity(opacity float64)

	// Move commits the placement pass: final side plus positioned bounds
	// in host window coordinates.
	Move(side geometry.Side, bounds geometry.Rect)

	// Raise lifts the overlay above its window siblings.
	Raise()

	// SetInputShape replaces the input-hit region. A nil shape restores
	// the full surface.
	SetInputShape(shape *InputShape)

	// DisableInput clears the input region entirely so the hidden
	// overlay captures nothing.
	DisableInput()
}

// Window is the bubble's host toplevel.
type Window interface {
	// Bounds returns the window's content allocation.
	Bounds() geometry.Rect

	// ShadowInsets returns the window decoration/shadow widths that
	// placement must stay clear of.
	ShadowInsets() geometry.Insets

	// TextDirection returns the effective text direction.
	TextDirection() geometry.TextDirection

	// FreePlacement reports whether the platform can place overlays
	// outside the window (gates ConstrainNone).
	FreePlacement() bool

	// AnimationsEnabled reports whether transitions should animate.
	AnimationsEnabled() bool

	// FrameClock returns the window's frame scheduler.
	FrameClock() FrameClock

	// Root returns the window's root widget, the target for translating
	// anchors into window coordinates.
	Root() Widget

	// AddOverlay allocates an overlay surface for a bubble attached to
	// the given widget.
	AddOverlay(attached Widget) (Overlay, error)

	// RemoveOverlay releases an overlay surface.
	RemoveOverlay(o Overlay)

	// Focus returns the currently focused widget, or nil.
	Focus() Widget

	// SetFocus moves window focus; nil clears it.
	SetFocus(w Widget)

	// FocusSelf puts focus on the window itself, the fallback when a
	// restoration target is gone.
	FocusSelf()

	// IsActive reports whether the window holds the session focus.
	IsActive() bool

	// DefaultWidget / SetDefaultWidget manage the window's default
	// activation target.
	DefaultWidget() Widget
	SetDefaultWidget(w Widget)

	// GrabAdd pushes a widget onto the input grab stack; GrabRemove pops
	// it; GrabHolder returns the current holder, or nil.
	GrabAdd(w Widget)
	GrabRemove(w Widget)
	GrabHolder() Widget

	// OnActiveChanged observes the window gaining or losing session
	// focus.
	OnActiveChanged(fn func(active bool)) Subscription

	// OnFocusChanged observes the window's focus widget changing.
	OnFocusChanged(fn func(w Widget)) Subscription

	// OnResized observes content allocation changes.
	OnResized(fn func()) Subscription
}

// Scrollable is a scrollable ancestor of the attached widget. The bubble
// only needs the viewport container and adjustment change notifications.
type Scrollable interface {
	// Container returns the widget whose allocation is the visible
	// viewport.
	Container() Widget

	// OnAdjustmentChanged observes value or range changes on either
	// axis adjustment.
	OnAdjustmentChanged(fn func()) Subscription
}

// StyleMetrics are the style lookups the geometry needs: border widths and
// corner radius for tail clamping, margins for the content box.
type StyleMetrics struct {
	BorderRadius int
	Border       geometry.Insets
	Margin       geometry.Insets
}

// Styler resolves the bubble's current style metrics.
type Styler interface {
	Metrics() StyleMetrics
}

// StaticStyler is a Styler with fixed metrics.
type StaticStyler StyleMetrics

// Metrics returns the fixed metrics.
func (s StaticStyler) Metrics() StyleMetrics { return StyleMetrics(s) }
