// Package bubble implements the anchored overlay engine: side selection
// with constraint-aware fallback, the show/hide transition state machine,
// and the modality protocol that makes a bubble behave like a lightweight
// modal without a separate toplevel.
//
// The engine is single-threaded and event-driven: every method must be
// called from the UI goroutine, and per-frame work is delivered by the host
// window's frame clock.
package bubble

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/bubbletip/internal/config"
	"github.com/jmylchreest/bubbletip/internal/geometry"
	"github.com/jmylchreest/bubbletip/internal/host"
	"github.com/jmylchreest/bubbletip/internal/motion"
)

// State is the visibility state of a bubble.
type State int

const (
	// StateHidden is the initial and terminal state.
	StateHidden State = iota
	// StateShowing is the animated entry transition.
	StateShowing
	// StateShown is the settled visible state.
	StateShown
	// StateHiding is the animated exit transition.
	StateHiding
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateShowing:
		return "showing"
	case StateShown:
		return "shown"
	case StateHiding:
		return "hiding"
	default:
		return "invalid"
	}
}

// Key identifies the keys the bubble reacts to itself.
type Key int

// KeyEscape dismisses a bubble.
const KeyEscape Key = iota

// Bubble is a transient overlay anchored to a rectangle of an attached
// widget. A zero Bubble is not usable; construct with New.
type Bubble struct {
	logger *slog.Logger
	reg    *Registry
	styler host.Styler
	cfg    *config.Config

	attached   host.Widget
	window     host.Window
	overlay    host.Overlay
	scrollable host.Scrollable

	anchorRect    *geometry.Rect
	preferredSide geometry.Side
	finalSide     geometry.Side
	currentSide   geometry.Side
	constraint    geometry.ConstraintMode
	modal         bool

	state      State
	visible    bool // intent flag: a show is in effect, even mid-transition
	shownCycle bool // closed notification still owed for this cycle
	suppressed bool

	tracker   motion.Tracker
	tickClock host.FrameClock
	tickID    host.TickID
	offset    int
	opacity   float64

	modalityApplied bool
	grabWatchPaused bool
	prevFocus       host.Widget
	prevFocusUnmap  host.Subscription
	defaultWidget   host.Widget
	prevDefault     host.Widget

	attachedSubs []host.Subscription
	windowSubs   []host.Subscription
	scrollSubs   []host.Subscription
	modalSubs    []host.Subscription

	buttonPressed bool
	lastBounds    geometry.Rect
	shapeSize     geometry.Size
	onClosed      []func()
}

// New creates a detached, hidden, modal bubble. reg is the ownership
// registry of the arena the bubble will live in; styler resolves border and
// radius metrics for tail clamping.
func New(reg *Registry, styler host.Styler, cfg *config.Config, logger *slog.Logger) *Bubble {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if styler == nil {
		styler = host.StaticStyler{}
	}
	return &Bubble{
		logger:        logger,
		reg:           reg,
		styler:        styler,
		cfg:           cfg,
		preferredSide: geometry.SideTop,
		constraint:    geometry.ConstrainToHostWindow,
		modal:         true,
		opacity:       1,
	}
}

// UpdateConfig swaps the engine configuration (hot reload). Takes effect on
// the next transition or placement pass.
func (b *Bubble) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	b.cfg = cfg
	b.updatePosition()
}

// AttachTo attaches the bubble to a widget, or detaches it when w is nil.
// Attaching establishes the host window link, scrollable-ancestor tracking
// and hierarchy observation; detaching tears all of it down and hides the
// bubble. Reattaching rebuilds every derived subscription from scratch.
func (b *Bubble) AttachTo(w host.Widget) {
	if sameWidget(b.attached, w) {
		return
	}

	if b.state != StateHidden || b.visible {
		b.hide()
	}
	b.clearPrevFocus()

	if b.attached != nil {
		host.CancelAll(&b.attachedSubs)
		b.reg.unmanage(b.attached.ID(), b)
	}
	b.setScrollable(nil)
	b.teardownWindowLink()

	b.attached = w
	if w == nil {
		return
	}

	b.reg.manage(w.ID(), b)
	b.attachedSubs = append(b.attachedSubs,
		w.OnHierarchyChanged(b.hierarchyChanged),
		w.OnMoved(b.updatePosition),
		w.OnUnmap(b.attachedUnmapped),
	)

	b.window = w.Window()
	if b.window != nil {
		b.establishWindowLink()
	}
	b.updateScrollable()
	b.updatePosition()
}

// Attached returns the widget the bubble is attached to, or nil.
func (b *Bubble) Attached() host.Widget { return b.attached }

// Overlay returns the surface allocated for the bubble on its current host
// window, or nil while detached.
func (b *Bubble) Overlay() host.Overlay { return b.overlay }

// Popup shows the bubble with a transition when animations are enabled.
// A no-op while already showing or shown, or while detached.
func (b *Bubble) Popup() {
	if b.state == StateShowing || b.state == StateShown {
		return
	}
	if b.attached == nil || b.window == nil || b.overlay == nil {
		b.logger.Debug("popup on detached bubble ignored")
		return
	}

	b.show()

	if b.transitionsEnabled() {
		b.setState(StateShowing)
	}
}

// Popdown hides the bubble with a transition when animations are enabled.
// A no-op while already hiding or hidden.
func (b *Bubble) Popdown() {
	if b.state == StateHiding || b.state == StateHidden {
		return
	}

	if !b.transitionsEnabled() {
		b.hide()
		return
	}

	b.setState(StateHiding)
	b.hideInternal()
}

// SetAnchorRect sets the rectangle the bubble points to, in the attached
// widget's coordinate space. nil reverts to pointing at the whole widget.
func (b *Bubble) SetAnchorRect(r *geometry.Rect) error {
	if r != nil && !r.Valid() {
		return geometry.ErrInvalidRect
	}
	if r == nil {
		b.anchorRect = nil
	} else {
		rect := *r
		b.anchorRect = &rect
	}
	b.updatePosition()
	return nil
}

// AnchorRect returns the explicit anchor rectangle and whether one is set.
// When unset, the returned rectangle is the attached widget's own bounds.
func (b *Bubble) AnchorRect() (geometry.Rect, bool) {
	if b.anchorRect != nil {
		return *b.anchorRect, true
	}
	return b.localAnchor(), false
}

// SetPreferredSide sets the side the bubble prefers to appear on.
func (b *Bubble) SetPreferredSide(s geometry.Side) error {
	if !s.Valid() {
		return geometry.ErrInvalidSide
	}
	if b.preferredSide == s {
		return nil
	}
	b.preferredSide = s
	b.updatePosition()
	return nil
}

// PreferredSide returns the user-set side preference.
func (b *Bubble) PreferredSide() geometry.Side { return b.preferredSide }

// FinalSide returns the side chosen by the last placement pass.
func (b *Bubble) FinalSide() geometry.Side { return b.finalSide }

// CurrentSide returns the side committed to the last shape rebuild. It lags
// FinalSide until the next rebuild.
func (b *Bubble) CurrentSide() geometry.Side { return b.currentSide }

// SetConstraintMode controls whether placement may leave the host window.
func (b *Bubble) SetConstraintMode(m geometry.ConstraintMode) error {
	if !m.Valid() {
		return geometry.ErrInvalidConstraint
	}
	if b.constraint == m {
		return nil
	}
	b.constraint = m
	b.updatePosition()
	return nil
}

// ConstraintMode returns the current placement constraint.
func (b *Bubble) ConstraintMode() geometry.ConstraintMode { return b.constraint }

// SetModal sets whether showing the bubble grabs input and keyboard focus.
// Toggling while shown applies or releases the grab immediately.
func (b *Bubble) SetModal(modal bool) {
	if b.modal == modal {
		return
	}
	b.modal = modal

	if b.visible {
		b.applyModality(modal)
	}
}

// Modal reports whether the bubble grabs input while shown.
func (b *Bubble) Modal() bool { return b.modal }

// SetDefaultWidget sets the widget made the window default while the bubble
// is mapped. The previous default is restored on unmap.
func (b *Bubble) SetDefaultWidget(w host.Widget) {
	if sameWidget(b.defaultWidget, w) {
		return
	}
	b.defaultWidget = w
	if b.visible && b.window != nil {
		b.window.SetDefaultWidget(w)
	}
}

// DefaultWidget returns the widget set as default while shown, or nil.
func (b *Bubble) DefaultWidget() host.Widget { return b.defaultWidget }

// VisibilityState returns the current state machine state.
func (b *Bubble) VisibilityState() State { return b.state }

// Suppressed reports whether the bubble is mapped but hidden because its
// anchor scrolled outside the scrollable ancestor's viewport.
func (b *Bubble) Suppressed() bool { return b.suppressed }

// TransitionOffset returns the current animation displacement in pixels.
func (b *Bubble) TransitionOffset() int { return b.offset }

// Opacity returns the current surface opacity.
func (b *Bubble) Opacity() float64 { return b.opacity }

// Bounds returns the bubble bounds committed by the last placement pass.
func (b *Bubble) Bounds() geometry.Rect { return b.lastBounds }

// OnClosed registers a callback fired exactly once per completed popdown,
// after the state reaches Hidden.
func (b *Bubble) OnClosed(fn func()) {
	b.onClosed = append(b.onClosed, fn)
}

// HandleKey processes a key delivered to the bubble. Escape dismisses it.
// Returns true when the key was consumed.
func (b *Bubble) HandleKey(k Key) bool {
	if k == KeyEscape {
		b.Popdown()
		return true
	}
	return false
}

// HandlePress records a button press on the overlay surface.
func (b *Bubble) HandlePress() {
	b.buttonPressed = true
}

// HandleRelease processes a button release at a point in overlay
// coordinates: a release outside the content box dismisses the bubble.
func (b *Bubble) HandleRelease(p geometry.Point) {
	if !b.buttonPressed {
		return
	}
	side := b.currentSide.Effective(b.textDirection())
	content := geometry.ContentRect(side, b.shapeSize, b.tailMetrics())
	if !content.Contains(p) {
		b.Popdown()
	}
}

// NotifyHostResized is the recomputation trigger the host invokes after
// resizing the window.
func (b *Bubble) NotifyHostResized() {
	b.updatePosition()
}

// NotifyAnchorAncestorMoved is the recomputation trigger the host invokes
// when an ancestor of the attached widget moves it.
func (b *Bubble) NotifyAnchorAncestorMoved() {
	b.updatePosition()
}

// CurrentTailGeometry returns the tail polyline for the current layout, and
// false when there is no committed layout to derive it from.
func (b *Bubble) CurrentTailGeometry() (geometry.TailGeometry, bool) {
	if b.overlay == nil || b.shapeSize.IsEmpty() {
		return geometry.TailGeometry{}, false
	}
	anchor, ok := b.anchorInOverlay()
	if !ok {
		return geometry.TailGeometry{}, false
	}
	style := b.styler.Metrics()
	return geometry.ComputeTail(geometry.TailInput{
		Side:         b.finalSide.Effective(b.textDirection()),
		Size:         b.shapeSize,
		Anchor:       anchor,
		BorderRadius: style.BorderRadius,
		Border:       style.Border,
		Metrics:      b.tailMetrics(),
	}), true
}

// --- state machine ---

// show maps the bubble immediately (no transition) and applies modality.
func (b *Bubble) show() {
	b.overlay.Raise()
	b.visible = true
	b.shownCycle = true
	b.buttonPressed = false

	b.prevDefault = b.window.DefaultWidget()
	b.window.SetDefaultWidget(b.defaultWidget)

	b.overlay.SetVisible(true)
	b.overlay.SetInputShape(nil)

	if b.modal {
		b.applyModality(true)
	}

	b.state = StateShown
	b.updatePosition()
}

// hideInternal begins dismissal: drops the visibility intent, releases
// modality and stops capturing input. The surface itself stays mapped until
// hide so an exit transition can still paint.
func (b *Bubble) hideInternal() {
	b.visible = false
	if b.modalityApplied {
		b.applyModality(false)
	}
	if b.overlay != nil {
		b.overlay.DisableInput()
	}
}

// hide unmaps the bubble immediately and resets every transient transition
// field so the bubble is ready for reuse.
func (b *Bubble) hide() {
	b.hideInternal()
	b.stopTransition()

	b.state = StateHidden
	b.offset = 0
	b.opacity = 1
	b.buttonPressed = false
	b.tracker.Finish()

	if b.overlay != nil {
		b.overlay.SetOpacity(1)
		b.overlay.SetVisible(false)
	}
	if b.window != nil && sameWidget(b.window.DefaultWidget(), b.defaultWidget) {
		b.window.SetDefaultWidget(b.prevDefault)
	}
	b.prevDefault = nil

	if b.shownCycle {
		b.shownCycle = false
		for _, fn := range b.onClosed {
			fn()
		}
	}
}

// setState moves the state machine. Showing and Hiding degrade to their
// terminal states when transitions are unavailable.
func (b *Bubble) setState(s State) {
	if !b.transitionsEnabled() {
		switch s {
		case StateShowing:
			s = StateShown
		case StateHiding:
			s = StateHidden
		}
	}

	switch s {
	case StateShowing, StateHiding:
		b.state = s
		b.startTransition()
	case StateShown:
		b.state = s
		b.stopTransition()
		b.offset = 0
		b.opacity = 1
		if b.overlay != nil {
			b.overlay.SetOpacity(1)
			b.overlay.SetVisible(true)
		}
	case StateHidden:
		b.hide()
	}
}

func (b *Bubble) transitionsEnabled() bool {
	return b.window != nil && b.overlay != nil &&
		b.window.AnimationsEnabled() && b.cfg.Motion.Animations
}

// startTransition registers the per-frame callback. When a transition is
// already running (a popdown interrupting a popup), the existing tracker
// and tick keep going; only the state changes the formulas applied per
// frame.
func (b *Bubble) startTransition() {
	if b.tickID != 0 {
		return
	}

	b.tracker.Begin(b.cfg.TransitionDuration())
	if b.state == StateShowing {
		b.offset = b.maxOffset()
		b.opacity = 0
	} else {
		b.offset = 0
		b.opacity = 1
	}
	if b.overlay != nil {
		b.overlay.SetOpacity(b.opacity)
	}

	b.tickClock = b.window.FrameClock()
	b.tickID = b.tickClock.AddTick(b.onTick)
	b.updatePosition()
}

// stopTransition deregisters the per-frame callback without invoking any
// completion behavior.
func (b *Bubble) stopTransition() {
	if b.tickID != 0 && b.tickClock != nil {
		b.tickClock.RemoveTick(b.tickID)
	}
	b.tickID = 0
}

// onTick advances one animation frame. Geometry is recomputed before
// returning so the renderer never pairs stale bounds with a fresh opacity.
func (b *Bubble) onTick(frameTime time.Duration) bool {
	if b.tickID == 0 {
		// Raced with an out-of-band cancellation during teardown.
		return false
	}

	t := b.tracker.Advance(frameTime)
	e := motion.EaseOutCubic(t)
	max := float64(b.maxOffset())

	switch b.state {
	case StateShowing:
		b.offset = int(max - max*e)
		b.opacity = e
	case StateHiding:
		b.offset = -int(max * e)
		b.opacity = 1 - e
	default:
		b.tickID = 0
		return false
	}

	if b.overlay != nil {
		b.overlay.SetOpacity(b.opacity)
	}
	b.updatePosition()

	if !b.tracker.Done() {
		return true
	}

	b.tickID = 0
	if b.state == StateShowing {
		b.setState(StateShown)
		if !b.visible {
			// A popdown arrived mid-entry; play the exit now.
			b.setState(StateHiding)
		}
	} else {
		b.hide()
	}
	return false
}

func (b *Bubble) maxOffset() int {
	if b.cfg.Motion.Offset < 0 {
		return config.DefaultTransitionOffset
	}
	return b.cfg.Motion.Offset
}

func (b *Bubble) tailMetrics() geometry.TailMetrics {
	return geometry.TailMetrics{Height: b.cfg.Tail.Height, Gap: b.cfg.Tail.Gap}
}

func (b *Bubble) textDirection() geometry.TextDirection {
	if b.window == nil {
		return geometry.DirectionLTR
	}
	return b.window.TextDirection()
}

// --- placement ---

// localAnchor returns the anchor rectangle in the attached widget's own
// coordinate space. An unset anchor is recomputed from the widget bounds on
// every call; it is never cached.
func (b *Bubble) localAnchor() geometry.Rect {
	if b.anchorRect != nil {
		return *b.anchorRect
	}
	if b.attached == nil {
		return geometry.Rect{}
	}
	bounds := b.attached.Bounds()
	return geometry.Rect{Width: bounds.Width, Height: bounds.Height}
}

// resolveAnchor translates the anchor rectangle into host window
// coordinates.
func (b *Bubble) resolveAnchor() (geometry.Rect, bool) {
	if b.attached == nil || b.window == nil {
		return geometry.Rect{}, false
	}
	rect := b.localAnchor()
	origin, ok := b.attached.TranslateTo(b.window.Root(), geometry.Point{X: rect.X, Y: rect.Y})
	if !ok {
		return geometry.Rect{}, false
	}
	rect.X, rect.Y = origin.X, origin.Y
	return rect, true
}

// anchorInOverlay translates the anchor rectangle into the overlay's own
// coordinate space, for tail derivation.
func (b *Bubble) anchorInOverlay() (geometry.Rect, bool) {
	if b.attached == nil || b.overlay == nil {
		return geometry.Rect{}, false
	}
	rect := b.localAnchor()
	origin, ok := b.attached.TranslateTo(b.overlay, geometry.Point{X: rect.X, Y: rect.Y})
	if !ok {
		return geometry.Rect{}, false
	}
	rect.X, rect.Y = origin.X, origin.Y
	return rect, true
}

// updatePosition runs a full placement pass: anchor resolution, side
// selection, overlay move, shape rebuild when the committed side or size
// changed, and scroll-out suppression.
func (b *Bubble) updatePosition() {
	if b.window == nil || b.attached == nil || b.overlay == nil {
		return
	}

	anchor, ok := b.resolveAnchor()
	if !ok {
		b.logger.Debug("anchor translation failed, skipping placement")
		return
	}

	style := b.styler.Metrics()
	req := geometry.PadRequisition(
		b.overlay.PreferredSize(),
		b.preferredSide.Effective(b.textDirection()),
		style.BorderRadius,
		b.tailMetrics(),
	)

	placement := geometry.ComputePlacement(geometry.PlacementInput{
		Anchor:           anchor,
		Host:             b.window.Bounds(),
		Shadow:           b.window.ShadowInsets(),
		Preferred:        b.preferredSide,
		Constraint:       b.constraint,
		Requisition:      req,
		Direction:        b.textDirection(),
		FreePlacement:    b.window.FreePlacement(),
		TransitionOffset: b.offset,
	})

	b.finalSide = placement.Side
	b.lastBounds = placement.Bounds
	b.overlay.Move(placement.Side, placement.Bounds)

	size := geometry.Size{Width: placement.Bounds.Width, Height: placement.Bounds.Height}
	if b.finalSide != b.currentSide || size != b.shapeSize {
		b.shapeSize = size
		if b.overlay.IsDrawable() {
			b.rebuildShape()
		}
		b.currentSide = b.finalSide
	}

	b.updateChildVisible()
}

// rebuildShape recomputes the input-hit region (rounded body plus tail) and
// pushes it to the host's input routing.
func (b *Bubble) rebuildShape() {
	anchor, ok := b.anchorInOverlay()
	if !ok {
		return
	}

	style := b.styler.Metrics()
	tail := geometry.ComputeTail(geometry.TailInput{
		Side:         b.finalSide.Effective(b.textDirection()),
		Size:         b.shapeSize,
		Anchor:       anchor,
		BorderRadius: style.BorderRadius,
		Border:       style.Border,
		Metrics:      b.tailMetrics(),
	})
	body := geometry.BodyRect(b.shapeSize, style.Margin, b.tailMetrics())

	b.overlay.SetInputShape(&host.InputShape{Body: body, Tail: tail})
}

// updateChildVisible suppresses the mapped bubble when the anchor rectangle
// sits entirely outside the scrollable ancestor's viewport, rather than
// moving it off-screen.
func (b *Bubble) updateChildVisible() {
	if b.scrollable == nil {
		b.setSuppressed(false)
		return
	}

	container := b.scrollable.Container()
	if container == nil {
		b.setSuppressed(false)
		return
	}

	rect := b.localAnchor()
	origin, ok := b.attached.TranslateTo(container, geometry.Point{X: rect.X, Y: rect.Y})
	if !ok {
		return
	}
	rect.X, rect.Y = origin.X, origin.Y

	viewport := container.Bounds()
	outside := rect.Right() < 0 || rect.X > viewport.Width ||
		rect.Bottom() < 0 || rect.Y > viewport.Height
	b.setSuppressed(outside)
}

func (b *Bubble) setSuppressed(suppressed bool) {
	if b.suppressed == suppressed {
		return
	}
	b.suppressed = suppressed
	if b.overlay != nil {
		b.overlay.SetChildVisible(!suppressed)
	}
}

// --- modality ---

// applyModality acquires or releases the grab and focus claims. No-op while
// detached from a window.
func (b *Bubble) applyModality(modal bool) {
	if b.window == nil || b.overlay == nil {
		return
	}

	if modal {
		if b.modalityApplied {
			return
		}
		b.modalityApplied = true

		if prev := b.window.Focus(); prev != nil {
			b.prevFocus = prev
			// Clear the restoration target if it goes away while we
			// hold it, so focus never returns somewhere undrawable.
			b.prevFocusUnmap = prev.OnUnmap(b.clearPrevFocus)
		}

		b.window.GrabAdd(b.overlay)
		b.window.SetFocus(nil)
		b.overlay.GrabFocus()

		b.modalSubs = append(b.modalSubs,
			b.window.OnActiveChanged(b.windowActiveChanged),
			b.window.OnFocusChanged(b.windowFocusChanged),
		)
		return
	}

	if !b.modalityApplied {
		return
	}
	b.modalityApplied = false
	b.grabWatchPaused = false

	host.CancelAll(&b.modalSubs)
	b.window.GrabRemove(b.overlay)

	if b.prevFocus != nil && b.prevFocus.IsDrawable() {
		b.prevFocus.GrabFocus()
	} else {
		b.window.FocusSelf()
	}
	b.clearPrevFocus()
}

func (b *Bubble) clearPrevFocus() {
	b.prevFocusUnmap.Cancel()
	b.prevFocus = nil
}

// windowActiveChanged regains the grab when the host window is refocused
// and parks it while the window is inactive, without losing the modal
// intent.
func (b *Bubble) windowActiveChanged(active bool) {
	if !b.modal || b.overlay == nil || !b.overlay.IsDrawable() {
		return
	}

	if active {
		b.window.GrabAdd(b.overlay)
		if f := b.window.Focus(); f == nil || !host.IsAncestor(f, b.overlay) {
			b.overlay.GrabFocus()
		}
		b.grabWatchPaused = false
	} else {
		b.grabWatchPaused = true
		b.window.GrabRemove(b.overlay)
	}
}

// windowFocusChanged auto-dismisses the bubble when focus leaves it for a
// widget outside its attachment chain. Nested bubbles attached within this
// one keep it open.
func (b *Bubble) windowFocusChanged(w host.Widget) {
	if !b.modal || w == nil || b.overlay == nil || !b.overlay.IsDrawable() {
		return
	}
	if host.IsAncestor(w, b.overlay) {
		return
	}
	if b.reg.InAttachmentChain(w, b) {
		return
	}

	// The focus owner is taking over; don't fight it for focus
	// restoration, just go away.
	b.clearPrevFocus()
	b.hide()
}

// grabNotify dismisses the bubble when something that is not a bubble
// steals the grab while we are modal and visible.
func (b *Bubble) grabNotify(wasShadowed bool) {
	if b.grabWatchPaused || b.window == nil {
		return
	}
	if !b.modal || b.overlay == nil || !b.overlay.IsDrawable() {
		return
	}

	holder := b.window.GrabHolder()
	if holder != nil && holder.ID() == b.overlay.ID() {
		return
	}
	if holder == nil || !b.reg.IsOverlay(holder) {
		b.Popdown()
	}
}

// --- host relationship plumbing ---

// attachedUnmapped reacts to the attached widget (or its window) being
// unmapped: an in-flight entry is abandoned immediately, a settled bubble
// plays its exit.
func (b *Bubble) attachedUnmapped() {
	switch b.state {
	case StateShowing:
		b.visible = false
	case StateShown:
		b.setState(StateHiding)
	}
}

// hierarchyChanged rebinds the bubble when the attached widget's ancestry
// moves it to a different host window.
func (b *Bubble) hierarchyChanged() {
	newWindow := b.attached.Window()
	if sameWindow(b.window, newWindow) {
		return
	}

	// Settle any in-flight transition against the old window's clock.
	switch b.state {
	case StateShowing:
		b.stopTransition()
		b.setState(StateShown)
	case StateHiding:
		b.hide()
	}

	if b.modalityApplied {
		b.applyModality(false)
	}
	b.teardownWindowLink()
	b.setScrollable(nil)

	b.window = newWindow
	if b.window != nil {
		b.establishWindowLink()
		b.updateScrollable()
		b.updatePosition()
	}
}

// establishWindowLink allocates the overlay surface on the current window
// and subscribes to its geometry.
func (b *Bubble) establishWindowLink() {
	overlay, err := b.window.AddOverlay(b.attached)
	if err != nil {
		b.logger.Warn("host window refused overlay", "error", err)
		b.window = nil
		return
	}

	b.overlay = overlay
	b.reg.registerOverlay(overlay.ID(), b)
	b.windowSubs = append(b.windowSubs,
		b.window.OnResized(b.updatePosition),
		// The overlay's own shadow state is what flips when another
		// grab lands on top of ours.
		overlay.OnGrabNotify(b.grabNotify),
	)

	if b.visible {
		b.overlay.SetVisible(true)
		if b.modal {
			b.applyModality(true)
		}
	}
}

// teardownWindowLink cancels any running transition, releases the overlay
// surface and drops window subscriptions.
func (b *Bubble) teardownWindowLink() {
	b.stopTransition()
	host.CancelAll(&b.windowSubs)

	if b.overlay != nil {
		b.reg.unregisterOverlay(b.overlay.ID())
		if b.window != nil {
			b.window.RemoveOverlay(b.overlay)
		}
		b.overlay = nil
	}
	b.window = nil
	b.currentSide = geometry.SideTop
	b.shapeSize = geometry.Size{}
}

func (b *Bubble) updateScrollable() {
	if b.attached == nil {
		b.setScrollable(nil)
		return
	}
	b.setScrollable(b.attached.ScrollableAncestor())
}

func (b *Bubble) setScrollable(sc host.Scrollable) {
	host.CancelAll(&b.scrollSubs)
	b.scrollable = sc
	if sc != nil {
		b.scrollSubs = append(b.scrollSubs, sc.OnAdjustmentChanged(b.updatePosition))
	}
}

func sameWidget(a, b host.Widget) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

func sameWindow(a, b host.Window) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}
