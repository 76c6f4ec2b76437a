package bubble

import (
	"github.com/jmylchreest/bubbletip/internal/host"
)

// Registry is the explicit ownership table for bubbles: which widget owns
// which bubbles, and which overlay surface belongs to which bubble. The
// arena that owns widgets holds one and calls DetachAll when a widget is
// removed, which is what destroys the bubbles it owns.
//
// Like the rest of the engine it is confined to the UI goroutine; no
// locking.
type Registry struct {
	owned    map[string]map[*Bubble]struct{} // attached widget ID -> bubbles
	overlays map[string]*Bubble              // overlay widget ID -> bubble
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		owned:    make(map[string]map[*Bubble]struct{}),
		overlays: make(map[string]*Bubble),
	}
}

// manage records that the widget owns the bubble.
func (r *Registry) manage(widgetID string, b *Bubble) {
	set, ok := r.owned[widgetID]
	if !ok {
		set = make(map[*Bubble]struct{})
		r.owned[widgetID] = set
	}
	set[b] = struct{}{}
}

// unmanage removes the ownership record.
func (r *Registry) unmanage(widgetID string, b *Bubble) {
	set, ok := r.owned[widgetID]
	if !ok {
		return
	}
	delete(set, b)
	if len(set) == 0 {
		delete(r.owned, widgetID)
	}
}

func (r *Registry) registerOverlay(overlayID string, b *Bubble) {
	r.overlays[overlayID] = b
}

func (r *Registry) unregisterOverlay(overlayID string) {
	delete(r.overlays, overlayID)
}

// Owned returns the bubbles currently attached to the widget.
func (r *Registry) Owned(widgetID string) []*Bubble {
	set := r.owned[widgetID]
	if len(set) == 0 {
		return nil
	}
	out := make([]*Bubble, 0, len(set))
	for b := range set {
		out = append(out, b)
	}
	return out
}

// DetachAll tears down every bubble owned by the widget. Arenas call this
// when the widget is destroyed; detaching is the destruction trigger.
func (r *Registry) DetachAll(widgetID string) {
	for _, b := range r.Owned(widgetID) {
		b.AttachTo(nil)
	}
}

// IsOverlay reports whether the widget is a bubble's overlay surface.
func (r *Registry) IsOverlay(w host.Widget) bool {
	if w == nil {
		return false
	}
	_, ok := r.overlays[w.ID()]
	return ok
}

// bubbleContaining returns the bubble whose overlay surface contains w,
// walking up the widget tree, or nil.
func (r *Registry) bubbleContaining(w host.Widget) *Bubble {
	for cur := w; cur != nil; cur = cur.Parent() {
		if b, ok := r.overlays[cur.ID()]; ok {
			return b
		}
	}
	return nil
}

// InAttachmentChain reports whether w belongs to a chain of bubble
// attachments rooted at target: w is inside some bubble, whose attached
// widget is inside another bubble, and so on, until target is reached.
// Used to keep an outer modal bubble open while focus sits in a bubble
// nested on top of it.
func (r *Registry) InAttachmentChain(w host.Widget, target *Bubble) bool {
	cur := w
	for cur != nil {
		b := r.bubbleContaining(cur)
		if b == nil {
			return false
		}
		if b == target {
			return true
		}
		cur = b.attached
	}
	return false
}
