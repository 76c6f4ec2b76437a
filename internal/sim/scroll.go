package sim

import (
	"github.com/jmylchreest/bubbletip/internal/geometry"
	"github.com/jmylchreest/bubbletip/internal/host"
)

// ScrollArea is a simulated scrollable viewport. Children are laid out in
// content coordinates; scrolling shifts them against the viewport and fires
// adjustment notifications.
type ScrollArea struct {
	viewport *Widget
	offset   geometry.Point

	nextSub int
	adjFns  map[int]func()
}

// NewScrollArea creates a scroll viewport widget under parent.
func (a *Arena) NewScrollArea(parent *Widget, bounds geometry.Rect) *ScrollArea {
	sc := &ScrollArea{adjFns: make(map[int]func())}
	sc.viewport = a.newWidget(parent, bounds)
	sc.viewport.scroll = sc
	return sc
}

// Viewport returns the viewport widget, for placing children under it.
func (s *ScrollArea) Viewport() *Widget { return s.viewport }

// Container implements host.Scrollable.
func (s *ScrollArea) Container() host.Widget { return s.viewport }

// OnAdjustmentChanged implements host.Scrollable.
func (s *ScrollArea) OnAdjustmentChanged(fn func()) host.Subscription {
	s.nextSub++
	id := s.nextSub
	s.adjFns[id] = fn
	return host.NewSubscription(func() { delete(s.adjFns, id) })
}

// Offset returns the current scroll offset.
func (s *ScrollArea) Offset() geometry.Point { return s.offset }

// ScrollTo moves the viewport to the given content offset, shifting every
// child and firing adjustment notifications.
func (s *ScrollArea) ScrollTo(p geometry.Point) {
	dx := p.X - s.offset.X
	dy := p.Y - s.offset.Y
	if dx == 0 && dy == 0 {
		return
	}
	s.offset = p
	for _, c := range s.viewport.childs {
		c.bounds.X -= dx
		c.bounds.Y -= dy
	}
	for _, fn := range s.adjFns {
		fn()
	}
}
