package gtkhost

import (
	"github.com/jmylchreest/bubbletip/internal/host"
)

// grabTable is the adapter's input grab stack. GTK4 removed toolkit grabs,
// but the engine only needs holder bookkeeping and shadow-change
// notifications; actual input exclusivity comes from the overlays' input
// targeting.
type grabTable struct {
	stack    []host.Widget
	subs     map[int]*grabSub
	shadowed map[int]bool
	nextID   int
}

type grabSub struct {
	widget host.Widget
	fn     func(wasShadowed bool)
}

func newGrabTable() *grabTable {
	return &grabTable{
		subs:     make(map[int]*grabSub),
		shadowed: make(map[int]bool),
	}
}

func (g *grabTable) holder() host.Widget {
	if len(g.stack) == 0 {
		return nil
	}
	return g.stack[len(g.stack)-1]
}

func (g *grabTable) add(w host.Widget) {
	if w == nil {
		return
	}
	g.stack = append(g.stack, w)
	g.notify()
}

func (g *grabTable) remove(w host.Widget) {
	if w == nil {
		return
	}
	for i := len(g.stack) - 1; i >= 0; i-- {
		if g.stack[i].ID() == w.ID() {
			g.stack = append(g.stack[:i], g.stack[i+1:]...)
			g.notify()
			return
		}
	}
}

func (g *grabTable) subscribe(w host.Widget, fn func(wasShadowed bool)) host.Subscription {
	g.nextID++
	id := g.nextID
	g.subs[id] = &grabSub{widget: w, fn: fn}
	g.shadowed[id] = g.isShadowed(w)
	return host.NewSubscription(func() {
		delete(g.subs, id)
		delete(g.shadowed, id)
	})
}

func (g *grabTable) isShadowed(w host.Widget) bool {
	holder := g.holder()
	return holder != nil && !host.IsAncestor(w, holder)
}

func (g *grabTable) notify() {
	for id, sub := range g.subs {
		was := g.shadowed[id]
		now := g.isShadowed(sub.widget)
		if was == now {
			continue
		}
		g.shadowed[id] = now
		sub.fn(was)
	}
}
