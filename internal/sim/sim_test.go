package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bubbletip/internal/geometry"
	"github.com/jmylchreest/bubbletip/internal/host"
)

func TestTranslateThroughTree(t *testing.T) {
	arena := NewArena()
	win := arena.NewWindow(geometry.Rect{Width: 800, Height: 600})
	parent := arena.NewWidget(win.RootWidget(), geometry.Rect{X: 100, Y: 50, Width: 200, Height: 200})
	child := arena.NewWidget(parent, geometry.Rect{X: 10, Y: 20, Width: 50, Height: 50})

	p, ok := child.TranslateTo(win.RootWidget(), geometry.Point{X: 1, Y: 2})
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 111, Y: 72}, p)

	// And back down.
	p, ok = win.RootWidget().TranslateTo(child, geometry.Point{X: 111, Y: 72})
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 1, Y: 2}, p)
}

func TestTranslateAcrossWindowsFails(t *testing.T) {
	arena := NewArena()
	w1 := arena.NewWidget(arena.NewWindow(geometry.Rect{Width: 100, Height: 100}).RootWidget(), geometry.Rect{})
	w2 := arena.NewWidget(arena.NewWindow(geometry.Rect{Width: 100, Height: 100}).RootWidget(), geometry.Rect{})

	_, ok := w1.TranslateTo(w2, geometry.Point{})
	assert.False(t, ok)
}

func TestUnmapPropagatesToSubtree(t *testing.T) {
	arena := NewArena()
	win := arena.NewWindow(geometry.Rect{Width: 100, Height: 100})
	parent := arena.NewWidget(win.RootWidget(), geometry.Rect{})
	child := arena.NewWidget(parent, geometry.Rect{})

	fired := 0
	child.OnUnmap(func() { fired++ })

	parent.Unmap()
	assert.Equal(t, 1, fired)
	assert.False(t, child.IsMapped())

	// Unmapping again is a no-op.
	parent.Unmap()
	assert.Equal(t, 1, fired)
}

func TestSubscriptionCancel(t *testing.T) {
	arena := NewArena()
	win := arena.NewWindow(geometry.Rect{Width: 100, Height: 100})
	w := arena.NewWidget(win.RootWidget(), geometry.Rect{})

	fired := 0
	sub := w.OnMoved(func() { fired++ })
	w.SetBounds(geometry.Rect{X: 1, Width: 10, Height: 10})
	require.Equal(t, 1, fired)

	sub.Cancel()
	sub.Cancel() // double cancel is harmless
	w.SetBounds(geometry.Rect{X: 2, Width: 10, Height: 10})
	assert.Equal(t, 1, fired)
}

func TestClockDropsFinishedTicks(t *testing.T) {
	clock := NewClock()

	var times []time.Duration
	clock.AddTick(func(now time.Duration) bool {
		times = append(times, now)
		return len(times) < 2
	})

	clock.Run(4, 10*time.Millisecond)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, times)
	assert.False(t, clock.Pending())
}

func TestClockRemoveTickDuringDispatch(t *testing.T) {
	clock := NewClock()

	var id2 host.TickID
	fired := 0
	clock.AddTick(func(time.Duration) bool {
		clock.RemoveTick(id2)
		return false
	})
	id2 = clock.AddTick(func(time.Duration) bool {
		fired++
		return true
	})

	clock.Advance(time.Millisecond)
	assert.Equal(t, 0, fired)
	assert.False(t, clock.Pending())
}

func TestScrollShiftsChildren(t *testing.T) {
	arena := NewArena()
	win := arena.NewWindow(geometry.Rect{Width: 400, Height: 300})
	sc := arena.NewScrollArea(win.RootWidget(), geometry.Rect{Width: 200, Height: 100})
	item := arena.NewWidget(sc.Viewport(), geometry.Rect{X: 10, Y: 150, Width: 20, Height: 20})

	fired := 0
	sc.OnAdjustmentChanged(func() { fired++ })

	sc.ScrollTo(geometry.Point{Y: 120})
	assert.Equal(t, 1, fired)
	assert.Equal(t, 30, item.Bounds().Y)

	assert.Equal(t, sc.Viewport().ID(), item.ScrollableAncestor().Container().ID())
}

func TestGrabNotifyFiresOnShadowChange(t *testing.T) {
	arena := NewArena()
	win := arena.NewWindow(geometry.Rect{Width: 100, Height: 100})
	a := arena.NewWidget(win.RootWidget(), geometry.Rect{})
	b := arena.NewWidget(win.RootWidget(), geometry.Rect{})

	var states []bool
	a.OnGrabNotify(func(was bool) { states = append(states, was) })

	win.GrabAdd(b)
	win.GrabAdd(b) // no shadow change
	win.GrabRemove(b)
	win.GrabRemove(b)

	assert.Equal(t, []bool{false, true}, states)
}
