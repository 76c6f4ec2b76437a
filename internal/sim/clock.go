package sim

import (
	"time"

	"github.com/jmylchreest/bubbletip/internal/host"
)

// Clock is a manually advanced frame clock. Each Advance step bumps the
// frame timestamp and runs the registered tick callbacks in registration
// order, dropping the ones that return false.
type Clock struct {
	now    time.Duration
	nextID host.TickID
	ticks  map[host.TickID]func(time.Duration) bool
	order  []host.TickID
}

// NewClock creates a clock at frame time zero.
func NewClock() *Clock {
	return &Clock{ticks: make(map[host.TickID]func(time.Duration) bool)}
}

// AddTick implements host.FrameClock.
func (c *Clock) AddTick(fn func(frameTime time.Duration) bool) host.TickID {
	c.nextID++
	id := c.nextID
	c.ticks[id] = fn
	c.order = append(c.order, id)
	return id
}

// RemoveTick implements host.FrameClock.
func (c *Clock) RemoveTick(id host.TickID) {
	delete(c.ticks, id)
}

// FrameTime implements host.FrameClock.
func (c *Clock) FrameTime() time.Duration { return c.now }

// Pending reports whether any tick callback is still registered.
func (c *Clock) Pending() bool { return len(c.ticks) > 0 }

// Advance steps the frame time once and dispatches ticks.
func (c *Clock) Advance(step time.Duration) {
	c.now += step

	// Snapshot: callbacks may add or remove ticks while running.
	ids := make([]host.TickID, len(c.order))
	copy(ids, c.order)

	var live []host.TickID
	for _, id := range ids {
		fn, ok := c.ticks[id]
		if !ok {
			continue
		}
		if !fn(c.now) {
			delete(c.ticks, id)
			continue
		}
		live = append(live, id)
	}

	// Keep ticks added during dispatch.
	for _, id := range c.order {
		if _, ok := c.ticks[id]; ok && !contains(live, id) {
			live = append(live, id)
		}
	}
	c.order = live
}

// Run advances the clock by frames steps of the given size.
func (c *Clock) Run(frames int, step time.Duration) {
	for i := 0; i < frames; i++ {
		c.Advance(step)
	}
}

// RunUntilIdle advances until no ticks remain, bounded to avoid spinning on
// a callback that never finishes.
func (c *Clock) RunUntilIdle(step time.Duration) {
	for i := 0; i < 10000 && c.Pending(); i++ {
		c.Advance(step)
	}
}

func contains(ids []host.TickID, id host.TickID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
