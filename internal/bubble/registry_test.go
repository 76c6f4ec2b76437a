package bubble_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bubbletip/internal/bubble"
	"github.com/jmylchreest/bubbletip/internal/config"
	"github.com/jmylchreest/bubbletip/internal/geometry"
	"github.com/jmylchreest/bubbletip/internal/sim"
)

func TestRegistryOwnership(t *testing.T) {
	arena := sim.NewArena()
	reg := bubble.NewRegistry()
	cfg := config.DefaultConfig()
	win := arena.NewWindow(geometry.Rect{Width: 800, Height: 600})
	anchor := arena.NewWidget(win.RootWidget(), geometry.Rect{X: 10, Y: 10, Width: 10, Height: 10})

	first := bubble.New(reg, nil, cfg, nil)
	second := bubble.New(reg, nil, cfg, nil)
	first.AttachTo(anchor)
	second.AttachTo(anchor)

	assert.Len(t, reg.Owned(anchor.ID()), 2)

	first.AttachTo(nil)
	assert.Len(t, reg.Owned(anchor.ID()), 1)

	reg.DetachAll(anchor.ID())
	assert.Empty(t, reg.Owned(anchor.ID()))
	assert.Nil(t, second.Attached())
}

func TestRegistryIsOverlay(t *testing.T) {
	arena := sim.NewArena()
	reg := bubble.NewRegistry()
	win := arena.NewWindow(geometry.Rect{Width: 800, Height: 600})
	anchor := arena.NewWidget(win.RootWidget(), geometry.Rect{X: 10, Y: 10, Width: 10, Height: 10})

	b := bubble.New(reg, nil, config.DefaultConfig(), nil)
	b.AttachTo(anchor)
	require.NotNil(t, b.Overlay())

	assert.True(t, reg.IsOverlay(b.Overlay()))
	assert.False(t, reg.IsOverlay(anchor))
	assert.False(t, reg.IsOverlay(nil))

	b.AttachTo(nil)
	assert.False(t, reg.IsOverlay(anchor))
}
