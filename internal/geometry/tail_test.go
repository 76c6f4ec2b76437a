package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTailBelowAnchor(t *testing.T) {
	// Side bottom: the tail protrudes from the bubble's top edge.
	g := ComputeTail(TailInput{
		Side:         SideBottom,
		Size:         Size{Width: 200, Height: 100},
		Anchor:       Rect{X: 90, Y: -10, Width: 20, Height: 10},
		BorderRadius: 6,
		Border:       Insets{Top: 1, Right: 1, Bottom: 1, Left: 1},
		Metrics:      DefaultTailMetrics(),
	})

	assert.Equal(t, Point{X: 88, Y: 13}, g.BaseA)
	assert.Equal(t, Point{X: 100, Y: 0}, g.Tip)
	assert.Equal(t, Point{X: 112, Y: 13}, g.BaseB)
}

func TestComputeTailAboveAnchor(t *testing.T) {
	// Side top: the tail protrudes from the bubble's bottom edge.
	g := ComputeTail(TailInput{
		Side:         SideTop,
		Size:         Size{Width: 200, Height: 100},
		Anchor:       Rect{X: 90, Y: 100, Width: 20, Height: 10},
		BorderRadius: 6,
		Border:       Insets{Top: 1, Right: 1, Bottom: 1, Left: 1},
		Metrics:      DefaultTailMetrics(),
	})

	assert.Equal(t, 87, g.BaseA.Y)
	assert.Equal(t, 99, g.Tip.Y)
	assert.Equal(t, 100, g.Tip.X)
}

func TestComputeTailLeftOfAnchor(t *testing.T) {
	g := ComputeTail(TailInput{
		Side:         SideLeft,
		Size:         Size{Width: 200, Height: 100},
		Anchor:       Rect{X: 200, Y: 40, Width: 10, Height: 20},
		BorderRadius: 6,
		Border:       Insets{Top: 1, Right: 1, Bottom: 1, Left: 1},
		Metrics:      DefaultTailMetrics(),
	})

	assert.Equal(t, 187, g.BaseA.X)
	assert.Equal(t, 199, g.Tip.X)
	assert.Equal(t, 50, g.Tip.Y)
}

func TestComputeTailCornerClamping(t *testing.T) {
	m := DefaultTailMetrics()
	size := Size{Width: 200, Height: 100}

	t.Run("anchor midpoint before the leading corner", func(t *testing.T) {
		g := ComputeTail(TailInput{
			Side:         SideBottom,
			Size:         size,
			Anchor:       Rect{X: -5, Y: -10, Width: 10, Height: 10},
			BorderRadius: 6,
			Metrics:      m,
		})
		assert.Equal(t, 6, g.BaseA.X, "leading base clamps to the radius")
		assert.Equal(t, 0, g.Tip.X, "tip clamps to the bubble bounds")
		assert.Equal(t, 30, g.BaseB.X, "trailing base keeps a full gap")
	})

	t.Run("anchor midpoint past the trailing corner", func(t *testing.T) {
		g := ComputeTail(TailInput{
			Side:         SideBottom,
			Size:         size,
			Anchor:       Rect{X: 500, Y: -10, Width: 10, Height: 10},
			BorderRadius: 6,
			Metrics:      m,
		})
		assert.Equal(t, 170, g.BaseA.X)
		assert.Equal(t, 200, g.Tip.X)
		assert.Equal(t, 194, g.BaseB.X)
	})
}

func TestComputeTailIsPure(t *testing.T) {
	in := TailInput{
		Side:         SideBottom,
		Size:         Size{Width: 200, Height: 100},
		Anchor:       Rect{X: 90, Y: -10, Width: 20, Height: 10},
		BorderRadius: 6,
		Metrics:      DefaultTailMetrics(),
	}
	require.Equal(t, ComputeTail(in), ComputeTail(in))
}

func TestPadRequisition(t *testing.T) {
	m := DefaultTailMetrics()

	t.Run("floors degenerate content", func(t *testing.T) {
		got := PadRequisition(Size{}, SideTop, 6, m)
		// 2*radius plus a gap on the tail axis, plus tail height on both.
		assert.Equal(t, Size{Width: 48, Height: 24}, got)
	})

	t.Run("horizontal side floors the height axis", func(t *testing.T) {
		got := PadRequisition(Size{}, SideLeft, 6, m)
		assert.Equal(t, Size{Width: 24, Height: 48}, got)
	})

	t.Run("large content only gains tail padding", func(t *testing.T) {
		got := PadRequisition(Size{Width: 100, Height: 50}, SideTop, 6, m)
		assert.Equal(t, Size{Width: 112, Height: 62}, got)
	})
}

func TestContentRect(t *testing.T) {
	m := DefaultTailMetrics()
	size := Size{Width: 200, Height: 100}

	tests := []struct {
		side Side
		want Rect
	}{
		{SideTop, Rect{X: 6, Y: 0, Width: 188, Height: 88}},
		{SideBottom, Rect{X: 6, Y: 12, Width: 188, Height: 88}},
		{SideLeft, Rect{X: 0, Y: 6, Width: 188, Height: 88}},
		{SideRight, Rect{X: 12, Y: 6, Width: 188, Height: 88}},
	}
	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ContentRect(tt.side, size, m))
		})
	}
}

func TestBodyRect(t *testing.T) {
	m := DefaultTailMetrics()

	got := BodyRect(Size{Width: 200, Height: 100}, Insets{}, m)
	assert.Equal(t, Rect{X: 12, Y: 12, Width: 176, Height: 76}, got)

	// A margin wider than the tail height wins.
	got = BodyRect(Size{Width: 200, Height: 100}, Insets{Left: 20}, m)
	assert.Equal(t, 20, got.X)
	assert.Equal(t, 168, got.Width)
}
