package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePlacementSideSelection(t *testing.T) {
	host := Rect{Width: 800, Height: 600}

	tests := []struct {
		name     string
		in       PlacementInput
		wantSide Side
	}{
		{
			name: "preferred side fits",
			in: PlacementInput{
				Anchor:      Rect{X: 100, Y: 100, Width: 10, Height: 10},
				Host:        host,
				Preferred:   SideTop,
				Requisition: Size{Width: 50, Height: 50},
			},
			wantSide: SideTop,
		},
		{
			name: "opposite side when preferred overflows",
			in: PlacementInput{
				Anchor:      Rect{X: 400, Y: 0, Width: 10, Height: 10},
				Host:        host,
				Preferred:   SideTop,
				Requisition: Size{Width: 50, Height: 50},
			},
			wantSide: SideBottom,
		},
		{
			name: "perpendicular fallback near right edge",
			in: PlacementInput{
				Anchor:      Rect{X: 780, Y: 10, Width: 10, Height: 10},
				Host:        host,
				Preferred:   SideRight,
				Requisition: Size{Width: 200, Height: 100},
			},
			wantSide: SideLeft,
		},
		{
			name: "scan picks minimum overshoot",
			in: PlacementInput{
				Anchor:      Rect{X: 10, Y: 45, Width: 10, Height: 10},
				Host:        Rect{Width: 100, Height: 100},
				Preferred:   SideTop,
				Requisition: Size{Width: 80, Height: 80},
			},
			wantSide: SideRight,
		},
		{
			name: "four-way tie resolves to top",
			in: PlacementInput{
				Anchor:      Rect{X: 45, Y: 45, Width: 10, Height: 10},
				Host:        Rect{Width: 100, Height: 100},
				Preferred:   SideLeft,
				Requisition: Size{Width: 80, Height: 80},
			},
			wantSide: SideTop,
		},
		{
			name: "unconstrained honors preferred verbatim",
			in: PlacementInput{
				Anchor:        Rect{X: 780, Y: 10, Width: 10, Height: 10},
				Host:          host,
				Preferred:     SideRight,
				Requisition:   Size{Width: 200, Height: 100},
				Constraint:    ConstrainNone,
				FreePlacement: true,
			},
			wantSide: SideRight,
		},
		{
			name: "unconstrained without platform support still falls back",
			in: PlacementInput{
				Anchor:      Rect{X: 780, Y: 10, Width: 10, Height: 10},
				Host:        host,
				Preferred:   SideRight,
				Requisition: Size{Width: 200, Height: 100},
				Constraint:  ConstrainNone,
			},
			wantSide: SideLeft,
		},
		{
			name: "degenerate host degrades to scan order",
			in: PlacementInput{
				Anchor:      Rect{X: 10, Y: 10, Width: 10, Height: 10},
				Host:        Rect{},
				Preferred:   SideRight,
				Requisition: Size{Width: 200, Height: 100},
			},
			wantSide: SideTop,
		},
		{
			name: "zero requisition never reports a fit",
			in: PlacementInput{
				Anchor:      Rect{X: 100, Y: 100, Width: 10, Height: 10},
				Host:        host,
				Preferred:   SideBottom,
				Requisition: Size{},
			},
			wantSide: SideTop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePlacement(tt.in)
			assert.Equal(t, tt.wantSide, got.Side)
		})
	}
}

func TestComputePlacementBounds(t *testing.T) {
	// Anchor near the right edge forces the perpendicular fallback; the
	// bubble then hangs off the anchor's left edge, clamped vertically.
	got := ComputePlacement(PlacementInput{
		Anchor:      Rect{X: 780, Y: 10, Width: 10, Height: 10},
		Host:        Rect{Width: 800, Height: 600},
		Preferred:   SideRight,
		Requisition: Size{Width: 200, Height: 100},
	})

	require.Equal(t, SideLeft, got.Side)
	assert.Equal(t, Rect{X: 580, Y: 0, Width: 200, Height: 100}, got.Bounds)
}

func TestComputePlacementFlushAndCentered(t *testing.T) {
	got := ComputePlacement(PlacementInput{
		Anchor:      Rect{X: 400, Y: 0, Width: 10, Height: 10},
		Host:        Rect{Width: 800, Height: 600},
		Preferred:   SideTop,
		Requisition: Size{Width: 50, Height: 50},
	})

	require.Equal(t, SideBottom, got.Side)
	// Flush below the anchor, centered on its midpoint.
	assert.Equal(t, Rect{X: 380, Y: 10, Width: 50, Height: 50}, got.Bounds)
}

func TestComputePlacementRTLMirrorsButReportsCanonical(t *testing.T) {
	got := ComputePlacement(PlacementInput{
		Anchor:      Rect{X: 100, Y: 100, Width: 10, Height: 10},
		Host:        Rect{Width: 800, Height: 600},
		Preferred:   SideLeft,
		Requisition: Size{Width: 50, Height: 50},
		Direction:   DirectionRTL,
	})

	// The reported side stays canonical while the bounds land on the
	// mirrored (right) side of the anchor.
	require.Equal(t, SideLeft, got.Side)
	assert.Equal(t, 110, got.Bounds.X)
}

func TestComputePlacementShadowInsets(t *testing.T) {
	// Without the shadow the preferred side would fit exactly.
	in := PlacementInput{
		Anchor:      Rect{X: 100, Y: 50, Width: 10, Height: 10},
		Host:        Rect{Width: 800, Height: 600},
		Preferred:   SideTop,
		Requisition: Size{Width: 50, Height: 50},
	}
	require.Equal(t, SideTop, ComputePlacement(in).Side)

	in.Shadow = Insets{Top: 5}
	assert.Equal(t, SideBottom, ComputePlacement(in).Side)
}

func TestComputePlacementTransitionOffset(t *testing.T) {
	in := PlacementInput{
		Anchor:      Rect{X: 100, Y: 100, Width: 10, Height: 10},
		Host:        Rect{Width: 800, Height: 600},
		Preferred:   SideTop,
		Requisition: Size{Width: 50, Height: 50},
	}
	settled := ComputePlacement(in)

	in.TransitionOffset = 20
	displaced := ComputePlacement(in)

	require.Equal(t, settled.Side, displaced.Side)
	assert.Equal(t, settled.Bounds.Y+20, displaced.Bounds.Y)
	assert.Equal(t, settled.Bounds.X, displaced.Bounds.X)
}

func TestComputePlacementOvershootValues(t *testing.T) {
	got := ComputePlacement(PlacementInput{
		Anchor:      Rect{X: 780, Y: 10, Width: 10, Height: 10},
		Host:        Rect{Width: 800, Height: 600},
		Preferred:   SideRight,
		Requisition: Size{Width: 200, Height: 100},
	})

	assert.Equal(t, 90, got.Overshoot[SideTop])
	assert.Equal(t, -480, got.Overshoot[SideBottom])
	assert.Equal(t, -580, got.Overshoot[SideLeft])
	assert.Equal(t, 190, got.Overshoot[SideRight])
}

func TestParseConstraintMode(t *testing.T) {
	m, err := ParseConstraintMode("none")
	require.NoError(t, err)
	assert.Equal(t, ConstrainNone, m)

	_, err = ParseConstraintMode("screen")
	assert.ErrorIs(t, err, ErrInvalidConstraint)
}

func TestParseSide(t *testing.T) {
	for _, s := range []Side{SideTop, SideBottom, SideLeft, SideRight} {
		got, err := ParseSide(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseSide("middle")
	assert.ErrorIs(t, err, ErrInvalidSide)
}

func TestSideEffective(t *testing.T) {
	assert.Equal(t, SideRight, SideLeft.Effective(DirectionRTL))
	assert.Equal(t, SideLeft, SideRight.Effective(DirectionRTL))
	assert.Equal(t, SideTop, SideTop.Effective(DirectionRTL))
	assert.Equal(t, SideLeft, SideLeft.Effective(DirectionLTR))
}
