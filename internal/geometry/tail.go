package geometry

// Reference tail metrics. Configurable, but the defaults are part of the
// visual contract.
const (
	DefaultTailHeight = 12
	DefaultTailGap    = 24
)

// TailMetrics carries the configurable tail dimensions.
type TailMetrics struct {
	Height int
	Gap    int
}

// DefaultTailMetrics returns the reference 12px/24px tail.
func DefaultTailMetrics() TailMetrics {
	return TailMetrics{Height: DefaultTailHeight, Gap: DefaultTailGap}
}

func (m TailMetrics) normalized() TailMetrics {
	if m.Height <= 0 {
		m.Height = DefaultTailHeight
	}
	if m.Gap <= 0 {
		m.Gap = DefaultTailGap
	}
	return m
}

// TailGeometry is the three-point polyline of the directional arrow:
// leading base, tip, trailing base.
type TailGeometry struct {
	BaseA Point `json:"base_a" yaml:"base_a"`
	Tip   Point `json:"tip" yaml:"tip"`
	BaseB Point `json:"base_b" yaml:"base_b"`
}

// TailInput describes the layout state the tail derives from. Side must be
// the effective (post-mirroring) final side; Anchor is the anchor rectangle
// translated into the bubble's own coordinate space.
type TailInput struct {
	Side         Side
	Size         Size
	Anchor       Rect
	BorderRadius int
	Border       Insets
	Metrics      TailMetrics
}

// ComputeTail derives the tail polyline for the current layout state. It is
// a pure function: the same input is used for both the input-hit region and
// painting.
//
// The tip projects the anchor midpoint onto the anchor-facing edge, clamped
// to the bubble bounds. Both base points sit half a gap to either side,
// clamped inward so neither lands inside the rounded-corner radius.
func ComputeTail(in TailInput) TailGeometry {
	m := in.Metrics.normalized()
	radius := in.BorderRadius

	var base, tip int
	switch in.Side {
	case SideBottom, SideRight:
		tip = 0
		base = tip + m.Height + in.Border.Top
	case SideTop:
		base = in.Size.Height - in.Border.Bottom - m.Height
		tip = base + m.Height
	default: // SideLeft
		base = in.Size.Width - in.Border.Right - m.Height
		tip = base + m.Height
	}

	var g TailGeometry
	if in.Side.IsVertical() {
		tipPos := in.Anchor.MidX()
		g.BaseA = Point{
			X: clamp(tipPos-m.Gap/2, radius, in.Size.Width-m.Gap-radius),
			Y: base,
		}
		g.Tip = Point{X: clamp(tipPos, 0, in.Size.Width), Y: tip}
		g.BaseB = Point{
			X: clamp(tipPos+m.Gap/2, radius+m.Gap, in.Size.Width-radius),
			Y: base,
		}
	} else {
		tipPos := in.Anchor.MidY()
		g.BaseA = Point{
			X: base,
			Y: clamp(tipPos-m.Gap/2, radius, in.Size.Height-m.Gap-radius),
		}
		g.Tip = Point{X: tip, Y: clamp(tipPos, 0, in.Size.Height)}
		g.BaseB = Point{
			X: base,
			Y: clamp(tipPos+m.Gap/2, radius+m.Gap, in.Size.Height-radius),
		}
	}
	return g
}

// PadRequisition grows a content requisition into the bubble's full box:
// tail height is reserved on both axes (the committed side can change
// between measure and allocate) and the result is floored so the tail
// clamps always have room next to the rounded corners.
func PadRequisition(content Size, side Side, radius int, m TailMetrics) Size {
	m = m.normalized()

	minW := 2 * radius
	minH := 2 * radius
	if side.IsVertical() {
		minW += m.Gap
	} else {
		minH += m.Gap
	}

	if content.Width < minW {
		content.Width = minW
	}
	if content.Height < minH {
		content.Height = minH
	}
	content.Width += m.Height
	content.Height += m.Height
	return content
}

// BodyRect returns the input-hit body inside an allocation of the given
// size: the tail height is reserved on every edge (whichever edge carries
// the tail, the others still pad for the shadow), widened by the style
// margin when that is larger.
func BodyRect(size Size, margin Insets, m TailMetrics) Rect {
	m = m.normalized()

	x := maxInt(m.Height, margin.Left)
	y := maxInt(m.Height, margin.Top)
	return Rect{
		X:      x,
		Y:      y,
		Width:  size.Width - x - maxInt(m.Height, margin.Right),
		Height: size.Height - y - maxInt(m.Height, margin.Bottom),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ContentRect returns the content box inside an allocation of the given
// size: the tail height is carved out of the committed side and the content
// recentered by half a tail on the perpendicular axis.
func ContentRect(side Side, size Size, m TailMetrics) Rect {
	m = m.normalized()
	r := Rect{Width: size.Width - m.Height, Height: size.Height - m.Height}

	switch side {
	case SideTop:
		r.X += m.Height / 2
	case SideBottom:
		r.X += m.Height / 2
		r.Y += m.Height
	case SideLeft:
		r.Y += m.Height / 2
	case SideRight:
		r.X += m.Height
		r.Y += m.Height / 2
	}
	return r
}
