package geometry

// ConstraintMode controls whether placement may consider space outside the
// host window.
type ConstraintMode int

const (
	// ConstrainToHostWindow keeps the bubble inside the host window's
	// content area, falling back to better-fitting sides when needed.
	ConstrainToHostWindow ConstraintMode = iota
	// ConstrainNone allows free placement when the platform supports it;
	// the preferred side is then honored verbatim.
	ConstrainNone
)

// Valid reports whether m is a known constraint mode.
func (m ConstraintMode) Valid() bool {
	return m == ConstrainToHostWindow || m == ConstrainNone
}

// String returns the constraint mode name.
func (m ConstraintMode) String() string {
	switch m {
	case ConstrainToHostWindow:
		return "window"
	case ConstrainNone:
		return "none"
	default:
		return "invalid"
	}
}

// ParseConstraintMode converts a constraint mode name to a ConstraintMode.
func ParseConstraintMode(name string) (ConstraintMode, error) {
	switch name {
	case "window":
		return ConstrainToHostWindow, nil
	case "none":
		return ConstrainNone, nil
	default:
		return ConstrainToHostWindow, ErrInvalidConstraint
	}
}

// PlacementInput carries everything side selection needs. Anchor is in host
// window coordinates; Host is the window's content allocation.
type PlacementInput struct {
	Anchor      Rect
	Host        Rect
	Shadow      Insets
	Preferred   Side
	Constraint  ConstraintMode
	Requisition Size
	Direction   TextDirection

	// FreePlacement is the platform capability flag: together with
	// ConstrainNone it short-circuits side selection entirely.
	FreePlacement bool

	// TransitionOffset displaces the bubble along the axis of the final
	// side while a show/hide transition is in flight. Positive values pull
	// the bubble toward the anchor.
	TransitionOffset int
}

// Placement is the outcome of a placement pass.
type Placement struct {
	// Side is the canonical (pre-mirroring) final side.
	Side Side
	// Bounds is the bubble's positioned rectangle in host coordinates.
	Bounds Rect
	// Overshoot holds the per-side overshoot amounts, indexed by Side.
	// Values at or below zero mean the side fits.
	Overshoot [4]int
}

// ComputePlacement decides which side the bubble goes on and where.
//
// Overshoot for a candidate side is the distance the bubble's required box
// would extend past the host content edge if placed there. Selection order:
// the preferred side if it fits, else its opposite, else the minimum
// overshoot across all four sides with ties broken by enumeration order
// (Top, Bottom, Left, Right). RTL mirroring applies to the preferred side
// up front and per-candidate during the scan; the returned Side is always
// canonical.
func ComputePlacement(in PlacementInput) Placement {
	var p Placement

	p.Overshoot = computeOvershoot(in)
	pos := in.Preferred.Effective(in.Direction)

	switch {
	case in.Constraint == ConstrainNone && in.FreePlacement:
		p.Side = in.Preferred
	case p.Overshoot[pos] <= 0:
		p.Side = in.Preferred
	case p.Overshoot[pos.Opposite()] <= 0:
		p.Side = in.Preferred.Opposite()
	default:
		best := p.Overshoot[SideTop.Effective(in.Direction)]
		p.Side = SideTop
		for s := SideTop + 1; s < numSides; s++ {
			if o := p.Overshoot[s.Effective(in.Direction)]; o < best {
				best = o
				p.Side = s
			}
		}
	}

	p.Bounds = positionBounds(in, p.Side.Effective(in.Direction))
	return p
}

// computeOvershoot returns per-side overshoot against the host content
// edges. Degenerate host bounds or requisitions never divide or overflow
// into nonsense; they degrade to "doesn't fit anywhere" so the fallback
// scan still yields a deterministic side.
func computeOvershoot(in PlacementInput) [4]int {
	var o [4]int

	if in.Host.IsEmpty() || in.Requisition.IsEmpty() {
		h := in.Requisition.Height
		w := in.Requisition.Width
		if h <= 0 {
			h = 1
		}
		if w <= 0 {
			w = 1
		}
		o[SideTop], o[SideBottom] = h, h
		o[SideLeft], o[SideRight] = w, w
		return o
	}

	o[SideTop] = in.Requisition.Height - in.Anchor.Y + in.Shadow.Top
	o[SideBottom] = in.Anchor.Bottom() + in.Requisition.Height - in.Host.Height + in.Shadow.Bottom
	o[SideLeft] = in.Requisition.Width - in.Anchor.X + in.Shadow.Left
	o[SideRight] = in.Anchor.Right() + in.Requisition.Width - in.Host.Width + in.Shadow.Right
	return o
}

// positionBounds computes the bubble rectangle for the chosen effective
// side: flush against the anchor on the facing axis, centered on the anchor
// midpoint and clamped to the host content area on the other.
func positionBounds(in PlacementInput, side Side) Rect {
	anchor := in.Anchor

	// The transition displacement moves the bubble along the side's axis
	// by shifting the rectangle it hangs off.
	switch side {
	case SideTop:
		anchor.Y += in.TransitionOffset
	case SideBottom:
		anchor.Y -= in.TransitionOffset
	case SideLeft:
		anchor.X += in.TransitionOffset
	case SideRight:
		anchor.X -= in.TransitionOffset
	}

	b := Rect{Width: in.Requisition.Width, Height: in.Requisition.Height}

	if side.IsVertical() {
		if side == SideTop {
			b.Y = anchor.Y - b.Height
		} else {
			b.Y = anchor.Bottom()
		}
		b.X = anchor.MidX() - b.Width/2
		lo := in.Shadow.Left
		hi := in.Host.Width - in.Shadow.Right - b.Width
		if hi >= lo {
			b.X = clamp(b.X, lo, hi)
		}
	} else {
		if side == SideLeft {
			b.X = anchor.X - b.Width
		} else {
			b.X = anchor.Right()
		}
		b.Y = anchor.MidY() - b.Height/2
		lo := in.Shadow.Top
		hi := in.Host.Height - in.Shadow.Bottom - b.Height
		if hi >= lo {
			b.Y = clamp(b.Y, lo, hi)
		}
	}

	return b
}
