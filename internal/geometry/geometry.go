// Package geometry provides the primitives and pure placement math for
// anchored bubble overlays: sides, rectangles, overshoot-based side
// selection and tail (arrow) outlines.
package geometry

import "errors"

// Errors returned by validating constructors and setters.
var (
	ErrInvalidSide       = errors.New("geometry: invalid side")
	ErrInvalidRect       = errors.New("geometry: malformed rectangle")
	ErrInvalidConstraint = errors.New("geometry: invalid constraint mode")
)

// Side identifies the edge of the bubble the tail protrudes from, which is
// also the edge of the anchor the bubble faces.
//
// The enumeration order (Top, Bottom, Left, Right) is load-bearing: the
// fallback scan in ComputePlacement resolves overshoot ties by first-seen
// order.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
	numSides
)

// String returns the lowercase side name.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "invalid"
	}
}

// Valid reports whether s is one of the four cardinal sides.
func (s Side) Valid() bool {
	return s >= SideTop && s < numSides
}

// Opposite returns the side across from s.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

// IsVertical reports whether the bubble sits above or below the anchor.
func (s Side) IsVertical() bool {
	return s == SideTop || s == SideBottom
}

// ParseSide converts a side name to a Side.
func ParseSide(name string) (Side, error) {
	switch name {
	case "top":
		return SideTop, nil
	case "bottom":
		return SideBottom, nil
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	default:
		return SideTop, ErrInvalidSide
	}
}

// TextDirection mirrors the host toolkit's text direction.
type TextDirection int

const (
	DirectionLTR TextDirection = iota
	DirectionRTL
)

// Effective applies right-to-left mirroring to a side: under RTL, Left and
// Right swap while Top and Bottom are unaffected.
func (s Side) Effective(dir TextDirection) Side {
	if dir != DirectionRTL {
		return s
	}
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return s
	}
}

// Point is a position in pixels.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// IsEmpty reports whether either dimension is not positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Valid reports whether the rectangle has non-negative dimensions.
func (r Rect) Valid() bool {
	return r.Width >= 0 && r.Height >= 0
}

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// MidX returns the horizontal midpoint.
func (r Rect) MidX() int { return r.X + r.Width/2 }

// MidY returns the vertical midpoint.
func (r Rect) MidY() int { return r.Y + r.Height/2 }

// Offset returns r displaced by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersects reports whether r and o overlap at all.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X &&
		r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Insets describes per-edge spacing (shadow widths, borders, margins).
type Insets struct {
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
	Left   int `json:"left" yaml:"left"`
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
