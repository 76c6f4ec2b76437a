// Package report renders placement and tail computations for the CLI in
// plain text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/bubbletip/internal/geometry"
)

// Format selects an output renderer.
type Format string

// Supported output formats.
const (
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatPlain, FormatJSON, FormatYAML:
		return Format(name), nil
	default:
		return FormatPlain, fmt.Errorf("unknown output format %q", name)
	}
}

// Placement is the result of a placement computation in reportable form.
type Placement struct {
	PreferredSide string                 `json:"preferred_side" yaml:"preferred_side"`
	FinalSide     string                 `json:"final_side" yaml:"final_side"`
	EffectiveSide string                 `json:"effective_side" yaml:"effective_side"`
	Bounds        geometry.Rect          `json:"bounds" yaml:"bounds"`
	Overshoot     map[string]int         `json:"overshoot" yaml:"overshoot"`
	Requisition   geometry.Size          `json:"requisition" yaml:"requisition"`
	Direction     string                 `json:"direction" yaml:"direction"`
	Constraint    string                 `json:"constraint" yaml:"constraint"`
	Tail          *geometry.TailGeometry `json:"tail,omitempty" yaml:"tail,omitempty"`
}

// NewPlacement builds a report from a computed placement.
func NewPlacement(in geometry.PlacementInput, p geometry.Placement, tail *geometry.TailGeometry) *Placement {
	dir := "ltr"
	if in.Direction == geometry.DirectionRTL {
		dir = "rtl"
	}
	return &Placement{
		PreferredSide: in.Preferred.String(),
		FinalSide:     p.Side.String(),
		EffectiveSide: p.Side.Effective(in.Direction).String(),
		Bounds:        p.Bounds,
		Overshoot: map[string]int{
			geometry.SideTop.String():    p.Overshoot[geometry.SideTop],
			geometry.SideBottom.String(): p.Overshoot[geometry.SideBottom],
			geometry.SideLeft.String():   p.Overshoot[geometry.SideLeft],
			geometry.SideRight.String():  p.Overshoot[geometry.SideRight],
		},
		Requisition: in.Requisition,
		Direction:   dir,
		Constraint:  in.Constraint.String(),
		Tail:        tail,
	}
}

// Tail is a standalone tail computation in reportable form.
type Tail struct {
	Side    string                `json:"side" yaml:"side"`
	Size    geometry.Size         `json:"size" yaml:"size"`
	Tail    geometry.TailGeometry `json:"tail" yaml:"tail"`
	Content geometry.Rect         `json:"content" yaml:"content"`
}

// Formatter renders reports to a writer.
type Formatter interface {
	FormatPlacement(w io.Writer, r *Placement) error
	FormatTail(w io.Writer, r *Tail) error
}

// NewFormatter returns the formatter for a format.
func NewFormatter(f Format) (Formatter, error) {
	switch f {
	case FormatPlain:
		return plainFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatYAML:
		return yamlFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", f)
	}
}

type jsonFormatter struct{}

func (jsonFormatter) FormatPlacement(w io.Writer, r *Placement) error { return writeJSON(w, r) }
func (jsonFormatter) FormatTail(w io.Writer, r *Tail) error           { return writeJSON(w, r) }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type yamlFormatter struct{}

func (yamlFormatter) FormatPlacement(w io.Writer, r *Placement) error { return writeYAML(w, r) }
func (yamlFormatter) FormatTail(w io.Writer, r *Tail) error           { return writeYAML(w, r) }

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(v)
}

type plainFormatter struct{}

func (plainFormatter) FormatPlacement(w io.Writer, r *Placement) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "preferred:\t%s\n", r.PreferredSide)
	fmt.Fprintf(tw, "final:\t%s\n", r.FinalSide)
	if r.EffectiveSide != r.FinalSide {
		fmt.Fprintf(tw, "effective:\t%s (%s)\n", r.EffectiveSide, r.Direction)
	}
	fmt.Fprintf(tw, "bounds:\t%dx%d at (%d,%d)\n", r.Bounds.Width, r.Bounds.Height, r.Bounds.X, r.Bounds.Y)
	fmt.Fprintf(tw, "requisition:\t%dx%d\n", r.Requisition.Width, r.Requisition.Height)
	for _, side := range []string{"top", "bottom", "left", "right"} {
		o := r.Overshoot[side]
		state := "fits"
		if o > 0 {
			state = fmt.Sprintf("overshoots by %d", o)
		}
		fmt.Fprintf(tw, "  %s:\t%d\t(%s)\n", side, o, state)
	}
	if r.Tail != nil {
		fmt.Fprintf(tw, "tail:\t(%d,%d) (%d,%d) (%d,%d)\n",
			r.Tail.BaseA.X, r.Tail.BaseA.Y, r.Tail.Tip.X, r.Tail.Tip.Y, r.Tail.BaseB.X, r.Tail.BaseB.Y)
	}
	return tw.Flush()
}

func (plainFormatter) FormatTail(w io.Writer, r *Tail) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "side:\t%s\n", r.Side)
	fmt.Fprintf(tw, "size:\t%dx%d\n", r.Size.Width, r.Size.Height)
	fmt.Fprintf(tw, "base a:\t(%d,%d)\n", r.Tail.BaseA.X, r.Tail.BaseA.Y)
	fmt.Fprintf(tw, "tip:\t(%d,%d)\n", r.Tail.Tip.X, r.Tail.Tip.Y)
	fmt.Fprintf(tw, "base b:\t(%d,%d)\n", r.Tail.BaseB.X, r.Tail.BaseB.Y)
	fmt.Fprintf(tw, "content:\t%dx%d at (%d,%d)\n", r.Content.Width, r.Content.Height, r.Content.X, r.Content.Y)
	return tw.Flush()
}
