package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bubbletip/internal/geometry"
	"github.com/jmylchreest/bubbletip/internal/report"
)

var placeFlags struct {
	anchor     string
	host       string
	size       string
	prefer     string
	direction  string
	constraint string
	shadow     string
	offset     int
	format     string
}

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Compute a single bubble placement",
	Long: `Runs one placement pass: pads the content requisition with the tail
metrics, selects a side against the host window and reports the positioned
bounds, per-side overshoot and tail geometry.`,
	RunE: runPlace,
}

func init() {
	f := placeCmd.Flags()
	f.StringVar(&placeFlags.anchor, "anchor", "", "anchor rect in host coordinates (x,y,w,h)")
	f.StringVar(&placeFlags.host, "host", "800x600", "host window size (WxH)")
	f.StringVar(&placeFlags.size, "size", "100x50", "content requisition before padding (WxH)")
	f.StringVar(&placeFlags.prefer, "prefer", "top", "preferred side (top, bottom, left, right)")
	f.StringVar(&placeFlags.direction, "direction", "ltr", "text direction (ltr, rtl)")
	f.StringVar(&placeFlags.constraint, "constraint", "window", "constraint mode (window, none)")
	f.StringVar(&placeFlags.shadow, "shadow", "", "host shadow insets (t,r,b,l or one value)")
	f.IntVar(&placeFlags.offset, "offset", 0, "transition displacement in pixels")
	f.StringVar(&placeFlags.format, "format", "plain", "output format (plain, json, yaml)")
	_ = placeCmd.MarkFlagRequired("anchor")
	rootCmd.AddCommand(placeCmd)
}

func runPlace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	anchor, err := parseRect(placeFlags.anchor)
	if err != nil {
		return err
	}
	hostSize, err := parseSize(placeFlags.host)
	if err != nil {
		return err
	}
	content, err := parseSize(placeFlags.size)
	if err != nil {
		return err
	}
	prefer, err := geometry.ParseSide(placeFlags.prefer)
	if err != nil {
		return err
	}
	dir, err := parseDirection(placeFlags.direction)
	if err != nil {
		return err
	}
	constraint, err := geometry.ParseConstraintMode(placeFlags.constraint)
	if err != nil {
		return err
	}
	shadow, err := parseInsets(placeFlags.shadow)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(placeFlags.format)
	if err != nil {
		return err
	}

	metrics := geometry.TailMetrics{Height: cfg.Tail.Height, Gap: cfg.Tail.Gap}
	in := geometry.PlacementInput{
		Anchor:     anchor,
		Host:       geometry.Rect{Width: hostSize.Width, Height: hostSize.Height},
		Shadow:     shadow,
		Preferred:  prefer,
		Constraint: constraint,
		Requisition: geometry.PadRequisition(
			content, prefer.Effective(dir), cfg.Style.BorderRadius, metrics,
		),
		Direction:        dir,
		FreePlacement:    constraint == geometry.ConstrainNone,
		TransitionOffset: placeFlags.offset,
	}
	placement := geometry.ComputePlacement(in)

	effective := placement.Side.Effective(dir)
	tail := geometry.ComputeTail(geometry.TailInput{
		Side: effective,
		Size: geometry.Size{Width: placement.Bounds.Width, Height: placement.Bounds.Height},
		Anchor: geometry.Rect{
			X:      anchor.X - placement.Bounds.X,
			Y:      anchor.Y - placement.Bounds.Y,
			Width:  anchor.Width,
			Height: anchor.Height,
		},
		BorderRadius: cfg.Style.BorderRadius,
		Border: geometry.Insets{
			Top: cfg.Style.BorderWidth, Right: cfg.Style.BorderWidth,
			Bottom: cfg.Style.BorderWidth, Left: cfg.Style.BorderWidth,
		},
		Metrics: metrics,
	})

	formatter, err := report.NewFormatter(format)
	if err != nil {
		return err
	}
	return formatter.FormatPlacement(os.Stdout, report.NewPlacement(in, placement, &tail))
}
