package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bubbletip/internal/geometry"
	"github.com/jmylchreest/bubbletip/internal/report"
)

var tailFlags struct {
	side   string
	size   string
	anchor string
	format string
}

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Compute tail geometry for a committed layout",
	Long: `Derives the tail polyline (base, tip, base) for a bubble of the given
size facing an anchor, with the corner clamping applied, plus the content
box left inside the allocation.`,
	RunE: runTail,
}

func init() {
	f := tailCmd.Flags()
	f.StringVar(&tailFlags.side, "side", "top", "effective side the bubble sits on")
	f.StringVar(&tailFlags.size, "size", "200x100", "bubble allocation (WxH)")
	f.StringVar(&tailFlags.anchor, "anchor", "", "anchor rect in bubble coordinates (x,y,w,h)")
	f.StringVar(&tailFlags.format, "format", "plain", "output format (plain, json, yaml)")
	_ = tailCmd.MarkFlagRequired("anchor")
	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	side, err := geometry.ParseSide(tailFlags.side)
	if err != nil {
		return err
	}
	size, err := parseSize(tailFlags.size)
	if err != nil {
		return err
	}
	anchor, err := parseRect(tailFlags.anchor)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(tailFlags.format)
	if err != nil {
		return err
	}

	metrics := geometry.TailMetrics{Height: cfg.Tail.Height, Gap: cfg.Tail.Gap}
	tail := geometry.ComputeTail(geometry.TailInput{
		Side:         side,
		Size:         size,
		Anchor:       anchor,
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
	return formatter.FormatTail(os.Stdout, &report.Tail{
		Side:    side.String(),
		Size:    size,
		Tail:    tail,
		Content: geometry.ContentRect(side, size, metrics),
	})
}
