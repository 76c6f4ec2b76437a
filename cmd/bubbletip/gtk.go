package main

import (
	"fmt"
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/bubbletip/internal/bubble"
	"github.com/jmylchreest/bubbletip/internal/config"
	"github.com/jmylchreest/bubbletip/internal/geometry"
	"github.com/jmylchreest/bubbletip/internal/gtkhost"
	"github.com/jmylchreest/bubbletip/internal/host"
)

const gtkAppID = "io.github.jmylchreest.bubbletip"

var gtkFlags struct {
	prefer string
	modal  bool
}

var gtkCmd = &cobra.Command{
	Use:   "gtk",
	Short: "GTK4 demo window driving the engine through the gtkhost adapter",
	Long: `Opens a GTK4 window with a button anchor and a bubble attached to it
through the gtkhost adapter. Clicking the button pops the bubble up and
down, Escape dismisses it, and window resizes re-run placement.`,
	RunE: runGTK,
}

func init() {
	f := gtkCmd.Flags()
	f.StringVar(&gtkFlags.prefer, "prefer", "top", "preferred side (top, bottom, left, right)")
	f.BoolVar(&gtkFlags.modal, "modal", true, "grab input and focus while shown")
	rootCmd.AddCommand(gtkCmd)
}

func runGTK(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	prefer, err := geometry.ParseSide(gtkFlags.prefer)
	if err != nil {
		return err
	}

	app := gtk.NewApplication(gtkAppID, 0)
	app.ConnectActivate(func() {
		buildDemoWindow(app, cfg, prefer)
	})
	if status := app.Run(nil); status != 0 {
		return fmt.Errorf("gtk application exited with status %d", status)
	}
	return nil
}

// buildDemoWindow assembles the demo: an application window whose child is
// a gtk.Overlay carrying the content plus the gtk.Fixed bubble layer, a
// button as the anchor widget, and one bubble wired through the adapter.
func buildDemoWindow(app *gtk.Application, cfg *config.Config, prefer geometry.Side) {
	logger := slog.Default()

	window := gtk.NewWindow()
	window.SetApplication(app)
	window.SetTitle("bubbletip")
	window.SetDefaultSize(480, 320)

	anchor := gtk.NewButtonWithLabel("Pop bubble")
	content := gtk.NewBox(gtk.OrientationVertical, 12)
	content.SetHAlign(gtk.AlignCenter)
	content.SetVAlign(gtk.AlignCenter)
	content.Append(anchor)

	layer := gtk.NewFixed()
	overlay := gtk.NewOverlay()
	overlay.SetChild(content)
	overlay.AddOverlay(layer)
	window.SetChild(overlay)

	hostWin := gtkhost.NewWindow(window, layer)

	reg := bubble.NewRegistry()
	styler := host.StaticStyler{
		BorderRadius: cfg.Style.BorderRadius,
		Border: geometry.Insets{
			Top: cfg.Style.BorderWidth, Right: cfg.Style.BorderWidth,
			Bottom: cfg.Style.BorderWidth, Left: cfg.Style.BorderWidth,
		},
	}
	b := bubble.New(reg, styler, cfg, logger)
	if err := b.SetPreferredSide(prefer); err != nil {
		logger.Warn("ignoring preferred side", "error", err)
	}
	b.SetModal(gtkFlags.modal)
	b.AttachTo(gtkhost.WrapWidget(anchor, hostWin))

	surface, ok := b.Overlay().(*gtkhost.Overlay)
	if !ok {
		logger.Error("no overlay surface, is the anchor rooted in the window?")
		return
	}
	label := gtk.NewLabel("Anchored to the button")
	label.SetMarginStart(12)
	label.SetMarginEnd(12)
	label.SetMarginTop(8)
	label.SetMarginBottom(8)
	surface.Box().Append(label)
	surface.SetContentSize(geometry.Size{Width: 180, Height: 48})

	anchor.ConnectClicked(func() {
		switch b.VisibilityState() {
		case bubble.StateShowing, bubble.StateShown:
			b.Popdown()
		default:
			b.Popup()
		}
	})

	keys := gtk.NewEventControllerKey()
	keys.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		if keyval == gdk.KEY_Escape {
			return b.HandleKey(bubble.KeyEscape)
		}
		return false
	})
	window.AddController(keys)

	window.SetVisible(true)
}
