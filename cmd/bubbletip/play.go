package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/bubbletip/internal/config"
	"github.com/jmylchreest/bubbletip/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive playground on a simulated host window",
	Long: `Opens a terminal playground: the canvas is the host window, the anchor
widget moves with the arrow keys and the bubble pops against it with live
transitions. Config file changes are picked up while running.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()

	p := tea.NewProgram(tui.NewModel(cfg, logger), tea.WithAltScreen())

	watcher, err := config.NewWatcher(flagConfig, logger)
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	watcher.SetReloadCallback(func(newConfig *config.Config) {
		p.Send(tui.ConfigReloaded{Config: newConfig})
	})
	watcher.SetErrorCallback(func(err error) {
		logger.Warn("ignoring invalid config change", "error", err)
	})
	if err := watcher.Start(); err != nil {
		logger.Warn("config watching disabled", "error", err)
	}
	defer func() { _ = watcher.Stop() }()

	_, err = p.Run()
	return err
}
