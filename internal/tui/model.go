// Package tui is an interactive playground for the bubble engine: a
// terminal canvas acts as the host window (one cell per pixel), an anchor
// widget is moved around with the keyboard, and the engine's placement,
// transitions and dismissal behavior are rendered live.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/bubbletip/internal/bubble"
	"github.com/jmylchreest/bubbletip/internal/config"
	"github.com/jmylchreest/bubbletip/internal/geometry"
	"github.com/jmylchreest/bubbletip/internal/host"
	"github.com/jmylchreest/bubbletip/internal/sim"
)

const frameInterval = 16 * time.Millisecond

type frameMsg time.Time

// ConfigReloaded is sent into the program when the config file changes on
// disk.
type ConfigReloaded struct {
	Config *config.Config
}

// Model is the playground's bubbletea model.
type Model struct {
	logger *slog.Logger
	cfg    *config.Config

	arena   *sim.Arena
	win     *sim.Window
	anchor  *sim.Widget
	reg     *bubble.Registry
	bub     *bubble.Bubble
	overlay *sim.Overlay

	keys   keyMap
	help   help.Model
	width  int
	height int
	status string
}

// playgroundConfig rescales the pixel-sized defaults to terminal cells.
func playgroundConfig(cfg *config.Config) *config.Config {
	scaled := *cfg
	scaled.Tail.Height = 1
	scaled.Tail.Gap = 2
	scaled.Motion.Offset = 3
	scaled.Style.BorderRadius = 1
	scaled.Style.BorderWidth = 0
	return &scaled
}

// NewModel builds the playground around a fresh simulated arena.
func NewModel(cfg *config.Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	scaled := playgroundConfig(cfg)

	arena := sim.NewArena()
	reg := bubble.NewRegistry()
	arena.OnDestroy = reg.DetachAll

	win := arena.NewWindow(geometry.Rect{Width: 76, Height: 20})
	win.SetAnimationsEnabled(scaled.Motion.Animations)
	anchor := arena.NewWidget(win.RootWidget(), geometry.Rect{X: 36, Y: 10, Width: 3, Height: 1})

	styler := host.StaticStyler{BorderRadius: scaled.Style.BorderRadius}
	b := bubble.New(reg, styler, scaled, logger)
	b.AttachTo(anchor)
	overlay := b.Overlay().(*sim.Overlay)
	overlay.SetContentSize(geometry.Size{Width: 16, Height: 3})

	return Model{
		logger:  logger,
		cfg:     scaled,
		arena:   arena,
		win:     win,
		anchor:  anchor,
		reg:     reg,
		bub:     b,
		overlay: overlay,
		keys:    defaultKeyMap(),
		help:    help.New(),
		status:  "space pops the bubble",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.win.Clock().Advance(frameInterval)
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w := msg.Width - 2
		h := msg.Height - 6
		if w < 20 {
			w = 20
		}
		if h < 8 {
			h = 8
		}
		m.win.SetBounds(geometry.Rect{Width: w, Height: h})
		m.clampAnchor()
		return m, nil

	case ConfigReloaded:
		m.cfg = playgroundConfig(msg.Config)
		m.win.SetAnimationsEnabled(m.cfg.Motion.Animations)
		m.bub.UpdateConfig(m.cfg)
		m.status = "config reloaded"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Toggle):
		switch m.bub.VisibilityState() {
		case bubble.StateShown, bubble.StateShowing:
			m.bub.Popdown()
			m.status = "popdown"
		default:
			m.bub.Popup()
			m.status = "popup"
		}

	case key.Matches(msg, k.Escape):
		if m.bub.HandleKey(bubble.KeyEscape) {
			m.status = "dismissed"
		}

	case key.Matches(msg, k.Up):
		m.moveAnchor(0, -1)
	case key.Matches(msg, k.Down):
		m.moveAnchor(0, 1)
	case key.Matches(msg, k.Left):
		m.moveAnchor(-1, 0)
	case key.Matches(msg, k.Right):
		m.moveAnchor(1, 0)

	case key.Matches(msg, k.SideTop):
		m.setSide(geometry.SideTop)
	case key.Matches(msg, k.SideBottom):
		m.setSide(geometry.SideBottom)
	case key.Matches(msg, k.SideLeft):
		m.setSide(geometry.SideLeft)
	case key.Matches(msg, k.SideRight):
		m.setSide(geometry.SideRight)

	case key.Matches(msg, k.Modal):
		m.bub.SetModal(!m.bub.Modal())
		m.status = "modal " + onOff(m.bub.Modal())

	case key.Matches(msg, k.Animations):
		m.win.SetAnimationsEnabled(!m.win.AnimationsEnabled())
		m.status = "animations " + onOff(m.win.AnimationsEnabled())

	case key.Matches(msg, k.Direction):
		if m.win.TextDirection() == geometry.DirectionLTR {
			m.win.SetTextDirection(geometry.DirectionRTL)
			m.status = "direction rtl"
		} else {
			m.win.SetTextDirection(geometry.DirectionLTR)
			m.status = "direction ltr"
		}
		m.bub.NotifyHostResized()

	case key.Matches(msg, k.Constraint):
		if m.bub.ConstraintMode() == geometry.ConstrainToHostWindow {
			m.win.SetFreePlacement(true)
			_ = m.bub.SetConstraintMode(geometry.ConstrainNone)
			m.status = "constraint none"
		} else {
			m.win.SetFreePlacement(false)
			_ = m.bub.SetConstraintMode(geometry.ConstrainToHostWindow)
			m.status = "constraint window"
		}

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) setSide(s geometry.Side) {
	if err := m.bub.SetPreferredSide(s); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "prefer " + s.String()
}

func (m *Model) moveAnchor(dx, dy int) {
	r := m.anchor.Bounds()
	r.X += dx
	r.Y += dy
	m.anchor.SetBounds(r)
	m.clampAnchor()
}

func (m *Model) clampAnchor() {
	r := m.anchor.Bounds()
	win := m.win.Bounds()
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.Right() > win.Width {
		r.X = win.Width - r.Width
	}
	if r.Bottom() > win.Height {
		r.Y = win.Height - r.Height
	}
	m.anchor.SetBounds(r)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
