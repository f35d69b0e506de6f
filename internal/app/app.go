package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/tunetable/internal/backend"
	"github.com/atomicstack/tunetable/internal/logging/events"
	"github.com/atomicstack/tunetable/internal/match"
	"github.com/atomicstack/tunetable/internal/mpd"
	"github.com/atomicstack/tunetable/internal/theme"
	"github.com/atomicstack/tunetable/internal/ui"
	"github.com/atomicstack/tunetable/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Address       string
	SeekStep      time.Duration
	Screens       []string
	Matcher       string
	PreferPrefix  bool
	ScrollOverlap int
	TickInterval  time.Duration
	PollInterval  time.Duration
	Layout        ui.Layout
	Keybindings   map[string][]string
	Theme         map[string]theme.Override
}

// Prepared holds everything built from Config that does not need a server.
type Prepared struct {
	Matcher state.Matcher
	Keys    *ui.KeyMap
	Styles  *theme.Styles
	Screens []ui.Screen
}

// Prepare validates cfg and builds the matcher, key map, styles and screen
// cycle.
func Prepare(cfg Config) (Prepared, error) {
	var p Prepared
	matcher, err := match.New(cfg.Matcher, cfg.PreferPrefix)
	if err != nil {
		return p, err
	}
	keys, err := ui.NewKeyMap(cfg.Layout, cfg.Keybindings)
	if err != nil {
		return p, err
	}
	styles, err := theme.Apply(theme.Default(), cfg.Theme)
	if err != nil {
		return p, err
	}
	screens := make([]ui.Screen, 0, len(cfg.Screens))
	for _, name := range cfg.Screens {
		s, ok := ui.ParseScreen(name)
		if !ok {
			return p, fmt.Errorf("unknown screen %q", name)
		}
		screens = append(screens, s)
	}
	p.Matcher = matcher
	p.Keys = keys
	p.Styles = styles
	p.Screens = screens
	return p, nil
}

// Run connects to MPD and executes the Bubble Tea program.
func Run(cfg Config) error {
	prepared, err := Prepare(cfg)
	if err != nil {
		return err
	}
	addr, err := mpd.ResolveAddress(cfg.Address)
	if err != nil {
		return fmt.Errorf("resolve mpd address: %w", err)
	}
	client, err := mpd.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()
	snap, err := client.Snapshot()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	events.App.Connected(addr.String(), len(snap.Library), len(snap.Queue))

	ticker := backend.NewTicker(cfg.PollInterval, cfg.TickInterval)
	defer ticker.Stop()
	model := ui.NewModel(ui.Options{
		Playback:      client,
		Matcher:       prepared.Matcher,
		Snapshot:      snap,
		Screens:       prepared.Screens,
		Keys:          prepared.Keys,
		Styles:        prepared.Styles,
		SeekStep:      cfg.SeekStep,
		ScrollOverlap: cfg.ScrollOverlap,
		Ticker:        ticker,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	events.App.Exit(err)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
