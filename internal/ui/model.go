package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/atomicstack/tunetable/internal/backend"
	"github.com/atomicstack/tunetable/internal/library"
	"github.com/atomicstack/tunetable/internal/mpd"
	"github.com/atomicstack/tunetable/internal/theme"
	"github.com/atomicstack/tunetable/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is a top-level view.
type Screen int

const (
	ScreenLibrary Screen = iota
	ScreenQueue
)

func (s Screen) String() string {
	if s == ScreenQueue {
		return "queue"
	}
	return "library"
}

// ParseScreen maps a configured screen name.
func ParseScreen(name string) (Screen, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "library":
		return ScreenLibrary, true
	case "queue":
		return ScreenQueue, true
	default:
		return 0, false
	}
}

// Mode is the input state machine.
type Mode int

const (
	ModeRunning Mode = iota
	ModeSearching
)

func (m Mode) String() string {
	if m == ModeSearching {
		return "searching"
	}
	return "running"
}

// Panel is the focused library column.
type Panel int

const (
	PanelArtists Panel = iota
	PanelTracks
)

// Playback is the subset of the MPD connection the UI drives.
type Playback interface {
	SwitchTo(pos int) error
	Swap(a, b int) error
	DeleteAt(pos int) error
	Add(uri string) error
	Clear() error
	TogglePause(current mpd.PlayState) error
	Next() error
	Previous() error
	SeekTo(pos int, offset time.Duration) error
	Status() (mpd.Status, error)
	CurrentSong() (*mpd.QueueItem, error)
	Queue() ([]mpd.QueueItem, error)
}

type artistNode struct {
	library.Artist
	tracks *state.TrackList
}

type libraryState struct {
	artists *state.FilteredList[*artistNode]
	focus   Panel
	global  *state.FilteredList[library.Entry]
}

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Playback      Playback
	Matcher       state.Matcher
	Snapshot      mpd.Snapshot
	Screens       []Screen
	Keys          *KeyMap
	Styles        *theme.Styles
	SeekStep      time.Duration
	// ScrollOverlap is kept as given, zero included. Negative values select
	// state.DefaultScrollOverlap.
	ScrollOverlap int
	Ticker        *backend.Ticker
	Width         int
	Height        int
}

// Model owns all client state. It is mutated only from the Bubble Tea
// update goroutine.
type Model struct {
	screen  Screen
	screens []Screen
	mode    Mode

	lib    libraryState
	queue  *state.FilteredList[mpd.QueueItem]
	status mpd.Status
	// current is the song MPD reports as current, nil when stopped.
	current *mpd.QueueItem

	width  int
	height int

	playback      Playback
	matcher       state.Matcher
	keys          *KeyMap
	styles        *theme.Styles
	seekStep      time.Duration
	scrollOverlap int
	ticker        *backend.Ticker

	errMsg   string
	quitting bool

	searchCursor cursor.Model
	progress     progress.Model
	cache        renderCache

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the model from a startup snapshot.
func NewModel(opts Options) *Model {
	screens := opts.Screens
	if len(screens) == 0 {
		screens = []Screen{ScreenLibrary, ScreenQueue}
	}
	keys := opts.Keys
	if keys == nil {
		keys = DefaultKeyMap()
	}
	styles := opts.Styles
	if styles == nil {
		styles = theme.Default()
	}
	seek := opts.SeekStep
	if seek <= 0 {
		seek = 5 * time.Second
	}
	overlap := opts.ScrollOverlap
	if overlap < 0 {
		overlap = state.DefaultScrollOverlap
	}
	m := &Model{
		screen:        screens[0],
		screens:       screens,
		playback:      opts.Playback,
		matcher:       opts.Matcher,
		keys:          keys,
		styles:        styles,
		seekStep:      seek,
		scrollOverlap: overlap,
		ticker:        opts.Ticker,
		width:         opts.Width,
		height:        opts.Height,
		status:        opts.Snapshot.Status,
		current:       opts.Snapshot.Current,
	}
	m.setLibrary(opts.Snapshot.Library)
	m.queue = state.NewFilteredList(opts.Snapshot.Queue, queueItemString, m.matcher)

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	c.SetChar(" ")
	m.searchCursor = c
	m.progress = progress.New(progress.WithoutPercentage(), progress.WithSolidFill(styles.ProgressColor()))
	m.cache.invalidate(DirtyStatus | DirtyQueue | DirtyCurrentSong | DirtyLibrary)
	m.registerHandlers()
	return m
}

func (m *Model) setLibrary(songs []mpd.Song) {
	artists := library.Group(songs)
	nodes := make([]*artistNode, len(artists))
	for i, a := range artists {
		nodes[i] = &artistNode{Artist: a, tracks: state.NewTrackList(a.Entries)}
	}
	m.lib.artists = state.NewFilteredList(nodes, func(n *artistNode) string { return n.SearchString() }, m.matcher)
	m.lib.global = state.NewFilteredList(library.Flatten(artists), func(e library.Entry) string { return e.SearchString() }, m.matcher)
	m.lib.focus = PanelArtists
}

func queueItemString(item mpd.QueueItem) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{item.Title, item.Artist, item.Album} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return item.File
	}
	return strings.Join(parts, " ")
}

// Screen reports the active screen.
func (m *Model) Screen() Screen { return m.screen }

// Mode reports the input mode.
func (m *Model) Mode() Mode { return m.mode }

// Err returns the last surfaced error message.
func (m *Model) Err() string { return m.errMsg }

func (m *Model) selectedArtist() *artistNode {
	node, ok := m.lib.artists.SelectedItem()
	if !ok {
		return nil
	}
	return node
}

func (m *Model) selectedTracks() *state.TrackList {
	if a := m.selectedArtist(); a != nil {
		return a.tracks
	}
	return nil
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.ticker != nil {
		cmds = append(cmds, waitForTick(m.ticker))
	}
	if cmd := m.searchCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	var cmd tea.Cmd
	m.searchCursor, cmd = m.searchCursor.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(tickerDoneMsg{}):     m.handleTickerDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.quitting {
		return tea.Quit
	}
	m.syncViewports()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = size.Width
	m.height = size.Height
	m.cache.invalidate(DirtyStatus | DirtyQueue | DirtyCurrentSong | DirtyLibrary)
	return nil
}
