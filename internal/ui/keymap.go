package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/tunetable/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action ties a configurable name to the message its keys produce.
type Action struct {
	Name    string
	Binding key.Binding
	Msg     Message
}

// KeyMap maps key chords to messages in Running mode. The first action
// whose binding matches wins.
type KeyMap struct {
	actions []Action
}

// UnknownMessageError reports a keybinding for a message name that does not
// exist.
type UnknownMessageError struct {
	Name string
}

func (e *UnknownMessageError) Error() string {
	return fmt.Sprintf("unknown message %q in keybindings", e.Name)
}

// Layout selects a preset of navigation keys.
type Layout int

const (
	LayoutEmacs Layout = iota
	LayoutQwerty
	LayoutDvorak
)

func bind(name string, msg Message, help string, keys ...string) Action {
	return Action{
		Name:    name,
		Msg:     msg,
		Binding: key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), help)),
	}
}

// DefaultKeyMap returns the arrow and emacs style bindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{actions: []Action{
		bind("up", MoveVertical{Dir: state.Up}, "up", "up", "ctrl+p"),
		bind("down", MoveVertical{Dir: state.Down}, "down", "down", "ctrl+n"),
		bind("top", MoveVertical{Dir: state.Top}, "first row", "home"),
		bind("bottom", MoveVertical{Dir: state.Bottom}, "last row", "end"),
		bind("left", MoveHorizontal{Dir: Left}, "left", "left", "ctrl+b"),
		bind("right", MoveHorizontal{Dir: Right}, "right", "right", "ctrl+f"),
		bind("toggle_panel", TogglePanel{}, "switch panel", "shift+tab"),
		bind("select", Select{}, "select", "enter"),
		bind("delete", Delete{}, "delete", "delete", "backspace"),
		bind("screenful_up", ScrollScreenful{Dir: state.Up}, "page up", "pgup", "alt+v"),
		bind("screenful_down", ScrollScreenful{Dir: state.Down}, "page down", "pgdown", "ctrl+v"),
		bind("local_search", LocalSearch{Phase: SearchStart}, "search", "/"),
		bind("global_search", GlobalSearch{Phase: SearchStart}, "search library", "ctrl+s"),
		bind("escape", Escape{}, "close search", "esc"),
		bind("toggle_screen", ToggleScreen{}, "switch screen", "tab"),
		bind("toggle_playpause", PlayPause{}, "play/pause", "p", " "),
		bind("next_song", NextSong{}, "next song", ">"),
		bind("previous_song", PreviousSong{}, "previous song", "<"),
		bind("seek", Seek{Forward: true}, "seek forward", "]"),
		bind("seek_backwards", Seek{}, "seek backwards", "["),
		bind("clear_queue", ClearQueue{}, "clear queue", "C"),
		bind("quit", Quit{}, "quit", "q", "ctrl+c"),
	}}
}

var layoutKeys = map[Layout]map[string][]string{
	LayoutQwerty: {
		"up":     {"up", "k"},
		"down":   {"down", "j"},
		"left":   {"left", "h"},
		"right":  {"right", "l"},
		"top":    {"home", "g"},
		"bottom": {"end", "G"},
	},
	LayoutDvorak: {
		"up":     {"up", "t"},
		"down":   {"down", "h"},
		"left":   {"left", "d"},
		"right":  {"right", "n"},
		"top":    {"home", "g"},
		"bottom": {"end", "G"},
	},
}

// NewKeyMap builds the default bindings, applies a layout preset and then
// the user's overrides. Overrides replace an action's keys and take those
// keys away from every other action.
func NewKeyMap(layout Layout, overrides map[string][]string) (*KeyMap, error) {
	km := DefaultKeyMap()
	for name, keys := range layoutKeys[layout] {
		if err := km.rebind(name, keys); err != nil {
			return nil, err
		}
	}
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := km.rebind(name, overrides[name]); err != nil {
			return nil, err
		}
	}
	return km, nil
}

func (km *KeyMap) rebind(name string, keys []string) error {
	idx := -1
	for i, a := range km.actions {
		if a.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &UnknownMessageError{Name: name}
	}
	taken := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		taken[k] = struct{}{}
	}
	for i := range km.actions {
		if i == idx {
			continue
		}
		kept := make([]string, 0, len(km.actions[i].Binding.Keys()))
		for _, k := range km.actions[i].Binding.Keys() {
			if _, ok := taken[k]; !ok {
				kept = append(kept, k)
			}
		}
		km.actions[i].Binding.SetKeys(kept...)
	}
	km.actions[idx].Binding.SetKeys(keys...)
	km.actions[idx].Binding.SetHelp(strings.Join(keys, "/"), km.actions[idx].Binding.Help().Desc)
	return nil
}

// Resolve returns the message bound to msg.
func (km *KeyMap) Resolve(msg tea.KeyMsg) (Message, bool) {
	for _, a := range km.actions {
		if key.Matches(msg, a.Binding) {
			return a.Msg, true
		}
	}
	return nil, false
}

// Keys returns the chords bound to the named action.
func (km *KeyMap) Keys(name string) []string {
	for _, a := range km.actions {
		if a.Name == name {
			return a.Binding.Keys()
		}
	}
	return nil
}

// Actions lists every binding in resolution order.
func (km *KeyMap) Actions() []Action {
	return km.actions
}
