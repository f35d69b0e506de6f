package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles describes the Lip Gloss styles shared across the UI.
type Styles struct {
	Header        *lipgloss.Style
	HeaderLabel   *lipgloss.Style
	Item          *lipgloss.Style
	SelectedItem  *lipgloss.Style
	InactiveItem  *lipgloss.Style
	Playing       *lipgloss.Style
	AlbumHeader   *lipgloss.Style
	Highlight     *lipgloss.Style
	Border        *lipgloss.Style
	FocusedBorder *lipgloss.Style
	SearchPrompt  *lipgloss.Style
	SearchQuery   *lipgloss.Style
	Cursor        *lipgloss.Style
	Progress      *lipgloss.Style
	Error         *lipgloss.Style
}

// Override is one [theme] entry of the config file.
type Override struct {
	Fg          string   `toml:"fg"`
	Bg          string   `toml:"bg"`
	AddModifier []string `toml:"add_modifier"`
	SubModifier []string `toml:"sub_modifier"`
}

// UnknownOptionError reports a theme key or modifier that does not exist.
type UnknownOptionError struct {
	Option string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown theme option %q", e.Option)
}

// Default returns a fresh copy of the standard style set.
func Default() *Styles {
	return &Styles{
		Header:        ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
		HeaderLabel:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)),
		Item:          ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("249"))),
		SelectedItem:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true)),
		InactiveItem:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236"))),
		Playing:       ptr(lipgloss.NewStyle().Bold(true).Italic(true)),
		AlbumHeader:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)),
		Highlight:     ptr(lipgloss.NewStyle().Underline(true)),
		Border:        ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))),
		FocusedBorder: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("33"))),
		SearchPrompt:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)),
		SearchQuery:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("255"))),
		Cursor:        ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33"))),
		Progress:      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("33"))),
		Error:         ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)),
	}
}

// ProgressColor is the fill colour of the playback gauge.
func (s *Styles) ProgressColor() string {
	if s.Progress == nil {
		return "33"
	}
	if c, ok := s.Progress.GetForeground().(lipgloss.Color); ok && c != "" {
		return string(c)
	}
	return "33"
}

func (s *Styles) byName() map[string]**lipgloss.Style {
	return map[string]**lipgloss.Style{
		"header":         &s.Header,
		"header_label":   &s.HeaderLabel,
		"item":           &s.Item,
		"selected_item":  &s.SelectedItem,
		"inactive_item":  &s.InactiveItem,
		"playing":        &s.Playing,
		"album_header":   &s.AlbumHeader,
		"highlight":      &s.Highlight,
		"border":         &s.Border,
		"focused_border": &s.FocusedBorder,
		"search_prompt":  &s.SearchPrompt,
		"search_query":   &s.SearchQuery,
		"cursor":         &s.Cursor,
		"progress":       &s.Progress,
		"error":          &s.Error,
	}
}

// Names lists the configurable style keys.
func Names() []string {
	names := make([]string, 0, 16)
	for name := range Default().byName() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns a copy of base with overrides layered on top.
func Apply(base *Styles, overrides map[string]Override) (*Styles, error) {
	out := Default()
	if base != nil {
		copied := *base
		out = &copied
	}
	slots := out.byName()
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		slot, ok := slots[strings.ToLower(name)]
		if !ok {
			return nil, &UnknownOptionError{Option: name}
		}
		style := lipgloss.NewStyle()
		if *slot != nil {
			style = **slot
		}
		style, err := overrides[name].apply(style)
		if err != nil {
			return nil, err
		}
		*slot = ptr(style)
	}
	return out, nil
}

func (o Override) apply(style lipgloss.Style) (lipgloss.Style, error) {
	if o.Fg != "" {
		style = style.Foreground(lipgloss.Color(o.Fg))
	}
	if o.Bg != "" {
		style = style.Background(lipgloss.Color(o.Bg))
	}
	for _, mod := range o.AddModifier {
		next, err := modify(style, mod, true)
		if err != nil {
			return style, err
		}
		style = next
	}
	for _, mod := range o.SubModifier {
		next, err := modify(style, mod, false)
		if err != nil {
			return style, err
		}
		style = next
	}
	return style, nil
}

func modify(style lipgloss.Style, mod string, on bool) (lipgloss.Style, error) {
	switch strings.ToLower(mod) {
	case "bold":
		return style.Bold(on), nil
	case "italic":
		return style.Italic(on), nil
	case "underline", "underlined":
		return style.Underline(on), nil
	case "reverse", "reversed":
		return style.Reverse(on), nil
	case "faint", "dim":
		return style.Faint(on), nil
	case "blink":
		return style.Blink(on), nil
	case "strikethrough", "crossed_out":
		return style.Strikethrough(on), nil
	}
	return style, &UnknownOptionError{Option: mod}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
