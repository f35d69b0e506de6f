package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tunetable/internal/ui/state"
)

// Message is an intent produced from a key press or the idle ticker and
// consumed by Apply.
type Message interface {
	message()
}

// Horizontal is a sideways navigation step.
type Horizontal int

const (
	Left Horizontal = iota
	Right
)

// SearchPhase distinguishes opening a search from leaving its input mode.
type SearchPhase int

const (
	SearchStart SearchPhase = iota
	SearchEnd
)

type (
	ToggleScreen    struct{}
	MoveVertical    struct{ Dir state.Direction }
	MoveHorizontal  struct{ Dir Horizontal }
	ScrollScreenful struct{ Dir state.Direction }
	Select          struct{}
	Delete          struct{}
	LocalSearch     struct{ Phase SearchPhase }
	GlobalSearch    struct{ Phase SearchPhase }
	Escape          struct{}
	TogglePanel     struct{}
	PlayPause       struct{}
	NextSong        struct{}
	PreviousSong    struct{}
	Seek            struct{ Forward bool }
	ClearQueue      struct{}
	Tick            struct{}
	Quit            struct{}
)

func (ToggleScreen) message()    {}
func (MoveVertical) message()    {}
func (MoveHorizontal) message()  {}
func (ScrollScreenful) message() {}
func (Select) message()          {}
func (Delete) message()          {}
func (LocalSearch) message()     {}
func (GlobalSearch) message()    {}
func (Escape) message()          {}
func (TogglePanel) message()     {}
func (PlayPause) message()       {}
func (NextSong) message()        {}
func (PreviousSong) message()    {}
func (Seek) message()            {}
func (ClearQueue) message()      {}
func (Tick) message()            {}
func (Quit) message()            {}

// Dirty names the regions whose backing data a message touched. It may
// over-report but never under-report.
type Dirty uint8

const (
	DirtyStatus Dirty = 1 << iota
	DirtyQueue
	DirtyCurrentSong
	DirtyLibrary
)

// Has reports whether every flag in f is set.
func (d Dirty) Has(f Dirty) bool {
	return d&f == f
}

func (d Dirty) String() string {
	if d == 0 {
		return "none"
	}
	names := make([]string, 0, 4)
	for _, f := range []struct {
		flag Dirty
		name string
	}{
		{DirtyStatus, "status"},
		{DirtyQueue, "queue"},
		{DirtyCurrentSong, "current-song"},
		{DirtyLibrary, "library"},
	} {
		if d.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "|")
}

// PlaybackError reports a failed call to the MPD server. Local changes made
// by the same message are kept.
type PlaybackError struct {
	Op  string
	Err error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}

func playbackErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PlaybackError{Op: op, Err: err}
}

func messageName(msg Message) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", msg), "ui.")
}
