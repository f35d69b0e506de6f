package mpd

import "time"

// PlayState mirrors the MPD player state.
type PlayState int

const (
	StateStopped PlayState = iota
	StatePlaying
	StatePaused
)

func (s PlayState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// Song is a file known to MPD together with the tags the client displays.
type Song struct {
	File        string
	Title       string
	Artist      string
	ArtistSort  string
	AlbumArtist string
	Album       string
	Track       int
	Duration    time.Duration
}

// QueueItem is a song in the play queue. Pos and ID belong to the server and
// are mirrored read-only.
type QueueItem struct {
	Song
	Pos int
	ID  int
}

// Status is the last known player status.
type Status struct {
	State           PlayState
	Song            int
	SongID          int
	Elapsed         time.Duration
	Duration        time.Duration
	PlaylistVersion int
	PlaylistLength  int
	Volume          int
	Repeat          bool
	Random          bool
}

// HasSong reports whether the status references a queue position.
func (s Status) HasSong() bool {
	return s.Song >= 0 && s.State != StateStopped
}

// Progress returns elapsed/duration clamped to [0, 1].
func (s Status) Progress() float64 {
	if s.Duration <= 0 || s.Elapsed <= 0 {
		return 0
	}
	ratio := s.Elapsed.Seconds() / s.Duration.Seconds()
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Snapshot bundles everything fetched at startup.
type Snapshot struct {
	Library []Song
	Queue   []QueueItem
	Status  Status
	Current *QueueItem
}
