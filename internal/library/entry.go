package library

import (
	"strings"
	"time"
)

// Entry is one browsable library row. An entry with an album and no title is
// an album header.
type Entry struct {
	Artist     string
	ArtistSort string
	Album      string
	Title      string
	File       string
	Duration   time.Duration
	// Rank is the ordinal of the entry within the active track filter and nil
	// whenever the entry is filtered out or no filter is active.
	Rank *int
}

// IsAlbum reports whether the entry is an album header row.
func (e Entry) IsAlbum() bool {
	return e.Album != "" && e.Title == ""
}

// IsArtist reports whether the entry names an artist only.
func (e Entry) IsArtist() bool {
	return e.Album == "" && e.Title == ""
}

// MatchRank returns the entry rank when one is assigned.
func (e Entry) MatchRank() (int, bool) {
	if e.Rank == nil {
		return 0, false
	}
	return *e.Rank, true
}

// SearchString renders the entry the way global search matches and displays
// it: `artist [sort]/album/title`, omitting absent fields.
func (e Entry) SearchString() string {
	var b strings.Builder
	b.WriteString(e.Artist)
	if e.ArtistSort != "" && e.ArtistSort != e.Artist {
		b.WriteString(" [")
		b.WriteString(e.ArtistSort)
		b.WriteString("]")
	}
	if e.Album != "" {
		b.WriteString("/")
		b.WriteString(e.Album)
	}
	if e.Title != "" {
		b.WriteString("/")
		b.WriteString(e.Title)
	}
	return b.String()
}

// TrackString is the per-artist track list representation used by the
// track search.
func (e Entry) TrackString() string {
	if e.IsAlbum() {
		return e.Album
	}
	return e.Title
}
