package library

import (
	"sort"
	"strings"

	"github.com/atomicstack/tunetable/internal/mpd"
)

// Artist is one row of the artist panel with its album and track rows.
type Artist struct {
	Name      string
	SortNames []string
	Entries   []Entry
}

// SearchString is matched by the artist search: the name followed by any
// distinct sort names.
func (a Artist) SearchString() string {
	if len(a.SortNames) == 0 {
		return a.Name
	}
	return a.Name + " " + strings.Join(a.SortNames, " ")
}

// Tracks counts the non-header rows.
func (a Artist) Tracks() int {
	n := 0
	for _, e := range a.Entries {
		if !e.IsAlbum() {
			n++
		}
	}
	return n
}

// Group builds the artist index from a library listing. Songs are grouped by
// album artist, falling back to artist; artists are ordered by sort name,
// albums by name and tracks by track number. Each album gets a header row.
func Group(songs []mpd.Song) []Artist {
	type albumKey struct{ artist, album string }
	byArtist := make(map[string]*Artist)
	sortKey := make(map[string]string)
	albums := make(map[albumKey][]mpd.Song)
	albumOrder := make(map[string][]string)

	for _, s := range songs {
		name := s.AlbumArtist
		if name == "" {
			name = s.Artist
		}
		if name == "" {
			name = UnknownArtist
		}
		a, ok := byArtist[name]
		if !ok {
			a = &Artist{Name: name}
			byArtist[name] = a
			sortKey[name] = strings.ToLower(name)
		}
		if s.ArtistSort != "" && s.ArtistSort != name && !contains(a.SortNames, s.ArtistSort) {
			a.SortNames = append(a.SortNames, s.ArtistSort)
			if len(a.SortNames) == 1 {
				sortKey[name] = strings.ToLower(s.ArtistSort)
			}
		}
		key := albumKey{name, s.Album}
		if _, seen := albums[key]; !seen {
			albumOrder[name] = append(albumOrder[name], s.Album)
		}
		albums[key] = append(albums[key], s)
	}

	out := make([]Artist, 0, len(byArtist))
	for name, a := range byArtist {
		names := albumOrder[name]
		sort.SliceStable(names, func(i, j int) bool {
			return strings.ToLower(names[i]) < strings.ToLower(names[j])
		})
		for _, album := range names {
			tracks := albums[albumKey{name, album}]
			sort.SliceStable(tracks, func(i, j int) bool {
				if tracks[i].Track != tracks[j].Track {
					return tracks[i].Track < tracks[j].Track
				}
				return tracks[i].File < tracks[j].File
			})
			sortName := ""
			if len(a.SortNames) > 0 {
				sortName = a.SortNames[0]
			}
			if album != "" {
				a.Entries = append(a.Entries, Entry{Artist: name, ArtistSort: sortName, Album: album})
			}
			for _, s := range tracks {
				title := s.Title
				if title == "" {
					title = fileBase(s.File)
				}
				a.Entries = append(a.Entries, Entry{
					Artist:     name,
					ArtistSort: sortName,
					Album:      album,
					Title:      title,
					File:       s.File,
					Duration:   s.Duration,
				})
			}
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		ki, kj := sortKey[out[i].Name], sortKey[out[j].Name]
		if ki != kj {
			return ki < kj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Flatten returns every entry of every artist in display order, the
// collection the global search runs over.
func Flatten(artists []Artist) []Entry {
	n := 0
	for _, a := range artists {
		n += len(a.Entries)
	}
	out := make([]Entry, 0, n)
	for _, a := range artists {
		out = append(out, a.Entries...)
	}
	return out
}

// UnknownArtist names songs without any artist tag.
const UnknownArtist = "Unknown Artist"

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func fileBase(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
