package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/tunetable/internal/mpd"
)

func TestGroupOrdersArtistsAlbumsAndTracks(t *testing.T) {
	songs := []mpd.Song{
		{File: "b/2.flac", Title: "Second", Artist: "Beatles", ArtistSort: "Beatles, The", Album: "Help", Track: 2},
		{File: "b/1.flac", Title: "First", Artist: "Beatles", ArtistSort: "Beatles, The", Album: "Help", Track: 1},
		{File: "a/1.flac", Title: "Solo", Artist: "Abba", Album: "Arrival", Track: 1},
		{File: "b/x.flac", Title: "Another", Artist: "Beatles", Album: "Abbey Road", Track: 1},
		{File: "loose.mp3"},
	}
	artists := Group(songs)
	require.Len(t, artists, 3)
	assert.Equal(t, "Abba", artists[0].Name)
	assert.Equal(t, "Beatles", artists[1].Name)
	assert.Equal(t, UnknownArtist, artists[2].Name)

	beatles := artists[1]
	assert.Equal(t, []string{"Beatles, The"}, beatles.SortNames)
	assert.Equal(t, "Beatles Beatles, The", beatles.SearchString())
	require.Len(t, beatles.Entries, 5)
	assert.True(t, beatles.Entries[0].IsAlbum())
	assert.Equal(t, "Abbey Road", beatles.Entries[0].Album)
	assert.Equal(t, "Help", beatles.Entries[2].Album)
	assert.Equal(t, "First", beatles.Entries[3].Title)
	assert.Equal(t, "Second", beatles.Entries[4].Title)
	assert.Equal(t, 3, beatles.Tracks())

	unknown := artists[2]
	require.Len(t, unknown.Entries, 1)
	assert.Equal(t, "loose.mp3", unknown.Entries[0].Title)
}

func TestGroupPrefersAlbumArtist(t *testing.T) {
	artists := Group([]mpd.Song{
		{File: "1", Title: "a", Artist: "Guest", AlbumArtist: "Host", Album: "Live"},
		{File: "2", Title: "b", Artist: "Host", Album: "Live"},
	})
	require.Len(t, artists, 1)
	assert.Equal(t, "Host", artists[0].Name)
	assert.Len(t, artists[0].Entries, 3)
}

func TestFlatten(t *testing.T) {
	artists := Group([]mpd.Song{
		{File: "1", Title: "a", Artist: "A", Album: "X"},
		{File: "2", Title: "b", Artist: "B", Album: "Y"},
	})
	flat := Flatten(artists)
	require.Len(t, flat, 4)
	assert.Equal(t, "A/X", flat[0].SearchString())
	assert.Equal(t, "B/Y/b", flat[3].SearchString())
}

func TestEntrySearchString(t *testing.T) {
	e := Entry{Artist: "Beatles", ArtistSort: "Beatles, The", Album: "Help", Title: "Yesterday"}
	assert.Equal(t, "Beatles [Beatles, The]/Help/Yesterday", e.SearchString())
	assert.Equal(t, "Yesterday", e.TrackString())
	header := Entry{Artist: "Beatles", Album: "Help"}
	assert.True(t, header.IsAlbum())
	assert.Equal(t, "Help", header.TrackString())
	_, ok := header.MatchRank()
	assert.False(t, ok)
}
