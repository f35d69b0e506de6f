package mpd

import (
	"strconv"
	"strings"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"
)

func parseSong(attrs gompd.Attrs) Song {
	song := Song{
		File:        attrs["file"],
		Title:       attrs["Title"],
		Artist:      attrs["Artist"],
		ArtistSort:  attrs["ArtistSort"],
		AlbumArtist: attrs["AlbumArtist"],
		Album:       attrs["Album"],
		Track:       parseTrackNumber(attrs["Track"]),
	}
	if d, ok := parseSeconds(attrs["duration"]); ok {
		song.Duration = d
	} else if d, ok := parseSeconds(attrs["Time"]); ok {
		song.Duration = d
	}
	return song
}

func parseQueueItem(attrs gompd.Attrs) QueueItem {
	return QueueItem{
		Song: parseSong(attrs),
		Pos:  atoiOr(attrs["Pos"], -1),
		ID:   atoiOr(attrs["Id"], -1),
	}
}

func parseStatus(attrs gompd.Attrs) Status {
	st := Status{
		Song:            atoiOr(attrs["song"], -1),
		SongID:          atoiOr(attrs["songid"], -1),
		PlaylistVersion: atoiOr(attrs["playlist"], 0),
		PlaylistLength:  atoiOr(attrs["playlistlength"], 0),
		Volume:          atoiOr(attrs["volume"], -1),
		Repeat:          attrs["repeat"] == "1",
		Random:          attrs["random"] == "1",
	}
	switch attrs["state"] {
	case "play":
		st.State = StatePlaying
	case "pause":
		st.State = StatePaused
	default:
		st.State = StateStopped
	}
	if d, ok := parseSeconds(attrs["elapsed"]); ok {
		st.Elapsed = d
	}
	if d, ok := parseSeconds(attrs["duration"]); ok {
		st.Duration = d
	} else if elapsed, total, found := strings.Cut(attrs["time"], ":"); found {
		// older servers only report "time" as elapsed:total
		if d, ok := parseSeconds(total); ok {
			st.Duration = d
		}
		if st.Elapsed == 0 {
			if d, ok := parseSeconds(elapsed); ok {
				st.Elapsed = d
			}
		}
	}
	return st
}

func parseSeconds(v string) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return time.Duration(f * float64(time.Second)), true
}

// parseTrackNumber accepts "3" as well as "3/12".
func parseTrackNumber(v string) int {
	if head, _, ok := strings.Cut(v, "/"); ok {
		v = head
	}
	return atoiOr(v, 0)
}

func atoiOr(v string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}
