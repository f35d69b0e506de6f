package ui

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/atomicstack/tunetable/internal/format/table"
	"github.com/atomicstack/tunetable/internal/library"
	"github.com/atomicstack/tunetable/internal/mpd"
	"github.com/atomicstack/tunetable/internal/ui/layout"
	"github.com/atomicstack/tunetable/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
)

const (
	unknownAlbum = "Unknown Album"
	trackIndent  = "  "
)

// renderCache memoizes the parts of a frame that only change with server
// data. Dirty regions returned by Apply mark entries stale.
type renderCache struct {
	stale      Dirty
	header     []string
	queueRows  []string
	queueWidth int
}

func (c *renderCache) invalidate(d Dirty) {
	c.stale |= d
}

// View renders the current frame.
func (m *Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}
	c := newCanvas(m.width, m.height)
	switch m.screen {
	case ScreenQueue:
		m.renderQueue(c)
	default:
		m.renderLibrary(c)
	}
	if m.errMsg != "" {
		c.paint(layout.Rect{Y: m.height - 1, Width: m.width, Height: 1}, m.styles.Error.Render(m.errMsg))
	}
	return c.String()
}

func (m *Model) renderQueue(c *canvas) {
	l := m.queueLayout()
	c.paint(l.Header, boxed(l.Header, *m.styles.Border, m.headerLines()))
	if m.queue.Search().Active {
		c.paint(l.Search, m.searchBox(l.Search, NodeQueue, m.queue.Search()))
	}
	c.paint(l.List, boxed(l.List, *m.styles.FocusedBorder, m.queueLines(l.List.Inner())))
	inner := l.Progress.Inner()
	m.progress.Width = inner.Width
	c.paint(l.Progress, boxed(l.Progress, *m.styles.Border, []string{m.progress.ViewAs(m.status.Progress())}))
}

func (m *Model) renderLibrary(c *canvas) {
	l := m.libraryLayout()
	c.paint(l.Header, boxed(l.Header, *m.styles.Border, m.headerLines()))

	artistsFocused := m.lib.focus == PanelArtists && !m.lib.global.Search().Active
	if m.lib.artists.Search().Active {
		c.paint(l.ArtistSearch, m.searchBox(l.ArtistSearch, NodeArtists, m.lib.artists.Search()))
	}
	c.paint(l.Artists, boxed(l.Artists, m.borderStyle(artistsFocused), m.artistLines(l.Artists.Inner(), artistsFocused)))

	tracks := m.selectedTracks()
	tracksFocused := m.lib.focus == PanelTracks && !m.lib.global.Search().Active
	if tracks != nil && tracks.Search().Active {
		c.paint(l.TrackSearch, m.searchBox(l.TrackSearch, NodeTracks, tracks.Search()))
	}
	var lines []string
	if tracks != nil {
		lines = m.trackLines(tracks, l.Tracks.Inner(), tracksFocused)
	}
	c.paint(l.Tracks, boxed(l.Tracks, m.borderStyle(tracksFocused), lines))

	if !l.Popup.Empty() {
		m.renderPopup(c, l.Popup)
	}
}

func (m *Model) renderPopup(c *canvas, popup layout.Rect) {
	c.paint(popup, boxed(popup, *m.styles.FocusedBorder, nil))
	search, list := layout.PopupParts(popup)
	c.paint(search, m.searchBox(search, NodeGlobal, m.lib.global.Search()))
	inner := list.Inner()
	rows := visibleRows(m.lib.global, inner.Height)
	lines := make([]string, 0, len(rows))
	for _, i := range rows {
		entry, offsets, _ := m.lib.global.Visible(i)
		lines = append(lines, m.row(entry.SearchString(), offsets, *m.styles.Item, m.isSelected(m.lib.global, i), true))
	}
	c.paint(list, boxed(list, *m.styles.Border, lines))
}

func (m *Model) borderStyle(focused bool) lipgloss.Style {
	if focused {
		return *m.styles.FocusedBorder
	}
	return *m.styles.Border
}

func (m *Model) searchBox(r layout.Rect, node SearchNode, s *state.SearchState) string {
	line := m.styles.SearchPrompt.Render("/ ") + m.styles.SearchQuery.Render(s.Query)
	if m.mode == ModeSearching && m.ActiveNode() == node {
		line += m.searchCursor.View()
	}
	return boxed(r, *m.styles.FocusedBorder, []string{line})
}

// headerLines renders the now-playing box.
func (m *Model) headerLines() []string {
	if m.cache.stale&(DirtyStatus|DirtyCurrentSong) != 0 || m.cache.header == nil {
		m.cache.header = m.buildHeader()
		m.cache.stale &^= DirtyStatus | DirtyCurrentSong
	}
	return m.cache.header
}

func (m *Model) buildHeader() []string {
	label := m.styles.HeaderLabel.Render(fmt.Sprintf("[%s]", m.status.State))
	if m.current == nil || !m.status.HasSong() {
		return []string{label, ""}
	}
	song := m.current.Song
	title := fmt.Sprintf("%s %s", label, m.styles.Header.Render(songTitle(song)))
	detail := fmt.Sprintf("%s - %s  %s/%s",
		orDefault(song.Artist, library.UnknownArtist),
		orDefault(song.Album, unknownAlbum),
		formatClock(m.status.Elapsed),
		formatClock(m.status.Duration),
	)
	return []string{title, m.styles.Header.Render(detail)}
}

func (m *Model) queueLines(inner layout.Rect) []string {
	all := m.queue.All()
	if m.cache.stale&DirtyQueue != 0 || m.cache.queueWidth != inner.Width || len(m.cache.queueRows) != len(all) {
		rows := make([][]string, len(all))
		for i, item := range all {
			rows[i] = []string{
				songTitle(item.Song),
				orDefault(item.Artist, library.UnknownArtist),
				orDefault(item.Album, unknownAlbum),
				formatClock(item.Duration),
			}
		}
		cols := []table.Column{{}, {}, {}, {Align: table.AlignRight, Fixed: true}}
		m.cache.queueRows = table.Fit(rows, cols, inner.Width)
		m.cache.queueWidth = inner.Width
		m.cache.stale &^= DirtyQueue
	}
	visible := visibleRows(m.queue, inner.Height)
	lines := make([]string, 0, len(visible))
	for _, i := range visible {
		item, offsets, _ := m.queue.Visible(i)
		src, _ := m.queue.SourceIndex(i)
		text := m.cache.queueRows[src]
		base := *m.styles.Item
		if m.isPlaying(item) {
			base = m.styles.Playing.Inherit(base)
		}
		lines = append(lines, m.row(text, titleOffsets(item, offsets), base, m.isSelected(m.queue, i), true))
	}
	return lines
}

func (m *Model) isPlaying(item mpd.QueueItem) bool {
	if !m.status.HasSong() {
		return false
	}
	if m.status.SongID >= 0 && item.ID >= 0 {
		return item.ID == m.status.SongID
	}
	return item.Pos == m.status.Song
}

func (m *Model) artistLines(inner layout.Rect, focused bool) []string {
	rows := visibleRows(m.lib.artists, inner.Height)
	lines := make([]string, 0, len(rows))
	for _, i := range rows {
		node, offsets, _ := m.lib.artists.Visible(i)
		lines = append(lines, m.row(node.SearchString(), offsets, *m.styles.Item, m.isSelected(m.lib.artists, i), focused))
	}
	return lines
}

func (m *Model) trackLines(tracks *state.TrackList, inner layout.Rect, focused bool) []string {
	rows := visibleRows(tracks, inner.Height)
	lines := make([]string, 0, len(rows))
	for _, i := range rows {
		entry, offsets, _ := tracks.At(i)
		selected := m.isSelected(tracks, i)
		if entry.IsAlbum() {
			lines = append(lines, m.row(entry.Album, offsets, *m.styles.AlbumHeader, selected, focused))
			continue
		}
		text := entry.Title
		if entry.Duration > 0 {
			text = fmt.Sprintf("%s  %s", text, formatClock(entry.Duration))
		}
		shifted := make([]int, len(offsets))
		for j, o := range offsets {
			shifted[j] = o + len(trackIndent)
		}
		lines = append(lines, m.row(trackIndent+text, shifted, *m.styles.Item, selected, focused))
	}
	return lines
}

// row styles one list line. The selection is drawn in the inactive style
// when its panel does not have focus.
func (m *Model) row(text string, offsets []int, base lipgloss.Style, selected, focused bool) string {
	if selected {
		sel := *m.styles.InactiveItem
		if focused {
			sel = *m.styles.SelectedItem
		}
		base = sel.Inherit(base)
	}
	return highlight(text, offsets, base, *m.styles.Highlight)
}

func (m *Model) isSelected(s state.Selector, i int) bool {
	sel, ok := s.Selected()
	return ok && sel == i
}

// visibleRows lists the row indexes shown in a list region of the given
// height, starting at the selector offset.
func visibleRows(s state.Selector, height int) []int {
	n := s.Len()
	if height <= 0 || n == 0 {
		return nil
	}
	start := s.Offset()
	end := start + height
	if end > n {
		end = n
	}
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

// titleOffsets keeps the highlight offsets that fall on the title column,
// which leads both the queue row and its search string.
func titleOffsets(item mpd.QueueItem, offsets []int) []int {
	if item.Title == "" {
		return nil
	}
	limit := len([]rune(item.Title))
	out := make([]int, 0, len(offsets))
	for _, o := range offsets {
		if o < limit {
			out = append(out, o)
		}
	}
	return out
}

func songTitle(s mpd.Song) string {
	if s.Title != "" {
		return s.Title
	}
	return path.Base(s.File)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// formatClock renders d as M:SS, or H:MM:SS from one hour up.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, mins, secs := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}
