package layout

// LibraryView carries the flags the library layout depends on.
type LibraryView struct {
	ArtistSearch bool
	TrackSearch  bool
	GlobalSearch bool
}

// Library holds the regions of the library screen. Search boxes and the
// popup are empty unless their search is active.
type Library struct {
	Header       Rect
	ArtistSearch Rect
	Artists      Rect
	TrackSearch  Rect
	Tracks       Rect
	Popup        Rect
}

// LibraryFor lays out the library screen.
func LibraryFor(frame Rect, v LibraryView) Library {
	var l Library
	rows := Split(frame, Vertical, Max(4), Min(1))
	l.Header = rows[0]
	panels := Split(rows[1], Horizontal, Ratio(1, 3), Ratio(2, 3))
	l.ArtistSearch, l.Artists = withSearch(panels[0], v.ArtistSearch)
	l.TrackSearch, l.Tracks = withSearch(panels[1], v.TrackSearch)
	if v.GlobalSearch {
		l.Popup = Centered(frame)
	}
	return l
}

// QueueView carries the flags the queue layout depends on.
type QueueView struct {
	Search bool
}

// Queue holds the regions of the queue screen.
type Queue struct {
	Header   Rect
	Search   Rect
	List     Rect
	Progress Rect
}

// QueueFor lays out the queue screen.
func QueueFor(frame Rect, v QueueView) Queue {
	var q Queue
	rows := Split(frame, Vertical, Max(4), Min(1), Max(3))
	q.Header = rows[0]
	q.Search, q.List = withSearch(rows[1], v.Search)
	q.Progress = rows[2]
	return q
}

// PopupParts splits the global search popup into its search box and result
// list, inside the popup border.
func PopupParts(popup Rect) (search, list Rect) {
	inner := popup.Inner()
	parts := Split(inner, Vertical, Max(3), Min(1))
	return parts[0], parts[1]
}
