// Package ui contains the Bubble Tea program for browsing an MPD library and
// play queue.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with key presses, window sizes and idle
//     ticks. Key presses are resolved through the KeyMap into Message values,
//     or edit the query of the active search while the model is Searching.
//   - dispatch hands each Message to Apply, which routes it to the handler of
//     the current screen and returns the Dirty regions it touched. dispatch
//     then refetches the server state behind those regions and invalidates
//     the matching render cache entries.
//
// State ownership:
//   - Lists, cursors and search caches live in internal/ui/state. Each
//     library artist owns its own TrackList so the track cursor and query
//     survive moving between artists.
//   - Which search receives keystrokes is decided by ActiveNode; global
//     search wins over the panels, and the focused panel over the other.
//
// Rendering:
//   - View derives every region from internal/ui/layout on each frame and
//     paints them onto a canvas, the global search popup last.
package ui
