package events

import "github.com/atomicstack/tunetable/internal/logging"

type UITracer struct{}

type SearchTracer struct{}

type PlaybackTracer struct{}

type ConfigTracer struct{}

var (
	UI       = UITracer{}
	Search   = SearchTracer{}
	Playback = PlaybackTracer{}
	Config   = ConfigTracer{}
)

// Apply records one processed message and the regions it dirtied.
func (UITracer) Apply(msg, screen, mode, dirty string) {
	logging.Trace("ui.apply", map[string]any{
		"msg":    msg,
		"screen": screen,
		"mode":   mode,
		"dirty":  dirty,
	})
}

func (SearchTracer) Update(node, query string, matches int) {
	logging.Trace("search.update", map[string]any{"node": node, "query": query, "matches": matches})
}

// Error logs a failed server call and traces the operation that caused it.
func (PlaybackTracer) Error(op string, err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	logging.Trace("playback.error", map[string]any{"op": op, "error": err.Error()})
}

func (ConfigTracer) Loaded(path string, found bool) {
	logging.Trace("config.loaded", map[string]any{"path": path, "found": found})
}
