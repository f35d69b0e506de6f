package events

import "github.com/atomicstack/tunetable/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]any) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Connected(address string, songs, queued int) {
	logging.Trace("app.connected", map[string]any{"address": address, "songs": songs, "queue": queued})
}

func (AppTracer) Exit(err error) {
	payload := map[string]any{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
