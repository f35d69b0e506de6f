package backend

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Default pacing of the idle ticker.
const (
	DefaultPollInterval = 16 * time.Millisecond
	DefaultTickInterval = 500 * time.Millisecond
)

// Event is one idle tick.
type Event struct {
	At time.Time
}

// Ticker wakes every poll interval and emits an Event once both the previous
// tick and the last noted activity are at least one tick interval old, so
// refreshes never fire while the user is typing.
type Ticker struct {
	poll     time.Duration
	interval time.Duration
	now      func() time.Time

	lastActivity atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewTicker starts a ticker. Non-positive durations use the defaults.
func NewTicker(poll, interval time.Duration) *Ticker {
	t := newTicker(poll, interval, time.Now)
	t.wg.Add(1)
	go t.run()
	go func() {
		t.wg.Wait()
		close(t.events)
	}()
	return t
}

func newTicker(poll, interval time.Duration, now func() time.Time) *Ticker {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	t := &Ticker{
		poll:     poll,
		interval: interval,
		now:      now,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 1),
	}
	t.lastActivity.Store(now().UnixNano())
	return t
}

// Events returns the tick channel. It is closed after Stop.
func (t *Ticker) Events() <-chan Event {
	return t.events
}

// NoteActivity postpones the next tick by a full interval.
func (t *Ticker) NoteActivity() {
	t.lastActivity.Store(t.now().UnixNano())
}

// Stop cancels the ticker.
func (t *Ticker) Stop() {
	t.cancel()
}

// Wait blocks until the ticker goroutine has exited.
func (t *Ticker) Wait() {
	t.wg.Wait()
}

func (t *Ticker) run() {
	defer t.wg.Done()

	lastTick := t.now()
	clock := time.NewTicker(t.poll)
	defer clock.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-clock.C:
			now := t.now()
			if !t.due(now, lastTick) {
				continue
			}
			lastTick = now
			select {
			case t.events <- Event{At: now}:
			default:
				// previous tick not consumed yet
			}
		}
	}
}

func (t *Ticker) due(now, lastTick time.Time) bool {
	activity := time.Unix(0, t.lastActivity.Load())
	return now.Sub(lastTick) >= t.interval && now.Sub(activity) >= t.interval
}
