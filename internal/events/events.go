// Package events turns host notifications (power, session, file changes)
// into application events. Deciding what to do with them is left to the UI.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tartampluch/go-celebrants/internal/config"
)

// Event is a lifecycle or trigger event.
type Event int

const (
	Started Event = iota
	Suspended
	Resumed
	SessionLocked
	SessionUnlocked
	DataChanged
	Manual
)

var eventNames = [...]string{
	Started:         "started",
	Suspended:       "suspended",
	Resumed:         "resumed",
	SessionLocked:   "session-locked",
	SessionUnlocked: "session-unlocked",
	DataChanged:     "data-changed",
	Manual:          "manual",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[e]
}

// TriggersCheck reports whether the event should start a check cycle.
func (e Event) TriggersCheck() bool {
	switch e {
	case Started, SessionUnlocked, DataChanged, Manual:
		return true
	}
	return false
}

// Journaled reports whether the event gets a line in the lifecycle journal.
func (e Event) Journaled() bool {
	switch e {
	case Started, Suspended, Resumed, SessionLocked, SessionUnlocked:
		return true
	}
	return false
}

// Source produces events until ctx is cancelled.
// Watch blocks; a nil return means ctx ended.
type Source interface {
	Name() string
	Watch(ctx context.Context, out chan<- Event) error
}

// Run starts every source in its own goroutine and blocks until all of them
// return. A failing source is logged and does not stop the others.
func Run(ctx context.Context, out chan<- Event, sources ...Source) {
	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			log := slog.With(config.LogKeyComponent, config.CompEvents, config.LogKeySource, src.Name())
			log.Debug(config.MsgSourceStart)
			if err := src.Watch(ctx, out); err != nil {
				log.Warn(config.MsgSourceFailed, config.LogKeyError, err)
			}
		}(src)
	}
	wg.Wait()
}

// send delivers ev unless ctx ends first.
func send(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
