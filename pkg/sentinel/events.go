package sentinel

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// EventID identifies a resolver event.
type EventID string

const (
	EventResolveSuccess  EventID = "on-resolve-success"
	EventResolveError    EventID = "on-resolve-error"
	EventResolveChange   EventID = "on-resolve-change"
	EventSentinelsChange EventID = "on-sentinels-change"
)

// Event is the value handed to observers. Only the fields relevant to
// the event's ID are populated.
type Event struct {
	ID         EventID
	MasterName string
	RequestID  uuid.UUID

	// Resolved master addresses, for resolve events.
	Addr    Addr
	OldAddr Addr

	// Sentinel lists before and after, for on-sentinels-change.
	Sentinels    AddrMap
	OldSentinels AddrMap

	Spec    *Spec
	Elapsed time.Duration
	Err     error
}

// Callbacks maps event IDs to handlers. Handlers run synchronously on
// the resolving goroutine; panics are recovered and logged so an
// observer bug cannot interrupt resolution.
type Callbacks map[EventID]func(Event)

var processCallbacks atomic.Pointer[Callbacks]

// SetProcessCallbacks replaces the process-wide observer table and
// returns the previous one, so a caller binding a temporary table can
// restore it when done.
func SetProcessCallbacks(cbs Callbacks) (prev Callbacks) {
	old := processCallbacks.Swap(&cbs)
	if old == nil {
		return nil
	}
	return *old
}

// fire dispatches an event to the process-wide, spec-scope, and
// per-request observer tables, in that order. The event value is built
// lazily: the constructor runs only if some layer has a handler.
func (s *Spec) fire(reqCbs Callbacks, id EventID, build func() Event) {
	var layers [3]Callbacks
	if p := processCallbacks.Load(); p != nil {
		layers[0] = *p
	}
	layers[1] = s.cfg.Callbacks
	layers[2] = reqCbs

	var ev Event
	built := false
	for _, layer := range layers {
		handler, ok := layer[id]
		if !ok || handler == nil {
			continue
		}
		if !built {
			ev = build()
			built = true
		}
		s.safeCall(id, handler, ev)
	}
}

func (s *Spec) safeCall(id EventID, handler func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("sentinel callback panicked",
				slog.String("event", string(id)),
				slog.Any("panic", r))
		}
	}()
	handler(ev)
}
