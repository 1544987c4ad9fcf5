package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// EventType names a user action.
type EventType string

const (
	EventNavigate       EventType = "navigate"
	EventLogin          EventType = "login"
	EventRegister       EventType = "register"
	EventFieldInput     EventType = "field-input"
	EventLogout         EventType = "logout"
	EventShowCreateForm EventType = "show-create-form"
	EventHideCreateForm EventType = "hide-create-form"
	EventCreateRecipe   EventType = "create-recipe"
	EventStaticSearch   EventType = "static-search"
	EventStaticClear    EventType = "static-clear"
	EventDownload       EventType = "download"
	EventExport         EventType = "export"
)

// Event is a user action with its string arguments.
type Event struct {
	Data map[string]string
	Type EventType
}

// NewEvent builds an event from key/value pairs.
func NewEvent(t EventType, kv ...string) Event {
	e := Event{Type: t, Data: make(map[string]string, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		e.Data[kv[i]] = kv[i+1]
	}
	return e
}

// Get returns an argument, or "" if absent.
func (e Event) Get(key string) string {
	return e.Data[key]
}

// Handler reacts to one event type.
type Handler func(ctx context.Context, e Event) error

// Dispatcher routes events to their handlers. Dispatch runs the handler
// on the caller's goroutine, so events are processed one at a time in the
// order the shell reads them.
type Dispatcher struct {
	handlers map[EventType]Handler
	logger   *slog.Logger
	mu       sync.RWMutex
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[EventType]Handler),
		logger:   logger,
	}
}

// Register binds h to t, replacing any previous handler.
func (d *Dispatcher) Register(t EventType, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[t] = h
}

// Dispatch runs the handler for e. Events without a handler are dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) (err error) {
	d.mu.RLock()
	h, ok := d.handlers[e.Type]
	d.mu.RUnlock()

	if !ok {
		d.logger.Debug("no handler for event", "event", e.Type)
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic in event handler", "event", e.Type, "panic", r)
			err = fmt.Errorf("handler for %s panicked: %v", e.Type, r)
		}
	}()

	return h(ctx, e)
}
