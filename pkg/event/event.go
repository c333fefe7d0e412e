// Package event provides a simple synchronous event dispatcher.
//
// Managers broadcast state changes (language switched, theme switched,
// session expired) and interested parties subscribe:
//
//	unsub := event.Listen(event.LanguageChanged, func(p interface{}) {
//	    refresh(p.(string))
//	})
//	defer unsub()
//
// Dispatch is synchronous: Fire returns only after every listener ran.
package event

import (
	"sync"
)

// Well-known event names used across the client.
const (
	LanguageChanged = "locale.changed"
	ThemeChanged    = "theme.changed"
	SessionExpired  = "session.expired"
	CartChanged     = "cart.changed"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

// UnsubscribeFunc removes the listener it was returned for. Idempotent.
type UnsubscribeFunc func()

type listener struct {
	id int
	fn Handler
}

var (
	mu       sync.RWMutex
	nextID   int
	handlers = map[string][]listener{}
)

// Listen registers a handler for the given event name and returns a function
// that removes it again. No ordering is guaranteed between listeners.
func Listen(event string, handler Handler) UnsubscribeFunc {
	mu.Lock()
	nextID++
	id := nextID
	handlers[event] = append(handlers[event], listener{id: id, fn: handler})
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		ls := handlers[event]
		for i, l := range ls {
			if l.id == id {
				handlers[event] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	mu.RLock()
	ls := make([]listener, len(handlers[event]))
	copy(ls, handlers[event])
	mu.RUnlock()

	for _, l := range ls {
		l.fn(payload)
	}
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]listener{}
}
