// Package locale holds the display-language preference and the static
// translation tables.
//
// Lookup contract: T resolves a dotted key ("cart.empty") against the
// current language's nested table and returns the key itself when any
// segment is missing. That is deliberate — a raw key on screen is the
// development-time signal that a translation is absent. T never throws and
// never falls back to another locale.
package locale

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shashiranjanraj/bodega/pkg/event"
	"github.com/shashiranjanraj/bodega/pkg/kvstore"
)

// keyLanguage is the kvstore key this manager owns.
const keyLanguage = "language"

// Table is a nested map of translation strings. Values are either string or
// another Table.
type Table map[string]interface{}

// Language describes one supported display language.
type Language struct {
	Code string
	Name string
	Flag string
}

// Supported lists every language the client ships tables for.
var Supported = []Language{
	{Code: "es", Name: "Español", Flag: "🇪🇨"},
	{Code: "en", Name: "English", Flag: "🇺🇸"},
	{Code: "ru", Name: "Русский", Flag: "🇷🇺"},
}

var tables = map[string]Table{
	"es": tableES,
	"en": tableEN,
	"ru": tableRU,
}

// IsSupported reports whether code has a translation table.
func IsSupported(code string) bool {
	_, ok := tables[code]
	return ok
}

// Manager owns the current language preference.
type Manager struct {
	mu      sync.RWMutex
	store   *kvstore.Store
	current string
}

// NewManager restores the persisted preference, falling back to def (and to
// "es" when def itself is unknown).
func NewManager(store *kvstore.Store, def string) *Manager {
	if !IsSupported(def) {
		def = "es"
	}

	current := def
	if store != nil {
		if stored, ok := store.Get(keyLanguage); ok && IsSupported(stored) {
			current = stored
		}
	}

	return &Manager{store: store, current: current}
}

// Current returns the active language code.
func (m *Manager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// SetLanguage switches the active language, persists the choice and
// synchronously notifies all subscribers. Unknown codes are rejected.
func (m *Manager) SetLanguage(code string) error {
	if !IsSupported(code) {
		return fmt.Errorf("locale: unsupported language %q", code)
	}

	m.mu.Lock()
	m.current = code
	if m.store != nil {
		if err := m.store.Put(keyLanguage, code); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("locale: persist: %w", err)
		}
	}
	m.mu.Unlock()

	event.Fire(event.LanguageChanged, code)
	return nil
}

// Subscribe registers a listener for language changes and returns its
// unsubscribe function. No ordering guarantee between listeners.
func (m *Manager) Subscribe(fn func(code string)) event.UnsubscribeFunc {
	return event.Listen(event.LanguageChanged, func(payload interface{}) {
		if code, ok := payload.(string); ok {
			fn(code)
		}
	})
}

// T resolves a dotted key in the current language's table. Any missing
// segment returns the key unchanged.
func (m *Manager) T(key string) string {
	return Lookup(m.Current(), key)
}

// Lookup resolves a dotted key against a specific language table. Missing
// languages and missing segments both return the key unchanged.
func Lookup(code, key string) string {
	table, ok := tables[code]
	if !ok {
		return key
	}

	var node interface{} = table
	for _, segment := range strings.Split(key, ".") {
		m, ok := node.(Table)
		if !ok {
			return key
		}
		node, ok = m[segment]
		if !ok {
			return key
		}
	}

	s, ok := node.(string)
	if !ok {
		return key
	}
	return s
}
