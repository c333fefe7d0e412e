// Package theme holds the light/dark preference and the color palettes the
// UI layer consumes. The preference persists immediately on change and the
// switch is broadcast synchronously to subscribers.
package theme

import (
	"fmt"
	"sync"

	"github.com/shashiranjanraj/bodega/pkg/event"
	"github.com/shashiranjanraj/bodega/pkg/kvstore"
)

// keyTheme is the kvstore key this manager owns.
const keyTheme = "theme"

// Theme names.
const (
	Light = "light"
	Dark  = "dark"
)

// Colors is the palette a theme resolves to.
type Colors struct {
	Background    string
	Surface       string
	Primary       string
	Secondary     string
	Text          string
	TextSecondary string
	Border        string
	Card          string
	Notification  string
	Error         string
	Success       string
	Warning       string
}

var lightColors = Colors{
	Background:    "#FFFFFF",
	Surface:       "#F8F9FA",
	Primary:       "#007AFF",
	Secondary:     "#5856D6",
	Text:          "#000000",
	TextSecondary: "#6B7280",
	Border:        "#E5E7EB",
	Card:          "#FFFFFF",
	Notification:  "#FF3B30",
	Error:         "#FF3B30",
	Success:       "#34C759",
	Warning:       "#FF9500",
}

var darkColors = Colors{
	Background:    "#000000",
	Surface:       "#1C1C1E",
	Primary:       "#0A84FF",
	Secondary:     "#5E5CE6",
	Text:          "#FFFFFF",
	TextSecondary: "#8E8E93",
	Border:        "#38383A",
	Card:          "#1C1C1E",
	Notification:  "#FF453A",
	Error:         "#FF453A",
	Success:       "#30D158",
	Warning:       "#FF9F0A",
}

// Manager owns the theme preference.
type Manager struct {
	mu      sync.RWMutex
	store   *kvstore.Store
	current string
}

// NewManager restores the persisted preference, falling back to def (and to
// light when def is unknown).
func NewManager(store *kvstore.Store, def string) *Manager {
	if def != Light && def != Dark {
		def = Light
	}

	current := def
	if store != nil {
		if stored, ok := store.Get(keyTheme); ok && (stored == Light || stored == Dark) {
			current = stored
		}
	}

	return &Manager{store: store, current: current}
}

// Current returns the active theme name.
func (m *Manager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsDark reports whether the dark theme is active.
func (m *Manager) IsDark() bool { return m.Current() == Dark }

// Colors returns the palette for the active theme.
func (m *Manager) Colors() Colors {
	if m.IsDark() {
		return darkColors
	}
	return lightColors
}

// Set switches the theme, persists it and notifies subscribers.
func (m *Manager) Set(name string) error {
	if name != Light && name != Dark {
		return fmt.Errorf("theme: unknown theme %q", name)
	}

	m.mu.Lock()
	m.current = name
	if m.store != nil {
		if err := m.store.Put(keyTheme, name); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("theme: persist: %w", err)
		}
	}
	m.mu.Unlock()

	event.Fire(event.ThemeChanged, name)
	return nil
}

// Toggle flips between light and dark.
func (m *Manager) Toggle() error {
	if m.IsDark() {
		return m.Set(Light)
	}
	return m.Set(Dark)
}

// Subscribe registers a listener for theme changes.
func (m *Manager) Subscribe(fn func(name string)) event.UnsubscribeFunc {
	return event.Listen(event.ThemeChanged, func(payload interface{}) {
		if name, ok := payload.(string); ok {
			fn(name)
		}
	})
}
