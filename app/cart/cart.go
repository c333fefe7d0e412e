// Package cart owns the shopping basket: an ordered collection of line
// items keyed by product id.
//
// Invariants:
//   - a product id appears in at most one line
//   - every line has quantity ≥ 1; decrementing to zero removes the line
//   - ItemCount and Subtotal are recomputed from the lines on every read,
//     so they can never drift from the items
//
// The cart belongs to the device, not the session: it is persisted under its
// own key and survives logout. Checkout clears it after the order succeeds.
package cart

import (
	"sync"

	"github.com/shashiranjanraj/bodega/app/models"
	"github.com/shashiranjanraj/bodega/pkg/collection"
	"github.com/shashiranjanraj/bodega/pkg/event"
	"github.com/shashiranjanraj/bodega/pkg/kvstore"
	"github.com/shashiranjanraj/bodega/pkg/logger"
)

// keyCart is the kvstore key this manager owns.
const keyCart = "cart_items"

// Line is one product-quantity-price tuple.
type Line struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// Total is the line subtotal.
func (l Line) Total() float64 { return l.UnitPrice * float64(l.Quantity) }

// Manager holds the basket. A nil store gives a memory-only cart.
type Manager struct {
	mu    sync.Mutex
	store *kvstore.Store
	lines []Line
}

// NewManager builds a cart, restoring any persisted lines.
func NewManager(store *kvstore.Store) *Manager {
	m := &Manager{store: store}
	if store != nil {
		var lines []Line
		if store.GetJSON(keyCart, &lines) {
			m.lines = lines
		}
	}
	return m
}

// AddItem merges the line into the cart: an existing line for the same
// product grows by line.Quantity, otherwise the line is appended. A
// non-positive quantity means "one".
func (m *Manager) AddItem(line Line) {
	if line.Quantity <= 0 {
		line.Quantity = 1
	}

	m.mu.Lock()
	merged := false
	for i := range m.lines {
		if m.lines[i].ProductID == line.ProductID {
			m.lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		m.lines = append(m.lines, line)
	}
	m.persistLocked()
	m.mu.Unlock()

	m.broadcast()
}

// UpdateQuantity sets a line's quantity directly. Zero or negative removes
// the line — there is never a zero-quantity row.
func (m *Manager) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		m.RemoveItem(productID)
		return
	}

	m.mu.Lock()
	changed := false
	for i := range m.lines {
		if m.lines[i].ProductID == productID {
			m.lines[i].Quantity = quantity
			changed = true
			break
		}
	}
	if changed {
		m.persistLocked()
	}
	m.mu.Unlock()

	if changed {
		m.broadcast()
	}
}

// RemoveItem deletes the line for productID; no-op when absent.
func (m *Manager) RemoveItem(productID string) {
	m.mu.Lock()
	removed := false
	for i := range m.lines {
		if m.lines[i].ProductID == productID {
			m.lines = append(m.lines[:i:i], m.lines[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		m.persistLocked()
	}
	m.mu.Unlock()

	if removed {
		m.broadcast()
	}
}

// Clear empties the cart unconditionally.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.lines = nil
	m.persistLocked()
	m.mu.Unlock()

	m.broadcast()
}

// ItemQuantity returns the quantity for productID, 0 when absent.
func (m *Manager) ItemQuantity(productID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	line, ok := collection.First(m.lines, func(l Line) bool { return l.ProductID == productID })
	if !ok {
		return 0
	}
	return line.Quantity
}

// Items returns a copy of the lines in insertion order.
func (m *Manager) Items() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

// ItemCount is the sum of all quantities, recomputed on every call.
func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return collection.SumBy(m.lines, func(l Line) int { return l.Quantity })
}

// Subtotal is the sum of line totals, recomputed on every call.
func (m *Manager) Subtotal() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return collection.SumBy(m.lines, func(l Line) float64 { return l.Total() })
}

// IsEmpty reports whether the cart has no lines.
func (m *Manager) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lines) == 0
}

// OrderItems converts the basket into a checkout payload.
func (m *Manager) OrderItems() []models.OrderCreateItem {
	return collection.Map(m.Items(), func(l Line) models.OrderCreateItem {
		return models.OrderCreateItem{ProductID: l.ProductID, Quantity: l.Quantity}
	})
}

// persistLocked writes the lines through to disk. Caller holds m.mu.
func (m *Manager) persistLocked() {
	if m.store == nil {
		return
	}
	if err := m.store.PutJSON(keyCart, m.lines); err != nil {
		logger.Error("cart: persist", "error", err)
	}
}

// broadcast announces a mutation. Fired outside the mutex so listeners may
// read the cart back.
func (m *Manager) broadcast() {
	event.Fire(event.CartChanged, m.ItemCount())
}
