package cart_test

import (
	"math"
	"testing"

	"github.com/shashiranjanraj/bodega/app/cart"
	"github.com/shashiranjanraj/bodega/pkg/event"
	"github.com/shashiranjanraj/bodega/pkg/kvstore"
)

func pizza(qty int) cart.Line {
	return cart.Line{ProductID: "p1", Name: "Pizza Margherita", UnitPrice: 12.99, Quantity: qty}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAddMergesSameProduct(t *testing.T) {
	m := cart.NewManager(nil)

	m.AddItem(pizza(1))
	m.AddItem(pizza(2))

	lines := m.Items()
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", lines[0].Quantity)
	}
	if !approx(m.Subtotal(), 38.97) {
		t.Errorf("expected subtotal 38.97, got %v", m.Subtotal())
	}
	if m.ItemCount() != 3 {
		t.Errorf("expected item count 3, got %d", m.ItemCount())
	}
}

func TestAddDefaultsNonPositiveQuantityToOne(t *testing.T) {
	m := cart.NewManager(nil)

	m.AddItem(pizza(0))
	if m.ItemQuantity("p1") != 1 {
		t.Errorf("expected quantity 1, got %d", m.ItemQuantity("p1"))
	}

	m.AddItem(pizza(-5))
	if m.ItemQuantity("p1") != 2 {
		t.Errorf("expected quantity 2, got %d", m.ItemQuantity("p1"))
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	m := cart.NewManager(nil)
	m.AddItem(pizza(3))

	m.UpdateQuantity("p1", 0)

	if !m.IsEmpty() {
		t.Error("expected empty cart after setting quantity to zero")
	}
	if m.ItemQuantity("p1") != 0 {
		t.Errorf("expected quantity 0, got %d", m.ItemQuantity("p1"))
	}
	if m.Subtotal() != 0 || m.ItemCount() != 0 {
		t.Errorf("totals must follow lines: subtotal=%v count=%d", m.Subtotal(), m.ItemCount())
	}
}

func TestUpdateQuantityNegativeRemovesLine(t *testing.T) {
	m := cart.NewManager(nil)
	m.AddItem(pizza(2))

	m.UpdateQuantity("p1", -1)
	if !m.IsEmpty() {
		t.Error("expected empty cart after negative quantity")
	}
}

func TestUpdateQuantitySets(t *testing.T) {
	m := cart.NewManager(nil)
	m.AddItem(pizza(1))

	m.UpdateQuantity("p1", 7)
	if m.ItemQuantity("p1") != 7 {
		t.Errorf("expected quantity 7, got %d", m.ItemQuantity("p1"))
	}

	// Unknown products are a no-op, not an insert.
	m.UpdateQuantity("ghost", 4)
	if len(m.Items()) != 1 {
		t.Errorf("expected one line, got %d", len(m.Items()))
	}
}

func TestRemoveItem(t *testing.T) {
	m := cart.NewManager(nil)
	m.AddItem(pizza(1))
	m.AddItem(cart.Line{ProductID: "p2", Name: "Cola", UnitPrice: 1.5, Quantity: 2})

	m.RemoveItem("p1")

	lines := m.Items()
	if len(lines) != 1 || lines[0].ProductID != "p2" {
		t.Errorf("expected only p2 left, got %v", lines)
	}
	if !approx(m.Subtotal(), 3.0) {
		t.Errorf("expected subtotal 3.0, got %v", m.Subtotal())
	}

	m.RemoveItem("p1") // absent, no-op
	if len(m.Items()) != 1 {
		t.Error("removing an absent line changed the cart")
	}
}

func TestClear(t *testing.T) {
	m := cart.NewManager(nil)
	m.AddItem(pizza(2))

	m.Clear()
	if !m.IsEmpty() || m.Subtotal() != 0 {
		t.Error("expected empty cart after Clear")
	}
}

func TestTotalsTrackMixedLines(t *testing.T) {
	m := cart.NewManager(nil)
	m.AddItem(cart.Line{ProductID: "a", Name: "Bread", UnitPrice: 1.25, Quantity: 4})
	m.AddItem(cart.Line{ProductID: "b", Name: "Milk", UnitPrice: 2.10, Quantity: 2})

	if m.ItemCount() != 6 {
		t.Errorf("expected count 6, got %d", m.ItemCount())
	}
	if !approx(m.Subtotal(), 1.25*4+2.10*2) {
		t.Errorf("unexpected subtotal %v", m.Subtotal())
	}
}

func TestOrderItems(t *testing.T) {
	m := cart.NewManager(nil)
	m.AddItem(pizza(2))
	m.AddItem(cart.Line{ProductID: "p2", Name: "Cola", UnitPrice: 1.5, Quantity: 1})

	items := m.OrderItems()
	if len(items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(items))
	}
	if items[0].ProductID != "p1" || items[0].Quantity != 2 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
}

func TestPersistenceAcrossManagers(t *testing.T) {
	store, err := kvstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	first := cart.NewManager(store)
	first.AddItem(pizza(2))

	second := cart.NewManager(store)
	if second.ItemQuantity("p1") != 2 {
		t.Errorf("expected persisted quantity 2, got %d", second.ItemQuantity("p1"))
	}
	if !approx(second.Subtotal(), 25.98) {
		t.Errorf("expected subtotal 25.98, got %v", second.Subtotal())
	}
}

func TestBroadcastsItemCount(t *testing.T) {
	t.Cleanup(event.Flush)

	var counts []int
	event.Listen(event.CartChanged, func(p interface{}) {
		counts = append(counts, p.(int))
	})

	m := cart.NewManager(nil)
	m.AddItem(pizza(2))
	m.UpdateQuantity("p1", 5)
	m.RemoveItem("p1")

	want := []int{2, 5, 0}
	if len(counts) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("event %d: expected %d, got %d", i, want[i], counts[i])
		}
	}
}

// A listener that reads the cart back must not deadlock the mutation.
func TestListenerMayReadCart(t *testing.T) {
	t.Cleanup(event.Flush)

	m := cart.NewManager(nil)
	var seen int
	event.Listen(event.CartChanged, func(interface{}) { seen = m.ItemCount() })

	m.AddItem(pizza(3))
	if seen != 3 {
		t.Errorf("expected listener to observe count 3, got %d", seen)
	}
}
