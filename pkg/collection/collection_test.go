package collection_test

import (
	"reflect"
	"testing"

	"github.com/shashiranjanraj/bodega/pkg/collection"
)

type item struct {
	ID    string
	Group string
	Price float64
	Qty   int
}

var items = []item{
	{ID: "a", Group: "dairy", Price: 2.5, Qty: 2},
	{ID: "b", Group: "bakery", Price: 1.0, Qty: 3},
	{ID: "c", Group: "dairy", Price: 4.0, Qty: 1},
}

func TestMap(t *testing.T) {
	ids := collection.Map(items, func(i item) string { return i.ID })
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestFilter(t *testing.T) {
	dairy := collection.Filter(items, func(i item) bool { return i.Group == "dairy" })
	if len(dairy) != 2 || dairy[0].ID != "a" || dairy[1].ID != "c" {
		t.Errorf("unexpected filter result: %v", dairy)
	}
}

func TestFirst(t *testing.T) {
	got, ok := collection.First(items, func(i item) bool { return i.Price > 3 })
	if !ok || got.ID != "c" {
		t.Errorf("expected c, got %v (ok=%t)", got, ok)
	}

	if _, ok := collection.First(items, func(i item) bool { return i.Price > 100 }); ok {
		t.Error("expected no match")
	}
}

func TestContains(t *testing.T) {
	if !collection.Contains(items, func(i item) bool { return i.ID == "b" }) {
		t.Error("expected to find b")
	}
	if collection.Contains(items, func(i item) bool { return i.ID == "z" }) {
		t.Error("did not expect z")
	}
}

func TestGroupBy(t *testing.T) {
	groups := collection.GroupBy(items, func(i item) string { return i.Group })
	if len(groups["dairy"]) != 2 || len(groups["bakery"]) != 1 {
		t.Errorf("unexpected groups: %v", groups)
	}
}

func TestSumBy(t *testing.T) {
	qty := collection.SumBy(items, func(i item) int { return i.Qty })
	if qty != 6 {
		t.Errorf("expected 6, got %d", qty)
	}

	total := collection.SumBy(items, func(i item) float64 { return i.Price * float64(i.Qty) })
	if total != 12.0 {
		t.Errorf("expected 12.0, got %v", total)
	}
}

func TestSortByDoesNotMutate(t *testing.T) {
	sorted := collection.SortBy(items, func(i item) float64 { return i.Price })
	if sorted[0].ID != "b" || sorted[2].ID != "c" {
		t.Errorf("unexpected order: %v", sorted)
	}
	if items[0].ID != "a" {
		t.Error("SortBy mutated its input")
	}
}
