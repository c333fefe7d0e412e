package catalog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shashiranjanraj/bodega/app/api"
	"github.com/shashiranjanraj/bodega/app/catalog"
	"github.com/shashiranjanraj/bodega/pkg/cache"
	"github.com/shashiranjanraj/bodega/pkg/database"
	"github.com/shashiranjanraj/bodega/pkg/testkit"
	"gorm.io/gorm"
)

const base = "https://backend.test"

const productsBody = `[
  {"id":"p1","name":"Pizza Margherita","description":"Wood-fired","price":12.99,"category_id":"c1","store_id":"s1","in_stock":true},
  {"id":"p2","name":"Cola","description":"Cold drink","price":1.50,"category_id":"c2","store_id":"s1","in_stock":true}
]`

func newService(t *testing.T, withDB bool) *catalog.Service {
	t.Helper()
	t.Cleanup(cache.Flush)

	var db *gorm.DB
	if withDB {
		var err error
		db, err = database.Open(filepath.Join(t.TempDir(), "catalog.db"))
		if err != nil {
			t.Fatalf("open snapshot db: %v", err)
		}
	}

	gw := api.New(base, nil, time.Second)
	svc, err := catalog.NewService(gw, db)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestProductsAreCached(t *testing.T) {
	svc := newService(t, false)
	st := testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/products", Body: productsBody},
	)

	first, err := svc.Products(context.Background(), api.ProductFilters{})
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	second, err := svc.Products(context.Background(), api.ProductFilters{})
	if err != nil {
		t.Fatalf("products (cached): %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Errorf("unexpected result sizes: %d, %d", len(first), len(second))
	}
	if n := st.CallCount("GET", "/api/products"); n != 1 {
		t.Errorf("expected one backend call, got %d", n)
	}
}

func TestFilteredAndUnfilteredViewsDoNotShareCacheEntries(t *testing.T) {
	svc := newService(t, false)
	st := testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/products", Body: productsBody},
	)

	if _, err := svc.Products(context.Background(), api.ProductFilters{}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Products(context.Background(), api.ProductFilters{Search: "pizza"}); err != nil {
		t.Fatal(err)
	}

	if n := st.CallCount("GET", "/api/products"); n != 2 {
		t.Errorf("expected two backend calls, got %d", n)
	}
}

func TestOfflineBeforeSync(t *testing.T) {
	svc := newService(t, true)

	_, err := svc.OfflineProducts(api.ProductFilters{})
	if !errors.Is(err, catalog.ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
	if _, ok := svc.LastSync(); ok {
		t.Error("expected no sync timestamp before first sync")
	}
}

func TestSyncAndOfflineReads(t *testing.T) {
	svc := newService(t, true)
	testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/products", Body: productsBody},
		testkit.Stub{Method: "GET", Path: "/api/categories",
			Body: `[{"id":"c1","name":"Food"},{"id":"c2","name":"Drinks"}]`},
		testkit.Stub{Method: "GET", Path: "/api/stores",
			Body: `[{"id":"s1","name":"Central","address":"Av. Amazonas"}]`},
	)

	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if _, ok := svc.LastSync(); !ok {
		t.Error("expected a sync timestamp")
	}

	products, err := svc.OfflineProducts(api.ProductFilters{})
	if err != nil {
		t.Fatalf("offline products: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("expected 2 products, got %d", len(products))
	}
	// Offline listings come back name-sorted regardless of insertion order.
	if products[0].ID != "p2" || products[1].ID != "p1" {
		t.Errorf("expected Cola before Pizza Margherita, got %v", products)
	}

	// Category narrowing happens in sqlite.
	drinks, err := svc.OfflineProducts(api.ProductFilters{CategoryID: "c2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(drinks) != 1 || drinks[0].ID != "p2" {
		t.Errorf("unexpected category filter result: %v", drinks)
	}

	// Search matches name or description, case-insensitively.
	matches, err := svc.OfflineProducts(api.ProductFilters{Search: "PIZZA"})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].ID != "p1" {
		t.Errorf("unexpected search result: %v", matches)
	}

	p, err := svc.OfflineProduct("p1")
	if err != nil {
		t.Fatalf("offline product: %v", err)
	}
	if p.Name != "Pizza Margherita" {
		t.Errorf("unexpected product: %+v", p)
	}

	categories, err := svc.OfflineCategories()
	if err != nil || len(categories) != 2 {
		t.Errorf("unexpected categories: %v (err=%v)", categories, err)
	}
	stores, err := svc.OfflineStores()
	if err != nil || len(stores) != 1 {
		t.Errorf("unexpected stores: %v (err=%v)", stores, err)
	}
}

func TestSyncReplacesSnapshot(t *testing.T) {
	svc := newService(t, true)
	testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/products", Body: productsBody},
		testkit.Stub{Method: "GET", Path: "/api/categories", Body: `[]`},
		testkit.Stub{Method: "GET", Path: "/api/stores", Body: `[]`},
	)
	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/products",
			Body: `[{"id":"p9","name":"Empanada","price":2.0,"category_id":"c1","store_id":"s1","in_stock":true}]`},
		testkit.Stub{Method: "GET", Path: "/api/categories", Body: `[]`},
		testkit.Stub{Method: "GET", Path: "/api/stores", Body: `[]`},
	)
	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	products, err := svc.OfflineProducts(api.ProductFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0].ID != "p9" {
		t.Errorf("expected snapshot replaced, got %v", products)
	}
}

func TestSyncFailureLeavesSnapshotUntouched(t *testing.T) {
	svc := newService(t, true)
	testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/products", Body: productsBody},
		testkit.Stub{Method: "GET", Path: "/api/categories", Body: `[]`},
		testkit.Stub{Method: "GET", Path: "/api/stores", Body: `[]`},
	)
	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/products", Fail: true},
	)
	if err := svc.Sync(context.Background()); err == nil {
		t.Fatal("expected sync to fail")
	}

	products, err := svc.OfflineProducts(api.ProductFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 2 {
		t.Errorf("failed sync must keep the old snapshot, got %v", products)
	}
}
