// Package catalog reads products, categories and stores. Reads normally hit
// the backend through the gateway with a short-lived cache in front; a local
// sqlite snapshot, refreshed by Sync, serves the same queries when the
// backend is unreachable or the caller asks for offline mode explicitly.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bodega/app/api"
	"github.com/shashiranjanraj/bodega/app/models"
	"github.com/shashiranjanraj/bodega/pkg/cache"
	"github.com/shashiranjanraj/bodega/pkg/collection"
	"github.com/shashiranjanraj/bodega/pkg/logger"
)

// listTTL is how long cached list responses stay fresh. Catalog data moves
// slowly; thirty seconds keeps repeated CLI invocations cheap without
// serving stale prices for long.
const listTTL = 30 * time.Second

// syncMeta records when the snapshot was last refreshed.
type syncMeta struct {
	ID       uint      `gorm:"primaryKey"`
	SyncedAt time.Time
}

func (syncMeta) TableName() string { return "sync_meta" }

// Service answers catalog queries.
type Service struct {
	gw *api.Gateway
	db *gorm.DB
}

// NewService wires the gateway and the snapshot database. db may be nil,
// which disables offline reads and Sync.
func NewService(gw *api.Gateway, db *gorm.DB) (*Service, error) {
	if db != nil {
		if err := db.AutoMigrate(&models.Product{}, &models.Category{}, &models.Store{}, &syncMeta{}); err != nil {
			return nil, fmt.Errorf("catalog: migrate snapshot: %w", err)
		}
	}
	return &Service{gw: gw, db: db}, nil
}

// ─── Remote reads ─────────────────────────────────────────────────────────────

// Products lists products, cache-fronted. Filters are part of the cache key
// so filtered and unfiltered views never cross.
func (s *Service) Products(ctx context.Context, f api.ProductFilters) ([]models.Product, error) {
	key := "products:" + f.CategoryID + ":" + f.StoreID + ":" + f.Search

	var out []models.Product
	if cache.Get(key, &out) {
		return out, nil
	}

	out, err := s.gw.GetProducts(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(key, out, listTTL); err != nil {
		logger.Debug("catalog: cache set failed", "key", key, "error", err)
	}
	return out, nil
}

// Product fetches one product by id. Single-item reads skip the cache.
func (s *Service) Product(ctx context.Context, id string) (*models.Product, error) {
	return s.gw.GetProduct(ctx, id)
}

// Categories lists categories, cache-fronted.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if cache.Get("categories", &out) {
		return out, nil
	}

	out, err := s.gw.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.Set("categories", out, listTTL); err != nil {
		logger.Debug("catalog: cache set failed", "key", "categories", "error", err)
	}
	return out, nil
}

// Stores lists stores, cache-fronted.
func (s *Service) Stores(ctx context.Context) ([]models.Store, error) {
	var out []models.Store
	if cache.Get("stores", &out) {
		return out, nil
	}

	out, err := s.gw.GetStores(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.Set("stores", out, listTTL); err != nil {
		logger.Debug("catalog: cache set failed", "key", "stores", "error", err)
	}
	return out, nil
}

// ─── Snapshot ─────────────────────────────────────────────────────────────────

// ErrNoSnapshot means offline mode was requested but Sync has never run.
var ErrNoSnapshot = fmt.Errorf("catalog: no local snapshot, run sync first")

// Sync pulls the full catalog into the local sqlite snapshot, replacing
// whatever was there. The three tables swap atomically inside one
// transaction so a failed pull never leaves a half-written snapshot.
func (s *Service) Sync(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("catalog: snapshot database not configured")
	}

	products, err := s.gw.GetProducts(ctx, api.ProductFilters{})
	if err != nil {
		return fmt.Errorf("catalog: sync products: %w", err)
	}
	categories, err := s.gw.GetCategories(ctx)
	if err != nil {
		return fmt.Errorf("catalog: sync categories: %w", err)
	}
	stores, err := s.gw.GetStores(ctx)
	if err != nil {
		return fmt.Errorf("catalog: sync stores: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Product{}, &models.Category{}, &models.Store{}, &syncMeta{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return err
			}
		}
		if len(categories) > 0 {
			if err := tx.Create(&categories).Error; err != nil {
				return err
			}
		}
		if len(stores) > 0 {
			if err := tx.Create(&stores).Error; err != nil {
				return err
			}
		}
		return tx.Create(&syncMeta{ID: 1, SyncedAt: time.Now().UTC()}).Error
	})
	if err != nil {
		return fmt.Errorf("catalog: write snapshot: %w", err)
	}

	cache.Flush()
	logger.Info("catalog: snapshot refreshed",
		"products", len(products), "categories", len(categories), "stores", len(stores))
	return nil
}

// LastSync reports when the snapshot was last refreshed. Zero time and false
// when no snapshot exists.
func (s *Service) LastSync() (time.Time, bool) {
	if s.db == nil {
		return time.Time{}, false
	}
	var meta syncMeta
	if err := s.db.First(&meta, 1).Error; err != nil {
		return time.Time{}, false
	}
	return meta.SyncedAt, true
}

// OfflineProducts answers a product query from the snapshot. Category and
// store narrowing happen in sqlite; search matches name or description
// case-insensitively in memory, mirroring the backend's behavior.
func (s *Service) OfflineProducts(f api.ProductFilters) ([]models.Product, error) {
	if err := s.requireSnapshot(); err != nil {
		return nil, err
	}

	q := s.db.Model(&models.Product{})
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.StoreID != "" {
		q = q.Where("store_id = ?", f.StoreID)
	}

	var out []models.Product
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("catalog: read snapshot: %w", err)
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		out = collection.Filter(out, func(p models.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle)
		})
	}

	// sqlite returns insertion order; offline listings sort by name so the
	// snapshot reads the way the backend presents the catalog.
	return collection.SortBy(out, func(p models.Product) string { return p.Name }), nil
}

// OfflineProduct fetches one product from the snapshot.
func (s *Service) OfflineProduct(id string) (*models.Product, error) {
	if err := s.requireSnapshot(); err != nil {
		return nil, err
	}
	var out models.Product
	if err := s.db.First(&out, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("catalog: product %s not in snapshot", id)
	}
	return &out, nil
}

// OfflineCategories lists categories from the snapshot.
func (s *Service) OfflineCategories() ([]models.Category, error) {
	if err := s.requireSnapshot(); err != nil {
		return nil, err
	}
	var out []models.Category
	if err := s.db.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("catalog: read snapshot: %w", err)
	}
	return collection.SortBy(out, func(c models.Category) string { return c.Name }), nil
}

// OfflineStores lists stores from the snapshot.
func (s *Service) OfflineStores() ([]models.Store, error) {
	if err := s.requireSnapshot(); err != nil {
		return nil, err
	}
	var out []models.Store
	if err := s.db.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("catalog: read snapshot: %w", err)
	}
	return collection.SortBy(out, func(st models.Store) string { return st.Name }), nil
}

func (s *Service) requireSnapshot() error {
	if s.db == nil {
		return fmt.Errorf("catalog: snapshot database not configured")
	}
	var meta syncMeta
	if err := s.db.First(&meta, 1).Error; err != nil {
		return ErrNoSnapshot
	}
	return nil
}
