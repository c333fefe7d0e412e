// Package app is the composition root. It loads configuration, opens the
// data directory and the snapshot database, selects the cache driver and
// wires the gateway, session, cart, locale, theme and catalog layers
// together in dependency order.
package app

import (
	"fmt"

	"github.com/shashiranjanraj/bodega/app/api"
	"github.com/shashiranjanraj/bodega/app/cart"
	"github.com/shashiranjanraj/bodega/app/catalog"
	"github.com/shashiranjanraj/bodega/app/locale"
	"github.com/shashiranjanraj/bodega/app/session"
	"github.com/shashiranjanraj/bodega/app/theme"
	"github.com/shashiranjanraj/bodega/config"
	"github.com/shashiranjanraj/bodega/pkg/cache"
	"github.com/shashiranjanraj/bodega/pkg/database"
	"github.com/shashiranjanraj/bodega/pkg/kvstore"
	"github.com/shashiranjanraj/bodega/pkg/logger"
)

// App bundles every wired manager. Commands pull what they need from it.
type App struct {
	Store   *kvstore.Store
	Gateway *api.Gateway
	Session *session.Manager
	Cart    *cart.Manager
	Locale  *locale.Manager
	Theme   *theme.Manager
	Catalog *catalog.Service
}

// Boot builds the fully wired App. The session manager and the gateway
// reference each other, so the gateway is constructed anonymous and the
// token source is injected after the session manager exists.
func Boot() (*App, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("app: load config: %w", err)
	}

	store, err := kvstore.Open(config.DataDir())
	if err != nil {
		return nil, fmt.Errorf("app: open data dir: %w", err)
	}

	if config.CacheDriver() == "redis" {
		driver, err := cache.NewRedisDriver(config.RedisAddr(), config.RedisPassword())
		if err != nil {
			// A dead redis should not strand the CLI; fall back to memory.
			logger.Warn("app: redis cache unavailable, using memory driver", "error", err)
		} else {
			cache.Use(driver)
		}
	}

	db, err := database.Open(config.DatabasePath())
	if err != nil {
		// Offline snapshot is best-effort; remote reads still work.
		logger.Warn("app: snapshot database unavailable", "error", err)
		db = nil
	}

	gw := api.New(config.APIBaseURL(), nil, config.HTTPTimeout())
	sess := session.NewManager(store, gw)
	gw.SetTokenSource(sess)

	cat, err := catalog.NewService(gw, db)
	if err != nil {
		return nil, fmt.Errorf("app: init catalog: %w", err)
	}

	return &App{
		Store:   store,
		Gateway: gw,
		Session: sess,
		Cart:    cart.NewManager(store),
		Locale:  locale.NewManager(store, config.DefaultLanguage()),
		Theme:   theme.NewManager(store, config.DefaultTheme()),
		Catalog: cat,
	}, nil
}
