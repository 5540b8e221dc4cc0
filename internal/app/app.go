// Package app assembles the stores, services and sync engine from configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/xelth-com/goodstrack/internal/config"
	"github.com/xelth-com/goodstrack/internal/database"
	"github.com/xelth-com/goodstrack/internal/middleware"
	"github.com/xelth-com/goodstrack/internal/remote"
	"github.com/xelth-com/goodstrack/internal/services/parcels"
	"github.com/xelth-com/goodstrack/internal/services/reports"
	"github.com/xelth-com/goodstrack/internal/services/users"
	"github.com/xelth-com/goodstrack/internal/store"
	"github.com/xelth-com/goodstrack/internal/sync"
	"github.com/xelth-com/goodstrack/internal/utils"
	"go.uber.org/zap"
)

// App holds the wired components
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Local   *store.Store
	Remote  *remote.Adapter
	Parcels *parcels.Service
	Users   *users.Service
	Reports *reports.Service
	Sync    *sync.Engine

	db *database.DB
}

// New opens the local store and, when configured, the remote database.
// A remote that cannot be reached is logged and left unconfigured.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	backend, err := store.OpenBackend(cfg.Local)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	local := store.New(backend, cfg.Local.KeyPrefix, log)

	a := &App{Config: cfg, Logger: log, Local: local}

	var opts []remote.Option
	if cfg.Sync != nil && cfg.Sync.RemoteTimeout > 0 {
		opts = append(opts, remote.WithTimeout(time.Duration(cfg.Sync.RemoteTimeout)*time.Second))
	}

	if cfg.Database.IsConfigured() {
		db, err := database.Connect(cfg.Database, log)
		if err != nil {
			log.Warn("⚠️ Remote backend unavailable, running local-only", zap.Error(err))
		} else {
			a.db = db
			a.Remote = remote.New(db.DB, log, opts...)
		}
	} else {
		log.Info("Remote backend not configured, running local-only")
	}
	if a.Remote == nil {
		a.Remote = remote.New(nil, log)
	}

	if cfg.Database.Migrate {
		if err := a.Remote.Migrate(ctx); err != nil {
			log.Warn("⚠️ Migration warning", zap.Error(err))
		}
	}

	refs := utils.NewReferenceGenerator(cfg.ReferencePrefix, local, nil)
	a.Parcels = parcels.NewService(local, a.Remote, refs, middleware.ContextAuthenticator{}, log)
	a.Users = users.NewService(local, a.Remote, log)
	a.Reports = reports.NewService(a.Parcels)
	a.Sync = sync.NewEngine(local, a.Remote, cfg.Sync, log)
	return a, nil
}

// Close stops the sync engine and releases the stores
func (a *App) Close() {
	a.Sync.Stop()
	if a.db != nil {
		a.Logger.Info("🛑 Closing database connection")
		if err := a.db.Close(); err != nil {
			a.Logger.Error("Database close error", zap.Error(err))
		}
	}
	if err := a.Local.Close(); err != nil {
		a.Logger.Error("Local store close error", zap.Error(err))
	}
}
