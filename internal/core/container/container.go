package container

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/config"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/database"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/integrations/googlesheets"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/integrations/minio"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/integrations/mongodb"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/consumption"
	inventorylog "github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/inventory_log"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/ledger"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/receipts"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/reports"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/middleware"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/rate_limiter"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/repository"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/scheduler"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/cache"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/memory"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/postgres"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store/supabase"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Store       store.Store
	Reports     *reports.Service
	Importer    *googlesheets.ItemImporter
	Scheduler   *scheduler.Scheduler
	RateLimiter *rate_limiter.RateLimiter
	Checks      map[string]middleware.Checker

	ReceiptHandler     *receipts.ReceiptHandler
	ConsumptionHandler *consumption.ConsumptionHandler
	LedgerHandler      *ledger.LedgerHandler
	ReportHandler      *reports.ReportHandler
	TransactionHandler *inventorylog.TransactionHandler
	// ImportHandler and SnapshotHandler are nil when their backends are
	// not configured.
	ImportHandler   *googlesheets.GoogleSheetsHandler
	SnapshotHandler *mongodb.SnapshotHandler

	closers []func(context.Context) error
}

// NewAppContainer connects the configured store and the optional
// integrations, then builds the services and handlers on top of them.
func NewAppContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Checks: map[string]middleware.Checker{},
	}

	if err := c.openStore(ctx); err != nil {
		c.Close(ctx)
		return nil, err
	}
	if err := c.openIntegrations(ctx); err != nil {
		c.Close(ctx)
		return nil, err
	}

	c.RateLimiter = rate_limiter.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	c.closers = append(c.closers, func(context.Context) error {
		c.RateLimiter.Stop()
		return nil
	})

	c.ReceiptHandler = receipts.NewReceiptHandler(receipts.NewService(c.Store, logger))
	c.ConsumptionHandler = consumption.NewConsumptionHandler(consumption.NewService(c.Store, logger))
	c.LedgerHandler = ledger.NewLedgerHandler(c.Store, logger)
	c.ReportHandler = reports.NewReportHandler(c.Reports)
	c.TransactionHandler = inventorylog.NewTransactionHandler(c.Store, logger)

	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	var base store.Store
	switch c.Config.Store.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgresConnection(ctx, c.Config.Database.URL)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, closeDB(db))
		base = postgres.NewStore(repository.NewRepository(db), c.Logger)
	case config.DriverSupabase:
		base = supabase.NewStore(c.Config.Supabase, c.Logger)
	default:
		base = memory.NewSampleStore()
	}
	c.Logger.Info("Store selected", zap.String("driver", c.Config.Store.Driver))

	if pinger, ok := base.(store.Pinger); ok {
		c.Checks["store"] = pinger
	}

	c.Store = base
	if c.Config.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		c.closers = append(c.closers, func(context.Context) error { return rdb.Close() })

		redisCache := cache.NewRedisCache(rdb)
		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		c.Checks["redis"] = redisCache
		c.Store = cache.NewStore(base, redisCache, c.Config.Redis.TTL, c.Logger)
	}

	c.Reports = reports.NewService(c.Store, c.Logger)
	return nil
}

func (c *Container) openIntegrations(ctx context.Context) error {
	if c.Config.Sheets.SpreadsheetID != "" {
		target, ok := c.Store.(store.ItemImporter)
		if !ok {
			return errors.New("store does not support item import")
		}
		client, err := googlesheets.NewClient(ctx, c.Config.Sheets.CredentialsJSON, c.Logger)
		if err != nil {
			return err
		}
		c.Importer = googlesheets.NewItemImporter(client, target, c.Config.Sheets, c.Logger)
		c.ImportHandler = googlesheets.NewGoogleSheetsHandler(c.Importer)
	}

	var snapshots scheduler.SnapshotSaver
	if c.Config.MongoDB.URI != "" {
		repo, err := mongodb.NewMongoDBRepository(ctx, c.Config.MongoDB.URI, c.Config.MongoDB.DBName)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, repo.Close)
		c.Checks["mongodb"] = repo
		c.SnapshotHandler = mongodb.NewSnapshotHandler(repo)
		snapshots = repo
	}

	var archive scheduler.Archiver
	if c.Config.MinIO.Endpoint != "" {
		reportArchive, err := minio.NewReportArchive(c.Config.MinIO, c.Logger)
		if err != nil {
			return err
		}
		if err := reportArchive.EnsureBucket(ctx); err != nil {
			return err
		}
		archive = reportArchive
	}

	sched, err := scheduler.NewScheduler(c.Config.Snapshot, c.Store, c.Reports, snapshots, archive, c.Logger.Named("scheduler"))
	if err != nil {
		return err
	}
	c.Scheduler = sched
	return nil
}

// Close releases connections in reverse order of opening.
func (c *Container) Close(ctx context.Context) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			c.Logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
	c.closers = nil
}

func closeDB(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}
