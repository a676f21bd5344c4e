// Package bootstrap assembles storage, caching, metrics and the chat services
// from a loaded configuration. Both the API server and ordersctl use it.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/app"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/clock"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/config"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/metrics"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/storage/cache"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/storage/postgres"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/storage/sheets"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/migrations"
)

const startupTimeout = 10 * time.Second

type App struct {
	Config  config.Config
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
	Catalog app.CatalogRepository
	Orders  *app.OrderService
	Chat    *app.ChatService
	// Cache is nil unless REDIS_ADDR is set.
	Cache *cache.Catalog

	pool  *pgxpool.Pool
	redis *redis.Client
}

type Option func(*options)

type options struct {
	sheetsOpts []option.ClientOption
}

// WithSheetsOptions passes extra client options to the Sheets service.
func WithSheetsOptions(opts ...option.ClientOption) Option {
	return func(o *options) {
		o.sheetsOpts = append(o.sheetsOpts, opts...)
	}
}

// New connects the configured backend and builds the services on top of it.
// Call Close when done.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	var (
		catalog app.CatalogRepository
		orders  app.OrderRepository
	)
	switch cfg.StorageBackend {
	case config.BackendSheets:
		svc, err := sheets.NewService(startupCtx, cfg.ServiceAccountJSON, o.sheetsOpts...)
		if err != nil {
			return nil, err
		}
		repo, err := sheets.NewRepository(svc, cfg.SpreadsheetID)
		if err != nil {
			return nil, err
		}
		catalog, orders = repo, repo
	case config.BackendPostgres:
		pool, err := OpenPostgres(startupCtx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		catalog = postgres.NewCatalogRepository(pool)
		orders = postgres.NewOrderRepository(pool)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	backend := string(cfg.StorageBackend)
	catalog = a.Metrics.InstrumentCatalog(catalog, backend)
	orders = a.Metrics.InstrumentOrders(orders, backend)

	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(startupCtx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = rdb
		a.Cache = cache.NewCatalog(catalog, rdb,
			cache.WithTTL(cfg.CacheTTL),
			cache.WithPrefix(cachePrefix(cfg)),
			cache.WithLogger(logger.With().Str("component", "cache").Logger()),
		)
		catalog = a.Cache
		logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.CacheTTL).Msg("catalog cache enabled")
	}

	a.Catalog = catalog
	a.Orders = app.NewOrderService(orders, clock.NewSystem(cfg.Location))
	a.Chat = app.NewChatService(catalog, a.Orders,
		app.WithLogger(logger.With().Str("component", "chat").Logger()),
		app.WithObserver(a.Metrics),
	)

	logger.Info().Str("backend", backend).Msg("storage ready")
	return a, nil
}

// cachePrefix keeps two deployments sharing one Redis from reading each other's catalog.
func cachePrefix(cfg config.Config) string {
	if cfg.StorageBackend == config.BackendSheets {
		return "orders:sheets:" + cfg.SpreadsheetID
	}
	return "orders:" + string(cfg.StorageBackend)
}

// OpenPostgres connects, pings and applies pending migrations.
func OpenPostgres(ctx context.Context, databaseURL string, logger zerolog.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	applied, err := migrations.Apply(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	for _, name := range applied {
		logger.Info().Str("migration", name).Msg("migration applied")
	}
	return pool, nil
}

// Close releases connections opened by New.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("close redis")
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
