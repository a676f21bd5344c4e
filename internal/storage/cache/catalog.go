// Package cache fronts a catalog repository with Redis so that every WhatsApp
// message does not cost a round trip to the spreadsheet or database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/app"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
)

const (
	DefaultTTL  = 60 * time.Second
	configKey   = "catalog:business_config"
	productsKey = "catalog:products"
	// missingConfig marks a cached "no config row" so an unconfigured shop is not re-read every message.
	missingConfig = "null"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects to Redis and pings it once.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// Catalog is a read-through cache over another CatalogRepository. Redis failures are
// logged and fall through to the wrapped repository.
type Catalog struct {
	next   app.CatalogRepository
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
	logger zerolog.Logger
}

type Option func(*Catalog)

func WithTTL(ttl time.Duration) Option {
	return func(c *Catalog) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPrefix namespaces keys, e.g. per spreadsheet.
func WithPrefix(prefix string) Option {
	return func(c *Catalog) {
		c.prefix = prefix
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Catalog) {
		c.logger = l
	}
}

func NewCatalog(next app.CatalogRepository, rdb redis.Cmdable, opts ...Option) *Catalog {
	c := &Catalog{
		next:   next,
		rdb:    rdb,
		ttl:    DefaultTTL,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) GetBusinessConfig(ctx context.Context) (*domain.BusinessConfig, error) {
	raw, ok := c.get(ctx, configKey)
	if ok {
		if raw == missingConfig {
			return nil, nil
		}
		var cfg domain.BusinessConfig
		if err := json.Unmarshal([]byte(raw), &cfg); err == nil {
			return &cfg, nil
		}
	}

	cfg, err := c.next.GetBusinessConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		c.set(ctx, configKey, missingConfig)
		return nil, nil
	}
	c.setJSON(ctx, configKey, cfg)
	return cfg, nil
}

func (c *Catalog) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	if raw, ok := c.get(ctx, productsKey); ok {
		var products []domain.Product
		if err := json.Unmarshal([]byte(raw), &products); err == nil {
			return products, nil
		}
	}

	products, err := c.next.ListActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	c.setJSON(ctx, productsKey, products)
	return products, nil
}

// Invalidate drops cached catalog entries so the next read hits the backend.
func (c *Catalog) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, c.key(configKey), c.key(productsKey)).Err()
}

func (c *Catalog) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func (c *Catalog) get(ctx context.Context, k string) (string, bool) {
	raw, err := c.rdb.Get(ctx, c.key(k)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", k).Msg("cache get failed")
		}
		return "", false
	}
	return raw, true
}

func (c *Catalog) setJSON(ctx context.Context, k string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", k).Msg("cache encode failed")
		return
	}
	c.set(ctx, k, string(b))
}

func (c *Catalog) set(ctx context.Context, k, v string) {
	if err := c.rdb.Set(ctx, c.key(k), v, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", k).Msg("cache set failed")
	}
}
