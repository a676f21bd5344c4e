package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
)

// memoryRedis implements the handful of commands Catalog issues.
type memoryRedis struct {
	redis.Cmdable
	data    map[string]string
	ttls    map[string]time.Duration
	failAll bool
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if m.failAll {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if m.failAll {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	m.data[key] = value.(string)
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type countingCatalog struct {
	cfg           *domain.BusinessConfig
	products      []domain.Product
	err           error
	configCalls   int
	productsCalls int
}

func (c *countingCatalog) GetBusinessConfig(context.Context) (*domain.BusinessConfig, error) {
	c.configCalls++
	return c.cfg, c.err
}

func (c *countingCatalog) ListActiveProducts(context.Context) ([]domain.Product, error) {
	c.productsCalls++
	return c.products, c.err
}

func TestCatalog_ReadThrough(t *testing.T) {
	t.Parallel()

	backend := &countingCatalog{
		cfg:      &domain.BusinessConfig{BusinessName: "Shop", CurrencySymbol: "$", MenuPageSize: 8},
		products: []domain.Product{{ProductID: "p-1", Number: "2001", Name: "Taco", Price: 18}},
	}
	rdb := newMemoryRedis()
	c := NewCatalog(backend, rdb, WithTTL(30*time.Second), WithPrefix("sheet-1"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cfg, err := c.GetBusinessConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Shop", cfg.BusinessName)

		products, err := c.ListActiveProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, backend.products, products)
	}

	assert.Equal(t, 1, backend.configCalls)
	assert.Equal(t, 1, backend.productsCalls)
	assert.Equal(t, 30*time.Second, rdb.ttls["sheet-1:catalog:products"])

	require.NoError(t, c.Invalidate(ctx))
	_, err := c.ListActiveProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.productsCalls)
}

func TestCatalog_CachesMissingConfig(t *testing.T) {
	t.Parallel()

	backend := &countingCatalog{}
	c := NewCatalog(backend, newMemoryRedis())

	for i := 0; i < 2; i++ {
		cfg, err := c.GetBusinessConfig(context.Background())
		require.NoError(t, err)
		assert.Nil(t, cfg)
	}
	assert.Equal(t, 1, backend.configCalls)
}

func TestCatalog_RedisDownFallsThrough(t *testing.T) {
	t.Parallel()

	backend := &countingCatalog{cfg: &domain.BusinessConfig{BusinessName: "Shop"}}
	rdb := newMemoryRedis()
	rdb.failAll = true
	c := NewCatalog(backend, rdb)

	for i := 0; i < 2; i++ {
		cfg, err := c.GetBusinessConfig(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Shop", cfg.BusinessName)
	}
	assert.Equal(t, 2, backend.configCalls)
}

func TestCatalog_BackendErrorNotCached(t *testing.T) {
	t.Parallel()

	backend := &countingCatalog{err: errors.New("quota exceeded")}
	rdb := newMemoryRedis()
	c := NewCatalog(backend, rdb)

	_, err := c.ListActiveProducts(context.Background())
	require.Error(t, err)
	assert.Empty(t, rdb.data)
}

func TestNewClient_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb, err := NewClient(context.Background(), Config{Addr: addr})
	if err != nil {
		t.Skipf("skipping Redis integration test: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })

	backend := &countingCatalog{products: []domain.Product{{ProductID: "p-1", Number: "1", Name: "Uno", Price: 1}}}
	c := NewCatalog(backend, rdb, WithPrefix("test-"+time.Now().Format("150405.000000")))
	ctx := context.Background()
	t.Cleanup(func() { _ = c.Invalidate(context.Background()) })

	for i := 0; i < 2; i++ {
		products, err := c.ListActiveProducts(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
	}
	assert.Equal(t, 1, backend.productsCalls)
}
