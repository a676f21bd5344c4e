package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) GetBusinessConfig(ctx context.Context) (*domain.BusinessConfig, error) {
	const query = `
SELECT business_name, order_mode, currency_symbol, hours, address, menu_page_size
FROM business_config
WHERE id = 1`

	var (
		cfg      domain.BusinessConfig
		mode     string
		pageSize int
	)
	err := r.pool.QueryRow(ctx, query).
		Scan(&cfg.BusinessName, &mode, &cfg.CurrencySymbol, &cfg.Hours, &cfg.Address, &pageSize)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business config: %w", err)
	}
	cfg.OrderMode = domain.ParseOrderMode(mode)
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = domain.DefaultCurrencySymbol
	}
	cfg.MenuPageSize = pageSize
	if cfg.MenuPageSize <= 0 {
		cfg.MenuPageSize = domain.DefaultMenuPageSize
	}
	return &cfg, nil
}

func (r *CatalogRepository) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	const query = `
SELECT product_id, TRIM(number), TRIM(name), price
FROM products
WHERE active
ORDER BY position`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) {
		var p domain.Product
		err := row.Scan(&p.ProductID, &p.Number, &p.Name, &p.Price)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	return products, nil
}
