package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	const stmt = `
INSERT INTO orders (id, phone, items, total, status, order_type, address, created_at, message_sid)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9::text, ''))`

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	_, err = r.pool.Exec(ctx, stmt,
		order.ID,
		order.Phone,
		items,
		order.Total,
		string(order.Status),
		order.OrderType,
		order.Address,
		order.CreatedAt,
		order.MessageSID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderAlreadyExists
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindOrderByMessageSID(ctx context.Context, sid string) (*domain.Order, error) {
	if sid == "" {
		return nil, nil
	}

	const query = `
SELECT id, phone, items, total, status, order_type, address, created_at, message_sid
FROM orders
WHERE message_sid = $1`

	var (
		o      domain.Order
		items  []byte
		status string
	)
	err := r.pool.QueryRow(ctx, query, sid).
		Scan(&o.ID, &o.Phone, &items, &o.Total, &status, &o.OrderType, &o.Address, &o.CreatedAt, &o.MessageSID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", o.ID, err)
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}
