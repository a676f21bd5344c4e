package metrics

import (
	"context"
	"time"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/app"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
)

type instrumentedCatalog struct {
	next    app.CatalogRepository
	m       *Metrics
	backend string
}

// InstrumentCatalog times every catalog call under the given backend label.
func (m *Metrics) InstrumentCatalog(next app.CatalogRepository, backend string) app.CatalogRepository {
	return &instrumentedCatalog{next: next, m: m, backend: backend}
}

func (c *instrumentedCatalog) GetBusinessConfig(ctx context.Context) (cfg *domain.BusinessConfig, err error) {
	defer func(start time.Time) { c.m.observeStorage(c.backend, "get_business_config", start, err) }(time.Now())
	return c.next.GetBusinessConfig(ctx)
}

func (c *instrumentedCatalog) ListActiveProducts(ctx context.Context) (products []domain.Product, err error) {
	defer func(start time.Time) { c.m.observeStorage(c.backend, "list_products", start, err) }(time.Now())
	return c.next.ListActiveProducts(ctx)
}

type instrumentedOrders struct {
	next    app.OrderRepository
	m       *Metrics
	backend string
}

// InstrumentOrders times every order storage call under the given backend label.
func (m *Metrics) InstrumentOrders(next app.OrderRepository, backend string) app.OrderRepository {
	return &instrumentedOrders{next: next, m: m, backend: backend}
}

func (o *instrumentedOrders) FindOrderByMessageSID(ctx context.Context, sid string) (order *domain.Order, err error) {
	defer func(start time.Time) { o.m.observeStorage(o.backend, "find_order", start, err) }(time.Now())
	return o.next.FindOrderByMessageSID(ctx, sid)
}

func (o *instrumentedOrders) CreateOrder(ctx context.Context, order domain.Order) (err error) {
	defer func(start time.Time) { o.m.observeStorage(o.backend, "create_order", start, err) }(time.Now())
	return o.next.CreateOrder(ctx, order)
}
