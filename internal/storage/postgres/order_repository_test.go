package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/testutil"
)

func TestOrderRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewOrderRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	newOrder := func(id, sid string) domain.Order {
		return domain.Order{
			ID:         id,
			Phone:      "whatsapp:+5215550000",
			Items:      []domain.OrderItem{{ProductID: "p-1", Name: "Taco", Qty: 2, Price: 18}},
			Total:      36,
			Status:     domain.OrderStatusNew,
			CreatedAt:  time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
			MessageSID: sid,
		}
	}

	t.Run("CreateOrder persists and FindOrderByMessageSID returns it", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if err := repo.CreateOrder(ctx, newOrder("1735812000", "SM1")); err != nil {
			t.Fatalf("create order: %v", err)
		}

		found, err := repo.FindOrderByMessageSID(ctx, "SM1")
		if err != nil {
			t.Fatalf("find order: %v", err)
		}
		if found == nil {
			t.Fatalf("expected order, got nil")
		}
		if found.ID != "1735812000" || found.Total != 36 || found.Status != domain.OrderStatusNew {
			t.Fatalf("unexpected order: %+v", found)
		}
		if len(found.Items) != 1 || found.Items[0].Qty != 2 {
			t.Fatalf("unexpected items: %+v", found.Items)
		}
		if !found.CreatedAt.Equal(time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected created_at: %v", found.CreatedAt)
		}
	})

	t.Run("duplicate message sid returns ErrOrderAlreadyExists", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if err := repo.CreateOrder(ctx, newOrder("1", "SM2")); err != nil {
			t.Fatalf("create order: %v", err)
		}
		err := repo.CreateOrder(ctx, newOrder("2", "SM2"))
		if err != domain.ErrOrderAlreadyExists {
			t.Fatalf("expected ErrOrderAlreadyExists, got %v", err)
		}
	})

	t.Run("orders without message sid never conflict", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		for _, id := range []string{"1", "1"} {
			if err := repo.CreateOrder(ctx, newOrder(id, "")); err != nil {
				t.Fatalf("create order: %v", err)
			}
		}

		found, err := repo.FindOrderByMessageSID(ctx, "")
		if err != nil || found != nil {
			t.Fatalf("expected nil lookup for empty sid, got %+v, %v", found, err)
		}
	})

	t.Run("missing sid returns nil", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		found, err := repo.FindOrderByMessageSID(ctx, "SM-missing")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found != nil {
			t.Fatalf("expected nil, got %+v", found)
		}
	})
}
