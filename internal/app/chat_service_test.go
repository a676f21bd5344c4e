package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
)

func TestChatService_HandleMessage(t *testing.T) {
	t.Parallel()

	cfg := &domain.BusinessConfig{
		BusinessName:   "Tacos Don Pepe",
		CurrencySymbol: "$",
		MenuPageSize:   8,
	}
	products := []domain.Product{
		{ProductID: "p-1", Number: "2001", Name: "Taco al pastor", Price: 18},
		{ProductID: "p-2", Number: "2002", Name: "Agua fresca", Price: 22.5},
	}

	tests := []struct {
		name       string
		body       string
		cfg        *domain.BusinessConfig
		products   []domain.Product
		placeRes   PlaceOrderResult
		placeErr   error
		wantText   string
		wantIntent Intent
		wantPlaced bool
	}{
		{
			name:       "missing config",
			body:       "hola",
			cfg:        nil,
			wantText:   msgConfigError,
			wantIntent: IntentConfigError,
		},
		{
			name:       "greeting lists menu",
			body:       "  Hola ",
			cfg:        cfg,
			products:   products,
			wantText:   "👋 Hola, bienvenido a Tacos Don Pepe.\n\nEsto es lo que tenemos hoy:\n\n- Taco al pastor — $18.0\n- Agua fresca — $22.5\n\nPara ordenar, escribe por ejemplo: 2001 x 2",
			wantIntent: IntentMenu,
		},
		{
			name:       "menu without products",
			body:       "MENU",
			cfg:        cfg,
			wantText:   msgNoProducts,
			wantIntent: IntentMenu,
		},
		{
			name:       "invalid quantity",
			body:       "2001 x 0",
			cfg:        cfg,
			products:   products,
			wantText:   msgInvalidQuantity,
			wantIntent: IntentOrder,
		},
		{
			name:       "invalid format",
			body:       "2001 x muchos",
			cfg:        cfg,
			products:   products,
			wantText:   msgInvalidFormat,
			wantIntent: IntentOrder,
		},
		{
			name:       "unknown product",
			body:       "9999 x 1",
			cfg:        cfg,
			products:   products,
			wantText:   msgProductNotFound,
			wantIntent: IntentOrder,
		},
		{
			name:     "order placed",
			body:     "2002 X 3",
			cfg:      cfg,
			products: products,
			placeRes: PlaceOrderResult{
				Order: domain.Order{
					ID:    "1735812000",
					Items: []domain.OrderItem{{ProductID: "p-2", Name: "Agua fresca", Qty: 3, Price: 22.5}},
					Total: 67.5,
				},
				Created: true,
			},
			wantText:   "✅ ¡Pedido recibido!\n3 x Agua fresca\nTotal: $67.5\nPedido: #1735812000\n\nTe avisaremos cuando esté listo 🙌",
			wantIntent: IntentOrder,
			wantPlaced: true,
		},
		{
			name:       "order storage failure",
			body:       "2001 x 1",
			cfg:        cfg,
			products:   products,
			placeErr:   errors.New("append failed"),
			wantText:   msgOrderError,
			wantIntent: IntentError,
			wantPlaced: true,
		},
		{
			name:       "fallback help",
			body:       "gracias",
			cfg:        cfg,
			wantText:   msgHelp,
			wantIntent: IntentHelp,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			catalog := &stubCatalog{cfg: tt.cfg, products: tt.products}
			placer := &stubOrderPlacer{result: tt.placeRes, err: tt.placeErr}
			obs := &recordingObserver{}
			svc := NewChatService(catalog, placer, WithObserver(obs))

			reply, err := svc.HandleMessage(context.Background(), Message{
				Body:       tt.body,
				From:       "whatsapp:+5215550000",
				MessageSID: "SM1",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, reply.Text)
			assert.Equal(t, tt.wantIntent, reply.Intent)
			assert.Equal(t, []Intent{tt.wantIntent}, obs.intents)

			if tt.wantPlaced {
				require.Len(t, placer.calls, 1)
				assert.Equal(t, "whatsapp:+5215550000", placer.calls[0].Phone)
				assert.Equal(t, "SM1", placer.calls[0].MessageSID)
			} else {
				assert.Empty(t, placer.calls)
			}
		})
	}
}

func TestChatService_CatalogFailures(t *testing.T) {
	t.Parallel()

	t.Run("config read error", func(t *testing.T) {
		svc := NewChatService(&stubCatalog{cfgErr: errors.New("quota exceeded")}, &stubOrderPlacer{})

		reply, err := svc.HandleMessage(context.Background(), Message{Body: "hola"})
		require.Error(t, err)
		assert.Equal(t, msgOrderError, reply.Text)
		assert.Equal(t, IntentError, reply.Intent)
	})

	t.Run("products read error on menu", func(t *testing.T) {
		catalog := &stubCatalog{
			cfg:         &domain.BusinessConfig{BusinessName: "Shop", CurrencySymbol: "$", MenuPageSize: 8},
			productsErr: errors.New("timeout"),
		}
		svc := NewChatService(catalog, &stubOrderPlacer{})

		reply, err := svc.HandleMessage(context.Background(), Message{Body: "menu"})
		require.Error(t, err)
		assert.Equal(t, msgOrderError, reply.Text)
	})

	t.Run("products read error on order is answered", func(t *testing.T) {
		catalog := &stubCatalog{
			cfg:         &domain.BusinessConfig{BusinessName: "Shop", CurrencySymbol: "$", MenuPageSize: 8},
			productsErr: errors.New("timeout"),
		}
		svc := NewChatService(catalog, &stubOrderPlacer{})

		reply, err := svc.HandleMessage(context.Background(), Message{Body: "2001 x 1"})
		require.NoError(t, err)
		assert.Equal(t, msgOrderError, reply.Text)
	})
}

func TestChatService_MenuPagination(t *testing.T) {
	t.Parallel()

	catalog := &stubCatalog{
		cfg: &domain.BusinessConfig{BusinessName: "Shop", CurrencySymbol: "$", MenuPageSize: 1},
		products: []domain.Product{
			{Number: "1", Name: "Uno", Price: 1},
			{Number: "2", Name: "Dos", Price: 2},
		},
	}
	svc := NewChatService(catalog, &stubOrderPlacer{})

	first, err := svc.HandleMessage(context.Background(), Message{Body: "menu"})
	require.NoError(t, err)
	assert.Contains(t, first.Text, "- Uno — $1.0")
	assert.Contains(t, first.Text, "Escribe MENU 2 para ver más.")

	second, err := svc.HandleMessage(context.Background(), Message{Body: "Menu 2"})
	require.NoError(t, err)
	assert.Contains(t, second.Text, "- Dos — $2.0")
	assert.NotContains(t, second.Text, "Uno")
	assert.NotContains(t, second.Text, "para ver más")

	huge, err := svc.HandleMessage(context.Background(), Message{Body: "menu 99999999999999999999"})
	require.NoError(t, err)
	assert.Equal(t, second.Text, huge.Text)
}

type stubCatalog struct {
	cfg         *domain.BusinessConfig
	cfgErr      error
	products    []domain.Product
	productsErr error
}

func (s *stubCatalog) GetBusinessConfig(context.Context) (*domain.BusinessConfig, error) {
	return s.cfg, s.cfgErr
}

func (s *stubCatalog) ListActiveProducts(context.Context) ([]domain.Product, error) {
	return s.products, s.productsErr
}

type stubOrderPlacer struct {
	result PlaceOrderResult
	err    error
	calls  []PlaceOrderInput
}

func (s *stubOrderPlacer) PlaceOrder(_ context.Context, in PlaceOrderInput) (PlaceOrderResult, error) {
	s.calls = append(s.calls, in)
	return s.result, s.err
}

type recordingObserver struct {
	intents []Intent
	placed  []bool
}

func (r *recordingObserver) MessageHandled(intent Intent) {
	r.intents = append(r.intents, intent)
}

func (r *recordingObserver) OrderPlaced(created bool) {
	r.placed = append(r.placed, created)
}
