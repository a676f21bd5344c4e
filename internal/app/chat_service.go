package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
)

const (
	msgConfigError     = "⚠️ Error de configuración del negocio. Revisa BusinessConfig."
	msgNoProducts      = "⚠️ No hay productos activos en la hoja Products."
	msgInvalidQuantity = "La cantidad debe ser mayor a 0. Ejemplo: 2001 x 2"
	msgProductNotFound = "Producto no encontrado. Escribe MENU para ver opciones."
	msgInvalidFormat   = "Formato inválido. Usa: 2001 x 2"
	msgOrderError      = "Ocurrió un error procesando tu pedido. Intenta de nuevo."
	msgHelp            = "Escribe MENU para ver opciones, o envía tu pedido (ej: 2001 x 2)."
)

type CatalogRepository interface {
	GetBusinessConfig(ctx context.Context) (*domain.BusinessConfig, error)
	ListActiveProducts(ctx context.Context) ([]domain.Product, error)
}

// OrderPlacer is the slice of OrderService the chat flow needs.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderResult, error)
}

// Observer receives chat outcomes; the metrics package implements it.
type Observer interface {
	MessageHandled(intent Intent)
	OrderPlaced(created bool)
}

type nopObserver struct{}

func (nopObserver) MessageHandled(Intent) {}
func (nopObserver) OrderPlaced(bool)      {}

type ChatService struct {
	catalog  CatalogRepository
	orders   OrderPlacer
	logger   zerolog.Logger
	observer Observer
}

type ChatServiceOption func(*ChatService)

func WithLogger(l zerolog.Logger) ChatServiceOption {
	return func(s *ChatService) {
		s.logger = l
	}
}

func WithObserver(o Observer) ChatServiceOption {
	return func(s *ChatService) {
		if o != nil {
			s.observer = o
		}
	}
}

func NewChatService(catalog CatalogRepository, orders OrderPlacer, opts ...ChatServiceOption) *ChatService {
	svc := &ChatService{
		catalog:  catalog,
		orders:   orders,
		logger:   zerolog.Nop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Message is one inbound WhatsApp message as delivered by the webhook.
type Message struct {
	Body       string
	From       string
	MessageSID string
}

type Reply struct {
	Text   string
	Intent Intent
}

// HandleMessage answers a customer message. The reply always carries text for the
// customer; a non-nil error additionally reports a catalog read that failed before
// the message could be served.
func (s *ChatService) HandleMessage(ctx context.Context, msg Message) (Reply, error) {
	reply, err := s.handle(ctx, msg)
	s.observer.MessageHandled(reply.Intent)
	return reply, err
}

func (s *ChatService) handle(ctx context.Context, msg Message) (Reply, error) {
	body := normalizeBody(msg.Body)

	cfg, err := s.catalog.GetBusinessConfig(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("from", msg.From).Msg("load business config")
		return Reply{Text: msgOrderError, Intent: IntentError}, fmt.Errorf("load business config: %w", err)
	}
	if cfg == nil {
		return Reply{Text: msgConfigError, Intent: IntentConfigError}, nil
	}

	switch classify(body) {
	case IntentMenu:
		return s.menu(ctx, *cfg, body)
	case IntentOrder:
		return s.order(ctx, *cfg, msg, body), nil
	default:
		return Reply{Text: msgHelp, Intent: IntentHelp}, nil
	}
}

func (s *ChatService) menu(ctx context.Context, cfg domain.BusinessConfig, body string) (Reply, error) {
	products, err := s.catalog.ListActiveProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("list products for menu")
		return Reply{Text: msgOrderError, Intent: IntentError}, fmt.Errorf("list products: %w", err)
	}
	if len(products) == 0 {
		return Reply{Text: msgNoProducts, Intent: IntentMenu}, nil
	}
	page := paginate(products, cfg.MenuPageSize, menuPageNumber(body))
	return Reply{Text: renderMenu(cfg, page), Intent: IntentMenu}, nil
}

func (s *ChatService) order(ctx context.Context, cfg domain.BusinessConfig, msg Message, body string) Reply {
	req, err := parseOrder(body)
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return Reply{Text: msgInvalidQuantity, Intent: IntentOrder}
	case err != nil:
		return Reply{Text: msgInvalidFormat, Intent: IntentOrder}
	}

	products, err := s.catalog.ListActiveProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("list products for order")
		return Reply{Text: msgOrderError, Intent: IntentError}
	}
	product, ok := domain.FindProductByNumber(products, req.Number)
	if !ok {
		return Reply{Text: msgProductNotFound, Intent: IntentOrder}
	}

	res, err := s.orders.PlaceOrder(ctx, PlaceOrderInput{
		Phone:      msg.From,
		Product:    product,
		Qty:        req.Qty,
		MessageSID: msg.MessageSID,
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("from", msg.From).
			Str("product", product.Number).
			Int("qty", req.Qty).
			Msg("place order")
		return Reply{Text: msgOrderError, Intent: IntentError}
	}
	s.observer.OrderPlaced(res.Created)
	s.logger.Info().
		Str("order_id", res.Order.ID).
		Str("from", msg.From).
		Bool("created", res.Created).
		Msg("order placed")

	return Reply{Text: renderOrderConfirmation(cfg, res.Order), Intent: IntentOrder}
}
