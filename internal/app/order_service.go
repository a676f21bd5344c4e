package app

import (
	"context"
	"errors"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/clock"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
)

type OrderRepository interface {
	FindOrderByMessageSID(ctx context.Context, sid string) (*domain.Order, error)
	CreateOrder(ctx context.Context, order domain.Order) error
}

type OrderService struct {
	repo  OrderRepository
	clock clock.Clock
}

func NewOrderService(repo OrderRepository, clk clock.Clock) *OrderService {
	return &OrderService{
		repo:  repo,
		clock: clk,
	}
}

type PlaceOrderInput struct {
	Phone      string
	Product    domain.Product
	Qty        int
	MessageSID string
}

type PlaceOrderResult struct {
	Order   domain.Order
	Created bool
}

// PlaceOrder records a single-line order. A redelivered message (same MessageSID)
// returns the order created the first time instead of writing a duplicate.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderResult, error) {
	if in.Qty <= 0 {
		return PlaceOrderResult{}, domain.ErrInvalidQuantity
	}

	if in.MessageSID != "" {
		existing, err := s.repo.FindOrderByMessageSID(ctx, in.MessageSID)
		if err != nil {
			return PlaceOrderResult{}, err
		}
		if existing != nil {
			return PlaceOrderResult{Order: *existing, Created: false}, nil
		}
	}

	now := s.clock.Now()
	order := domain.Order{
		ID:    newOrderID(now),
		Phone: in.Phone,
		Items: []domain.OrderItem{{
			ProductID: in.Product.ProductID,
			Name:      in.Product.Name,
			Qty:       in.Qty,
			Price:     in.Product.Price,
		}},
		Total:      in.Product.Price * float64(in.Qty),
		Status:     domain.OrderStatusNew,
		CreatedAt:  now,
		MessageSID: in.MessageSID,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		// A concurrent delivery of the same message may have won the insert.
		if errors.Is(err, domain.ErrOrderAlreadyExists) && in.MessageSID != "" {
			existing, findErr := s.repo.FindOrderByMessageSID(ctx, in.MessageSID)
			if findErr != nil {
				return PlaceOrderResult{}, findErr
			}
			if existing != nil {
				return PlaceOrderResult{Order: *existing, Created: false}, nil
			}
		}
		return PlaceOrderResult{}, err
	}

	return PlaceOrderResult{Order: order, Created: true}, nil
}
