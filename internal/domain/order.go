package domain

import "time"

type OrderStatus string

const OrderStatusNew OrderStatus = "new"

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}

// Order represents a confirmed chat order. ID is the Unix-seconds timestamp shown to the customer.
type Order struct {
	ID     string
	Phone  string
	Items  []OrderItem
	Total  float64
	Status OrderStatus
	// OrderType and Address are reserved for pickup/delivery capture and stay blank for now.
	OrderType  string
	Address    string
	CreatedAt  time.Time
	MessageSID string
}
