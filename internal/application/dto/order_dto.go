package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/store/:slug/orders (checkout público).
type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	Items         []OrderItemRequest `json:"items"`
}

// OrderItemRequest línea del carrito (producto y cantidad).
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse orden con sus items.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	Status        string              `json:"status"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

// OrderItemResponse línea de la orden con el precio congelado al comprar.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CancelOrderResponse resultado de POST /api/orders/:id/cancel.
type CancelOrderResponse struct {
	Restored bool   `json:"restored"`
	Message  string `json:"message"`
}
