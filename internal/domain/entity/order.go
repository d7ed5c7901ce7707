package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden. Transiciones válidas: PENDING → COMPLETED → CANCELLED.
// CANCELLED es terminal; no existe ninguna otra transición.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Order representa una venta de la tienda pública.
// Total se calcula al crearla (Σ item.Price × item.Quantity) y nunca se recalcula.
type Order struct {
	ID            string
	TenantID      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Total         decimal.Decimal
	Status        string
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem pertenece a exactamente una orden (se borra en cascada con ella) y
// referencia al producto solo por ID. Price es un snapshot de Product.Price al
// momento de la compra: no cambia aunque el producto cambie de precio después.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}
