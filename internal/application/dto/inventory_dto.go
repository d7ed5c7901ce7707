package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // IN | OUT
	Quantity  int    `json:"quantity"`
	Comment   string `json:"comment,omitempty"`
}

// MovementResponse movimiento registrado, con el stock resultante del producto.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id,omitempty"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Comment   string    `json:"comment,omitempty"`
	NewStock  int       `json:"new_stock,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
