package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto (SKU) de una tienda.
// Stock es una proyección materializada del libro de movimientos: siempre debe
// ser igual a Σ(IN) − Σ(OUT) de sus movimientos. Nunca se escribe directamente;
// todo cambio pasa por el ledger dentro de la misma transacción que el movimiento.
type Product struct {
	ID          string
	TenantID    string
	SKU         string // único por tenant
	Name        string
	Description string
	Price       decimal.Decimal  // precio de venta
	CostPrice   *decimal.Decimal // precio de costo (opcional, para rentabilidad)
	Stock       int              // cache del ledger, siempre >= 0
	IsActive    bool             // false = no visible ni vendible en la tienda pública
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
