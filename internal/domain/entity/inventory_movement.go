package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada (compras, devoluciones)
	MovementTypeOUT = "OUT" // salida (ventas, mermas)
)

// InventoryMovement es una entrada inmutable del libro de inventario.
// Una vez escrita nunca se actualiza ni se borra: el ledger es la fuente de
// verdad del stock y Product.Stock solo lo cachea.
type InventoryMovement struct {
	ID        string
	TenantID  string
	ProductID string
	UserID    string // quién lo hizo; vacío en ventas públicas del storefront
	Type      string // IN | OUT
	Quantity  int    // siempre positivo; el tipo define si suma o resta
	Comment   string // ej: "Venta Online - Cliente: Ana" o "Merma por rotura"
	CreatedAt time.Time
}
