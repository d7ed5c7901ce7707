package orders

import (
	"context"

	"github.com/tu-usuario/simpleshop-api/internal/application/inventory"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
	"github.com/tu-usuario/simpleshop-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los repos
// de inventario y de órdenes: los descuentos de stock, los movimientos del
// ledger y la orden con sus items se confirman juntos o ninguno.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// StockLedger interfaz para integrar órdenes con inventario.
// ApplyMovement usa los repositorios del caller (misma transacción); si retorna
// error (ej: InsufficientStockError) el caller debe abortar para que el
// TxRunner haga rollback.
type StockLedger interface {
	ApplyMovement(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		in inventory.ApplyMovementInput,
	) (*entity.Product, *entity.InventoryMovement, error)
}
