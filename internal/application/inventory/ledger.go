package inventory

import (
	"time"

	"github.com/tu-usuario/simpleshop-api/internal/domain"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
	"github.com/tu-usuario/simpleshop-api/internal/domain/repository"
)

// StockLedger aplica movimientos de stock dentro de una transacción activa.
// Es el único punto del sistema que escribe Product.Stock: cada escritura va
// acompañada de su movimiento en inventory_movements en la misma tx, de modo
// que el stock cacheado siempre es igual a Σ(IN) − Σ(OUT) del ledger.
type StockLedger struct{}

// NewStockLedger construye el ledger.
func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// ApplyMovementInput parámetros de un movimiento. Quantity siempre positivo;
// Type define si suma (IN) o resta (OUT).
type ApplyMovementInput struct {
	TenantID  string
	ProductID string
	UserID    string // vacío en ventas públicas
	Type      string // entity.MovementTypeIN | entity.MovementTypeOUT
	Quantity  int
	Comment   string
	Now       time.Time
}

// ApplyMovement bloquea la fila del producto (SELECT FOR UPDATE), recalcula el
// stock y persiste el nuevo valor junto con el movimiento, usando los
// repositorios del caller (misma transacción). El bloqueo serializa el
// read-modify-write por producto: dos OUT concurrentes nunca ven el mismo stock
// viejo. Si el stock no alcanza retorna InsufficientStockError sin escribir nada.
func (l *StockLedger) ApplyMovement(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	in ApplyMovementInput,
) (*entity.Product, *entity.InventoryMovement, error) {
	if in.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return nil, nil, domain.ErrInvalidInput
	}

	product, err := productRepo.GetForUpdate(in.ProductID, in.TenantID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}

	newStock := product.Stock
	if in.Type == entity.MovementTypeIN {
		newStock += in.Quantity
	} else {
		if product.Stock < in.Quantity {
			return nil, nil, &domain.InsufficientStockError{
				ProductID: in.ProductID,
				Requested: in.Quantity,
				Available: product.Stock,
			}
		}
		newStock -= in.Quantity
	}

	if err := productRepo.UpdateStock(in.ProductID, in.TenantID, newStock); err != nil {
		return nil, nil, err
	}
	mov := &entity.InventoryMovement{
		TenantID:  in.TenantID,
		ProductID: in.ProductID,
		UserID:    in.UserID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Comment:   in.Comment,
		CreatedAt: in.Now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, nil, err
	}

	product.Stock = newStock
	product.UpdatedAt = in.Now
	return product, mov, nil
}
