package inventory

import (
	"context"

	"github.com/tu-usuario/simpleshop-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad: si fn retorna error se
// hace rollback de todo lo escrito dentro del scope y el error se propaga sin
// modificar; si retorna nil se hace un único commit al final.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
