package repository

import "github.com/tu-usuario/simpleshop-api/internal/domain/entity"

// InventoryMovementRepository define el puerto de persistencia del ledger.
// Solo escritura de nuevas entradas y lectura: el libro es append-only, por eso
// no existe Update ni Delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id, tenantID string) (*entity.InventoryMovement, error)
	ListByProduct(tenantID, productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
