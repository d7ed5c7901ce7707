package repository

import "github.com/tu-usuario/simpleshop-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las consultas van filtradas por tenantID: un producto de otro tenant
// simplemente no existe para el caller (devuelve nil).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id, tenantID string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
	// Solo tiene sentido con un repo atado a una transacción activa.
	GetForUpdate(id, tenantID string) (*entity.Product, error)
	// UpdateStock escribe el stock materializado. Nadie debe llamarlo fuera del
	// ledger: todo cambio de stock lleva su movimiento en la misma transacción.
	UpdateStock(id, tenantID string, stock int) error
	// Update actualiza datos del producto. No toca Stock (se maneja vía movimientos).
	Update(product *entity.Product) error
	ListActiveByTenant(tenantID string, limit, offset int) ([]*entity.Product, error)
}
