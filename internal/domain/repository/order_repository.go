package repository

import "github.com/tu-usuario/simpleshop-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y sus items.
// Las órdenes solo se crean completas (cabecera + items) y después solo cambia
// su estado; nunca se editan items ni totales.
type OrderRepository interface {
	// Create persiste la orden y todos sus items.
	Create(order *entity.Order) error
	// GetByID devuelve la orden con sus items, o nil si no existe para el tenant.
	GetByID(id, tenantID string) (*entity.Order, error)
	UpdateStatus(id, tenantID, status string) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Order, error)
}
