package repository

import "github.com/tu-usuario/simpleshop-api/internal/domain/entity"

// TenantRepository define el puerto de lectura de tenants (DIP).
// Este núcleo solo consulta tenants, nunca los muta; el CRUD vive fuera.
type TenantRepository interface {
	GetByID(id string) (*entity.Tenant, error)
	GetActiveBySlug(slug string) (*entity.Tenant, error)
}
