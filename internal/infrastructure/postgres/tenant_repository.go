package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
	"github.com/tu-usuario/simpleshop-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación de TenantRepository sobre PostgreSQL (solo lectura).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

const tenantColumns = `id, name, business_name, slug, email, phone, address, is_active, created_at, updated_at`

// GetByID obtiene un tenant por ID.
func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetActiveBySlug obtiene un tenant activo por su slug público.
// Devuelve nil si no existe o está inactivo.
func (r *TenantRepo) GetActiveBySlug(slug string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1 AND is_active = true`
	return r.scanOne(r.q.QueryRow(context.Background(), query, slug))
}

func (r *TenantRepo) scanOne(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	var phone, address *string
	err := row.Scan(
		&t.ID, &t.Name, &t.BusinessName, &t.Slug, &t.Email,
		&phone, &address, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	if phone != nil {
		t.Phone = *phone
	}
	if address != nil {
		t.Address = *address
	}
	return &t, nil
}
