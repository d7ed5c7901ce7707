package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
	"github.com/tu-usuario/simpleshop-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx). Append-only: solo INSERT y SELECT, nunca UPDATE ni DELETE.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `id, tenant_id, product_id, user_id, type, quantity, comment, created_at`

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	userID := (*string)(nil)
	if movement.UserID != "" {
		userID = &movement.UserID
	}
	comment := (*string)(nil)
	if movement.Comment != "" {
		comment = &movement.Comment
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.TenantID, movement.ProductID, userID,
		movement.Type, movement.Quantity, comment, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID dentro del tenant.
func (r *InventoryMovementRepo) GetByID(id, tenantID string) (*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1 AND tenant_id = $2`
	var m entity.InventoryMovement
	var userID, comment *string
	err := r.q.QueryRow(context.Background(), query, id, tenantID).Scan(
		&m.ID, &m.TenantID, &m.ProductID, &userID, &m.Type, &m.Quantity, &comment, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if userID != nil {
		m.UserID = *userID
	}
	if comment != nil {
		m.Comment = *comment
	}
	return &m, nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *InventoryMovementRepo) ListByProduct(tenantID, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE tenant_id = $1 AND product_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	return scanMovements(rows)
}

// ListByTenant lista todos los movimientos del tenant, más recientes primero.
func (r *InventoryMovementRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var userID, comment *string
		if err := rows.Scan(&m.ID, &m.TenantID, &m.ProductID, &userID, &m.Type,
			&m.Quantity, &comment, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if userID != nil {
			m.UserID = *userID
		}
		if comment != nil {
			m.Comment = *comment
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
