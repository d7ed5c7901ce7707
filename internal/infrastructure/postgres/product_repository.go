package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/simpleshop-api/internal/domain"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
	"github.com/tu-usuario/simpleshop-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). Toda consulta filtra por tenant_id.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, tenant_id, sku, name, description, price, cost_price, stock, is_active, created_at, updated_at`

// Create persiste un nuevo producto. Stock inicia según el valor dado (alta inicial).
func (r *ProductRepo) Create(product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.TenantID, product.SKU, product.Name, product.Description,
		product.Price, product.CostPrice, product.Stock, product.IsActive,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID dentro del tenant. Devuelve nil si no
// existe o pertenece a otro tenant.
func (r *ProductRepo) GetByID(id, tenantID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND tenant_id = $2`
	p, err := r.scanOne(r.q.QueryRow(context.Background(), query, id, tenantID))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE) para
// serializar el read-modify-write del stock durante la transacción.
func (r *ProductRepo) GetForUpdate(id, tenantID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND tenant_id = $2 FOR UPDATE`
	p, err := r.scanOne(r.q.QueryRow(context.Background(), query, id, tenantID))
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// UpdateStock escribe el stock materializado. Solo lo llama el ledger, dentro
// de la misma tx que crea el movimiento correspondiente.
func (r *ProductRepo) UpdateStock(id, tenantID string, stock int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $3, updated_at = now() WHERE id = $1 AND tenant_id = $2`,
		id, tenantID, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza datos del producto. No permite modificar Stock (se maneja vía movimientos).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET sku = $3, name = $4, description = $5, price = $6, cost_price = $7, is_active = $8, updated_at = $9
		WHERE id = $1 AND tenant_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.TenantID, product.SKU, product.Name, product.Description,
		product.Price, product.CostPrice, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListActiveByTenant lista los productos activos del tenant (catálogo público).
func (r *ProductRepo) ListActiveByTenant(tenantID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE tenant_id = $1 AND is_active = true
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var description *string
		if err := rows.Scan(&p.ID, &p.TenantID, &p.SKU, &p.Name, &description, &p.Price,
			&p.CostPrice, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if description != nil {
			p.Description = *description
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var description *string
	err := row.Scan(
		&p.ID, &p.TenantID, &p.SKU, &p.Name, &description, &p.Price,
		&p.CostPrice, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if description != nil {
		p.Description = *description
	}
	return &p, nil
}
