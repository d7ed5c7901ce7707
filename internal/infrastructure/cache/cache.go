package cache

import (
	"context"
	"time"

	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
)

// CatalogCache cachea el catálogo público de productos por tenant.
// Es una optimización de lectura: cualquier fallo del cache degrada a leer de la
// base de datos, nunca a un error del caller.
type CatalogCache interface {
	GetProducts(ctx context.Context, tenantID string) ([]*entity.Product, bool, error)
	SetProducts(ctx context.Context, tenantID string, products []*entity.Product, ttl time.Duration) error
	// InvalidateProducts se llama tras cada cambio de stock confirmado
	// (movimiento, venta o cancelación) para no servir catálogo viejo.
	InvalidateProducts(ctx context.Context, tenantID string) error
}

// NoopCatalogCache no cachea nada (modo sin Redis y tests).
type NoopCatalogCache struct{}

func (NoopCatalogCache) GetProducts(context.Context, string) ([]*entity.Product, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) SetProducts(context.Context, string, []*entity.Product, time.Duration) error {
	return nil
}

func (NoopCatalogCache) InvalidateProducts(context.Context, string) error {
	return nil
}
