package storefront

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/simpleshop-api/internal/application/dto"
	"github.com/tu-usuario/simpleshop-api/internal/domain"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
	"github.com/tu-usuario/simpleshop-api/internal/domain/repository"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/cache"
)

// TTL del catálogo cacheado; se invalida antes si cambia el stock.
const catalogTTL = 5 * time.Minute

const catalogPageSize = 100

// StorefrontUseCase lecturas públicas de la tienda (sin autenticación):
// info de la tienda, catálogo activo y detalle de producto, siempre por slug.
type StorefrontUseCase struct {
	tenantRepo   repository.TenantRepository
	productRepo  repository.ProductRepository
	catalogCache cache.CatalogCache
}

// NewStorefrontUseCase construye el caso de uso.
func NewStorefrontUseCase(
	tenantRepo repository.TenantRepository,
	productRepo repository.ProductRepository,
	catalogCache cache.CatalogCache,
) *StorefrontUseCase {
	return &StorefrontUseCase{
		tenantRepo:   tenantRepo,
		productRepo:  productRepo,
		catalogCache: catalogCache,
	}
}

// GetStoreInfo devuelve los datos públicos de la tienda activa.
func (uc *StorefrontUseCase) GetStoreInfo(ctx context.Context, slug string) (*dto.StoreInfoResponse, error) {
	tenant, err := uc.resolveStore(slug)
	if err != nil {
		return nil, err
	}
	return &dto.StoreInfoResponse{
		ID:           tenant.ID,
		Name:         tenant.Name,
		BusinessName: tenant.BusinessName,
		Slug:         tenant.Slug,
		Email:        tenant.Email,
		Phone:        tenant.Phone,
		Address:      tenant.Address,
	}, nil
}

// GetProducts devuelve el catálogo activo de la tienda, cacheado por tenant.
// Un fallo del cache degrada a leer de la BD.
func (uc *StorefrontUseCase) GetProducts(ctx context.Context, slug string) ([]dto.StoreProductResponse, error) {
	tenant, err := uc.resolveStore(slug)
	if err != nil {
		return nil, err
	}

	products, hit, err := uc.catalogCache.GetProducts(ctx, tenant.ID)
	if err != nil {
		log.Warn().Err(err).Str("tenant_id", tenant.ID).Msg("leer catálogo cacheado")
	}
	if !hit {
		products, err = uc.productRepo.ListActiveByTenant(tenant.ID, catalogPageSize, 0)
		if err != nil {
			return nil, err
		}
		if err := uc.catalogCache.SetProducts(ctx, tenant.ID, products, catalogTTL); err != nil {
			log.Warn().Err(err).Str("tenant_id", tenant.ID).Msg("escribir catálogo cacheado")
		}
	}

	list := make([]dto.StoreProductResponse, 0, len(products))
	for _, p := range products {
		list = append(list, toStoreProduct(p))
	}
	return list, nil
}

// GetProduct devuelve el detalle de un producto activo de la tienda.
func (uc *StorefrontUseCase) GetProduct(ctx context.Context, slug, productID string) (*dto.StoreProductResponse, error) {
	tenant, err := uc.resolveStore(slug)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(productID, tenant.ID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrNotFound
	}
	resp := toStoreProduct(product)
	return &resp, nil
}

// resolveStore busca la tienda activa por slug.
func (uc *StorefrontUseCase) resolveStore(slug string) (*entity.Tenant, error) {
	tenant, err := uc.tenantRepo.GetActiveBySlug(slug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		// Log suave para detectar tráfico basura
		log.Warn().Str("slug", slug).Msg("acceso a tienda inexistente o inactiva")
		return nil, domain.ErrNotFound
	}
	return tenant, nil
}

func toStoreProduct(p *entity.Product) dto.StoreProductResponse {
	return dto.StoreProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}
