package storefront_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/simpleshop-api/internal/application/storefront"
	"github.com/tu-usuario/simpleshop-api/internal/domain"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/cache"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/memory"
)

const (
	testTenantID = "11111111-1111-1111-1111-111111111111"
	testSlug     = "demo"
)

// fakeCache cache en memoria para observar hits y escrituras.
type fakeCache struct {
	data map[string][]*entity.Product
	sets int
	hits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]*entity.Product)}
}

func (c *fakeCache) GetProducts(_ context.Context, tenantID string) ([]*entity.Product, bool, error) {
	products, ok := c.data[tenantID]
	if ok {
		c.hits++
	}
	return products, ok, nil
}

func (c *fakeCache) SetProducts(_ context.Context, tenantID string, products []*entity.Product, _ time.Duration) error {
	c.data[tenantID] = products
	c.sets++
	return nil
}

func (c *fakeCache) InvalidateProducts(_ context.Context, tenantID string) error {
	delete(c.data, tenantID)
	return nil
}

var _ cache.CatalogCache = (*fakeCache)(nil)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	store.SeedTenant(&entity.Tenant{
		ID:           testTenantID,
		Name:         "Tienda Demo",
		BusinessName: "Demo S.A.S.",
		Slug:         testSlug,
		Email:        "demo@tienda.test",
		IsActive:     true,
	})
	return store
}

func seedProduct(t *testing.T, store *memory.Store, sku string, active bool) *entity.Product {
	t.Helper()
	p := &entity.Product{
		TenantID:  testTenantID,
		SKU:       sku,
		Name:      "Producto " + sku,
		Price:     decimal.NewFromFloat(9.99),
		Stock:     5,
		IsActive:  active,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.ProductRepo().Create(p))
	return p
}

func TestGetStoreInfo_TiendaActiva(t *testing.T) {
	store := newStore(t)
	uc := storefront.NewStorefrontUseCase(store, store.ProductRepo(), cache.NoopCatalogCache{})

	info, err := uc.GetStoreInfo(context.Background(), testSlug)
	require.NoError(t, err)
	assert.Equal(t, "Tienda Demo", info.Name)
	assert.Equal(t, testSlug, info.Slug)
}

func TestGetStoreInfo_TiendaInexistente(t *testing.T) {
	store := newStore(t)
	uc := storefront.NewStorefrontUseCase(store, store.ProductRepo(), cache.NoopCatalogCache{})

	_, err := uc.GetStoreInfo(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El catálogo público solo muestra productos activos.
func TestGetProducts_SoloActivos(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "SKU-ACTIVO", true)
	seedProduct(t, store, "SKU-OCULTO", false)
	uc := storefront.NewStorefrontUseCase(store, store.ProductRepo(), cache.NoopCatalogCache{})

	list, err := uc.GetProducts(context.Background(), testSlug)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "SKU-ACTIVO", list[0].SKU)
}

// Primera lectura puebla el cache, la segunda lo usa, la invalidación lo vacía.
func TestGetProducts_CicloDeCache(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "SKU-1", true)
	fc := newFakeCache()
	uc := storefront.NewStorefrontUseCase(store, store.ProductRepo(), fc)

	_, err := uc.GetProducts(context.Background(), testSlug)
	require.NoError(t, err)
	assert.Equal(t, 1, fc.sets, "el miss debe poblar el cache")
	assert.Equal(t, 0, fc.hits)

	list, err := uc.GetProducts(context.Background(), testSlug)
	require.NoError(t, err)
	assert.Equal(t, 1, fc.hits, "la segunda lectura debe salir del cache")
	assert.Len(t, list, 1)

	require.NoError(t, fc.InvalidateProducts(context.Background(), testTenantID))
	_, err = uc.GetProducts(context.Background(), testSlug)
	require.NoError(t, err)
	assert.Equal(t, 2, fc.sets, "tras invalidar se vuelve a leer de la BD")
}

func TestGetProduct_Detalle(t *testing.T) {
	store := newStore(t)
	p := seedProduct(t, store, "SKU-1", true)
	uc := storefront.NewStorefrontUseCase(store, store.ProductRepo(), cache.NoopCatalogCache{})

	got, err := uc.GetProduct(context.Background(), testSlug, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, 5, got.Stock)
}

func TestGetProduct_InactivoNoSeExpone(t *testing.T) {
	store := newStore(t)
	p := seedProduct(t, store, "SKU-1", false)
	uc := storefront.NewStorefrontUseCase(store, store.ProductRepo(), cache.NoopCatalogCache{})

	_, err := uc.GetProduct(context.Background(), testSlug, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
