package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/simpleshop-api/internal/application/dto"
	"github.com/tu-usuario/simpleshop-api/internal/application/inventory"
	"github.com/tu-usuario/simpleshop-api/internal/application/orders"
	"github.com/tu-usuario/simpleshop-api/internal/domain"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/audit"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/cache"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTenantID  = "11111111-1111-1111-1111-111111111111"
	otherTenantID = "22222222-2222-2222-2222-222222222222"
	testUserID    = "33333333-3333-3333-3333-333333333333"
	testSlug      = "demo"
)

type env struct {
	store        *memory.Store
	fulfillment  *orders.FulfillmentUseCase
	cancellation *orders.CancellationUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	store.SeedTenant(&entity.Tenant{
		ID:       testTenantID,
		Name:     "Tienda Demo",
		Slug:     testSlug,
		Email:    "demo@tienda.test",
		IsActive: true,
	})
	ledger := inventory.NewStockLedger()
	return &env{
		store:        store,
		fulfillment:  orders.NewFulfillmentUseCase(store, store, store.OrderRepo(), ledger, audit.Noop{}, cache.NoopCatalogCache{}),
		cancellation: orders.NewCancellationUseCase(store, ledger, audit.Noop{}, cache.NoopCatalogCache{}),
	}
}

func (e *env) seedProduct(t *testing.T, sku string, price float64, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		TenantID:  testTenantID,
		SKU:       sku,
		Name:      "Producto " + sku,
		Price:     decimal.NewFromFloat(price),
		Stock:     stock,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, e.store.ProductRepo().Create(p))
	return p
}

func (e *env) stockOf(t *testing.T, productID string) int {
	t.Helper()
	p, err := e.store.ProductRepo().GetByID(productID, testTenantID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func checkout(items ...dto.OrderItemRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerName:  "Ana Gómez",
		CustomerEmail: "ana@cliente.test",
		Items:         items,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_DescuentaStockYCompleta(t *testing.T) {
	e := newEnv(t)
	p := e.seedProduct(t, "SKU-1", 9.99, 10)

	resp, err := e.fulfillment.CreateOrder(context.Background(), testSlug,
		checkout(dto.OrderItemRequest{ProductID: p.ID, Quantity: 2}))
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, resp.Status)
	assert.Equal(t, "19.98", resp.Total.StringFixed(2), "total = precio × cantidad")
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "9.99", resp.Items[0].Price.StringFixed(2), "el item congela el precio de compra")
	assert.Equal(t, 8, e.stockOf(t, p.ID), "el checkout debe descontar el stock")

	// El descuento quedó como OUT en el ledger
	movs, err := e.store.MovementRepo().ListByProduct(testTenantID, p.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.Equal(t, 2, movs[0].Quantity)
	assert.Contains(t, movs[0].Comment, "Venta Online - Cliente: Ana Gómez")
}

// Orden con dos items donde el segundo no tiene stock: el descuento ya aplicado
// al primero debe revertirse junto con todo lo demás.
func TestCreateOrder_FallaUnItemRevierteTodo(t *testing.T) {
	e := newEnv(t)
	conStock := e.seedProduct(t, "SKU-OK", 5.00, 10)
	sinStock := e.seedProduct(t, "SKU-CORTO", 7.50, 3)

	_, err := e.fulfillment.CreateOrder(context.Background(), testSlug, checkout(
		dto.OrderItemRequest{ProductID: conStock.ID, Quantity: 1},
		dto.OrderItemRequest{ProductID: sinStock.ID, Quantity: 5},
	))
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, sinStock.ID, stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)

	// Rollback completo: ningún stock tocado, ningún movimiento, ninguna orden
	assert.Equal(t, 10, e.stockOf(t, conStock.ID), "el descuento del primer item debe revertirse")
	assert.Equal(t, 3, e.stockOf(t, sinStock.ID))

	movs, err := e.store.MovementRepo().ListByTenant(testTenantID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)

	ords, err := e.store.OrderRepo().ListByTenant(testTenantID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, ords, "una orden fallida no debe quedar ni como PENDING")
}

func TestCreateOrder_ProductoInactivoNoSeVende(t *testing.T) {
	e := newEnv(t)
	p := e.seedProduct(t, "SKU-1", 9.99, 10)
	inactivo := *p
	inactivo.IsActive = false
	require.NoError(t, e.store.ProductRepo().Update(&inactivo))

	_, err := e.fulfillment.CreateOrder(context.Background(), testSlug,
		checkout(dto.OrderItemRequest{ProductID: p.ID, Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, e.stockOf(t, p.ID))
}

func TestCreateOrder_TiendaInexistente(t *testing.T) {
	e := newEnv(t)
	p := e.seedProduct(t, "SKU-1", 9.99, 10)

	_, err := e.fulfillment.CreateOrder(context.Background(), "no-existe",
		checkout(dto.OrderItemRequest{ProductID: p.ID, Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_TiendaInactiva(t *testing.T) {
	e := newEnv(t)
	e.store.SeedTenant(&entity.Tenant{
		ID:       otherTenantID,
		Name:     "Tienda Cerrada",
		Slug:     "cerrada",
		Email:    "cerrada@tienda.test",
		IsActive: false,
	})

	_, err := e.fulfillment.CreateOrder(context.Background(), "cerrada",
		checkout(dto.OrderItemRequest{ProductID: "x", Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_ValidacionEntrada(t *testing.T) {
	e := newEnv(t)
	p := e.seedProduct(t, "SKU-1", 9.99, 10)

	casos := []struct {
		nombre string
		req    dto.CreateOrderRequest
	}{
		{"sin items", dto.CreateOrderRequest{CustomerName: "Ana", CustomerEmail: "a@b.c"}},
		{"sin nombre", dto.CreateOrderRequest{CustomerEmail: "a@b.c", Items: []dto.OrderItemRequest{{ProductID: p.ID, Quantity: 1}}}},
		{"sin email", dto.CreateOrderRequest{CustomerName: "Ana", Items: []dto.OrderItemRequest{{ProductID: p.ID, Quantity: 1}}}},
		{"cantidad cero", checkout(dto.OrderItemRequest{ProductID: p.ID, Quantity: 0})},
		{"item sin producto", checkout(dto.OrderItemRequest{Quantity: 1})},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := e.fulfillment.CreateOrder(context.Background(), testSlug, c.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// El precio del item queda congelado aunque el producto cambie de precio después.
func TestCreateOrder_SnapshotDePrecio(t *testing.T) {
	e := newEnv(t)
	p := e.seedProduct(t, "SKU-1", 9.99, 10)

	resp, err := e.fulfillment.CreateOrder(context.Background(), testSlug,
		checkout(dto.OrderItemRequest{ProductID: p.ID, Quantity: 1}))
	require.NoError(t, err)

	caro := *p
	caro.Price = decimal.NewFromFloat(49.99)
	require.NoError(t, e.store.ProductRepo().Update(&caro))

	got, err := e.fulfillment.GetOrder(context.Background(), resp.ID, testTenantID)
	require.NoError(t, err)
	assert.Equal(t, "9.99", got.Items[0].Price.StringFixed(2),
		"el item conserva el precio vigente al comprar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetOrder / ListOrders
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrder_AisladoPorTenant(t *testing.T) {
	e := newEnv(t)
	p := e.seedProduct(t, "SKU-1", 9.99, 10)

	resp, err := e.fulfillment.CreateOrder(context.Background(), testSlug,
		checkout(dto.OrderItemRequest{ProductID: p.ID, Quantity: 1}))
	require.NoError(t, err)

	_, err = e.fulfillment.GetOrder(context.Background(), resp.ID, otherTenantID)
	assert.True(t, errors.Is(err, domain.ErrNotFound),
		"una orden ajena debe verse como inexistente, no como prohibida")

	got, err := e.fulfillment.GetOrder(context.Background(), resp.ID, testTenantID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)
}

func TestListOrders_SoloDelTenant(t *testing.T) {
	e := newEnv(t)
	p := e.seedProduct(t, "SKU-1", 9.99, 10)

	for i := 0; i < 3; i++ {
		_, err := e.fulfillment.CreateOrder(context.Background(), testSlug,
			checkout(dto.OrderItemRequest{ProductID: p.ID, Quantity: 1}))
		require.NoError(t, err)
	}

	propias, err := e.fulfillment.ListOrders(context.Background(), testTenantID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, propias, 3)

	ajenas, err := e.fulfillment.ListOrders(context.Background(), otherTenantID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, ajenas)
}
