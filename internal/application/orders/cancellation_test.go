package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/simpleshop-api/internal/application/dto"
	"github.com/tu-usuario/simpleshop-api/internal/domain"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests CancelOrder
// ──────────────────────────────────────────────────────────────────────────────

// Ciclo completo: venta 10→8, cancelación 8→10. Los OUT originales quedan en el
// ledger y la compensación entra como IN nuevo.
func TestCancelOrder_RestauraStock(t *testing.T) {
	e := newEnv(t)
	p := e.seedProduct(t, "SKU-1", 9.99, 10)

	orden, err := e.fulfillment.CreateOrder(context.Background(), testSlug,
		checkout(dto.OrderItemRequest{ProductID: p.ID, Quantity: 2}))
	require.NoError(t, err)
	require.Equal(t, 8, e.stockOf(t, p.ID))

	resp, err := e.cancellation.CancelOrder(context.Background(), orden.ID, testTenantID, testUserID)
	require.NoError(t, err)
	assert.True(t, resp.Restored)

	assert.Equal(t, 10, e.stockOf(t, p.ID), "la cancelación debe devolver el stock vendido")

	got, err := e.fulfillment.GetOrder(context.Background(), orden.ID, testTenantID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, got.Status)

	// Ledger append-only: el OUT original sigue ahí y la compensación es un IN nuevo
	movs, err := e.store.MovementRepo().ListByProduct(testTenantID, p.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type, "el más reciente es la compensación")
	assert.Contains(t, movs[0].Comment, "Cancelación Orden #")
	assert.Equal(t, entity.MovementTypeOUT, movs[1].Type)
}

// Cancelar dos veces no duplica la compensación: la segunda retorna ErrConflict
// y no escribe nada.
func TestCancelOrder_Idempotente(t *testing.T) {
	e := newEnv(t)
	p := e.seedProduct(t, "SKU-1", 9.99, 10)

	orden, err := e.fulfillment.CreateOrder(context.Background(), testSlug,
		checkout(dto.OrderItemRequest{ProductID: p.ID, Quantity: 2}))
	require.NoError(t, err)

	_, err = e.cancellation.CancelOrder(context.Background(), orden.ID, testTenantID, testUserID)
	require.NoError(t, err)
	require.Equal(t, 10, e.stockOf(t, p.ID))

	_, err = e.cancellation.CancelOrder(context.Background(), orden.ID, testTenantID, testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.Equal(t, 10, e.stockOf(t, p.ID), "la segunda cancelación no debe sumar stock de nuevo")

	movs, err := e.store.MovementRepo().ListByProduct(testTenantID, p.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 2, "solo el OUT de la venta y el IN de la primera cancelación")
}

func TestCancelOrder_OrdenInexistente(t *testing.T) {
	e := newEnv(t)

	_, err := e.cancellation.CancelOrder(context.Background(),
		"99999999-9999-9999-9999-999999999999", testTenantID, testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una orden de otro tenant no puede cancelarse: se ve como inexistente.
func TestCancelOrder_OrdenDeOtroTenant(t *testing.T) {
	e := newEnv(t)
	p := e.seedProduct(t, "SKU-1", 9.99, 10)

	orden, err := e.fulfillment.CreateOrder(context.Background(), testSlug,
		checkout(dto.OrderItemRequest{ProductID: p.ID, Quantity: 1}))
	require.NoError(t, err)

	_, err = e.cancellation.CancelOrder(context.Background(), orden.ID, otherTenantID, testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 9, e.stockOf(t, p.ID), "el intento ajeno no debe tocar el stock")
}

func TestCancelOrder_ValidacionEntrada(t *testing.T) {
	e := newEnv(t)

	_, err := e.cancellation.CancelOrder(context.Background(), "", testTenantID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.cancellation.CancelOrder(context.Background(), "algo", "", testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Órdenes con varios items: cada producto recupera exactamente lo vendido.
func TestCancelOrder_VariosItems(t *testing.T) {
	e := newEnv(t)
	p1 := e.seedProduct(t, "SKU-1", 5.00, 10)
	p2 := e.seedProduct(t, "SKU-2", 3.00, 6)

	orden, err := e.fulfillment.CreateOrder(context.Background(), testSlug, checkout(
		dto.OrderItemRequest{ProductID: p1.ID, Quantity: 4},
		dto.OrderItemRequest{ProductID: p2.ID, Quantity: 2},
	))
	require.NoError(t, err)
	require.Equal(t, 6, e.stockOf(t, p1.ID))
	require.Equal(t, 4, e.stockOf(t, p2.ID))

	_, err = e.cancellation.CancelOrder(context.Background(), orden.ID, testTenantID, testUserID)
	require.NoError(t, err)

	assert.Equal(t, 10, e.stockOf(t, p1.ID))
	assert.Equal(t, 6, e.stockOf(t, p2.ID))
}
