package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/simpleshop-api/internal/application/dto"
	"github.com/tu-usuario/simpleshop-api/internal/application/inventory"
	"github.com/tu-usuario/simpleshop-api/internal/domain"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
	"github.com/tu-usuario/simpleshop-api/internal/domain/repository"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/audit"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/cache"
)

// CancellationUseCase revierte el efecto de una orden COMPLETED sobre el stock
// mediante una transacción compensatoria: un movimiento IN nuevo por cada item
// (los OUT originales son inmutables y quedan en el ledger) y el estado pasa a
// CANCELLED. Todo en una tx: o se restaura todo el stock y se marca cancelada,
// o no pasa nada.
type CancellationUseCase struct {
	txRunner     TxRunner
	ledger       StockLedger
	auditSink    audit.Sink
	catalogCache cache.CatalogCache
}

// NewCancellationUseCase construye el caso de uso.
func NewCancellationUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	auditSink audit.Sink,
	catalogCache cache.CatalogCache,
) *CancellationUseCase {
	return &CancellationUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		auditSink:    auditSink,
		catalogCache: catalogCache,
	}
}

// CancelOrder cancela una orden del tenant restaurando su stock.
// Idempotencia: una orden ya CANCELLED retorna ErrConflict sin escribir ningún
// movimiento; la primera cancelación es la única que compensa.
func (uc *CancellationUseCase) CancelOrder(ctx context.Context, orderID, tenantID, userID string) (*dto.CancelOrderResponse, error) {
	if orderID == "" || tenantID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	err := uc.txRunner.RunOrders(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetByID(orderID, tenantID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, orderID)
		}
		if order.Status == entity.OrderStatusCancelled {
			return fmt.Errorf("%w: orden ya cancelada", domain.ErrConflict)
		}

		// Restaurar stock: un IN compensatorio por item
		for _, item := range order.Items {
			_, _, err := uc.ledger.ApplyMovement(movRepo, productRepo, inventory.ApplyMovementInput{
				TenantID:  tenantID,
				ProductID: item.ProductID,
				UserID:    userID,
				Type:      entity.MovementTypeIN,
				Quantity:  item.Quantity,
				Comment:   fmt.Sprintf("Cancelación Orden #%s", shortID(order.ID)),
				Now:       now,
			})
			if err != nil {
				return err
			}
		}

		return orderRepo.UpdateStatus(orderID, tenantID, entity.OrderStatusCancelled)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateCatalog(ctx, tenantID)
	uc.auditSink.Record("ORDER_CANCEL",
		fmt.Sprintf("Orden cancelada #%s. Stock restaurado.", shortID(orderID)),
		map[string]any{"tenant_id": tenantID, "order_id": orderID, "user_id": userID},
	)

	return &dto.CancelOrderResponse{
		Restored: true,
		Message:  "orden cancelada y stock restaurado",
	}, nil
}

func (uc *CancellationUseCase) invalidateCatalog(ctx context.Context, tenantID string) {
	if err := uc.catalogCache.InvalidateProducts(ctx, tenantID); err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("invalidar catálogo cacheado")
	}
}
