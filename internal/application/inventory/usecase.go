package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/simpleshop-api/internal/application/dto"
	"github.com/tu-usuario/simpleshop-api/internal/domain"
	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
	"github.com/tu-usuario/simpleshop-api/internal/domain/repository"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/audit"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/cache"
)

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional (IN, OUT) con bloqueo de fila y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	ledger       *StockLedger
	movementRepo repository.InventoryMovementRepository // atado al pool, solo lecturas
	auditSink    audit.Sink
	catalogCache cache.CatalogCache
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	ledger *StockLedger,
	movementRepo repository.InventoryMovementRepository,
	auditSink audit.Sink,
	catalogCache cache.CatalogCache,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		movementRepo: movementRepo,
		auditSink:    auditSink,
		catalogCache: catalogCache,
	}
}

// RegisterMovement valida la entrada, inicia una transacción y aplica el
// movimiento vía el ledger (Commit si todo ok, Rollback si algo falla).
// La entrada del ledger y la actualización del stock quedan en la misma tx.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, tenantID, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if tenantID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var (
		product *entity.Product
		mov     *entity.InventoryMovement
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		product, mov, err = uc.ledger.ApplyMovement(movRepo, productRepo, ApplyMovementInput{
			TenantID:  tenantID,
			ProductID: in.ProductID,
			UserID:    userID,
			Type:      in.Type,
			Quantity:  in.Quantity,
			Comment:   in.Comment,
			Now:       now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateCatalog(ctx, tenantID)
	uc.auditSink.Record("INVENTORY_MOVEMENT",
		fmt.Sprintf("Movimiento %s x%d producto %s", in.Type, in.Quantity, in.ProductID),
		map[string]any{"tenant_id": tenantID, "product_id": in.ProductID, "movement_id": mov.ID},
	)

	return &dto.MovementResponse{
		ID:        mov.ID,
		ProductID: mov.ProductID,
		UserID:    mov.UserID,
		Type:      mov.Type,
		Quantity:  mov.Quantity,
		Comment:   mov.Comment,
		NewStock:  product.Stock,
		CreatedAt: mov.CreatedAt,
	}, nil
}

// ListMovements devuelve el historial del ledger, por producto o del tenant completo.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, tenantID, productID string, limit, offset int) ([]dto.MovementResponse, error) {
	var (
		movements []*entity.InventoryMovement
		err       error
	)
	if productID != "" {
		movements, err = uc.movementRepo.ListByProduct(tenantID, productID, limit, offset)
	} else {
		movements, err = uc.movementRepo.ListByTenant(tenantID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	list := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		list = append(list, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			UserID:    m.UserID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Comment:   m.Comment,
			CreatedAt: m.CreatedAt,
		})
	}
	return list, nil
}

// invalidateCatalog descarta el catálogo cacheado del tenant. Best-effort: un
// fallo del cache no puede deshacer un movimiento ya confirmado.
func (uc *RegisterMovementUseCase) invalidateCatalog(ctx context.Context, tenantID string) {
	if err := uc.catalogCache.InvalidateProducts(ctx, tenantID); err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("invalidar catálogo cacheado")
	}
}
